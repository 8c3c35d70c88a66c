package ui

import (
	"fmt"
	"strings"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

func (m *Model) renderConnectDialog() string {
	s := m.state
	cancel := hint(m.keys.Navigation.Cancel, "Cancel", m.permits(flow.CancelDialog{}))

	switch s.ConnectView() {
	case flow.ConnectViewOrganizations:
		picker := ""
		if m.orgPicker != nil {
			picker = m.orgPicker.View()
		}
		return renderDialog("Connect to "+flow.ServiceName, picker,
			hint(m.keys.Navigation.Confirm, "Select", len(s.Reference.Organizations) > 0),
			cancel)

	case flow.ConnectViewRepositoryName:
		return renderDialog("Create a repository", m.renderRepositoryName(), cancel)

	case flow.ConnectViewConnected:
		return renderDialog("Connected to "+flow.ServiceName, m.renderConnected(),
			hint(m.keys.Flow.OpenBrowser, "Open in "+flow.ServiceName, true),
			hint(m.keys.Navigation.Cancel, "Close", m.permits(flow.CancelDialog{})))
	}

	footer := []string{cancel}
	if s.Phase == domain.PhaseInitial {
		footer = append([]string{theme.MutedStyle.Render("New to " + flow.ServiceName + "? Sign up on " + serviceHost)}, footer...)
	}
	return renderDialog("Connect to "+flow.ServiceName, m.renderSignIn(), footer...)
}

func (m *Model) renderSignIn() string {
	switch m.state.Phase {
	case domain.PhaseRedirecting:
		var b strings.Builder
		b.WriteString(m.spinner.View() + " Redirecting to " + flow.ServiceName + "...")
		if code := m.deviceCode; code != nil {
			b.WriteString("\n\n")
			b.WriteString("Enter the code ")
			b.WriteString(theme.KeyStyle.Render(code.UserCode))
			b.WriteString(" at\n")
			b.WriteString(theme.LinkStyle.Render(code.VerificationURI))
			b.WriteString("\n\n")
			b.WriteString(hint(m.keys.Flow.OpenBrowser, "Open the verification page", m.opener != nil))
		}
		return b.String()

	case domain.PhaseLoadingCallback:
		return m.spinner.View() + " Loading your " + flow.ServiceName + " account..."
	}

	intro := fmt.Sprintf("Connect your %s account and back up this codebase there to collaborate and edit your code.", flow.ServiceName)
	return intro + "\n\n" + button(m.keys.Navigation.Confirm, "Continue with "+flow.ServiceName, m.permits(flow.BeginAuthentication{}))
}

func (m *Model) renderRepositoryName() string {
	draft := m.state.Draft
	if draft == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.LabelStyle.Render("Organization"))
	b.WriteString("\n")
	b.WriteString(draft.Organization.DisplayName)
	b.WriteString("\n\n")
	b.WriteString(theme.LabelStyle.Render("Repository name"))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render("Will be created as " + domain.ConnectedPath(*draft)))
	b.WriteString("\n\n")
	b.WriteString(button(m.keys.Navigation.Confirm, "Create repository", m.permits(flow.CreateRepository{})))
	return b.String()
}

func (m *Model) renderConnected() string {
	repo := m.state.Connected
	if repo == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("This project is connected to ")
	b.WriteString(theme.LinkStyle.Render(repo.FullPath))
	b.WriteString("\n\n")
	b.WriteString(theme.InfoBoxStyle.Render("Changes you make here are kept until you save them to " + flow.ServiceName + "."))
	b.WriteString("\n\n")
	b.WriteString(button(m.keys.Navigation.Confirm, "Review and save latest changes", m.permits(flow.OpenCommitReview{})))
	return b.String()
}
