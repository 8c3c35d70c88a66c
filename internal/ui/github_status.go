package ui

import (
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

// maxStatusFiles caps the unsaved-file list of the status view
const maxStatusFiles = 6

func (m *Model) renderGithubStatus() string {
	s := m.state
	ws := s.Reference.Workspace
	var b strings.Builder

	b.WriteString(theme.LabelStyle.Render("Linked to"))
	b.WriteString("\n")
	switch {
	case s.Account != nil && s.Account.Login != "":
		b.WriteString(s.Account.DisplayName() + theme.MutedStyle.Render(" @"+s.Account.Login))
	case s.Account != nil:
		b.WriteString(s.Account.DisplayName())
	default:
		b.WriteString(theme.MutedStyle.Render("Not signed in"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.LabelStyle.Render("Repository"))
	b.WriteString("\n")
	if s.Connected == nil {
		b.WriteString(theme.MutedStyle.Render("No repository connected. Use Integrations to connect one."))
	} else {
		b.WriteString(theme.LinkStyle.Render(s.Connected.FullPath))
		if ws.Branch != "" {
			b.WriteString(theme.MutedStyle.Render("  on " + ws.Branch))
		}
	}

	if s.Connected != nil && (ws.RemoteAhead || s.Pending(flow.TaskPull)) {
		b.WriteString("\n\n")
		b.WriteString(theme.WarningStyle.Render("The " + branchName(ws.Branch) + " branch in your " + flow.ServiceName + " repo has new changes"))
		b.WriteString("\n")
		if s.Pending(flow.TaskPull) {
			b.WriteString(m.spinner.View() + " Pulling latest changes...")
		} else {
			b.WriteString(button(m.keys.Flow.Pull, "Pull latest changes", m.permits(flow.PullLatest{})))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderUnsaved())

	if len(ws.RecentCommits) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.LabelStyle.Render("Recent activity"))
		for _, c := range ws.RecentCommits {
			b.WriteString("\n")
			b.WriteString(theme.MutedStyle.Render(c.Hash) + " " + c.Message + theme.SubtleStyle.Render("  "+c.When))
		}
		b.WriteString("\n\n")
		b.WriteString(theme.MutedStyle.Render("Last saved: " + ws.RecentCommits[0].When))
	}

	return renderDialog(flow.ServiceName+" status", b.String(),
		hint(m.keys.Flow.OpenBrowser, "Open repository", s.Connected != nil),
		hint(m.keys.Navigation.Cancel, "Close", m.permits(flow.CloseGithubStatus{})))
}

func (m *Model) renderUnsaved() string {
	s := m.state
	files := s.Reference.Workspace.Files
	if len(files) == 0 {
		if s.Pushing() {
			return m.spinner.View() + " Saving changes..."
		}
		return theme.SuccessStyle.Render("✓ All changes are saved")
	}

	var b strings.Builder
	b.WriteString(theme.WarningStyle.Render("You have " + english.Plural(len(files), "unsaved change", "")))
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render("These changes are in your workspace but not yet saved to " + flow.ServiceName + "."))
	for i, f := range files {
		if i == maxStatusFiles {
			b.WriteString("\n")
			b.WriteString(theme.MutedStyle.Render("  and " + english.Plural(len(files)-i, "more file", "")))
			break
		}
		b.WriteString("\n  ")
		b.WriteString(theme.ChangeStyle(f.Kind).Render(changeMark(f.Kind) + " " + f.Path))
	}
	b.WriteString("\n\n")
	b.WriteString(button(m.keys.Flow.Push, "Update your "+flow.ServiceName+" repository", m.permits(flow.PushUpdates{})))
	return b.String()
}

func branchName(branch string) string {
	if branch == "" {
		return "main"
	}
	return branch
}
