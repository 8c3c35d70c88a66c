package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

func (m *Model) renderCommitSuccess() string {
	s := m.state
	var b strings.Builder

	branch := s.Reference.Workspace.Branch
	if branch == "" {
		branch = "main"
	}
	b.WriteString(theme.SuccessStyle.Render("✓ Successfully pushed to " + branch + " branch"))

	if commit := s.LastCommit; commit != nil {
		if commit.Title != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.NormalStyle.Bold(true).Render(commit.Title))
		}

		b.WriteString("\n\n")
		b.WriteString(theme.LabelStyle.Render("What was saved"))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			statBox(commit.Summary.Total(), "Files updated"),
			" ",
			statBox(commit.Summary.Added, "New files"),
			" ",
			statBox(commit.Summary.Deleted, "Files deleted"),
		))

		if hash := commit.ShortHash(); hash != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.MutedStyle.Render("Commit " + hash))
		}
	}

	return renderDialog("Changes saved", b.String(),
		hint(m.keys.Flow.OpenBrowser, "View on "+flow.ServiceName, s.Connected != nil),
		hint(m.keys.Flow.ViewStatus, "View status", m.permits(flow.OpenGithubStatus{})),
		hint(m.keys.Navigation.Cancel, "Close", m.permits(flow.DismissCommitSuccess{})))
}

func statBox(n int, label string) string {
	return theme.StatBoxStyle.Render(theme.StatNumberStyle.Render(strconv.Itoa(n)) + "\n" + theme.StatLabelStyle.Render(label))
}
