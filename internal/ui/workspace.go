package ui

import (
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/muesli/reflow/truncate"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

// maxWorkspaceFiles caps the file list of the workspace panel
const maxWorkspaceFiles = 8

// renderWorkspace draws the panel under the header: where the workspace stands
// relative to the hosted repository and how to get to the connect flow.
func renderWorkspace(s flow.State, keys KeyMap, width int) string {
	ws := s.Reference.Workspace
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Workspace"))
	b.WriteString("\n")
	if ws.Branch != "" {
		b.WriteString(theme.MutedStyle.Render("Branch ") + ws.Branch + "\n")
	}

	if s.Connected != nil {
		b.WriteString(theme.MutedStyle.Render("Synced with ") + theme.LinkStyle.Render(s.Connected.FullPath))
	} else {
		b.WriteString(theme.MutedStyle.Render("Not connected to " + flow.ServiceName + ". Press ") +
			keyHint(keys.Header.Integrations) + theme.MutedStyle.Render(" to open integrations."))
	}
	b.WriteString("\n\n")

	summary := domain.Summarize(ws.Files)
	if summary.Total() == 0 {
		b.WriteString(theme.SubtleStyle.Render("No unsaved changes"))
		return b.String()
	}

	b.WriteString(theme.LabelStyle.Render(english.Plural(summary.Total(), "changed file", "")))
	b.WriteString(theme.MutedStyle.Render(" (" + strings.Join(summaryParts(summary), ", ") + ")"))
	for i, f := range ws.Files {
		if i == maxWorkspaceFiles {
			b.WriteString("\n  " + theme.MutedStyle.Render("..."))
			break
		}
		line := changeMark(f.Kind) + " " + f.Path
		if width > 4 {
			line = truncate.StringWithTail(line, uint(width-4), "…")
		}
		b.WriteString("\n  " + theme.ChangeStyle(f.Kind).Render(line))
	}
	return b.String()
}

func summaryParts(s domain.ChangeSummary) []string {
	var parts []string
	if s.Modified > 0 {
		parts = append(parts, english.Plural(s.Modified, "modified", "modified"))
	}
	if s.Added > 0 {
		parts = append(parts, english.Plural(s.Added, "new", "new"))
	}
	if s.Deleted > 0 {
		parts = append(parts, english.Plural(s.Deleted, "deleted", "deleted"))
	}
	return parts
}

// changeMark is the one-letter status git prints for a change kind
func changeMark(kind domain.ChangeKind) string {
	switch kind {
	case domain.ChangeAdded:
		return "A"
	case domain.ChangeDeleted:
		return "D"
	default:
		return "M"
	}
}
