package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/theme"
)

const (
	maxErrorLines  = 2
	errorPrefix    = "Error: "
	truncationMark = "..."
)

// formatErrorForDisplay wraps message to maxWidth and keeps at most maxErrorLines lines,
// ending the last kept line with "..." when text was dropped.
func formatErrorForDisplay(message string, maxWidth int) string {
	if message == "" {
		message = "unknown error"
	}
	width := maxWidth
	if width < 10 {
		width = 10 // Minimum width to prevent edge cases
	}

	wrapped := wrap.String(wordwrap.String(errorPrefix+message, width), width)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxErrorLines {
		return wrapped
	}

	lines = lines[:maxErrorLines]
	last := strings.TrimRight(lines[maxErrorLines-1], " ")
	lines[maxErrorLines-1] = truncate.String(last, uint(width-len(truncationMark))) + truncationMark
	return strings.Join(lines, "\n")
}

// renderAlert draws a flow alert with its dismiss hint
func renderAlert(alert *domain.Alert, dismiss string, width int) string {
	if alert == nil {
		return ""
	}
	text := formatErrorForDisplay(alert.Message, width-lipgloss.Width(dismiss)-1)
	return theme.ErrorStyle.Render(text) + " " + dismiss
}
