package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/gitlink/internal/theme"
)

// dialogWidth is the inner width of every modal
const dialogWidth = 56

// renderDialog frames body with a title and a footer line of key hints. Every modal goes
// through here so they share the same frame.
func renderDialog(title, body string, footer ...string) string {
	var b strings.Builder
	b.WriteString(theme.DialogTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(dialogWidth).Render(body))
	if hints := strings.Join(nonEmpty(footer), "   "); hints != "" {
		b.WriteString("\n")
		b.WriteString(theme.DialogFooterStyle.Render(hints))
	}
	return theme.DialogStyle.Render(b.String())
}

// hint renders "[k] label", muted when the action is not allowed right now
func hint(b key.Binding, label string, enabled bool) string {
	keys := b.Keys()
	if len(keys) == 0 {
		return ""
	}
	text := "[" + keys[0] + "] " + label
	if !enabled {
		return theme.MutedStyle.Render(text)
	}
	return theme.KeyStyle.Render("["+keys[0]+"]") + " " + theme.NormalStyle.Render(label)
}

// button renders a call to action with its key, greyed out when disabled
func button(b key.Binding, label string, enabled bool) string {
	keys := b.Keys()
	text := label
	if len(keys) > 0 {
		text = "[" + keys[0] + "] " + label
	}
	if !enabled {
		return theme.DisabledButtonStyle.Render(text)
	}
	return theme.ButtonStyle.Render(text)
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
