package ui

import (
	"strings"

	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

// menuWidth is the width of the integrations dropdown
const menuWidth = 28

type menuItem struct {
	connects bool // opens the connect dialog
	label    string
}

var integrationItems = []menuItem{
	{label: "Download"},
	{label: "Connect to Supabase"},
	{label: "Open in StackBlitz"},
	{label: flow.ServiceName, connects: true},
}

// IntegrationsMenu is the header dropdown. Only the hosted repository entry is wired;
// the rest are placeholders of the workspace the flow lives in.
type IntegrationsMenu struct {
	cursor int
}

// Reset moves the cursor back to the first entry
func (m *IntegrationsMenu) Reset() {
	m.cursor = 0
}

// Move shifts the cursor by delta, wrapping at both ends
func (m *IntegrationsMenu) Move(delta int) {
	n := len(integrationItems)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// Selected returns the entry under the cursor
func (m *IntegrationsMenu) Selected() menuItem {
	return integrationItems[m.cursor]
}

func (m *IntegrationsMenu) View() string {
	var b strings.Builder
	for i, item := range integrationItems {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == m.cursor {
			b.WriteString(theme.MenuItemSelectedStyle.Render("› " + item.label))
			continue
		}
		b.WriteString(theme.MenuItemStyle.Render("  " + item.label))
	}
	return theme.MenuStyle.Width(menuWidth).Render(b.String())
}
