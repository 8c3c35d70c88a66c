package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/renato0307/gitlink/internal/config"
)

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Flow        FlowKeys
	Header      HeaderKeys
	Navigation  NavigationKeys
}

// ApplicationKeys are available everywhere
type ApplicationKeys struct {
	ForceQuit key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// HeaderKeys are the header buttons
type HeaderKeys struct {
	GitHub       key.Binding
	Integrations key.Binding
}

// NavigationKeys move through menus and forms
type NavigationKeys struct {
	Cancel    key.Binding
	Confirm   key.Binding
	Down      key.Binding
	NextField key.Binding
	Up        key.Binding
}

// FlowKeys trigger connect and commit actions
type FlowKeys struct {
	DismissAlert key.Binding
	OpenBrowser  key.Binding
	Pull         key.Binding
	Push         key.Binding
	SaveCommit   key.Binding
	ViewStatus   key.Binding
}

// NewKeyMap creates a new KeyMap with all key bindings initialized
// Pass nil for customKeys to use default bindings
func NewKeyMap(customKeys config.KeyBindingsConfig) KeyMap {
	b := func(name string) key.Binding {
		return buildBinding(name, customKeys)
	}
	return KeyMap{
		Application: ApplicationKeys{
			ForceQuit: b("force_quit"),
			Help:      b("help"),
			Quit:      b("quit"),
		},
		Flow: FlowKeys{
			DismissAlert: b("dismiss_alert"),
			OpenBrowser:  b("open_browser"),
			Pull:         b("pull"),
			Push:         b("push"),
			SaveCommit:   b("save_commit"),
			ViewStatus:   b("view_status"),
		},
		Header: HeaderKeys{
			GitHub:       b("github"),
			Integrations: b("integrations"),
		},
		Navigation: NavigationKeys{
			Cancel:    b("cancel"),
			Confirm:   b("confirm"),
			Down:      b("down"),
			NextField: b("next_field"),
			Up:        b("up"),
		},
	}
}

// buildBinding creates a key.Binding from the key definition, using custom keys if provided.
func buildBinding(name string, customKeys config.KeyBindingsConfig) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	keys := def.Defaults
	if custom, ok := customKeys[name]; ok && len(custom) > 0 {
		keys = custom
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), def.Help),
	)
}

// withHelp returns a copy of b with a context-specific description
func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// contextHelp implements help.KeyMap for the bindings of the active overlay
type contextHelp struct {
	full  [][]key.Binding
	short []key.Binding
}

func (h contextHelp) ShortHelp() []key.Binding {
	return h.short
}

func (h contextHelp) FullHelp() [][]key.Binding {
	if len(h.full) == 0 {
		return [][]key.Binding{h.short}
	}
	return h.full
}
