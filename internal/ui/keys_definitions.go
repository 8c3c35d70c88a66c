package ui

import (
	"sort"
	"sync"
)

// Key groups, in the order help and listings show them
const (
	GroupApplication = "Application"
	GroupHeader      = "Header"
	GroupNavigation  = "Navigation"
	GroupFlow        = "Flow"
)

// KeyDefinition defines the metadata for a configurable key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults []string
	Group    string
	Help     string
	Name     string
}

// KeyGroup is a named set of key definitions
type KeyGroup struct {
	Definitions []KeyDefinition
	Name        string
}

// AllKeyDefinitions contains all configurable key bindings.
// This is the single source of truth for key names, defaults and help text.
var AllKeyDefinitions = []KeyDefinition{
	{Name: "force_quit", Group: GroupApplication, Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Group: GroupApplication, Defaults: []string{"?"}, Help: "more keys"},
	{Name: "quit", Group: GroupApplication, Defaults: []string{"q"}, Help: "quit"},

	{Name: "github", Group: GroupHeader, Defaults: []string{"g"}, Help: "GitHub status"},
	{Name: "integrations", Group: GroupHeader, Defaults: []string{"i"}, Help: "integrations"},

	{Name: "cancel", Group: GroupNavigation, Defaults: []string{"esc"}, Help: "close"},
	{Name: "confirm", Group: GroupNavigation, Defaults: []string{"enter"}, Help: "select"},
	{Name: "down", Group: GroupNavigation, Defaults: []string{"down", "j"}, Help: "down"},
	{Name: "next_field", Group: GroupNavigation, Defaults: []string{"tab"}, Help: "next field"},
	{Name: "up", Group: GroupNavigation, Defaults: []string{"up", "k"}, Help: "up"},

	{Name: "dismiss_alert", Group: GroupFlow, Defaults: []string{"x"}, Help: "dismiss alert"},
	{Name: "open_browser", Group: GroupFlow, Defaults: []string{"o"}, Help: "open in browser"},
	{Name: "pull", Group: GroupFlow, Defaults: []string{"p"}, Help: "pull latest changes"},
	{Name: "push", Group: GroupFlow, Defaults: []string{"u"}, Help: "update repository"},
	{Name: "save_commit", Group: GroupFlow, Defaults: []string{"ctrl+s"}, Help: "save changes"},
	{Name: "view_status", Group: GroupFlow, Defaults: []string{"s"}, Help: "view GitHub status"},
}

// KeyGroups returns the key definitions grouped, in declaration order
func KeyGroups() []KeyGroup {
	var groups []KeyGroup
	for _, def := range AllKeyDefinitions {
		if n := len(groups); n == 0 || groups[n-1].Name != def.Group {
			groups = append(groups, KeyGroup{Name: def.Group})
		}
		last := &groups[len(groups)-1]
		last.Definitions = append(last.Definitions, def)
	}
	return groups
}

var (
	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// GetDefaultKeyBindings returns the default keys of every binding by name
func GetDefaultKeyBindings() map[string][]string {
	defaults := make(map[string][]string, len(AllKeyDefinitions))
	for _, def := range AllKeyDefinitions {
		defaults[def.Name] = append([]string(nil), def.Defaults...)
	}
	return defaults
}

// IsValidKeyName reports whether name is a configurable key binding
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}
