package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ui"
)

// SettingsKeysCmd manages keyboard shortcuts
type SettingsKeysCmd struct {
	List  SettingsKeysListCmd  `cmd:"list" help:"List key bindings by group" default:"1"`
	Set   SettingsKeysSetCmd   `cmd:"set" help:"Bind a control to one or more keys"`
	Reset SettingsKeysResetCmd `cmd:"reset" help:"Restore default key bindings"`
}

// SettingsKeysListCmd lists key bindings
type SettingsKeysListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Group  string `help:"Only list one group (Application, Header, Navigation, Flow)"`
}

// SettingsKeysSetCmd binds a control
type SettingsKeysSetCmd struct {
	Key   string `arg:"" help:"Control name (e.g., integrations, pull, save_commit)"`
	Value string `arg:"" help:"Keys, comma-separated for several (e.g., ctrl+s or up,k)"`
}

// SettingsKeysResetCmd drops custom bindings
type SettingsKeysResetCmd struct {
	Keys []string `arg:"" optional:"" help:"Controls to reset; all of them when omitted"`
}

// keyBinding is one row of the listing
type keyBinding struct {
	Custom    []string `json:"custom,omitempty"`
	Defaults  []string `json:"defaults"`
	Effective []string `json:"effective"`
	Help      string   `json:"help"`
	Name      string   `json:"name"`
}

type keyBindingGroup struct {
	Bindings []keyBinding `json:"bindings"`
	Name     string       `json:"group"`
}

// Run executes the list command
func (s *SettingsKeysListCmd) Run(cli *CLI) error {
	var custom config.KeyBindingsConfig
	if cli.settings != nil {
		custom = cli.settings.Keys
	}

	groups, err := keyBindingGroups(custom, s.Group)
	if err != nil {
		return err
	}
	if s.Format == "json" {
		return writeKeyJSON(os.Stdout, groups)
	}
	return writeKeyTable(os.Stdout, config.GetSettingsPath(), groups)
}

// keyBindingGroups resolves every control against custom, optionally keeping one group
func keyBindingGroups(custom config.KeyBindingsConfig, only string) ([]keyBindingGroup, error) {
	var groups []keyBindingGroup
	for _, g := range ui.KeyGroups() {
		if only != "" && !strings.EqualFold(only, g.Name) {
			continue
		}
		group := keyBindingGroup{Name: g.Name}
		for _, def := range g.Definitions {
			b := keyBinding{
				Defaults:  def.Defaults,
				Effective: def.Defaults,
				Help:      def.Help,
				Name:      def.Name,
			}
			if keys := custom[def.Name]; len(keys) > 0 {
				b.Custom = keys
				b.Effective = keys
			}
			group.Bindings = append(group.Bindings, b)
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("unknown group '%s'", only)
	}
	return groups, nil
}

func writeKeyJSON(w io.Writer, groups []keyBindingGroup) error {
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeKeyTable(w io.Writer, settingsFile string, groups []keyBindingGroup) error {
	fmt.Fprintf(w, "Key bindings (settings file: %s)\n", settingsFile)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "\n%s\n", g.Name)
		for _, b := range g.Bindings {
			keys := strings.Join(b.Effective, ", ")
			if len(b.Custom) > 0 {
				keys += " (default " + strings.Join(b.Defaults, ", ") + ")"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Name, keys, b.Help)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'gitlink settings keys set <name> <keys>' to customize, 'reset' to undo.")
	return nil
}

// Run executes the set command
func (s *SettingsKeysSetCmd) Run(cli *CLI) error {
	values := parseKeyValues(s.Value)
	if err := bindKeys(config.GetSettingsPath(), s.Key, values); err != nil {
		return err
	}
	fmt.Printf("Bound '%s' to %s\n", s.Key, strings.Join(values, ", "))
	return nil
}

// bindKeys stores a custom binding in the settings file at path. The keys may not be
// in use by any other control, custom or default.
func bindKeys(path, name string, values []string) error {
	if !ui.IsValidKeyName(name) {
		return fmt.Errorf("unknown key '%s'. Valid keys: %s",
			name, strings.Join(ui.GetValidKeyNames(), ", "))
	}
	if len(values) == 0 {
		return fmt.Errorf("value cannot be empty")
	}

	// the file only: environment overrides must not be written back
	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Keys == nil {
		settings.Keys = make(config.KeyBindingsConfig)
	}
	settings.Keys[name] = values

	if err := settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return fmt.Errorf("conflict: %w", err)
	}
	if err := defaultConflict(settings.Keys, name); err != nil {
		return err
	}

	logging.Logger.Debug("Setting key binding", "key", name, "values", values)
	if err := config.SaveSettingsTo(path, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// defaultConflict reports a key of name that another control still holds by default
func defaultConflict(custom config.KeyBindingsConfig, name string) error {
	taken := make(map[string]string)
	for _, def := range ui.AllKeyDefinitions {
		if def.Name == name || len(custom[def.Name]) > 0 {
			continue
		}
		for _, k := range def.Defaults {
			taken[k] = def.Name
		}
	}
	for _, k := range custom[name] {
		if other, ok := taken[k]; ok {
			return fmt.Errorf("conflict: key '%s' is the default for '%s'", k, other)
		}
	}
	return nil
}

// Run executes the reset command
func (s *SettingsKeysResetCmd) Run(cli *CLI) error {
	removed, err := resetKeys(config.GetSettingsPath(), s.Keys)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("No custom key bindings to reset")
		return nil
	}
	fmt.Printf("Restored defaults for: %s\n", strings.Join(removed, ", "))
	return nil
}

// resetKeys removes custom bindings of names, or all of them when names is empty,
// and returns the controls that had one
func resetKeys(path string, names []string) ([]string, error) {
	for _, name := range names {
		if !ui.IsValidKeyName(name) {
			return nil, fmt.Errorf("unknown key '%s'", name)
		}
	}

	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if len(names) == 0 {
		names = ui.GetValidKeyNames()
	}

	var removed []string
	for _, name := range names {
		if _, ok := settings.Keys[name]; ok {
			delete(settings.Keys, name)
			removed = append(removed, name)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if len(settings.Keys) == 0 {
		settings.Keys = nil
	}

	if err := config.SaveSettingsTo(path, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return removed, nil
}

// parseKeyValues splits comma-separated keys, dropping blanks
func parseKeyValues(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
