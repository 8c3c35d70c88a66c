package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/renato0307/gitlink/internal/flow"
)

// Identity modes
const (
	IdentityFake   = "fake"
	IdentityGitHub = "github"
)

// Defaults for values that are not part of the flow timings
const (
	DefaultSSHHost = "localhost"
	DefaultSSHPort = 23234
)

// Settings represents the structure of ~/.gitlink/settings.json
type Settings struct {
	Browser              string            `json:"browser,omitempty"`
	CallbackDelayMs      *int              `json:"callback_delay_ms,omitempty"`
	CatalogPath          string            `json:"catalog_path,omitempty"`
	CommitMessageDelayMs *int              `json:"commit_message_delay_ms,omitempty"`
	ConnectedRepository  string            `json:"connected_repository,omitempty"`
	Debug                *bool             `json:"debug,omitempty"`
	FixturesPath         string            `json:"fixtures_path,omitempty"`
	GitHubClientID       string            `json:"github_client_id,omitempty"`
	GitHubScopes         StringArray       `json:"github_scopes,omitempty"`
	Identity             string            `json:"identity,omitempty"`
	Keys                 KeyBindingsConfig `json:"keys,omitempty"`
	MaxLogFiles          *int              `json:"max_log_files,omitempty"`
	NotificationMs       *int              `json:"notification_ms,omitempty"`
	PullDelayMs          *int              `json:"pull_delay_ms,omitempty"`
	PushDelayMs          *int              `json:"push_delay_ms,omitempty"`
	RedirectDelayMs      *int              `json:"redirect_delay_ms,omitempty"`
	SSHHost              string            `json:"ssh_host,omitempty"`
	SSHPort              *int              `json:"ssh_port,omitempty"`
	WorkspacePath        string            `json:"workspace_path,omitempty"`
}

// KeyBindingValue supports "a" or ["up", "k"] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	// Fall back to single string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig holds custom key binding overrides as a map.
// Keys are binding names (e.g., "integrations", "pull"), values are the key sequences.
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks for configuration errors in key bindings.
// The validNames parameter should come from ui.GetValidKeyNames().
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	keyToAction := make(map[string]string)
	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}
		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if existing, found := keyToAction[key]; found {
				return fmt.Errorf("key '%s' is assigned to both '%s' and '%s'", key, existing, name)
			}
			keyToAction[key] = name
		}
	}

	return nil
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate checks values that would only fail later, deep inside the flow
func (s *Settings) Validate() error {
	switch s.Identity {
	case "", IdentityFake:
	case IdentityGitHub:
		if s.GitHubClientID == "" {
			return fmt.Errorf("identity %q requires github_client_id", IdentityGitHub)
		}
	default:
		return fmt.Errorf("unknown identity %q (expected %q or %q)", s.Identity, IdentityFake, IdentityGitHub)
	}

	delays := map[string]*int{
		"callback_delay_ms":       s.CallbackDelayMs,
		"commit_message_delay_ms": s.CommitMessageDelayMs,
		"notification_ms":         s.NotificationMs,
		"pull_delay_ms":           s.PullDelayMs,
		"push_delay_ms":           s.PushDelayMs,
		"redirect_delay_ms":       s.RedirectDelayMs,
	}
	for name, value := range delays {
		if value != nil && *value < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if s.SSHPort != nil && (*s.SSHPort < 1 || *s.SSHPort > 65535) {
		return fmt.Errorf("ssh_port %d out of range", *s.SSHPort)
	}
	if s.ConnectedRepository != "" && !strings.Contains(s.ConnectedRepository, "/") {
		return fmt.Errorf("connected_repository %q must look like org/name", s.ConnectedRepository)
	}
	return nil
}

// Timings returns the flow latencies with the configured overrides applied
func (s *Settings) Timings() flow.Timings {
	t := flow.DefaultTimings()
	override := func(dst *time.Duration, ms *int) {
		if ms != nil {
			*dst = time.Duration(*ms) * time.Millisecond
		}
	}
	override(&t.CallbackDelay, s.CallbackDelayMs)
	override(&t.CommitMessageDelay, s.CommitMessageDelayMs)
	override(&t.NotificationDuration, s.NotificationMs)
	override(&t.PullDelay, s.PullDelayMs)
	override(&t.PushDelay, s.PushDelayMs)
	override(&t.RedirectDelay, s.RedirectDelayMs)
	return t
}

// IdentityMode returns the configured identity provider, fake by default
func (s *Settings) IdentityMode() string {
	if s.Identity == "" {
		return IdentityFake
	}
	return s.Identity
}

// SSHAddress returns host and port for the SSH server
func (s *Settings) SSHAddress() (string, int) {
	host := s.SSHHost
	if host == "" {
		host = DefaultSSHHost
	}
	port := DefaultSSHPort
	if s.SSHPort != nil {
		port = *s.SSHPort
	}
	return host, port
}

// LoadSettings loads settings from $GITLINK_HOME/settings.json (or ~/.gitlink/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	settings.expandPaths()

	return &settings, nil
}

func (s *Settings) expandPaths() {
	s.CatalogPath = ExpandPath(s.CatalogPath)
	s.FixturesPath = ExpandPath(s.FixturesPath)
	s.WorkspacePath = ExpandPath(s.WorkspacePath)
}

// SaveSettings saves settings to $GITLINK_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo writes settings to path while holding an exclusive lock on it, so two
// processes saving at once do not interleave their writes.
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer unlockFile(file)

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate settings file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
