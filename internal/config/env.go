package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Env
const EnvPrefix = "GITLINK_"

// Env holds the environment overrides. Unset variables leave the settings file value alone.
type Env struct {
	Browser              string   `env:"BROWSER"`
	CallbackDelayMs      *int     `env:"CALLBACK_DELAY_MS"`
	CatalogPath          string   `env:"CATALOG_PATH"`
	CommitMessageDelayMs *int     `env:"COMMIT_MESSAGE_DELAY_MS"`
	ConnectedRepository  string   `env:"CONNECTED_REPOSITORY"`
	Debug                *bool    `env:"DEBUG"`
	FixturesPath         string   `env:"FIXTURES_PATH"`
	GitHubClientID       string   `env:"GITHUB_CLIENT_ID"`
	GitHubScopes         []string `env:"GITHUB_SCOPES" envSeparator:","`
	Identity             string   `env:"IDENTITY"`
	MaxLogFiles          *int     `env:"MAX_LOG_FILES"`
	NotificationMs       *int     `env:"NOTIFICATION_MS"`
	PullDelayMs          *int     `env:"PULL_DELAY_MS"`
	PushDelayMs          *int     `env:"PUSH_DELAY_MS"`
	RedirectDelayMs      *int     `env:"REDIRECT_DELAY_MS"`
	SSHHost              string   `env:"SSH_HOST"`
	SSHPort              *int     `env:"SSH_PORT"`
	WorkspacePath        string   `env:"WORKSPACE_PATH"`
}

// LoadEnv loads the given .env files when they exist and parses the GITLINK_ variables.
// Variables already present in the process environment win over .env entries.
func LoadEnv(dotEnvFiles ...string) (Env, error) {
	for _, path := range dotEnvFiles {
		if err := godotenv.Load(path); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return Env{}, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Apply overlays the environment on top of s
func (e Env) Apply(s *Settings) {
	overrideString(&s.Browser, e.Browser)
	overrideString(&s.CatalogPath, ExpandPath(e.CatalogPath))
	overrideString(&s.ConnectedRepository, e.ConnectedRepository)
	overrideString(&s.FixturesPath, ExpandPath(e.FixturesPath))
	overrideString(&s.GitHubClientID, e.GitHubClientID)
	overrideString(&s.Identity, e.Identity)
	overrideString(&s.SSHHost, e.SSHHost)
	overrideString(&s.WorkspacePath, ExpandPath(e.WorkspacePath))

	overrideInt(&s.CallbackDelayMs, e.CallbackDelayMs)
	overrideInt(&s.CommitMessageDelayMs, e.CommitMessageDelayMs)
	overrideInt(&s.MaxLogFiles, e.MaxLogFiles)
	overrideInt(&s.NotificationMs, e.NotificationMs)
	overrideInt(&s.PullDelayMs, e.PullDelayMs)
	overrideInt(&s.PushDelayMs, e.PushDelayMs)
	overrideInt(&s.RedirectDelayMs, e.RedirectDelayMs)
	overrideInt(&s.SSHPort, e.SSHPort)

	if e.Debug != nil {
		debug := *e.Debug
		s.Debug = &debug
	}
	if len(e.GitHubScopes) > 0 {
		s.GitHubScopes = append(StringArray(nil), e.GitHubScopes...)
	}
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func overrideInt(dst **int, value *int) {
	if value != nil {
		v := *value
		*dst = &v
	}
}

// Load reads settings.json, overlays the environment and validates the result.
// CLI flags are applied by the caller on top of the returned settings.
func Load() (*Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	e, err := LoadEnv(".env", GetDotEnvPath())
	if err != nil {
		return nil, err
	}
	e.Apply(settings)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
