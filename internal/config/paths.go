package config

import (
	"os"
	"path/filepath"
)

// GetHome returns GITLINK_HOME or ~/.gitlink default
func GetHome() string {
	home := os.Getenv("GITLINK_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".gitlink"
		}
		return filepath.Join(homeDir, ".gitlink")
	}
	return ExpandPath(home)
}

// GetSettingsPath returns $GITLINK_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetHostKeyPath returns $GITLINK_HOME/ssh/id_ed25519
func GetHostKeyPath() string {
	return filepath.Join(GetHome(), "ssh", "id_ed25519")
}

// GetDotEnvPath returns $GITLINK_HOME/.env
func GetDotEnvPath() string {
	return filepath.Join(GetHome(), ".env")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
