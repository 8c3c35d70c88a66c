package storage

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed fixtures.toml
var defaultFixtures string

// Fixtures is the seed data of the catalog
type Fixtures struct {
	Account       AccountFixture        `toml:"account"`
	Commits       []CommitFixture       `toml:"commits"`
	Organizations []OrganizationFixture `toml:"organizations"`
	Workspace     WorkspaceFixture      `toml:"workspace"`
}

type AccountFixture struct {
	AvatarURI string `toml:"avatar_uri"`
	Login     string `toml:"login"`
	Name      string `toml:"name"`
}

type OrganizationFixture struct {
	AvatarURI   string `toml:"avatar_uri"`
	DisplayName string `toml:"display_name"`
	ID          string `toml:"id"`
}

type WorkspaceFixture struct {
	Branch      string        `toml:"branch"`
	Files       []FileFixture `toml:"files"`
	RemoteAhead bool          `toml:"remote_ahead"`
}

type FileFixture struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

// CommitFixture is a past commit. Age is how long ago it was made, as a Go duration.
type CommitFixture struct {
	Age         string `toml:"age"`
	Description string `toml:"description"`
	Hash        string `toml:"hash"`
	Title       string `toml:"title"`
}

// DefaultFixtures returns the built-in seed data
func DefaultFixtures() (Fixtures, error) {
	var f Fixtures
	if _, err := toml.Decode(defaultFixtures, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to decode built-in fixtures: %w", err)
	}
	return f, f.validate()
}

// LoadFixtures reads seed data from a TOML file
func LoadFixtures(path string) (Fixtures, error) {
	var f Fixtures
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to decode fixtures %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Fixtures{}, fmt.Errorf("unknown fixture keys in %s: %v", path, undecoded)
	}
	return f, f.validate()
}

func (f Fixtures) validate() error {
	seen := make(map[string]bool, len(f.Organizations))
	for _, org := range f.Organizations {
		if org.ID == "" {
			return fmt.Errorf("organization %q has no id", org.DisplayName)
		}
		if seen[org.ID] {
			return fmt.Errorf("duplicate organization id %q", org.ID)
		}
		seen[org.ID] = true
	}
	for _, file := range f.Workspace.Files {
		switch file.Kind {
		case "added", "deleted", "modified":
		default:
			return fmt.Errorf("file %s has unknown change kind %q", file.Path, file.Kind)
		}
	}
	for _, c := range f.Commits {
		if _, err := c.age(); err != nil {
			return fmt.Errorf("commit %s: %w", c.Hash, err)
		}
	}
	return nil
}

func (c CommitFixture) age() (time.Duration, error) {
	if c.Age == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Age)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", c.Age, err)
	}
	return d, nil
}
