package domain

import (
	"regexp"
	"strings"
)

// RepoNameSuffix is appended to the seeded repository name
const RepoNameSuffix = "-demo"

var whitespaceRun = regexp.MustCompile(`\s+`)

// RepositoryDraft is the repository about to be created
type RepositoryDraft struct {
	Name         string
	Organization Organization
}

// Ready reports whether the draft satisfies the creation precondition
func (d *RepositoryDraft) Ready() bool {
	return d != nil && d.Organization.ID != "" && strings.TrimSpace(d.Name) != ""
}

// ConnectedRepository is the single repository the workspace syncs with
type ConnectedRepository struct {
	FullPath string
}

// URL returns the browser URL of the repository on the given host
func (r ConnectedRepository) URL(host string) string {
	return "https://" + host + "/" + r.FullPath
}

// NormalizeRepoPath lower-cases value and replaces every whitespace run with a single hyphen.
// Leading and trailing whitespace is replaced too, matching what the hosted service
// receives from the connect dialog.
func NormalizeRepoPath(value string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(value), "-")
}

// SeedRepositoryName builds the default repository name for an organization
func SeedRepositoryName(org Organization) string {
	return NormalizeRepoPath(org.DisplayName) + RepoNameSuffix
}

// ConnectedPath computes the connected repository path for a draft.
// Normalization applies to the whole "org/name" string, so organization casing and
// spacing are normalized here as well.
func ConnectedPath(d RepositoryDraft) string {
	return NormalizeRepoPath(d.Organization.DisplayName + "/" + d.Name)
}
