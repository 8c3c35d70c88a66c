package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/theme"
)

// VersionInfo holds version information for display in UI headers.
// Populated by main.go from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Version   string
}

// DefaultVersionInfo provides default values when version info is not available
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Version:   "dev",
}

// versionInfo holds the global version info set by SetVersionInfo
var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the global version info (called from main.go)
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader draws the workspace header: the app name on the left and the GitHub,
// Integrations and Deploy buttons on the right.
func renderHeader(s flow.State, keys KeyMap, width int, devMode bool) string {
	left := theme.AppNameStyle.Render("gitlink")
	if devMode {
		commit := versionInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		left += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s", versionInfo.Version, commit, versionInfo.GoVersion))
	}

	github := flow.ServiceName
	if len(s.Reference.Workspace.Files) > 0 {
		// unsaved changes
		github += theme.BadgeStyle.Render(" ●")
	}

	buttons := []string{
		theme.HeaderButtonStyle.Render(keyHint(keys.Header.GitHub) + " " + github),
		theme.HeaderButtonStyle.Render(keyHint(keys.Header.Integrations) + " Integrations ▾"),
		theme.PrimaryHeaderButtonStyle.Render("Deploy"),
	}
	right := strings.Join(buttons, " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return theme.HeaderStyle.Width(max(width, lipgloss.Width(line))).Render(line)
}

// keyHint renders the first key of a binding as "[k]"
func keyHint(b key.Binding) string {
	keys := b.Keys()
	if len(keys) == 0 {
		return ""
	}
	return theme.KeyStyle.Render("[" + keys[0] + "]")
}
