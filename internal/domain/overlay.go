package domain

// Overlay identifies the single menu or dialog drawn above the workspace
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayIntegrationsMenu
	OverlayConnectDialog
	OverlayCommitReview
	OverlayCommitSuccess
	OverlayGithubStatus
)

var overlayNames = map[Overlay]string{
	OverlayNone:             "none",
	OverlayIntegrationsMenu: "integrations_menu",
	OverlayConnectDialog:    "connect_dialog",
	OverlayCommitReview:     "commit_review",
	OverlayCommitSuccess:    "commit_success",
	OverlayGithubStatus:     "github_status",
}

func (o Overlay) String() string {
	if name, ok := overlayNames[o]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so snapshots print readable overlay names
func (o Overlay) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
