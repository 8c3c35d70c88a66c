package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
	ColorAccent    Color = "39" // Blue - primary buttons, links
)

// UI semantic colors
const (
	ColorBorder    Color = "238" // Dark gray - dialog frames
	ColorDimmed    Color = "240" // Background behind overlays
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorSuccess   Color = "42"  // Green - toasts, success
	ColorVersion   Color = "240" // Dark gray
	ColorWarning   Color = "214" // Orange - unsaved changes
)

// Accent colors
const (
	ColorBadge     Color = "1"   // Red - attention dot on the GitHub button
	ColorButtonBg  Color = "236" // Header buttons
	ColorSelected  Color = "237" // Selected menu item
	ColorSpinner   Color = "205" // Pink
	ColorStatBoxBg Color = "237" // Commit success counters
)

// Change kind colors
const (
	ColorAdded    Color = "2" // Green
	ColorDeleted  Color = "1" // Red
	ColorModified Color = "3" // Yellow
)
