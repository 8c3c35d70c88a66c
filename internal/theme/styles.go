package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/gitlink/internal/domain"
)

// Main UI styles
var (
	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBadge)

	HeaderButtonStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorButtonBg).
				Padding(0, 1)

	PrimaryHeaderButtonStyle = lipgloss.NewStyle().
					Foreground(ColorHighlight).
					Background(ColorAccent).
					Padding(0, 1)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Dialog styles
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHighlight).
				MarginBottom(1)

	DialogFooterStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				MarginTop(1)

	InfoBoxStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Background(ColorButtonBg).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Underline(true)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Background(ColorAccent).
			Padding(0, 1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorButtonBg).
				Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)
)

// Menu styles
var (
	MenuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	MenuItemSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected).
				Bold(true).
				Padding(0, 1)
)

// Commit success styles
var (
	StatBoxStyle = lipgloss.NewStyle().
			Background(ColorStatBoxBg).
			Padding(0, 2).
			Width(16)

	StatNumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Background(ColorStatBoxBg)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Background(ColorStatBoxBg)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Toast style
var ToastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorSuccess).
	Foreground(ColorHighlight).
	Padding(0, 1)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// ChangeStyle returns the style for a dirty file of the given kind
func ChangeStyle(kind domain.ChangeKind) lipgloss.Style {
	switch kind {
	case domain.ChangeAdded:
		return lipgloss.NewStyle().Foreground(ColorAdded)
	case domain.ChangeDeleted:
		return lipgloss.NewStyle().Foreground(ColorDeleted)
	default:
		return lipgloss.NewStyle().Foreground(ColorModified)
	}
}
