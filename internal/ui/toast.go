package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/theme"
)

// maxToastWidth caps the toast message so it stays in the corner on wide terminals
const maxToastWidth = 60

// renderToast draws the notification box, or "" when nothing is visible
func renderToast(n domain.Notification, width int) string {
	if !n.Visible || n.Message == "" {
		return ""
	}
	// border, padding and the check mark take 6 columns
	limit := min(width-6, maxToastWidth)
	if limit < 1 {
		limit = 1
	}
	message := truncate.StringWithTail(n.Message, uint(limit), "…")
	return theme.ToastStyle.Render(theme.SuccessStyle.Render("✓") + " " + message)
}

// placeToast anchors the toast to the bottom-right corner of the screen
func placeToast(screen, toast string, width, height int) string {
	if toast == "" {
		return screen
	}
	x := width - lipgloss.Width(toast) - 1
	y := height - lipgloss.Height(toast) - 1
	return placeOverlay(screen, toast, width, height, x, y, false)
}
