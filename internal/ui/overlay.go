package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/renato0307/gitlink/internal/theme"
)

// Dim style for background when a modal is shown
var dimStyle = lipgloss.NewStyle().Foreground(theme.ColorDimmed)

// compositeOverlay renders a modal centered on top of a dimmed background.
func compositeOverlay(background, overlay string, width, height int) string {
	overlayWidth := lipgloss.Width(overlay)
	overlayHeight := lipgloss.Height(overlay)
	x := (width - overlayWidth) / 2
	y := (height - overlayHeight) / 2
	return placeOverlay(background, overlay, width, height, x, y, true)
}

// placeOverlay draws overlay over background with its top-left corner at (x, y).
// Background text left and right of the overlay stays visible. Rows the overlay
// covers lose their background styling. With dim set every background row is dimmed,
// which is how modals are shown; menus and toasts leave the background alone.
func placeOverlay(background, overlay string, width, height, x, y int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")

	// Ensure background has enough lines to fill the screen
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	if dim {
		for i := range bgLines {
			bgLines[i] = dimStyle.Render(padRight(ansi.Strip(bgLines[i]), width))
		}
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i, line := range overlayLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		plain := ansi.Strip(bgLines[row])
		if dim {
			plain = padRight(plain, width)
		}
		left := padRight(runewidth.Truncate(plain, x, ""), x)
		right := skipColumns(plain, x+lipgloss.Width(line))
		if dim {
			left = dimStyle.Render(left)
			right = dimStyle.Render(right)
		}
		bgLines[row] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

// padRight pads s with spaces up to width display columns
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// skipColumns drops the first n display columns of s
func skipColumns(s string, n int) string {
	col := 0
	for i, r := range s {
		if col >= n {
			return s[i:]
		}
		col += runewidth.RuneWidth(r)
	}
	return ""
}
