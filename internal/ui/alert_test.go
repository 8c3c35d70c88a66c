package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/gitlink/internal/domain"
)

func TestFormatErrorForDisplay(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		width    int
		maxLines int
		suffix   string
	}{
		{"short message", "boom", 40, 1, "boom"},
		{"empty message", "", 40, 1, "unknown error"},
		{"wrapped", "the repository host could not be reached", 20, 2, ""},
		{"truncated", strings.Repeat("word ", 40), 20, 2, truncationMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorForDisplay(tt.message, tt.width)
			lines := strings.Split(out, "\n")

			assert.LessOrEqual(t, len(lines), tt.maxLines)
			assert.True(t, strings.HasPrefix(out, errorPrefix))
			if tt.suffix != "" {
				assert.True(t, strings.HasSuffix(out, tt.suffix), out)
			}
			for _, line := range lines {
				assert.LessOrEqual(t, len(line), tt.width, line)
			}
		})
	}
}

func TestFormatErrorForDisplayMinimumWidth(t *testing.T) {
	out := formatErrorForDisplay("a fairly long message that needs wrapping", 3)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
}

func TestRenderAlert(t *testing.T) {
	assert.Empty(t, renderAlert(nil, "[x]", 80))

	out := renderAlert(&domain.Alert{Kind: domain.KindPushRejected, Message: "push rejected"}, "[x]", 80)
	assert.Contains(t, out, "Error: push rejected")
	assert.Contains(t, out, "[x]")
}

func TestRenderToast(t *testing.T) {
	assert.Empty(t, renderToast(domain.Notification{}, 80))

	out := renderToast(domain.Notification{Visible: true, Message: strings.Repeat("a", 100)}, 80)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("a", maxToastWidth+1))
}
