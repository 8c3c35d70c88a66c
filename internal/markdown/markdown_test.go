package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(StyleASCII, 40, ""))
	assert.Equal(t, "", Render(StyleASCII, 40, "  \n\n"))
}

func TestRenderBullets(t *testing.T) {
	input := "- Updated homepage layout\n- Added footer component"

	out := Render(StyleASCII, 60, input)

	assert.Contains(t, out, "- Updated homepage layout")
	assert.Contains(t, out, "- Added footer component")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRenderWraps(t *testing.T) {
	input := "Refined the responsive behaviour of the navigation header across breakpoints"

	out := Render(StyleASCII, 20, input)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20, line)
	}
	assert.Greater(t, strings.Count(out, "\n"), 1)
}

func TestRenderCachesPerStyleAndWidth(t *testing.T) {
	first := markdownRenderer(StyleASCII, 33)
	second := markdownRenderer(StyleASCII, 33)
	other := markdownRenderer(StyleDark, 33)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}
