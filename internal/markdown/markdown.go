package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Style selects the glamour palette
type Style int

const (
	// StyleASCII renders without colors, for logs and non-terminal output
	StyleASCII Style = iota
	// StyleDark renders with the dark terminal palette
	StyleDark
)

type rendererKey struct {
	style Style
	width int
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

// Render formats a commit description (markdown bullets and paragraphs) for the terminal.
// The input is returned as-is when glamour fails.
func Render(style Style, width int, input string) string {
	value := strings.TrimRight(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	renderer := markdownRenderer(style, width)
	if renderer == nil {
		return value
	}
	formatted, err := renderer.Render(value)
	if err != nil {
		return value
	}
	return strings.Trim(formatted, "\n")
}

func markdownRenderer(style Style, width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := rendererKey{style: style, width: width}
	if cached, ok := renderers[key]; ok {
		return cached
	}

	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}

func styleConfig(style Style) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	switch style {
	case StyleDark:
		cfg = styles.DarkStyleConfig
	default:
		cfg = styles.ASCIIStyleConfig
		cfg.Item.BlockPrefix = "- "
	}
	// the dialog draws its own frame, so drop the document margin
	noMargin := uint(0)
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	return cfg
}
