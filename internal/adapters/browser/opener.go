package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// Opener implements ports.URLOpener
type Opener struct {
	// Browser is the command given on the CLI; it takes precedence over the environment
	Browser string
}

var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates a new browser opener
func NewOpener(browser string) *Opener {
	return &Opener{Browser: browser}
}

// Open opens the URL in a browser
// Priority: CLI flag → $GITLINK_BROWSER → $BROWSER → platform default
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	name, args := findBrowser(o.Browser, u.String())
	if name == "" {
		return fmt.Errorf("no browser found. Set --browser, $GITLINK_BROWSER or $BROWSER")
	}

	logging.Logger.Info("Opening browser", "browser", name, "url", u.String())

	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Logger.Warn("Browser exited with error", "error", err, "browser", name)
		}
	}()

	return nil
}

func findBrowser(cliBrowser, target string) (string, []string) {
	if cliBrowser != "" {
		return cliBrowser, []string{target}
	}

	if b := os.Getenv("GITLINK_BROWSER"); b != "" {
		return b, []string{target}
	}

	// $BROWSER may hold a colon separated list; the first entry wins
	if b := os.Getenv("BROWSER"); b != "" {
		return strings.Split(b, ":")[0], []string{target}
	}

	return findPlatformBrowser(target)
}
