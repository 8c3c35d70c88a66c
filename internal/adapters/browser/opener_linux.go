//go:build linux

package browser

import "os/exec"

var defaultBrowsers = []string{
	"xdg-open",
	"x-www-browser",
	"sensible-browser",
	"firefox",
}

func findPlatformBrowser(target string) (string, []string) {
	for _, b := range defaultBrowsers {
		if _, err := exec.LookPath(b); err == nil {
			return b, []string{target}
		}
	}
	return "", nil
}
