//go:build darwin

package browser

func findPlatformBrowser(target string) (string, []string) {
	return "open", []string{target}
}
