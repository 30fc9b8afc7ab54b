package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

const searchBase = "https://www.google.com/search"

// SearchURL builds the web search URL for a query.
func SearchURL(query string) string {
	return searchBase + "?q=" + url.QueryEscape(query)
}

// OpenSearch opens a web search for the query in the default browser.
func OpenSearch(query string) error {
	return Open(SearchURL(query))
}

// Open launches the default browser on rawURL. Only http and https
// URLs are accepted; anything else is rejected before a process is
// spawned.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	name, args := openArgs(runtime.GOOS, rawURL)
	return exec.Command(name, args...).Start()
}

// openArgs picks the platform launcher. Windows goes through rundll32
// rather than cmd /c start so the URL is never shell-interpreted.
func openArgs(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
