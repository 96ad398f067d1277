package helper

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateFeedURL checks that feedURL is an absolute http(s) URL with a host.
// It does not contact the server; unreachable feeds surface in the poll loop.
func ValidateFeedURL(feedURL string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(feedURL))
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid feed URL %q: missing host", feedURL)
	}
	return nil
}
