package rss

import (
	"context"
	"gator/domain"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUserAgent = "gator"
	DefaultTimeout   = 30 * time.Second

	// maxBodySize caps how much of a feed body is read.
	maxBodySize = 10 << 20
)

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Fetch downloads feedURL once and parses it. Transport failures and
// non-2xx answers come back as *domain.TransportError, unusable bodies as
// domain.ErrMalformedFeed.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (domain.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return domain.Channel{}, &domain.TransportError{URL: feedURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Channel{}, &domain.TransportError{URL: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Channel{}, &domain.TransportError{URL: feedURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return Parse(io.LimitReader(resp.Body, maxBodySize))
}
