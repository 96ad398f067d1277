package rss

import (
	"context"
	"errors"
	"gator/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(scenarioFeed))
	}))
	defer srv.Close()

	ch, err := NewHTTPFetcher("", 0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
	if ch.Title != "T" || len(ch.Items) != 1 {
		t.Fatalf("channel = %+v", ch)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("test-agent", time.Second).Fetch(context.Background(), srv.URL)
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want *domain.TransportError", err)
	}
	if te.StatusCode != http.StatusInternalServerError || te.Status != "500 Internal Server Error" {
		t.Fatalf("transport error = %+v", te)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher("", 0).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrMalformedFeed) {
		t.Fatalf("got %v, want ErrMalformedFeed", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher("", time.Second).Fetch(context.Background(), url)
	var te *domain.TransportError
	if !errors.As(err, &te) || te.Err == nil {
		t.Fatalf("got %v, want transport error with cause", err)
	}
}
