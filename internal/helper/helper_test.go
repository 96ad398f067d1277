package helper

import (
	"bytes"
	"gator/domain"
	"strings"
	"testing"
	"time"
)

func TestValidateFeedURL(t *testing.T) {
	for _, u := range []string{"https://example.com/rss", "http://localhost:8080/feed.xml"} {
		if err := ValidateFeedURL(u); err != nil {
			t.Errorf("ValidateFeedURL(%q) = %v", u, err)
		}
	}
	for _, u := range []string{"", "example.com/rss", "ftp://example.com/rss", "https:///rss", "not a url"} {
		if err := ValidateFeedURL(u); err == nil {
			t.Errorf("ValidateFeedURL(%q) accepted", u)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("a  b\n\tc", 10); got != "a b c" {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
	if got := Truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Fatalf("got %q", got)
	}
}

func TestAgo(t *testing.T) {
	if got := Ago(nil, "never"); got != "never" {
		t.Fatalf("got %q", got)
	}
	past := time.Now().Add(-3 * time.Hour)
	if got := Ago(&past, "never"); got != "3 hours ago" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintFeeds(t *testing.T) {
	var buf bytes.Buffer
	PrintFeeds(&buf, []domain.FeedWithOwner{{
		Feed:      domain.Feed{Name: "Blog", URL: "https://example.com/rss"},
		OwnerName: "alice",
	}})
	out := buf.String()
	for _, want := range []string{"NAME", "Blog", "https://example.com/rss", "alice", "never"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPosts(t *testing.T) {
	desc := "first line\nsecond line"
	var buf bytes.Buffer
	PrintPosts(&buf, []domain.PostWithFeed{{
		Post:     domain.Post{Title: "Hello", URL: "https://example.com/hello", Description: &desc},
		FeedName: "Blog",
	}})
	out := buf.String()
	for _, want := range []string{"undated from Blog", "--- Hello ---", "first line second line", "Link: https://example.com/hello"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
