package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced user, feed, follow or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when the store rejects a row on a unique constraint
	// (post or feed URL, user name, user/feed follow pair).
	ErrAlreadyExists = errors.New("already exists")
	// ErrMalformedFeed is returned when the feed body is not usable RSS.
	ErrMalformedFeed = errors.New("malformed feed")
)

// TransportError reports a failed feed retrieval: either the request never
// completed (Err set) or the server answered with a non-success status.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConfigError is a configuration problem detected before any work starts.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Key, e.Value, e.Reason)
}
