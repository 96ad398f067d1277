package app

import (
	"gator/domain"
	"regexp"
	"time"
)

var intervalPattern = regexp.MustCompile(`^\d+(ms|s|m|h)$`)

// ParseInterval accepts a whole number followed by one unit: ms, s, m or h.
func ParseInterval(s string) (time.Duration, error) {
	if !intervalPattern.MatchString(s) {
		return 0, &domain.ConfigError{Key: "interval", Value: s, Reason: "want a number followed by ms, s, m or h (e.g. 1s, 5m, 2h)"}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &domain.ConfigError{Key: "interval", Value: s, Reason: err.Error()}
	}
	if d <= 0 {
		return 0, &domain.ConfigError{Key: "interval", Value: s, Reason: "must be greater than zero"}
	}
	return d, nil
}
