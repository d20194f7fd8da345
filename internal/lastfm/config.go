// Package lastfm provides Last.fm API integration for fetching track and artist tags.
package lastfm

import (
	"errors"
	"time"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("missing Last.fm API key (LASTFM_API_KEY)")

// Default client settings.
const (
	DefaultRequestsPerSecond = 5
	DefaultTimeout           = 10 * time.Second
)

// Config holds Last.fm API configuration.
type Config struct {
	APIKey            string
	RequestsPerSecond float64 // Client-side rate limit; <= 0 uses DefaultRequestsPerSecond
	Timeout           time.Duration
}

// Validate reports ErrMissingAPIKey when the key is empty.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
