package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation errors for settings that depend on each other.
var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required when SOURCE=postgres")
	ErrMissingLastFMKey   = errors.New("LASTFM_API_KEY is required when lastfm is enabled")
	ErrMissingSpotifyAuth = errors.New("SPOTIFY_ID and SPOTIFY_SECRET are required when spotify is enabled")
	ErrNoDatasetPaths     = errors.New("at least one dataset path is required when SOURCE=file")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(verrs)
		}
		return err
	}

	switch c.Source {
	case SourcePostgres:
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	case SourceFile:
		if len(c.Dataset.Paths) == 0 {
			return ErrNoDatasetPaths
		}
	}

	if c.LastFM.Enabled && c.LastFM.APIKey == "" {
		return ErrMissingLastFMKey
	}
	if c.Spotify.Enabled && (c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "") {
		return ErrMissingSpotifyAuth
	}

	if _, err := c.Catalog(); err != nil {
		return err
	}
	if _, err := c.Lexicon(); err != nil {
		return err
	}

	return nil
}

func formatValidationErrors(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
