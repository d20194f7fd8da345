// Package config loads application configuration from defaults, an optional
// YAML file, a .env file and environment variables, in increasing priority.
package config

import (
	"fmt"
	"time"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// Song sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the complete application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Dataset    DatasetConfig    `koanf:"dataset"`
	Source     string           `koanf:"source" validate:"oneof=file postgres"`
	Database   DatabaseConfig   `koanf:"database"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Scenarios  []ScenarioConfig `koanf:"scenarios" validate:"dive"`
	Lexicon    LexiconConfig    `koanf:"lexicon"`
	LastFM     LastFMConfig     `koanf:"lastfm"`
	Spotify    SpotifyConfig    `koanf:"spotify"`
	Clustering ClusteringConfig `koanf:"clustering"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatasetConfig lists the spreadsheet files searched for songs, in order.
type DatasetConfig struct {
	Paths []string `koanf:"paths"`
	Sheet string   `koanf:"sheet"` // empty selects the first sheet
}

// DatabaseConfig configures the PostgreSQL song store.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RecommendConfig holds recommendation defaults.
type RecommendConfig struct {
	TopN         int    `koanf:"top_n" validate:"min=1,max=100"`
	MaxPerArtist int    `koanf:"max_per_artist" validate:"min=1,max=50"`
	CountPolicy  string `koanf:"count_policy" validate:"oneof=occurrences distinct"`

	// StrictScenarios rejects unknown scenario keys instead of ranking them
	// against the uniform vector.
	StrictScenarios bool `koanf:"strict_scenarios"`
}

// ScenarioConfig describes one custom listening scenario.
type ScenarioConfig struct {
	Key    string    `koanf:"key" validate:"required"`
	Name   string    `koanf:"name"`
	Vector []float64 `koanf:"vector" validate:"len=4,dive,gte=0"`
}

// LexiconConfig overrides the keyword list of any emotion dimension.
// An empty list keeps the built-in words for that dimension.
type LexiconConfig struct {
	Happy []string `koanf:"happy"`
	Angry []string `koanf:"angry"`
	Sad   []string `koanf:"sad"`
	Calm  []string `koanf:"calm"`
}

// LastFMConfig configures tag enrichment for songs without lyrics.
type LastFMConfig struct {
	Enabled           bool          `koanf:"enabled"`
	APIKey            string        `koanf:"api_key"`
	Concurrency       int           `koanf:"concurrency" validate:"min=1,max=50"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	CacheTTL          time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

// SpotifyConfig configures track link resolution.
type SpotifyConfig struct {
	Enabled      bool   `koanf:"enabled"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// ClusteringConfig configures mood detection.
type ClusteringConfig struct {
	NumClusters    int `koanf:"num_clusters" validate:"min=1,max=7"`
	MinClusterSize int `koanf:"min_cluster_size" validate:"min=1"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults applied before file and env.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			Paths: []string{
				"lyrics_with_spotify_meta_merged.xlsx",
				"new_songs_for_human_labeling.xlsx",
			},
		},
		Source: SourceFile,
		Recommend: RecommendConfig{
			TopN:            15,
			MaxPerArtist:    2,
			CountPolicy:     "occurrences",
			StrictScenarios: true,
		},
		LastFM: LastFMConfig{
			Enabled:           false,
			Concurrency:       5,
			RequestsPerSecond: 5,
			CacheTTL:          30 * 24 * time.Hour,
		},
		Clustering: ClusteringConfig{
			NumClusters:    4,
			MinClusterSize: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Catalog builds the scenario catalog. Without custom scenarios the
// built-in catalog is returned.
func (c *Config) Catalog() (*scenario.Catalog, error) {
	if len(c.Scenarios) == 0 {
		return scenario.DefaultCatalog(), nil
	}

	entries := make([]scenario.Scenario, 0, len(c.Scenarios))
	for _, sc := range c.Scenarios {
		var v emotion.Vector
		copy(v[:], sc.Vector)
		entries = append(entries, scenario.Scenario{Key: sc.Key, Name: sc.Name, Vector: v})
	}

	catalog, err := scenario.NewCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("building scenario catalog: %w", err)
	}
	return catalog, nil
}

// Lexicon builds the keyword lexicon from the built-in words and any
// configured overrides.
func (c *Config) Lexicon() (*emotion.Lexicon, error) {
	overrides := [emotion.Dimensions][]string{c.Lexicon.Happy, c.Lexicon.Angry, c.Lexicon.Sad, c.Lexicon.Calm}

	custom := false
	var lists [emotion.Dimensions][]string
	for i, words := range overrides {
		if len(words) == 0 {
			lists[i] = emotion.DefaultLexicon().Words(emotion.Dimension(i))
			continue
		}
		lists[i] = words
		custom = true
	}
	if !custom {
		return emotion.DefaultLexicon(), nil
	}

	lexicon, err := emotion.NewLexicon(lists[emotion.Happy], lists[emotion.Angry], lists[emotion.Sad], lists[emotion.Calm])
	if err != nil {
		return nil, fmt.Errorf("building lexicon: %w", err)
	}
	return lexicon, nil
}

// CountPolicy returns the configured keyword counting policy.
func (c *Config) CountPolicy() emotion.CountPolicy {
	return emotion.ParseCountPolicy(c.Recommend.CountPolicy)
}
