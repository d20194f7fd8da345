package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/scenario-recommender/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment when present.
var DotEnvFile = ".env"

// envMappings maps lowercased environment variable names to config paths.
var envMappings = map[string]string{
	"server_addr":             "server.addr",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	"dataset_paths": "dataset.paths",
	"dataset_sheet": "dataset.sheet",
	"source":        "source",
	"database_url":  "database.url",

	"recommend_top_n":            "recommend.top_n",
	"recommend_max_per_artist":   "recommend.max_per_artist",
	"recommend_count_policy":     "recommend.count_policy",
	"recommend_strict_scenarios": "recommend.strict_scenarios",

	"lexicon_happy": "lexicon.happy",
	"lexicon_angry": "lexicon.angry",
	"lexicon_sad":   "lexicon.sad",
	"lexicon_calm":  "lexicon.calm",

	"lastfm_enabled":             "lastfm.enabled",
	"lastfm_api_key":             "lastfm.api_key",
	"lastfm_concurrency":         "lastfm.concurrency",
	"lastfm_requests_per_second": "lastfm.requests_per_second",
	"lastfm_cache_ttl":           "lastfm.cache_ttl",

	"spotify_enabled": "spotify.enabled",
	"spotify_id":      "spotify.client_id",
	"spotify_secret":  "spotify.client_secret",

	"clustering_num_clusters":     "clustering.num_clusters",
	"clustering_min_cluster_size": "clustering.min_cluster_size",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"dataset.paths",
	"lexicon.happy",
	"lexicon.angry",
	"lexicon.sad",
	"lexicon.calm",
}

// Load builds the configuration. An explicit path takes precedence over
// CONFIG_PATH and DefaultConfigPaths; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("processing slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps an environment variable to a config path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		var parts []string
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("setting %s: %w", path, err)
		}
	}
	return nil
}
