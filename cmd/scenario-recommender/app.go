package main

import (
	"context"
	"fmt"

	"github.com/justestif/go-scenario-recommender/internal/clustering"
	"github.com/justestif/go-scenario-recommender/internal/config"
	"github.com/justestif/go-scenario-recommender/internal/dataset"
	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/lastfm"
	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/playlists"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/spotify"
	"github.com/justestif/go-scenario-recommender/internal/tags"
)

// app wires configured components into a playlist service.
type app struct {
	cfg     *config.Config
	db      *db.DB // nil unless a database URL is configured
	service *playlists.Service
}

// newApp builds the service described by cfg. The database is opened when
// songs come from Postgres or when a URL is set for the tag cache.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Database.URL != "" {
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			if cfg.Source == config.SourcePostgres {
				return nil, fmt.Errorf("connecting to database: %w", err)
			}
			logging.Warn().Err(err).Msg("database unavailable, tag cache disabled")
		} else {
			if err := database.Migrate(ctx); err != nil {
				database.Close()
				return nil, fmt.Errorf("migrating database: %w", err)
			}
			a.db = database
		}
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		a.Close()
		return nil, err
	}
	lexicon, err := cfg.Lexicon()
	if err != nil {
		a.Close()
		return nil, err
	}
	extractor := emotion.NewExtractor(lexicon, emotion.WithCountPolicy(cfg.CountPolicy()))
	recommender := recommend.New(extractor, catalog)

	var source playlists.SongSource
	if cfg.Source == config.SourcePostgres {
		source = playlists.NewStoreSource(a.db.Songs())
	} else {
		source = playlists.NewFileSource(cfg.Dataset.Paths, dataset.Options{Sheet: cfg.Dataset.Sheet})
	}

	opts := []playlists.Option{
		playlists.WithStrictScenarios(cfg.Recommend.StrictScenarios),
		playlists.WithClustering(clustering.Config{
			NumClusters:    cfg.Clustering.NumClusters,
			MinClusterSize: cfg.Clustering.MinClusterSize,
		}),
	}

	if cfg.LastFM.Enabled {
		fetcher, err := a.tagFetcher()
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, playlists.WithTagFetcher(fetcher))
	}

	if cfg.Spotify.Enabled {
		client, err := spotify.NewWithCredentials(ctx, spotify.Config{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, playlists.WithLinker(client))
	}

	a.service = playlists.New(source, recommender, opts...)

	logging.Debug().
		Str("source", cfg.Source).
		Bool("lastfm", cfg.LastFM.Enabled).
		Bool("spotify", cfg.Spotify.Enabled).
		Bool("database", a.db != nil).
		Int("scenarios", catalog.Len()).
		Msg("service configured")

	return a, nil
}

func (a *app) tagFetcher() (tags.BatchFetcher, error) {
	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:            a.cfg.LastFM.APIKey,
		RequestsPerSecond: a.cfg.LastFM.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Last.fm client: %w", err)
	}

	svc := tags.NewService(client, tags.WithConcurrency(a.cfg.LastFM.Concurrency))
	if a.db == nil {
		return svc, nil
	}
	return tags.NewCachedTagFetcher(a.db.Tags(), svc, a.cfg.LastFM.CacheTTL), nil
}

// Close releases the database pool, if any.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
