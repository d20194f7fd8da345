package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/lastfm"
	"github.com/justestif/go-scenario-recommender/internal/tags"
)

func newRefreshTagsCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "refresh-tags",
		Short: "Re-fetch cached Last.fm tags older than lastfm.cache_ttl",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cfg.Database.URL == "" {
				return errors.New("refresh-tags needs a database: set DATABASE_URL or database.url")
			}
			ctx := cmd.Context()

			client, err := lastfm.NewClient(lastfm.Config{
				APIKey:            cfg.LastFM.APIKey,
				RequestsPerSecond: cfg.LastFM.RequestsPerSecond,
			})
			if err != nil {
				return err
			}

			database, err := db.New(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer database.Close()

			svc := tags.NewService(client, tags.WithConcurrency(cfg.LastFM.Concurrency))
			result, err := tags.Refresh(ctx, database.Tags(), database.Songs(), svc, cfg.LastFM.CacheTTL, limit)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d of %d stale songs (%d skipped, %d failed)\n",
				result.Refreshed, result.Stale, result.Skipped, result.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 200, "maximum songs to refresh")
	return cmd
}
