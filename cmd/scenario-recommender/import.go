package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/ingest"
	"github.com/justestif/go-scenario-recommender/internal/logging"
)

func newImportCmd(c *cli) *cobra.Command {
	var (
		path      string
		replace   bool
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a dataset file into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Database.URL == "" {
				return errors.New("import needs a database: set DATABASE_URL or database.url")
			}
			ctx := cmd.Context()

			database, err := db.New(ctx, c.cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer database.Close()

			if err := database.Migrate(ctx); err != nil {
				return err
			}

			importer := ingest.New(database.Songs(),
				ingest.WithReplace(replace),
				ingest.WithBatchSize(batchSize),
				ingest.WithSheet(c.cfg.Dataset.Sheet),
			)

			result, err := importer.ImportFile(ctx, path)
			if err != nil {
				return err
			}

			total, err := database.Songs().Count(ctx)
			if err != nil {
				return err
			}

			logging.Info().
				Str("path", result.Path).
				Int("rows", result.Rows).
				Int("imported", result.Imported).
				Int("duplicates", result.Duplicates).
				Int("total", total).
				Msg("import finished")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d songs from %s (%d rows, %d duplicates, %d stored)\n",
				result.Imported, result.Path, result.Rows, result.Duplicates, total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "dataset file (.xlsx or .csv)")
	cmd.Flags().BoolVar(&replace, "replace", false, "delete existing songs before importing")
	cmd.Flags().IntVar(&batchSize, "batch-size", ingest.DefaultBatchSize, "rows per upsert batch")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
