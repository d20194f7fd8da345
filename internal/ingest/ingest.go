// Package ingest imports dataset files into the PostgreSQL song store.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/justestif/go-scenario-recommender/internal/dataset"
	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// DefaultBatchSize is the number of songs written per upsert.
const DefaultBatchSize = 500

// SongStore is the subset of db.SongRepository the importer needs.
type SongStore interface {
	UpsertBatch(ctx context.Context, songs []db.Song) error
	DeleteAll(ctx context.Context) error
}

// Importer loads dataset files into a SongStore.
type Importer struct {
	store     SongStore
	batchSize int
	replace   bool
	sheet     string
}

// Option configures an Importer.
type Option func(*Importer)

// WithBatchSize sets the number of songs per upsert.
func WithBatchSize(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

// WithReplace deletes existing songs before importing.
func WithReplace(replace bool) Option {
	return func(i *Importer) {
		i.replace = replace
	}
}

// WithSheet selects the .xlsx sheet to read.
func WithSheet(sheet string) Option {
	return func(i *Importer) {
		i.sheet = sheet
	}
}

// New creates an Importer.
func New(store SongStore, opts ...Option) *Importer {
	i := &Importer{
		store:     store,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Result describes a finished import.
type Result struct {
	Path       string
	Columns    dataset.Columns
	Rows       int // Data rows read from the file
	Imported   int // Distinct songs written
	Duplicates int // Rows skipped because an earlier row had the same artist and title
	ImportedAt time.Time
}

// ImportFile reads a dataset file and upserts its songs.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	table, err := dataset.Load(path, dataset.Options{Sheet: i.sheet})
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	cols := dataset.InferColumns(table)
	result, err := i.ImportSongs(ctx, dataset.Songs(table, cols), path)
	if err != nil {
		return nil, err
	}
	result.Columns = cols
	return result, nil
}

// ImportSongs upserts songs in order. Rows sharing an ID with an earlier row
// are skipped so one batch never updates the same row twice.
func (i *Importer) ImportSongs(ctx context.Context, songs []recommend.Song, source string) (*Result, error) {
	if i.replace {
		if err := i.store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clearing songs: %w", err)
		}
	}

	seen := make(map[string]bool, len(songs))
	dbSongs := make([]db.Song, 0, len(songs))
	for _, s := range songs {
		row := db.NewSong(s, source, len(dbSongs))
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		dbSongs = append(dbSongs, row)
	}

	for start := 0; start < len(dbSongs); start += i.batchSize {
		end := min(start+i.batchSize, len(dbSongs))
		if err := i.store.UpsertBatch(ctx, dbSongs[start:end]); err != nil {
			return nil, fmt.Errorf("upserting songs %d-%d: %w", start, end-1, err)
		}
	}

	result := &Result{
		Path:       source,
		Rows:       len(songs),
		Imported:   len(dbSongs),
		Duplicates: len(songs) - len(dbSongs),
		ImportedAt: time.Now(),
	}

	logging.Ctx(ctx).Info().
		Str("path", source).
		Int("rows", result.Rows).
		Int("imported", result.Imported).
		Int("duplicates", result.Duplicates).
		Msg("dataset imported")

	return result, nil
}
