package playlists

import (
	"context"
	"fmt"

	"github.com/justestif/go-scenario-recommender/internal/dataset"
	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/metrics"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// SongSource provides the songs a request ranks.
type SongSource interface {
	Songs(ctx context.Context) ([]recommend.Song, error)
}

// FileSource reads songs from the first dataset file that exists.
// The file is re-read on every call so edits are picked up without a restart.
type FileSource struct {
	paths []string
	opts  dataset.Options
}

// NewFileSource creates a source over the given candidate paths.
func NewFileSource(paths []string, opts dataset.Options) *FileSource {
	return &FileSource{paths: paths, opts: opts}
}

// Songs implements SongSource.
func (s *FileSource) Songs(ctx context.Context) ([]recommend.Song, error) {
	songs, path, err := dataset.LoadSongs(s.paths, s.opts)
	if err != nil {
		return nil, err
	}
	metrics.DatasetRows.Set(float64(len(songs)))
	logging.Ctx(ctx).Debug().Str("path", path).Int("songs", len(songs)).Msg("dataset loaded")
	return songs, nil
}

// SongLister is the subset of db.SongRepository used by StoreSource.
type SongLister interface {
	List(ctx context.Context) ([]db.Song, error)
}

// StoreSource reads songs from PostgreSQL in import order.
type StoreSource struct {
	store SongLister
}

// NewStoreSource creates a source backed by the song store.
func NewStoreSource(store SongLister) *StoreSource {
	return &StoreSource{store: store}
}

// Songs implements SongSource.
func (s *StoreSource) Songs(ctx context.Context) ([]recommend.Song, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	songs := make([]recommend.Song, len(rows))
	for i, r := range rows {
		songs[i] = r.Recommend()
	}
	metrics.DatasetRows.Set(float64(len(songs)))
	return songs, nil
}
