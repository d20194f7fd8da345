package tags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/logging"
)

// RefreshStore is the subset of db.TagRepository used by Refresh.
type RefreshStore interface {
	GetStale(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
	DeleteForSong(ctx context.Context, songID string) error
	UpsertBatch(ctx context.Context, tags []db.SongTag) error
}

// SongGetter is the subset of db.SongRepository used by Refresh.
type SongGetter interface {
	Get(ctx context.Context, id string) (*db.Song, error)
}

// RefreshResult summarizes a refresh run.
type RefreshResult struct {
	Stale     int // Songs with tags older than the TTL
	Refreshed int // Songs whose tags were replaced
	Skipped   int // Stale songs not in the song store, or without an artist
	Failed    int // Songs whose Last.fm lookup failed; their old tags are kept
}

// Refresh re-fetches tags cached longer than ttl, up to limit songs.
// Old tags are replaced only when the new lookup succeeds.
func Refresh(ctx context.Context, store RefreshStore, songs SongGetter, svc *Service, ttl time.Duration, limit int) (*RefreshResult, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	ids, err := store.GetStale(ctx, time.Now().Add(-ttl), limit)
	if err != nil {
		return nil, fmt.Errorf("finding stale tags: %w", err)
	}

	result := &RefreshResult{Stale: len(ids)}
	lookups := make([]Song, 0, len(ids))
	for _, id := range ids {
		song, err := songs.Get(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading song %s: %w", id, err)
		}
		if song.Artist == nil || song.Title == nil {
			result.Skipped++
			continue
		}
		lookups = append(lookups, Song{ID: song.ID, Title: *song.Title, Artist: *song.Artist})
	}

	fetched, err := svc.FetchTagsForSongs(ctx, lookups)
	if err != nil {
		return nil, err
	}

	log := logging.With().Str("component", "tag-refresh").Logger()

	now := time.Now()
	var fresh []db.SongTag
	for _, r := range fetched {
		if r.Error != nil {
			log.Warn().Err(r.Error).Str("song_id", r.SongID).Msg("keeping old tags")
			result.Failed++
			continue
		}
		if err := store.DeleteForSong(ctx, r.SongID); err != nil {
			return nil, err
		}
		for _, tag := range r.Tags {
			fresh = append(fresh, db.SongTag{
				SongID:    r.SongID,
				TagName:   tag.Name,
				TagCount:  tag.Count,
				Source:    string(r.Source),
				FetchedAt: now,
			})
		}
		result.Refreshed++
	}

	if len(fresh) > 0 {
		if err := store.UpsertBatch(ctx, fresh); err != nil {
			return nil, fmt.Errorf("persisting tags: %w", err)
		}
	}

	log.Info().
		Int("stale", result.Stale).
		Int("refreshed", result.Refreshed).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("tag refresh finished")

	return result, nil
}
