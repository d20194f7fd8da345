package tags

import (
	"context"
	"fmt"
	"time"

	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/lastfm"
	"github.com/justestif/go-scenario-recommender/internal/logging"
)

// DefaultCacheTTL is the duration after which cached tags are considered stale.
const DefaultCacheTTL = 30 * 24 * time.Hour // 30 days

// TagStore is the subset of db.TagRepository used for caching.
type TagStore interface {
	GetForSongs(ctx context.Context, songIDs []string) (map[string][]db.SongTag, error)
	UpsertBatch(ctx context.Context, tags []db.SongTag) error
}

// CachedTagFetcher implements BatchFetcher with database persistence.
// It checks the database cache first, then falls back to the Last.fm
// service for misses and stale entries, persisting new results.
type CachedTagFetcher struct {
	store   TagStore
	service *Service
	ttl     time.Duration
	now     func() time.Time
}

// NewCachedTagFetcher wraps the tag service with PostgreSQL persistence.
// A ttl <= 0 uses DefaultCacheTTL.
func NewCachedTagFetcher(store TagStore, service *Service, ttl time.Duration) *CachedTagFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedTagFetcher{
		store:   store,
		service: service,
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetTagsForSongs fetches tags for multiple songs with caching.
// Fetch failures for individual songs are logged and leave the song out of
// the result; only a cache read failure fails the batch.
func (c *CachedTagFetcher) GetTagsForSongs(ctx context.Context, songs []Song) (map[string][]lastfm.Tag, error) {
	if len(songs) == 0 {
		return make(map[string][]lastfm.Tag), nil
	}

	songIDs := make([]string, len(songs))
	songByID := make(map[string]Song, len(songs))
	for i, s := range songs {
		songIDs[i] = s.ID
		songByID[s.ID] = s
	}

	cached, err := c.store.GetForSongs(ctx, songIDs)
	if err != nil {
		return nil, fmt.Errorf("getting cached tags: %w", err)
	}

	result := make(map[string][]lastfm.Tag, len(songs))
	var needsFetch []Song
	staleThreshold := c.now().Add(-c.ttl)

	for _, id := range songIDs {
		cachedTags, found := cached[id]
		if !found || len(cachedTags) == 0 || cachedTags[0].FetchedAt.Before(staleThreshold) {
			needsFetch = append(needsFetch, songByID[id])
			continue
		}
		result[id] = dbTagsToLastfmTags(cachedTags)
	}

	if len(needsFetch) > 0 {
		fetched, err := c.fetchAndPersist(ctx, needsFetch)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("songs", len(needsFetch)).Msg("tag fetch incomplete")
		}
		for id, tags := range fetched {
			result[id] = tags
		}
	}

	return result, nil
}

// fetchAndPersist fetches tags from Last.fm and persists them to the database.
func (c *CachedTagFetcher) fetchAndPersist(ctx context.Context, songs []Song) (map[string][]lastfm.Tag, error) {
	results, fetchErr := c.service.FetchTagsForSongs(ctx, songs)

	fetched := make(map[string][]lastfm.Tag, len(results))
	var dbTags []db.SongTag
	now := c.now()

	for _, r := range results {
		if r.Error != nil || len(r.Tags) == 0 {
			continue
		}
		fetched[r.SongID] = r.Tags
		for _, tag := range r.Tags {
			dbTags = append(dbTags, db.SongTag{
				SongID:    r.SongID,
				TagName:   tag.Name,
				TagCount:  tag.Count,
				Source:    string(r.Source),
				FetchedAt: now,
			})
		}
	}

	if len(dbTags) > 0 {
		if err := c.store.UpsertBatch(ctx, dbTags); err != nil {
			return fetched, fmt.Errorf("persisting tags: %w", err)
		}
	}

	return fetched, fetchErr
}

// dbTagsToLastfmTags converts database SongTag slice to lastfm.Tag slice.
func dbTagsToLastfmTags(dbTags []db.SongTag) []lastfm.Tag {
	tags := make([]lastfm.Tag, len(dbTags))
	for i, t := range dbTags {
		tags[i] = lastfm.Tag{
			Name:  t.TagName,
			Count: t.TagCount,
		}
	}
	return tags
}
