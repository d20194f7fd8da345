// Package tags fetches Last.fm tags for songs without lyrics and turns them
// into text the emotion extractor can score.
package tags

import (
	"context"
	"sync"

	"github.com/justestif/go-scenario-recommender/internal/lastfm"
	"github.com/justestif/go-scenario-recommender/internal/metrics"
)

// TagSource indicates where the tags came from.
type TagSource string

const (
	// SourceTrack means tags came from track.getTopTags (or the client's artist fallback).
	SourceTrack TagSource = "track"
	// SourceCache means tags came from the database cache.
	SourceCache TagSource = "cache"
	// SourceNone means no tags were found.
	SourceNone TagSource = "none"
)

// Default concurrency for batch processing.
const DefaultConcurrency = 5

// Song represents the minimal song info needed for tag lookup.
type Song struct {
	ID     string
	Title  string
	Artist string
}

// SongTags holds the tags fetched for a song.
type SongTags struct {
	SongID string
	Tags   []lastfm.Tag
	Source TagSource
	Error  error // Non-nil if fetching failed
}

// TagFetcher abstracts the Last.fm client for testing.
type TagFetcher interface {
	GetTags(ctx context.Context, artist, track string) ([]lastfm.Tag, error)
}

// BatchFetcher returns tags keyed by song ID. Songs without tags may be
// absent from the map.
type BatchFetcher interface {
	GetTagsForSongs(ctx context.Context, songs []Song) (map[string][]lastfm.Tag, error)
}

// Service fetches tags from Last.fm with a bounded worker pool.
type Service struct {
	fetcher     TagFetcher
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets the number of concurrent tag fetch operations.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a new tag service.
func NewService(fetcher TagFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchTagsForSongs fetches tags for multiple songs concurrently.
// Results are returned in the same order as input songs.
// Individual fetch errors are captured in SongTags.Error rather than failing the batch.
func (s *Service) FetchTagsForSongs(ctx context.Context, songs []Song) ([]SongTags, error) {
	if len(songs) == 0 {
		return []SongTags{}, nil
	}

	results := make([]SongTags, len(songs))

	type workItem struct {
		index int
		song  Song
	}
	workCh := make(chan workItem, len(songs))

	for i, song := range songs {
		workCh <- workItem{index: i, song: song}
	}
	close(workCh)

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				select {
				case <-ctx.Done():
					results[work.index] = SongTags{
						SongID: work.song.ID,
						Tags:   []lastfm.Tag{},
						Source: SourceNone,
						Error:  ctx.Err(),
					}
					continue
				default:
				}

				tags, err := s.fetcher.GetTags(ctx, work.song.Artist, work.song.Title)
				result := SongTags{
					SongID: work.song.ID,
					Tags:   tags,
					Error:  err,
				}

				switch {
				case err != nil:
					result.Source = SourceNone
					result.Tags = []lastfm.Tag{}
					metrics.LastFMLookups.WithLabelValues("error").Inc()
				case len(tags) == 0:
					result.Source = SourceNone
					metrics.LastFMLookups.WithLabelValues("miss").Inc()
				default:
					result.Source = SourceTrack
					metrics.LastFMLookups.WithLabelValues("hit").Inc()
				}

				results[work.index] = result
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return results, ctx.Err()
	}

	return results, nil
}

// GetTagsForSongs implements BatchFetcher. Songs whose lookup failed or
// returned nothing are left out of the map.
func (s *Service) GetTagsForSongs(ctx context.Context, songs []Song) (map[string][]lastfm.Tag, error) {
	results, err := s.FetchTagsForSongs(ctx, songs)
	out := make(map[string][]lastfm.Tag, len(results))
	for _, r := range results {
		if r.Error == nil && len(r.Tags) > 0 {
			out[r.SongID] = r.Tags
		}
	}
	return out, err
}
