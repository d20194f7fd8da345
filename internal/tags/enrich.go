package tags

import (
	"context"
	"fmt"

	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// Enrich fills in text for songs that have no lyrics, using their Last.fm
// tags. Songs without an artist are skipped. The input slice is not modified.
// Duplicate rows share one lookup.
// Returns the enriched copy and the number of songs that received text.
func Enrich(ctx context.Context, fetcher BatchFetcher, songs []recommend.Song) ([]recommend.Song, int, error) {
	out := make([]recommend.Song, len(songs))
	copy(out, songs)

	var lookups []Song
	queued := make(map[string]bool)
	for _, s := range songs {
		if s.Text != nil || s.Artist == nil || queued[s.ID] {
			continue
		}
		queued[s.ID] = true
		lookups = append(lookups, Song{
			ID:     s.ID,
			Title:  s.DisplayTitle(),
			Artist: *s.Artist,
		})
	}
	if len(lookups) == 0 {
		return out, 0, nil
	}

	found, err := fetcher.GetTagsForSongs(ctx, lookups)
	if err != nil && len(found) == 0 {
		return out, 0, fmt.Errorf("fetching tags: %w", err)
	}

	enriched := 0
	for i := range out {
		if out[i].Text != nil {
			continue
		}
		tags, ok := found[out[i].ID]
		if !ok {
			continue
		}
		if text := TagText(tags); text != "" {
			out[i].Text = &text
			enriched++
		}
	}

	return out, enriched, err
}
