// Package recommend ranks songs against a listening scenario and applies a
// per-artist diversity cap.
package recommend

import (
	"slices"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// Defaults used when a caller does not specify limits.
const (
	DefaultTopN         = 15
	DefaultMaxPerArtist = 2
)

// Recommender scores songs against scenario vectors. It holds only immutable
// configuration and is safe for concurrent use.
type Recommender struct {
	extractor *emotion.Extractor
	catalog   *scenario.Catalog
}

// New creates a Recommender. Nil arguments select the built-in lexicon and catalog.
func New(extractor *emotion.Extractor, catalog *scenario.Catalog) *Recommender {
	if extractor == nil {
		extractor = emotion.NewExtractor(nil)
	}
	if catalog == nil {
		catalog = scenario.DefaultCatalog()
	}
	return &Recommender{
		extractor: extractor,
		catalog:   catalog,
	}
}

// Catalog returns the scenario catalog in use.
func (r *Recommender) Catalog() *scenario.Catalog {
	return r.catalog
}

// Recommend returns at most topN songs ordered by descending similarity to the
// scenario, with no more than maxPerArtist songs per artist. Unknown scenario
// keys use the uniform vector. Non-positive limits yield an empty result.
func (r *Recommender) Recommend(songs []Song, scenarioKey string, topN, maxPerArtist int) []ScoredSong {
	if len(songs) == 0 || topN <= 0 || maxPerArtist <= 0 {
		return []ScoredSong{}
	}

	scored := r.Score(songs, r.catalog.VectorFor(scenarioKey))
	SortByScore(scored)
	return Select(scored, topN, maxPerArtist)
}

// Score extracts each song's emotion vector and its similarity to reference.
// The result keeps input order.
func (r *Recommender) Score(songs []Song, reference emotion.Vector) []ScoredSong {
	scored := make([]ScoredSong, len(songs))
	for i, s := range songs {
		v := r.extractor.Extract(s.Lyrics())
		scored[i] = ScoredSong{
			Song:    s,
			Emotion: v,
			Score:   emotion.Similarity(v, reference),
		}
	}
	return scored
}

// SortByScore sorts in place by descending score. Equal scores keep their
// relative order.
func SortByScore(scored []ScoredSong) {
	slices.SortStableFunc(scored, func(a, b ScoredSong) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}

// Select walks sorted songs in order and keeps each one whose artist has not
// reached maxPerArtist, stopping after topN. Songs without an artist share
// one bucket. The result is never padded.
func Select(sorted []ScoredSong, topN, maxPerArtist int) []ScoredSong {
	if topN <= 0 || maxPerArtist <= 0 {
		return []ScoredSong{}
	}

	picked := make([]ScoredSong, 0, min(topN, len(sorted)))
	perArtist := make(map[string]int)

	for _, s := range sorted {
		key := s.artistKey()
		if perArtist[key] >= maxPerArtist {
			continue
		}
		picked = append(picked, s)
		perArtist[key]++

		if len(picked) >= topN {
			break
		}
	}
	return picked
}

// UniqueArtists counts distinct display artists in a result.
func UniqueArtists(songs []ScoredSong) int {
	seen := make(map[string]struct{}, len(songs))
	for _, s := range songs {
		seen[s.DisplayArtist()] = struct{}{}
	}
	return len(seen)
}
