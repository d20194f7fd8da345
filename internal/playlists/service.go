// Package playlists builds scenario playlists from a song source.
package playlists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justestif/go-scenario-recommender/internal/clustering"
	"github.com/justestif/go-scenario-recommender/internal/dataset"
	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/metrics"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
	"github.com/justestif/go-scenario-recommender/internal/spotify"
	"github.com/justestif/go-scenario-recommender/internal/tags"
)

// Warnings shown alongside the placeholder list.
const (
	WarningNoDataset = "Data file not found. Showing sample songs."
	warningLoadError = "Error loading data: %v"
)

// ErrUnknownScenario is returned when a request names a scenario that is not
// in the catalog and the service is strict. A lenient service ranks against
// the uniform vector instead.
var ErrUnknownScenario = errors.New("unknown scenario")

// Linker resolves songs to Spotify links keyed by song ID.
type Linker interface {
	LinksFor(ctx context.Context, songs []recommend.Song) map[string]spotify.Link
}

// Entry is one playlist row.
type Entry struct {
	recommend.ScoredSong
	Link *spotify.Link
}

// Result contains the outcome of one recommendation request.
type Result struct {
	Scenario      scenario.Scenario
	Songs         []Entry
	UniqueArtists int
	Fallback      bool   // True when the placeholder list was returned
	Warning       string // Set when Fallback is true
}

// MoodsResult contains the outcome of mood detection.
type MoodsResult struct {
	Moods      []clustering.Mood
	Outliers   []recommend.ScoredSong
	TotalSongs int
}

// Service handles playlist generation.
type Service struct {
	source      SongSource
	recommender *recommend.Recommender
	tags        tags.BatchFetcher
	linker      Linker
	clustering  clustering.Config
	strict      bool
}

// Option configures a Service.
type Option func(*Service)

// WithTagFetcher enables filling missing lyrics from Last.fm tags.
func WithTagFetcher(f tags.BatchFetcher) Option {
	return func(s *Service) {
		s.tags = f
	}
}

// WithLinker enables Spotify link resolution for returned songs.
func WithLinker(l Linker) Option {
	return func(s *Service) {
		s.linker = l
	}
}

// WithClustering sets the mood clustering parameters.
func WithClustering(cfg clustering.Config) Option {
	return func(s *Service) {
		s.clustering = cfg
	}
}

// WithStrictScenarios controls unknown scenario keys. Strict services (the
// default) return ErrUnknownScenario; lenient ones rank against the uniform
// vector.
func WithStrictScenarios(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// New creates a new playlist service.
func New(source SongSource, recommender *recommend.Recommender, opts ...Option) *Service {
	s := &Service{
		source:      source,
		recommender: recommender,
		clustering:  clustering.DefaultConfig(),
		strict:      true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the scenario catalog requests are resolved against.
func (s *Service) Catalog() *scenario.Catalog {
	return s.recommender.Catalog()
}

// Recommend builds a playlist for the scenario. If the source cannot be read
// the placeholder list is returned with Fallback set; that is not an error.
func (s *Service) Recommend(ctx context.Context, scenarioKey string, topN, maxPerArtist int) (*Result, error) {
	start := time.Now()
	sc, ok := s.Catalog().Lookup(scenarioKey)
	label := sc.Key
	if !ok {
		// Free-form keys would blow up metric cardinality.
		label = metrics.UnknownScenario
		if s.strict {
			metrics.RecordRecommendation(label, metrics.OutcomeError, time.Since(start))
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenarioKey)
		}
		sc = s.Catalog().Resolve(scenarioKey)
		logging.Ctx(ctx).Debug().Str("scenario", scenarioKey).Msg("unknown scenario, ranking against uniform profile")
	}

	songs, err := s.source.Songs(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("scenario", sc.Key).Msg("song source unavailable, using sample songs")
		metrics.RecordRecommendation(label, metrics.OutcomeFallback, time.Since(start))
		return fallbackResult(sc, err), nil
	}

	songs = s.enrich(ctx, songs)

	picked := s.recommender.Recommend(songs, sc.Key, topN, maxPerArtist)
	result := &Result{
		Scenario:      sc,
		Songs:         s.entries(ctx, picked),
		UniqueArtists: recommend.UniqueArtists(picked),
	}

	logging.Ctx(ctx).Info().
		Str("scenario", sc.Key).
		Int("candidates", len(songs)).
		Int("returned", len(picked)).
		Dur("took", time.Since(start)).
		Msg("recommendation served")
	metrics.RecordRecommendation(label, metrics.OutcomeOK, time.Since(start))

	return result, nil
}

// Moods clusters every song in the source by emotion profile.
func (s *Service) Moods(ctx context.Context) (*MoodsResult, error) {
	songs, err := s.source.Songs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading songs: %w", err)
	}
	songs = s.enrich(ctx, songs)

	// Scores are against a uniform vector; only the emotion profiles matter here.
	scored := s.recommender.Score(songs, emotion.Uniform())
	moods, outliers, err := clustering.DetectMoods(scored, s.Catalog(), s.clustering)
	if err != nil {
		return nil, fmt.Errorf("detecting moods: %w", err)
	}

	return &MoodsResult{
		Moods:      moods,
		Outliers:   outliers,
		TotalSongs: len(songs),
	}, nil
}

// enrich fills missing lyrics from tags when a fetcher is configured.
// Failures are logged and the songs are used as-is.
func (s *Service) enrich(ctx context.Context, songs []recommend.Song) []recommend.Song {
	if s.tags == nil {
		return songs
	}
	enriched, n, err := tags.Enrich(ctx, s.tags, songs)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("tag enrichment failed")
	}
	if n > 0 {
		logging.Ctx(ctx).Debug().Int("songs", n).Msg("filled lyrics from tags")
	}
	return enriched
}

func (s *Service) entries(ctx context.Context, picked []recommend.ScoredSong) []Entry {
	out := make([]Entry, len(picked))
	for i, p := range picked {
		out[i] = Entry{ScoredSong: p}
	}
	if s.linker == nil || len(picked) == 0 {
		return out
	}

	songs := make([]recommend.Song, len(picked))
	for i, p := range picked {
		songs[i] = p.Song
	}
	links := s.linker.LinksFor(ctx, songs)
	for i := range out {
		if link, ok := links[out[i].ID]; ok {
			out[i].Link = &link
		}
	}
	return out
}

// fallbackResult returns the placeholder songs in their fixed order.
func fallbackResult(sc scenario.Scenario, cause error) *Result {
	samples := dataset.SampleSongs()
	entries := make([]Entry, len(samples))
	scored := make([]recommend.ScoredSong, len(samples))
	for i, song := range samples {
		scored[i] = recommend.ScoredSong{Song: song}
		entries[i] = Entry{ScoredSong: scored[i]}
	}

	warning := WarningNoDataset
	if !errors.Is(cause, dataset.ErrNoDataset) {
		warning = fmt.Sprintf(warningLoadError, cause)
	}

	return &Result{
		Scenario:      sc,
		Songs:         entries,
		UniqueArtists: recommend.UniqueArtists(scored),
		Fallback:      true,
		Warning:       warning,
	}
}
