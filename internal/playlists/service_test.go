package playlists

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/justestif/go-scenario-recommender/internal/clustering"
	"github.com/justestif/go-scenario-recommender/internal/dataset"
	"github.com/justestif/go-scenario-recommender/internal/db"
	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/lastfm"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
	"github.com/justestif/go-scenario-recommender/internal/spotify"
	"github.com/justestif/go-scenario-recommender/internal/tags"
)

// fakeSource implements SongSource for testing.
type fakeSource struct {
	songs []recommend.Song
	err   error
	calls int
}

func (f *fakeSource) Songs(ctx context.Context) ([]recommend.Song, error) {
	f.calls++
	return f.songs, f.err
}

// fakeLinker implements Linker for testing.
type fakeLinker struct {
	links map[string]spotify.Link
	seen  int
}

func (f *fakeLinker) LinksFor(ctx context.Context, songs []recommend.Song) map[string]spotify.Link {
	f.seen = len(songs)
	return f.links
}

// fakeTags implements tags.BatchFetcher for testing.
type fakeTags struct {
	tags map[string][]lastfm.Tag
}

func (f *fakeTags) GetTagsForSongs(ctx context.Context, songs []tags.Song) (map[string][]lastfm.Tag, error) {
	return f.tags, nil
}

func newRecommender() *recommend.Recommender {
	return recommend.New(emotion.NewExtractor(emotion.DefaultLexicon()), scenario.DefaultCatalog())
}

func testSongs() []recommend.Song {
	return []recommend.Song{
		recommend.NewSong("Tears", "Blue", "cry alone tear goodbye pain"),
		recommend.NewSong("Dance Floor", "Sunny", "party dance happy celebrate fun"),
		recommend.NewSong("Lullaby", "Moon", "sleep quiet night dream soft"),
		recommend.NewSong("Jump Around", "Sunny", "happy fun joy dance"),
		recommend.NewSong("Celebrate", "Sunny", "celebrate party smile"),
	}
}

func TestRecommend(t *testing.T) {
	svc := New(&fakeSource{songs: testSongs()}, newRecommender())

	result, err := svc.Recommend(context.Background(), "party", 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Fallback {
		t.Error("expected no fallback")
	}
	if result.Scenario.Name != "Party & Celebration" {
		t.Errorf("unexpected scenario %q", result.Scenario.Name)
	}
	if len(result.Songs) != 3 {
		t.Fatalf("expected 3 songs, got %d", len(result.Songs))
	}

	sunny := 0
	for _, e := range result.Songs {
		if e.DisplayArtist() == "Sunny" {
			sunny++
		}
		if e.Link != nil {
			t.Errorf("expected no link without a linker, got %+v", e.Link)
		}
	}
	if sunny != 2 {
		t.Errorf("expected the per-artist cap to allow 2 Sunny songs, got %d", sunny)
	}
	if result.Songs[0].DisplayArtist() != "Sunny" {
		t.Errorf("expected a Sunny song first, got %q", result.Songs[0].DisplayTitle())
	}
	if result.UniqueArtists != 2 {
		t.Errorf("expected 2 unique artists, got %d", result.UniqueArtists)
	}
}

func TestRecommend_UnknownScenario(t *testing.T) {
	source := &fakeSource{songs: testSongs()}
	svc := New(source, newRecommender())

	_, err := svc.Recommend(context.Background(), "karaoke", 15, 2)
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if source.calls != 0 {
		t.Error("source should not be read for an unknown scenario")
	}
}

func TestRecommend_LenientUnknownScenario(t *testing.T) {
	source := &fakeSource{songs: testSongs()}
	svc := New(source, newRecommender(), WithStrictScenarios(false))

	result, err := svc.Recommend(context.Background(), "karaoke", 15, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Scenario.Key != "karaoke" || result.Scenario.Vector != emotion.Uniform() {
		t.Errorf("Scenario = %+v, want karaoke with the uniform vector", result.Scenario)
	}
	if result.Fallback {
		t.Error("unknown scenario should not use the sample list")
	}
	if len(result.Songs) == 0 {
		t.Error("expected songs ranked against the uniform vector")
	}
	if source.calls != 1 {
		t.Errorf("source read %d times, want 1", source.calls)
	}
}

func TestRecommend_Fallback(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantWarning string
	}{
		{
			name:        "no dataset",
			err:         dataset.ErrNoDataset,
			wantWarning: WarningNoDataset,
		},
		{
			name:        "read error",
			err:         fmt.Errorf("reading xlsx: %w", errors.New("corrupt")),
			wantWarning: "Error loading data: reading xlsx: corrupt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&fakeSource{err: tt.err}, newRecommender())

			result, err := svc.Recommend(context.Background(), "workout", 5, 1)
			if err != nil {
				t.Fatalf("fallback should not be an error: %v", err)
			}
			if !result.Fallback {
				t.Error("expected fallback")
			}
			if result.Warning != tt.wantWarning {
				t.Errorf("warning = %q, want %q", result.Warning, tt.wantWarning)
			}

			samples := dataset.SampleSongs()
			if len(result.Songs) != len(samples) {
				t.Fatalf("expected %d sample songs, got %d", len(samples), len(result.Songs))
			}
			for i, e := range result.Songs {
				if e.DisplayTitle() != samples[i].DisplayTitle() {
					t.Errorf("song %d = %q, want %q", i, e.DisplayTitle(), samples[i].DisplayTitle())
				}
			}
			if result.UniqueArtists != 9 {
				t.Errorf("expected 9 unique sample artists, got %d", result.UniqueArtists)
			}
		})
	}
}

func TestRecommend_Links(t *testing.T) {
	songs := testSongs()
	linker := &fakeLinker{
		links: map[string]spotify.Link{
			songs[0].ID: {TrackID: "t1", URL: "https://open.spotify.com/track/t1"},
		},
	}
	svc := New(&fakeSource{songs: songs}, newRecommender(), WithLinker(linker))

	result, err := svc.Recommend(context.Background(), "heartbreak", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linker.seen != 1 {
		t.Errorf("linker should see only returned songs, saw %d", linker.seen)
	}
	if result.Songs[0].Link == nil || result.Songs[0].Link.TrackID != "t1" {
		t.Errorf("expected link t1 on %q, got %+v", result.Songs[0].DisplayTitle(), result.Songs[0].Link)
	}
}

func TestRecommend_TagEnrichment(t *testing.T) {
	noLyrics := recommend.NewSong("Instrumental", "Quiet Band", "")
	songs := []recommend.Song{
		recommend.NewSong("Loud", "Noise", "angry rage fight"),
		noLyrics,
	}
	fetcher := &fakeTags{
		tags: map[string][]lastfm.Tag{
			noLyrics.ID: {{Name: "calm", Count: 100}, {Name: "sleep", Count: 60}},
		},
	}

	svc := New(&fakeSource{songs: songs}, newRecommender(), WithTagFetcher(fetcher))
	result, err := svc.Recommend(context.Background(), "late_night_relax", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Songs[0].DisplayTitle(); got != "Instrumental" {
		t.Errorf("expected tag-enriched song first, got %q", got)
	}
	if result.Songs[0].Score == 0 {
		t.Error("expected a non-zero score from tag text")
	}
}

func TestMoods(t *testing.T) {
	songs := append(testSongs(), recommend.NewSong("Silence", "Nobody", "no keywords here"))
	svc := New(&fakeSource{songs: songs}, newRecommender(),
		WithClustering(clustering.Config{NumClusters: 1, MinClusterSize: 1}))

	result, err := svc.Moods(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalSongs != 6 {
		t.Errorf("expected 6 total songs, got %d", result.TotalSongs)
	}
	if len(result.Moods) != 1 {
		t.Fatalf("expected 1 mood, got %d", len(result.Moods))
	}
	if len(result.Moods[0].Songs) != 5 {
		t.Errorf("expected 5 songs in the mood, got %d", len(result.Moods[0].Songs))
	}
	if len(result.Outliers) != 1 || result.Outliers[0].DisplayTitle() != "Silence" {
		t.Errorf("expected Silence as the only outlier, got %v", result.Outliers)
	}
}

func TestMoods_SourceError(t *testing.T) {
	svc := New(&fakeSource{err: errors.New("down")}, newRecommender())
	if _, err := svc.Moods(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// fakeLister implements SongLister for testing.
type fakeLister struct {
	rows []db.Song
	err  error
}

func (f *fakeLister) List(ctx context.Context) ([]db.Song, error) {
	return f.rows, f.err
}

func TestStoreSource(t *testing.T) {
	song := recommend.NewSong("Hello", "Adele", "goodbye tears")
	src := NewStoreSource(&fakeLister{rows: []db.Song{db.NewSong(song, "songs.xlsx", 0)}})

	got, err := src.Songs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != song.ID || got[0].Lyrics() != "goodbye tears" {
		t.Errorf("unexpected songs %+v", got)
	}

	src = NewStoreSource(&fakeLister{err: errors.New("db down")})
	if _, err := src.Songs(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestFileSource(t *testing.T) {
	src := NewFileSource([]string{t.TempDir() + "/missing.xlsx"}, dataset.Options{})
	if _, err := src.Songs(context.Background()); !errors.Is(err, dataset.ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
}
