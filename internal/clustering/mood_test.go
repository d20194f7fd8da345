package clustering

import (
	"math"
	"testing"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

func scored(title string, v emotion.Vector) recommend.ScoredSong {
	return recommend.ScoredSong{Song: recommend.NewSong(title, "Artist", ""), Emotion: v}
}

func TestDetectMoods_Empty(t *testing.T) {
	moods, outliers, err := DetectMoods(nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moods != nil {
		t.Errorf("expected nil moods, got %v", moods)
	}
	if outliers != nil {
		t.Errorf("expected nil outliers, got %v", outliers)
	}
}

func TestDetectMoods_ZeroVectorsAreOutliers(t *testing.T) {
	songs := []recommend.ScoredSong{
		scored("silent 1", emotion.Vector{}),
		scored("silent 2", emotion.Vector{}),
	}

	moods, outliers, err := DetectMoods(songs, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moods) != 0 {
		t.Errorf("expected 0 moods, got %d", len(moods))
	}
	if len(outliers) != 2 {
		t.Errorf("expected 2 outliers, got %d", len(outliers))
	}
}

func TestDetectMoods_FewerSongsThanClusters(t *testing.T) {
	songs := []recommend.ScoredSong{
		scored("a", emotion.Vector{1, 0, 0, 0}),
		scored("b", emotion.Vector{0, 0, 1, 0}),
	}

	moods, outliers, err := DetectMoods(songs, nil, Config{NumClusters: 3, MinClusterSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moods) != 0 || len(outliers) != 2 {
		t.Errorf("got %d moods and %d outliers, want 0 and 2", len(moods), len(outliers))
	}
}

func TestDetectMoods_SingleCluster(t *testing.T) {
	songs := []recommend.ScoredSong{
		scored("sad 1", emotion.Vector{0, 0.1, 0.9, 0}),
		scored("sad 2", emotion.Vector{0, 0.2, 0.8, 0}),
		scored("sad 3", emotion.Vector{0, 0, 1, 0}),
		scored("silent", emotion.Vector{}),
	}

	moods, outliers, err := DetectMoods(songs, scenario.DefaultCatalog(), Config{NumClusters: 1, MinClusterSize: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moods) != 1 {
		t.Fatalf("expected 1 mood, got %d", len(moods))
	}
	if len(outliers) != 1 || outliers[0].DisplayTitle() != "silent" {
		t.Errorf("expected the silent song as sole outlier, got %v", outliers)
	}

	m := moods[0]
	want := emotion.Vector{0, 0.1, 0.9, 0}
	for i := range want {
		if math.Abs(m.Centroid[i]-want[i]) > 1e-9 {
			t.Errorf("Centroid = %v, want %v", m.Centroid, want)
			break
		}
	}
	if m.Scenario.Key != "heartbreak" {
		t.Errorf("Scenario = %q, want heartbreak", m.Scenario.Key)
	}
	if m.Name != "Heartbreak · sad" {
		t.Errorf("Name = %q", m.Name)
	}
	if len(m.Songs) != 3 {
		t.Errorf("expected 3 songs, got %d", len(m.Songs))
	}
	for i := 1; i < len(m.Songs); i++ {
		if m.Songs[i].Score > m.Songs[i-1].Score {
			t.Errorf("mood songs not sorted by score at %d", i)
		}
	}
}

func TestDetectMoods_SmallClusterIsOutlier(t *testing.T) {
	songs := []recommend.ScoredSong{
		scored("calm", emotion.Vector{0, 0, 0, 1}),
	}

	moods, outliers, err := DetectMoods(songs, nil, Config{NumClusters: 1, MinClusterSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moods) != 0 || len(outliers) != 1 {
		t.Errorf("got %d moods and %d outliers, want 0 and 1", len(moods), len(outliers))
	}
}

func TestDetectMoods_ConservesSongs(t *testing.T) {
	songs := []recommend.ScoredSong{
		scored("h1", emotion.Vector{1, 0, 0, 0}),
		scored("h2", emotion.Vector{0.9, 0.1, 0, 0}),
		scored("h3", emotion.Vector{0.95, 0, 0.05, 0}),
		scored("c1", emotion.Vector{0, 0, 0, 1}),
		scored("c2", emotion.Vector{0, 0, 0.1, 0.9}),
		scored("c3", emotion.Vector{0.05, 0, 0, 0.95}),
		scored("z", emotion.Vector{}),
	}

	moods, outliers, err := DetectMoods(songs, nil, Config{NumClusters: 2, MinClusterSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := len(outliers)
	for i, m := range moods {
		total += len(m.Songs)
		if i > 0 && len(m.Songs) > len(moods[i-1].Songs) {
			t.Errorf("moods not sorted by size at %d", i)
		}
	}
	if total != len(songs) {
		t.Errorf("moods and outliers hold %d songs, want %d", total, len(songs))
	}
}

func TestMoodDescription(t *testing.T) {
	for _, v := range []emotion.Vector{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}} {
		if MoodDescription(v) == "" {
			t.Errorf("MoodDescription(%v) is empty", v)
		}
	}
	if MoodDescription(emotion.Vector{1, 0, 0, 0}) == MoodDescription(emotion.Vector{0, 0, 1, 0}) {
		t.Error("happy and sad descriptions should differ")
	}
}
