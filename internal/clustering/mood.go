package clustering

import (
	"fmt"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// songObservation wraps a ScoredSong to implement clusters.Observation.
type songObservation struct {
	song   *recommend.ScoredSong
	coords clusters.Coordinates
}

func (o songObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o songObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectMoods groups songs by emotion vector similarity using k-means clustering.
// Returns moods and outlier songs that don't fit into any mood.
// Songs without any lexicon hits (zero vectors) are treated as outliers.
// Each mood is named after the catalog scenario nearest to its centroid.
func DetectMoods(songs []recommend.ScoredSong, catalog *scenario.Catalog, cfg Config) ([]Mood, []recommend.ScoredSong, error) {
	if len(songs) == 0 {
		return nil, nil, nil
	}

	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}
	if catalog == nil {
		catalog = scenario.DefaultCatalog()
	}

	// Separate songs with and without keyword hits
	var valid []*recommend.ScoredSong
	var silent []recommend.ScoredSong

	for i := range songs {
		s := &songs[i]
		if s.Emotion.IsZero() {
			silent = append(silent, *s)
		} else {
			valid = append(valid, s)
		}
	}

	// If fewer valid songs than clusters, everything is an outlier
	if len(valid) < cfg.NumClusters {
		return nil, allOutliers(valid, silent), nil
	}

	var obs clusters.Observations
	for _, s := range valid {
		obs = append(obs, songObservation{song: s, coords: s.Emotion.Coordinates()})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		return nil, allOutliers(valid, silent), fmt.Errorf("k-means partition: %w", err)
	}

	var moods []Mood
	var outliers []recommend.ScoredSong

	for _, cluster := range result {
		var members []recommend.ScoredSong
		var vectors []emotion.Vector
		for _, o := range cluster.Observations {
			if so, ok := o.(songObservation); ok {
				members = append(members, *so.song)
				vectors = append(vectors, so.song.Emotion)
			}
		}

		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinClusterSize {
			outliers = append(outliers, members...)
			continue
		}

		// Partition leaves Center at its random seed when no point moves
		// (always the case for k=1), so take the members' mean instead.
		centroid := emotion.Mean(vectors)
		nearest, _ := catalog.Nearest(centroid)

		// Rank members against the mood's scenario
		for i := range members {
			members[i].Score = emotion.Similarity(members[i].Emotion, nearest.Vector)
		}
		recommend.SortByScore(members)

		moods = append(moods, Mood{
			Name:     moodName(nearest, centroid),
			Scenario: nearest,
			Centroid: centroid,
			Songs:    members,
		})
	}

	outliers = append(outliers, silent...)

	// Largest moods first; ties by name for stable output
	slices.SortFunc(moods, func(a, b Mood) int {
		if len(a.Songs) != len(b.Songs) {
			return len(b.Songs) - len(a.Songs)
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return moods, outliers, nil
}

func allOutliers(valid []*recommend.ScoredSong, silent []recommend.ScoredSong) []recommend.ScoredSong {
	outliers := make([]recommend.ScoredSong, 0, len(valid)+len(silent))
	for _, s := range valid {
		outliers = append(outliers, *s)
	}
	return append(outliers, silent...)
}
