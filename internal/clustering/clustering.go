// Package clustering groups songs into moods by k-means over their emotion vectors.
package clustering

import (
	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// Config holds mood clustering parameters.
type Config struct {
	NumClusters    int // Number of clusters to create (default: 4)
	MinClusterSize int // Minimum songs per mood (smaller clusters become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    4,
		MinClusterSize: 2,
	}
}

// Mood is a cluster of songs with a similar emotion profile.
type Mood struct {
	Name     string                 // Descriptive name: "Heartbreak · sad"
	Scenario scenario.Scenario      // Scenario closest to the centroid
	Centroid emotion.Vector         // Average emotion vector of the cluster
	Songs    []recommend.ScoredSong // Songs ordered by similarity to the scenario
}
