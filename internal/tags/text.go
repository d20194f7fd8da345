package tags

import (
	"math"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/lastfm"
)

// MaxTagRepeat caps how many times the most popular tag is repeated.
const MaxTagRepeat = 5

// TagText renders tags as pseudo-lyrics. Each tag name is repeated in
// proportion to its count relative to the most popular tag, between 1 and
// MaxTagRepeat times, so popular tags weigh more in keyword counts. Tags
// without counts (artist tags) appear once.
func TagText(tags []lastfm.Tag) string {
	maxCount := 0
	for _, t := range tags {
		maxCount = max(maxCount, t.Count)
	}

	var words []string
	for _, t := range tags {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		repeat := 1
		if maxCount > 0 && t.Count > 0 {
			repeat = max(1, int(math.Round(float64(MaxTagRepeat)*float64(t.Count)/float64(maxCount))))
		}
		for range repeat {
			words = append(words, name)
		}
	}
	return strings.Join(words, " ")
}
