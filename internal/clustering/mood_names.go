package clustering

import (
	"fmt"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// moodName combines the nearest scenario's display name with the centroid's
// dominant emotion, e.g. "Heartbreak · sad".
func moodName(s scenario.Scenario, centroid emotion.Vector) string {
	return fmt.Sprintf("%s · %s", s.Name, centroid.Dominant())
}

// MoodDescription returns a short description of a centroid's emotional tone.
func MoodDescription(centroid emotion.Vector) string {
	switch centroid.Dominant() {
	case emotion.Happy:
		return "Bright, upbeat lyrics - good for celebrating and moving"
	case emotion.Angry:
		return "Charged, confrontational lyrics with driving energy"
	case emotion.Sad:
		return "Melancholy, heartfelt lyrics about loss and longing"
	default:
		return "Gentle, quiet lyrics - ideal for winding down"
	}
}
