package clustering

import (
	"fmt"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

const sampleSongCount = 3

// FormatMoodSummary returns a human-readable summary of detected moods.
// Shows song count, centroid and the first 3 songs for each mood.
// Outliers are summarized by count only.
func FormatMoodSummary(moods []Mood, outliers []recommend.ScoredSong) string {
	var sb strings.Builder

	totalSongs := len(outliers)
	for _, m := range moods {
		totalSongs += len(m.Songs)
	}

	if len(moods) == 0 {
		sb.WriteString(fmt.Sprintf("No moods found from %d songs", totalSongs))
		if len(outliers) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	moodWord := "mood"
	if len(moods) > 1 {
		moodWord = "moods"
	}

	sb.WriteString(fmt.Sprintf("Found %d %s from %d songs", len(moods), moodWord, totalSongs))
	if len(outliers) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
	}
	sb.WriteString("\n")

	for i, m := range moods {
		sb.WriteString("\n")
		sb.WriteString(formatMood(i+1, m))
	}

	return sb.String()
}

// formatMood formats a single mood with its sample songs.
func formatMood(num int, m Mood) string {
	var sb strings.Builder

	songWord := "song"
	if len(m.Songs) > 1 {
		songWord = "songs"
	}

	sb.WriteString(fmt.Sprintf("Mood %d: %s (%d %s) %s\n", num, m.Name, len(m.Songs), songWord, m.Centroid))

	sampleCount := min(sampleSongCount, len(m.Songs))
	for i := 0; i < sampleCount; i++ {
		s := m.Songs[i]
		sb.WriteString(fmt.Sprintf("  • \"%s\" - %s\n", s.DisplayTitle(), s.DisplayArtist()))
	}

	remaining := len(m.Songs) - sampleSongCount
	if remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", remaining))
	}

	return sb.String()
}
