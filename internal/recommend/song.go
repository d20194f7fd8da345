package recommend

import (
	"strings"

	"github.com/google/uuid"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
)

// Display defaults for songs with missing metadata.
const (
	UnknownTitle  = "Unknown Song"
	UnknownArtist = "Unknown Artist"

	// unknownArtistKey groups songs without an artist for the per-artist cap.
	unknownArtistKey = "Unknown"
)

// Song is one dataset row. Every field is optional; nil means the column was
// absent or the cell was empty.
type Song struct {
	ID     string
	Title  *string
	Artist *string
	Text   *string // Lyric text
}

// songNamespace seeds the name-based UUIDs produced by SongID.
var songNamespace = uuid.MustParse("7d1f3c52-9a4e-5b8e-a0d2-4c6b8e1f2a3d")

// SongID derives a stable UUID (version 5) from artist and title.
// Matching is case-insensitive and ignores surrounding whitespace.
func SongID(title, artist string) string {
	key := strings.ToLower(strings.TrimSpace(artist)) + "\x00" + strings.ToLower(strings.TrimSpace(title))
	return uuid.NewSHA1(songNamespace, []byte(key)).String()
}

// NewSong builds a Song from plain strings, treating empty strings as missing.
// The ID is derived with SongID.
func NewSong(title, artist, text string) Song {
	return Song{
		ID:     SongID(title, artist),
		Title:  optional(title),
		Artist: optional(artist),
		Text:   optional(text),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DisplayTitle returns the title or UnknownTitle.
func (s Song) DisplayTitle() string {
	if s.Title == nil {
		return UnknownTitle
	}
	return *s.Title
}

// DisplayArtist returns the artist or UnknownArtist.
func (s Song) DisplayArtist() string {
	if s.Artist == nil {
		return UnknownArtist
	}
	return *s.Artist
}

// Lyrics returns the lyric text, or "" when missing.
func (s Song) Lyrics() string {
	if s.Text == nil {
		return ""
	}
	return *s.Text
}

// artistKey is the value the per-artist cap groups by.
func (s Song) artistKey() string {
	if s.Artist == nil {
		return unknownArtistKey
	}
	return *s.Artist
}

// ScoredSong is a song with its emotion profile and similarity to a scenario.
type ScoredSong struct {
	Song
	Emotion emotion.Vector
	Score   float64
}
