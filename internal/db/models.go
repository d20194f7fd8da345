package db

import (
	"time"

	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// Song is an imported dataset row.
type Song struct {
	ID         string
	Title      *string // nullable
	Artist     *string // nullable
	Lyrics     *string // nullable
	SourceFile string
	Position   int // Row order within the import, used to keep dataset order
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SongTag is a cached Last.fm tag for a song.
type SongTag struct {
	SongID    string
	TagName   string
	TagCount  int
	Source    string // tags.TagSource of the lookup that produced it
	FetchedAt time.Time
}

// NewSong converts a recommend.Song for storage. Songs without an ID get one
// from recommend.SongID.
func NewSong(s recommend.Song, sourceFile string, position int) Song {
	id := s.ID
	if id == "" {
		id = recommend.SongID(s.DisplayTitle(), s.DisplayArtist())
	}
	return Song{
		ID:         id,
		Title:      s.Title,
		Artist:     s.Artist,
		Lyrics:     s.Text,
		SourceFile: sourceFile,
		Position:   position,
	}
}

// Recommend converts the stored song for scoring.
func (s Song) Recommend() recommend.Song {
	return recommend.Song{
		ID:     s.ID,
		Title:  s.Title,
		Artist: s.Artist,
		Text:   s.Lyrics,
	}
}
