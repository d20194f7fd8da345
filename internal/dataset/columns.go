package dataset

import (
	"slices"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// NoColumn marks a role with no matching column.
const NoColumn = -1

// lyricMinWords is the word count a cell must exceed to look like lyrics.
const lyricMinWords = 5

var (
	titleHeaders  = []string{"song", "title", "track_name", "song_name", "name"}
	artistHeaders = []string{"artist", "singer", "artist_name", "performer"}
	textHeaders   = []string{"text", "lyrics", "lyric", "歌詞"}
)

// Columns holds the column index for each song field, or NoColumn.
type Columns struct {
	Title  int
	Artist int
	Text   int
}

// InferColumns picks the title, artist and text columns.
//
// Headers are matched case-insensitively against known names; when several
// headers match a role the last one wins. Without a title header the second
// column is used (the first if there is only one). Without an artist header
// the first column is used when there are at least two. Without a text header
// the first column holding a cell of more than five words is used.
func InferColumns(t *Table) Columns {
	cols := Columns{Title: NoColumn, Artist: NoColumn, Text: NoColumn}

	for i, h := range t.Headers {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case slices.Contains(titleHeaders, name):
			cols.Title = i
		case slices.Contains(artistHeaders, name):
			cols.Artist = i
		case slices.Contains(textHeaders, name):
			cols.Text = i
		}
	}

	n := len(t.Headers)
	if cols.Title == NoColumn && n > 0 {
		if n > 1 {
			cols.Title = 1
		} else {
			cols.Title = 0
		}
	}
	if cols.Artist == NoColumn && n > 1 {
		cols.Artist = 0
	}
	if cols.Text == NoColumn {
		cols.Text = findLyricColumn(t)
	}

	return cols
}

func findLyricColumn(t *Table) int {
	for col := range t.Headers {
		for row := range t.Rows {
			if len(strings.Fields(t.Cell(row, col))) > lyricMinWords {
				return col
			}
		}
	}
	return NoColumn
}

// Songs maps table rows to songs. Empty cells become nil fields.
func Songs(t *Table, cols Columns) []recommend.Song {
	songs := make([]recommend.Song, 0, len(t.Rows))
	for row := range t.Rows {
		songs = append(songs, recommend.NewSong(
			t.Cell(row, cols.Title),
			t.Cell(row, cols.Artist),
			t.Cell(row, cols.Text),
		))
	}
	return songs
}
