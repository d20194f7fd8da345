package dataset

import "testing"

func TestInferColumns(t *testing.T) {
	longText := "one two three four five six"

	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    Columns
	}{
		{
			name:    "standard headers",
			headers: []string{"Song", "Artist", "Lyrics"},
			want:    Columns{Title: 0, Artist: 1, Text: 2},
		},
		{
			name:    "alternate names",
			headers: []string{"performer", "track_name", "歌詞", "extra"},
			want:    Columns{Title: 1, Artist: 0, Text: 2},
		},
		{
			name:    "last match wins",
			headers: []string{"title", "name", "singer"},
			want:    Columns{Title: 1, Artist: 2, Text: NoColumn},
		},
		{
			name:    "positional fallback",
			headers: []string{"col_a", "col_b", "col_c"},
			rows:    [][]string{{"Mayday", "Jump", "short"}},
			want:    Columns{Title: 1, Artist: 0, Text: NoColumn},
		},
		{
			name:    "single column",
			headers: []string{"whatever"},
			want:    Columns{Title: 0, Artist: NoColumn, Text: NoColumn},
		},
		{
			name:    "no columns",
			headers: nil,
			want:    Columns{Title: NoColumn, Artist: NoColumn, Text: NoColumn},
		},
		{
			name:    "text column inferred from long cells",
			headers: []string{"a", "b", "c"},
			rows: [][]string{
				{"Mayday", "Jump", "short"},
				{"Jay Chou", "Rainbow", longText},
			},
			want: Columns{Title: 1, Artist: 0, Text: 2},
		},
		{
			name:    "five words is not enough",
			headers: []string{"a", "b", "c"},
			rows:    [][]string{{"x", "y", "one two three four five"}},
			want:    Columns{Title: 1, Artist: 0, Text: NoColumn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferColumns(&Table{Headers: tt.headers, Rows: tt.rows})
			if got != tt.want {
				t.Errorf("InferColumns() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSongs(t *testing.T) {
	table := &Table{
		Headers: []string{"artist", "song", "text"},
		Rows: [][]string{
			{"Mayday", "Jump", "happy"},
			{"", "  ", "sad"},
			{"G.E.M."},
		},
	}

	songs := Songs(table, InferColumns(table))
	if len(songs) != 3 {
		t.Fatalf("expected 3 songs, got %d", len(songs))
	}

	if songs[0].DisplayTitle() != "Jump" || songs[0].DisplayArtist() != "Mayday" {
		t.Errorf("songs[0] = %q by %q", songs[0].DisplayTitle(), songs[0].DisplayArtist())
	}
	if songs[1].Title != nil || songs[1].Artist != nil {
		t.Error("blank cells should map to nil")
	}
	if songs[1].Lyrics() != "sad" {
		t.Errorf("songs[1] lyrics = %q, want sad", songs[1].Lyrics())
	}
	if songs[2].Title != nil || songs[2].Text != nil {
		t.Error("short row should leave missing cells nil")
	}
}
