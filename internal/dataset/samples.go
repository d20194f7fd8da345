package dataset

import "github.com/justestif/go-scenario-recommender/internal/recommend"

var sampleData = []struct{ title, artist string }{
	{"Nocturne", "Jay Chou"},
	{"Fish", "Cheer Chen"},
	{"Stubborn", "Mayday"},
	{"A Little Happiness", "Hebe Tien"},
	{"Light Years Away", "G.E.M."},
	{"Love Confession Balloon", "Jay Chou"},
	{"Decent", "Yu Wenwen"},
	{"Superman", "G.E.M."},
	{"Stranger in the North", "Namewee"},
	{"Jump", "Mayday"},
	{"Rainbow", "Jay Chou"},
	{"Simple Love", "Jay Chou"},
	{"Sunshine After Rain", "Jolin Tsai"},
	{"Small Love Song", "Deserts Chang"},
	{"You Are Not Truly Happy", "Mayday"},
}

// SampleSongs returns the placeholder list shown when no dataset can be read.
// The songs carry no lyric text and are returned in a fixed order.
func SampleSongs() []recommend.Song {
	songs := make([]recommend.Song, 0, len(sampleData))
	for _, s := range sampleData {
		songs = append(songs, recommend.NewSong(s.title, s.artist, ""))
	}
	return songs
}
