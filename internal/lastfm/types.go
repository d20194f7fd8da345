package lastfm

// Tag represents a Last.fm tag with popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"` // Present for track tags, absent for artist tags
	URL   string `json:"url"`
}

// topTagsResponse is the JSON body of track.getTopTags and artist.getTopTags.
// The artist variant leaves Attr.Track empty.
type topTagsResponse struct {
	TopTags topTags `json:"toptags"`
}

type topTags struct {
	Tag  []Tag `json:"tag"`
	Attr struct {
		Artist string `json:"artist"`
		Track  string `json:"track,omitempty"`
	} `json:"@attr"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
