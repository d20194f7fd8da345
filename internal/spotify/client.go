// Package spotify resolves songs to Spotify track links using the Web API
// search endpoint with app-only (client credentials) authentication.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/metrics"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
)

// ErrNotFound is returned when a search yields no matching track.
var ErrNotFound = errors.New("spotify: track not found")

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("spotify: client ID and secret are required")

// Config holds app credentials for the client credentials flow.
type Config struct {
	ClientID     string
	ClientSecret string
}

// Link is a Spotify track matched to a song.
type Link struct {
	TrackID  string `json:"track_id"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Artist   string `json:"artist"` // Comma-separated artist names
	Album    string `json:"album,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Client wraps the Spotify API client with a lookup cache.
type Client struct {
	api *spotify.Client

	mu    sync.RWMutex
	cache map[string]cachedLink
}

type cachedLink struct {
	link  Link
	found bool
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{
		api:   api,
		cache: make(map[string]cachedLink),
	}
}

// NewWithCredentials creates a client that authenticates with the client
// credentials flow. Tokens are fetched lazily on the first request.
func NewWithCredentials(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	return New(spotify.New(cc.Client(ctx), spotify.WithRetry(true))), nil
}

// FindTrack searches for the best match for title and artist.
// Results, including misses, are cached per client.
func (c *Client) FindTrack(ctx context.Context, title, artist string) (Link, error) {
	key := cacheKey(title, artist)

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		metrics.SpotifyLookups.WithLabelValues("cached").Inc()
		if !entry.found {
			return Link{}, ErrNotFound
		}
		return entry.link, nil
	}

	result, err := c.api.Search(ctx, buildQuery(title, artist), spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		metrics.SpotifyLookups.WithLabelValues("error").Inc()
		return Link{}, fmt.Errorf("searching track: %w", err)
	}

	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		metrics.SpotifyLookups.WithLabelValues("not_found").Inc()
		c.store(key, cachedLink{})
		return Link{}, ErrNotFound
	}

	link := convertTrack(result.Tracks.Tracks[0])
	metrics.SpotifyLookups.WithLabelValues("found").Inc()
	c.store(key, cachedLink{link: link, found: true})
	return link, nil
}

func (c *Client) store(key string, entry cachedLink) {
	c.mu.Lock()
	c.cache[key] = entry
	c.mu.Unlock()
}

// LinksFor resolves links for songs that have a title, keyed by song ID.
// Lookup failures are logged and the song is left out.
func (c *Client) LinksFor(ctx context.Context, songs []recommend.Song) map[string]Link {
	links := make(map[string]Link, len(songs))
	for _, s := range songs {
		if s.Title == nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		artist := ""
		if s.Artist != nil {
			artist = *s.Artist
		}

		link, err := c.FindTrack(ctx, *s.Title, artist)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("title", *s.Title).Msg("spotify lookup failed")
			continue
		}
		links[s.ID] = link
	}
	return links
}

// buildQuery builds a field-filtered search query. Quotes in the input are
// dropped so they cannot terminate the field filter.
func buildQuery(title, artist string) string {
	clean := strings.NewReplacer(`"`, "").Replace
	q := fmt.Sprintf(`track:"%s"`, strings.TrimSpace(clean(title)))
	if a := strings.TrimSpace(clean(artist)); a != "" {
		q += fmt.Sprintf(` artist:"%s"`, a)
	}
	return q
}

func cacheKey(title, artist string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + "|" + strings.ToLower(strings.TrimSpace(title))
}

// convertTrack converts a Spotify FullTrack to a Link.
func convertTrack(track spotify.FullTrack) Link {
	artists := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		artists[i] = a.Name
	}

	link := Link{
		TrackID: track.ID.String(),
		URL:     track.ExternalURLs["spotify"],
		Name:    track.Name,
		Artist:  strings.Join(artists, ", "),
		Album:   track.Album.Name,
	}
	if link.URL == "" && link.TrackID != "" {
		link.URL = "https://open.spotify.com/track/" + link.TrackID
	}
	if len(track.Album.Images) > 0 {
		link.ImageURL = track.Album.Images[0].URL
	}
	return link
}
