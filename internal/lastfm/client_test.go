package lastfm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// fastRetries keeps retry tests quick.
var fastRetries = []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}

func tagsBody(tags ...Tag) topTagsResponse {
	if tags == nil {
		tags = []Tag{}
	}
	return topTagsResponse{TopTags: topTags{Tag: tags}}
}

func TestGetTags(t *testing.T) {
	tests := []struct {
		name           string
		artist         string
		track          string
		trackResponse  any
		artistResponse any
		wantTags       []Tag
		wantErr        error
	}{
		{
			name:   "track has tags",
			artist: "Jay Chou",
			track:  "Rainbow",
			trackResponse: tagsBody(
				Tag{Name: "mandopop", Count: 100, URL: "http://last.fm/tag/mandopop"},
				Tag{Name: "love", Count: 80, URL: "http://last.fm/tag/love"},
			),
			wantTags: []Tag{
				{Name: "mandopop", Count: 100},
				{Name: "love", Count: 80},
			},
		},
		{
			name:          "track empty falls back to artist",
			artist:        "Mayday",
			track:         "Unreleased Demo",
			trackResponse: tagsBody(),
			artistResponse: tagsBody(
				Tag{Name: "pop", URL: "http://last.fm/tag/pop"},
				Tag{Name: "dance", URL: "http://last.fm/tag/dance"},
			),
			wantTags: []Tag{{Name: "pop"}, {Name: "dance"}},
		},
		{
			name:           "unknown track falls back to artist",
			artist:         "Cheer Chen",
			track:          "Fish (Live)",
			trackResponse:  apiError{Error: 6, Message: "Track not found"},
			artistResponse: tagsBody(Tag{Name: "folk"}),
			wantTags:       []Tag{{Name: "folk"}},
		},
		{
			name:           "both empty returns empty slice",
			artist:         "Unknown Artist",
			track:          "Unknown Track",
			trackResponse:  tagsBody(),
			artistResponse: apiError{Error: 6, Message: "The artist you supplied could not be found"},
			wantTags:       []Tag{},
		},
		{
			name:          "invalid API key",
			artist:        "Test",
			track:         "Test",
			trackResponse: apiError{Error: 10, Message: "Invalid API key"},
			wantErr:       ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				method := r.URL.Query().Get("method")

				var resp any
				switch method {
				case "track.getTopTags":
					resp = tt.trackResponse
				case "artist.getTopTags":
					resp = tt.artistResponse
				default:
					t.Errorf("unexpected method: %s", method)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
			}))
			defer server.Close()

			client := &Client{
				apiKey:     "test-api-key",
				httpClient: server.Client(),
				baseURL:    server.URL + "/",
				cache:      make(map[string][]Tag),
			}

			tags, err := client.GetTags(context.Background(), tt.artist, tt.track)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetTags() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr == nil {
				if tags == nil {
					t.Error("GetTags() returned nil slice, want non-nil")
				}
				if len(tags) != len(tt.wantTags) {
					t.Errorf("GetTags() got %d tags, want %d", len(tags), len(tt.wantTags))
					return
				}
				for i, tag := range tags {
					if tag.Name != tt.wantTags[i].Name || tag.Count != tt.wantTags[i].Count {
						t.Errorf("GetTags() tag[%d] = %+v, want %+v", i, tag, tt.wantTags[i])
					}
				}
			}
		})
	}
}

func TestGetTags_Caching(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)

		resp := tagsBody(Tag{Name: "rock", Count: 100, URL: "http://last.fm/tag/rock"})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := &Client{
		apiKey:      "test-api-key",
		httpClient:  server.Client(),
		baseURL:     server.URL + "/",
		retryDelays: fastRetries,
		cache:       make(map[string][]Tag),
	}

	// First call - should hit server
	tags1, err := client.GetTags(context.Background(), "Artist", "Track")
	if err != nil {
		t.Fatalf("First GetTags() error = %v", err)
	}
	if len(tags1) != 1 {
		t.Fatalf("First GetTags() got %d tags, want 1", len(tags1))
	}

	// Second call - should hit cache
	tags2, err := client.GetTags(context.Background(), "Artist", "Track")
	if err != nil {
		t.Fatalf("Second GetTags() error = %v", err)
	}
	if len(tags2) != 1 {
		t.Fatalf("Second GetTags() got %d tags, want 1", len(tags2))
	}

	// Should only have made one request
	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}
}

func TestGetTags_RateLimitRetry(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)

		// Fail first 2 requests with rate limit, succeed on 3rd
		if count < 3 {
			resp := apiError{Error: 29, Message: "Rate limit exceeded"}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
			return
		}

		resp := tagsBody(Tag{Name: "rock", Count: 100, URL: "http://last.fm/tag/rock"})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := &Client{
		apiKey:      "test-api-key",
		httpClient:  server.Client(),
		baseURL:     server.URL + "/",
		retryDelays: fastRetries,
		cache:       make(map[string][]Tag),
	}

	// Use short timeout context for faster test
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tags, err := client.GetTags(ctx, "Artist", "Track")
	if err != nil {
		t.Fatalf("GetTags() error = %v", err)
	}

	if len(tags) != 1 || tags[0].Name != "rock" {
		t.Errorf("GetTags() got unexpected tags: %v", tags)
	}

	// Should have made 3 requests (2 rate limited + 1 success)
	if count := requestCount.Load(); count != 3 {
		t.Errorf("Expected 3 requests, got %d", count)
	}
}

func TestGetTags_RateLimitExhausted(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)

		// Always return rate limit error
		resp := apiError{Error: 29, Message: "Rate limit exceeded"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := &Client{
		apiKey:      "test-api-key",
		httpClient:  server.Client(),
		baseURL:     server.URL + "/",
		retryDelays: fastRetries,
		cache:       make(map[string][]Tag),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := client.GetTags(ctx, "Artist", "Track")

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("GetTags() error = %v, want ErrRateLimited", err)
	}

	// Should have made 4 requests (1 initial + 3 retries)
	if count := requestCount.Load(); count != 4 {
		t.Errorf("Expected 4 requests, got %d", count)
	}
}

func TestGetTags_HTTP429(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &Client{
		apiKey:      "test-api-key",
		httpClient:  server.Client(),
		baseURL:     server.URL + "/",
		retryDelays: fastRetries,
		cache:       make(map[string][]Tag),
	}

	_, err := client.GetTags(context.Background(), "Artist", "Track")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("GetTags() error = %v, want ErrRateLimited", err)
	}
	if count := requestCount.Load(); count != 4 {
		t.Errorf("Expected 4 requests, got %d", count)
	}
}

func TestGetTags_CacheIgnoresCase(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"toptags":{"tag":[{"name":"happy","count":10,"url":""}]}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-api-key", RequestsPerSecond: 1000})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.httpClient = server.Client()
	client.baseURL = server.URL + "/"

	for _, artist := range []string{"Mayday", "MAYDAY", "mayday"} {
		tags, err := client.GetTags(context.Background(), artist, "Jump")
		if err != nil {
			t.Fatalf("GetTags(%q) error = %v", artist, err)
		}
		if len(tags) != 1 || tags[0].Name != "happy" {
			t.Errorf("GetTags(%q) = %v", artist, tags)
		}
	}

	if count := requestCount.Load(); count != 1 {
		t.Errorf("Expected 1 request, got %d", count)
	}
}

func TestGetTags_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected after cancellation")
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-api-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.httpClient = server.Client()
	client.baseURL = server.URL + "/"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetTags(ctx, "Artist", "Track"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.apiKey != "test-key" {
		t.Errorf("NewClient() apiKey = %s, want test-key", client.apiKey)
	}
	if client.httpClient == nil {
		t.Error("NewClient() httpClient is nil")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("NewClient() timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
	if client.limiter == nil {
		t.Error("NewClient() limiter is nil")
	}
	if client.cache == nil {
		t.Error("NewClient() cache is nil")
	}
	if client.baseURL != baseURL {
		t.Errorf("NewClient() baseURL = %s, want %s", client.baseURL, baseURL)
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewClient() error = %v, want ErrMissingAPIKey", err)
	}
}
