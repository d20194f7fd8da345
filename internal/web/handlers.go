package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/playlists"
	"github.com/justestif/go-scenario-recommender/internal/recommend"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

// PlaylistService is the subset of playlists.Service used by the handlers.
type PlaylistService interface {
	Catalog() *scenario.Catalog
	Recommend(ctx context.Context, scenarioKey string, topN, maxPerArtist int) (*playlists.Result, error)
	Moods(ctx context.Context) (*playlists.MoodsResult, error)
}

// Defaults are the list sizes used when a request does not set them.
type Defaults struct {
	TopN         int
	MaxPerArtist int
}

func (d Defaults) orBuiltin() Defaults {
	if d.TopN <= 0 {
		d.TopN = recommend.DefaultTopN
	}
	if d.MaxPerArtist <= 0 {
		d.MaxPerArtist = recommend.DefaultMaxPerArtist
	}
	return d
}

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	service   PlaylistService
	templates *Templates
	defaults  Defaults
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service PlaylistService, templates *Templates, defaults Defaults) *Handlers {
	return &Handlers{
		service:   service,
		templates: templates,
		defaults:  defaults.orBuiltin(),
	}
}

// Home handles the home page (GET /). With ?scenario= set it also renders
// the recommendation list.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	selected := r.URL.Query().Get("scenario")

	data := HomePageData{
		PageData: PageData{
			Title:       "Scenario Song Recommender",
			CurrentPath: r.URL.Path,
		},
		Selected: selected,
	}

	for _, sc := range catalog.Scenarios() {
		data.Scenarios = append(data.Scenarios, ScenarioOption{
			Key:      sc.Key,
			Name:     sc.Name,
			Selected: sc.Key == selected,
		})
	}

	status := http.StatusOK
	if selected != "" {
		result, err := h.service.Recommend(r.Context(), selected, h.defaults.TopN, h.defaults.MaxPerArtist)
		switch {
		case errors.Is(err, playlists.ErrUnknownScenario):
			status = http.StatusBadRequest
			data.Flash = &FlashMessage{Type: "error", Message: "Unknown scenario: " + selected}
		case err != nil:
			logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
			status = http.StatusInternalServerError
			data.Flash = &FlashMessage{Type: "error", Message: "Could not build recommendations."}
		default:
			data.Results = toResultsData(result)
			if result.Fallback {
				data.Flash = &FlashMessage{Type: "warning", Message: result.Warning}
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "home", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("rendering home")
	}
}

// Health handles liveness checks (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toResultsData(result *playlists.Result) *ResultsData {
	data := &ResultsData{
		ScenarioName:  result.Scenario.Name,
		ScenarioLabel: result.Scenario.Label(),
		Total:         len(result.Songs),
		UniqueArtists: result.UniqueArtists,
		Fallback:      result.Fallback,
		Songs:         make([]SongData, len(result.Songs)),
	}
	for i, e := range result.Songs {
		data.Songs[i] = SongData{
			Title:   e.DisplayTitle(),
			Artist:  e.DisplayArtist(),
			Emotion: e.Emotion,
		}
		if e.Link != nil {
			data.Songs[i].URL = e.Link.URL
		}
	}
	return data
}
