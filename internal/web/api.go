package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/justestif/go-scenario-recommender/internal/clustering"
	"github.com/justestif/go-scenario-recommender/internal/logging"
	"github.com/justestif/go-scenario-recommender/internal/playlists"
	"github.com/justestif/go-scenario-recommender/internal/spotify"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// recommendationQuery holds the parsed query of GET /api/recommendations.
type recommendationQuery struct {
	Scenario     string `validate:"required"`
	Top          int    `validate:"gte=1,lte=100"`
	MaxPerArtist int    `validate:"gte=1,lte=50"`
}

type scenarioResponse struct {
	Key    string             `json:"key"`
	Name   string             `json:"name"`
	Label  string             `json:"label"`
	Vector map[string]float64 `json:"vector"`
}

type songResponse struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Artist  string             `json:"artist"`
	Score   float64            `json:"score"`
	Emotion map[string]float64 `json:"emotion"`
	Spotify *spotify.Link      `json:"spotify,omitempty"`
}

type recommendationResponse struct {
	Scenario      scenarioResponse `json:"scenario"`
	Songs         []songResponse   `json:"songs"`
	Total         int              `json:"total"`
	UniqueArtists int              `json:"unique_artists"`
	Fallback      bool             `json:"fallback"`
	Warning       string           `json:"warning,omitempty"`
}

type moodResponse struct {
	Name        string             `json:"name"`
	Scenario    string             `json:"scenario"`
	Description string             `json:"description"`
	Centroid    map[string]float64 `json:"centroid"`
	Songs       []songResponse     `json:"songs"`
}

type moodsResponse struct {
	Moods      []moodResponse `json:"moods"`
	Outliers   int            `json:"outliers"`
	TotalSongs int            `json:"total_songs"`
}

// Scenarios lists the catalog (GET /api/scenarios).
func (h *Handlers) Scenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := h.service.Catalog().Scenarios()
	out := make([]scenarioResponse, len(scenarios))
	for i, sc := range scenarios {
		out[i] = scenarioResponse{
			Key:    sc.Key,
			Name:   sc.Name,
			Label:  sc.Label(),
			Vector: sc.Vector.Map(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": out})
}

// Recommendations builds a playlist (GET /api/recommendations).
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseRecommendationQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Recommend(r.Context(), q.Scenario, q.Top, q.MaxPerArtist)
	if errors.Is(err, playlists.ErrUnknownScenario) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
		writeError(w, http.StatusInternalServerError, "could not build recommendations")
		return
	}

	resp := recommendationResponse{
		Scenario: scenarioResponse{
			Key:    result.Scenario.Key,
			Name:   result.Scenario.Name,
			Label:  result.Scenario.Label(),
			Vector: result.Scenario.Vector.Map(),
		},
		Songs:         make([]songResponse, len(result.Songs)),
		Total:         len(result.Songs),
		UniqueArtists: result.UniqueArtists,
		Fallback:      result.Fallback,
		Warning:       result.Warning,
	}
	for i, e := range result.Songs {
		resp.Songs[i] = songResponse{
			ID:      e.ID,
			Title:   e.DisplayTitle(),
			Artist:  e.DisplayArtist(),
			Score:   e.Score,
			Emotion: e.Emotion.Map(),
			Spotify: e.Link,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Moods clusters the song source (GET /api/moods).
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Moods(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("mood detection failed")
		writeError(w, http.StatusServiceUnavailable, "songs unavailable")
		return
	}

	resp := moodsResponse{
		Moods:      make([]moodResponse, len(result.Moods)),
		Outliers:   len(result.Outliers),
		TotalSongs: result.TotalSongs,
	}
	for i, m := range result.Moods {
		mr := moodResponse{
			Name:        m.Name,
			Scenario:    m.Scenario.Key,
			Description: clustering.MoodDescription(m.Centroid),
			Centroid:    m.Centroid.Map(),
			Songs:       make([]songResponse, len(m.Songs)),
		}
		for j, s := range m.Songs {
			mr.Songs[j] = songResponse{
				ID:      s.ID,
				Title:   s.DisplayTitle(),
				Artist:  s.DisplayArtist(),
				Score:   s.Score,
				Emotion: s.Emotion.Map(),
			}
		}
		resp.Moods[i] = mr
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) parseRecommendationQuery(r *http.Request) (recommendationQuery, error) {
	values := r.URL.Query()
	q := recommendationQuery{
		Scenario:     strings.TrimSpace(values.Get("scenario")),
		Top:          h.defaults.TopN,
		MaxPerArtist: h.defaults.MaxPerArtist,
	}

	var err error
	if v := values.Get("top"); v != "" {
		if q.Top, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("top must be an integer")
		}
	}
	if v := values.Get("max_per_artist"); v != "" {
		if q.MaxPerArtist, err = strconv.Atoi(v); err != nil {
			return q, fmt.Errorf("max_per_artist must be an integer")
		}
	}

	if err := getValidator().Struct(q); err != nil {
		return q, formatQueryError(err)
	}
	return q, nil
}

var queryParamNames = map[string]string{
	"Scenario":     "scenario",
	"Top":          "top",
	"MaxPerArtist": "max_per_artist",
}

func formatQueryError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := queryParamNames[fe.Field()]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", name, fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", name, fe.Param()))
		default:
			msgs = append(msgs, name+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
