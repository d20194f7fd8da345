package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/playlists"
	"github.com/justestif/go-scenario-recommender/internal/scenario"
)

func newRecommendCmd(c *cli) *cobra.Command {
	var (
		scenarioKey  string
		topN         int
		maxPerArtist int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations for a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				topN = c.cfg.Recommend.TopN
			}
			if !cmd.Flags().Changed("max-per-artist") {
				maxPerArtist = c.cfg.Recommend.MaxPerArtist
			}
			if topN < 1 || maxPerArtist < 1 {
				return fmt.Errorf("--top and --max-per-artist must be at least 1")
			}

			a, err := newApp(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.Recommend(cmd.Context(), scenarioKey, topN, maxPerArtist)
			if err != nil {
				return err
			}

			if asJSON {
				return writeResultJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioKey, "scenario", "s", "",
		"scenario key: "+strings.Join(scenario.DefaultCatalog().Keys(), ", "))
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of songs (default from config)")
	cmd.Flags().IntVar(&maxPerArtist, "max-per-artist", 0, "songs allowed per artist (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a list")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

// printResult renders a result the way the web page lists it.
func printResult(w io.Writer, result *playlists.Result) {
	if result.Fallback {
		fmt.Fprintf(w, "Warning: %s\n\nSample Recommendations\n", result.Warning)
	} else {
		fmt.Fprintf(w, "Recommended Songs for %s\n", result.Scenario.Name)
	}
	fmt.Fprintf(w, "Total Songs: %d | Unique Artists: %d | Scenario: %s\n\n",
		len(result.Songs), result.UniqueArtists, result.Scenario.Label())

	for i, e := range result.Songs {
		fmt.Fprintf(w, "%2d. %s | %s", i+1, e.DisplayTitle(), e.DisplayArtist())
		if e.Link != nil {
			fmt.Fprintf(w, "  %s", e.Link.URL)
		}
		fmt.Fprintln(w)
	}
}

type jsonSong struct {
	Title   string             `json:"title"`
	Artist  string             `json:"artist"`
	Score   float64            `json:"score"`
	Emotion map[string]float64 `json:"emotion"`
	URL     string             `json:"url,omitempty"`
}

type jsonResult struct {
	Scenario      string     `json:"scenario"`
	Name          string     `json:"name"`
	Songs         []jsonSong `json:"songs"`
	UniqueArtists int        `json:"unique_artists"`
	Fallback      bool       `json:"fallback"`
	Warning       string     `json:"warning,omitempty"`
}

func writeResultJSON(w io.Writer, result *playlists.Result) error {
	out := jsonResult{
		Scenario:      result.Scenario.Key,
		Name:          result.Scenario.Name,
		Songs:         make([]jsonSong, len(result.Songs)),
		UniqueArtists: result.UniqueArtists,
		Fallback:      result.Fallback,
		Warning:       result.Warning,
	}
	for i, e := range result.Songs {
		out.Songs[i] = jsonSong{
			Title:   e.DisplayTitle(),
			Artist:  e.DisplayArtist(),
			Score:   e.Score,
			Emotion: e.Emotion.Map(),
		}
		if e.Link != nil {
			out.Songs[i].URL = e.Link.URL
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
