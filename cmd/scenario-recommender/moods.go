package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/clustering"
)

func newMoodsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "Cluster the song source into moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.Moods(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), clustering.FormatMoodSummary(result.Moods, result.Outliers))
			return nil
		},
	}
}
