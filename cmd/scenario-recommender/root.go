package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/config"
	"github.com/justestif/go-scenario-recommender/internal/logging"
)

// cli holds state shared by all subcommands.
type cli struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "scenario-recommender",
		Short:         "Recommend songs for listening scenarios by lyric emotion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			c.cfg = cfg

			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(c),
		newRecommendCmd(c),
		newScenariosCmd(c),
		newMoodsCmd(c),
		newImportCmd(c),
		newRefreshTagsCmd(c),
	)

	return root
}
