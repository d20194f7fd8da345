package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justestif/go-scenario-recommender/internal/web"
	assets "github.com/justestif/go-scenario-recommender/web"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			templates, err := assets.Templates()
			if err != nil {
				return fmt.Errorf("creating templates filesystem: %w", err)
			}
			static, err := assets.Static()
			if err != nil {
				return fmt.Errorf("creating static filesystem: %w", err)
			}

			server, err := web.NewServer(web.ServerConfig{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				IdleTimeout:     cfg.Server.IdleTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				TemplatesFS:     templates,
				StaticFS:        static,
				Service:         a.service,
				Defaults: web.Defaults{
					TopN:         cfg.Recommend.TopN,
					MaxPerArtist: cfg.Recommend.MaxPerArtist,
				},
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
