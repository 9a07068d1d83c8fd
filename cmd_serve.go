package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numbergenie/internal/httpserver"
	"github.com/robalobadob/numbergenie/internal/rng"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := build(cfg, rng.Default())
		if err != nil {
			return err
		}
		defer d.Close()

		opts := httpserver.Options{
			WebhookSecret: cfg.WebhookSecret,
			Audience:      cfg.ProjectID,
			ClientOrigin:  cfg.ClientOrigin,
			Strings:       d.strings,
		}
		if d.board != nil {
			opts.Leaderboard = d.board
		}
		if cfg.WebhookSecret == "" {
			log.Warn().Msg("WEBHOOK_SECRET not set; /conversation is unauthenticated")
		}

		srv := httpserver.New(d.app, opts)
		log.Info().Str("port", cfg.Port).Msg("starting number genie")
		return srv.Start(":" + cfg.Port)
	},
}
