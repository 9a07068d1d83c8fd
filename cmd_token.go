package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/numbergenie/internal/httpserver"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed webhook token for PROJECT_ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.WebhookSecret == "" {
			return errors.New("WEBHOOK_SECRET is not set")
		}
		tok, err := httpserver.SignToken(cfg.WebhookSecret, cfg.ProjectID, tokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}
