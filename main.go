// main.go
//
// Number Genie command line.
//   - serve: run the webhook server.
//   - play:  play a game in the terminal against the same dialog layer.
//   - token: mint a signed webhook token for manual testing.
//
// Configuration comes from the environment, after .env is loaded.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numbergenie/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "numbergenie",
	Short:         "Number Genie: a voice-style number guessing game",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, playCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("numbergenie")
		os.Exit(1)
	}
}
