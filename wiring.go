// wiring.go
//
// Builds the dialog app and its collaborators from configuration.
// SQLite is used when DB_PATH is set; otherwise sessions live in memory
// and the daily leaderboard is disabled.

package main

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numbergenie/internal/config"
	"github.com/robalobadob/numbergenie/internal/daily"
	"github.com/robalobadob/numbergenie/internal/db"
	"github.com/robalobadob/numbergenie/internal/dialog"
	"github.com/robalobadob/numbergenie/internal/l10n"
	"github.com/robalobadob/numbergenie/internal/media"
	"github.com/robalobadob/numbergenie/internal/prompts"
	"github.com/robalobadob/numbergenie/internal/rng"
	"github.com/robalobadob/numbergenie/internal/session"
)

type deps struct {
	strings *l10n.Catalog
	app     *dialog.App
	board   *daily.Store // nil without a database
	conn    *sql.DB
}

func (d *deps) Close() {
	if d.conn != nil {
		_ = d.conn.Close()
	}
}

func build(c config.Config, src rng.Source) (*deps, error) {
	strs, err := l10n.Load(c.PromptsDir, c.DefaultLocale)
	if err != nil {
		return nil, err
	}
	res, err := media.New(c.AssetBaseURL)
	if err != nil {
		return nil, err
	}

	d := &deps{strings: strs}
	var (
		store   session.Store
		options []dialog.Option
	)
	if c.DBPath != "" {
		conn, err := db.OpenMigrated(c.DBPath)
		if err != nil {
			return nil, err
		}
		d.conn = conn
		d.board = daily.NewStore(conn)
		store = session.NewSQLiteStore(conn)
		options = append(options, dialog.WithDailyRecorder(d.board))
		log.Info().Str("path", c.DBPath).Msg("using sqlite sessions")
	} else {
		store = session.NewMemoryStore()
		log.Info().Msg("using in-memory sessions")
	}

	d.app = dialog.New(dialog.Options{
		Min:           c.Min,
		Max:           c.Max,
		Suggestions:   c.Suggestions,
		DefaultLocale: c.DefaultLocale,
		DailySalt:     c.DailySalt,
	}, prompts.NewCatalog(strs, res), store, src, options...)
	log.Info().Strs("locales", strs.Locales()).Int("min", c.Min).Int("max", c.Max).Msg("game configured")
	return d, nil
}
