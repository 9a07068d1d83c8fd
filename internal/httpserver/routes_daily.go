// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily number mode.
// Daily rounds are played through /conversation (intent daily_game); this
// file only exposes the read side:
//   - GET /daily/leaderboard?date=YYYY-MM-DD&limit=N → best results for a date (default today)

package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numbergenie/internal/daily"
)

const maxLeaderboard = 100

// Leaderboard reads ranked daily results. *daily.Store satisfies it.
type Leaderboard interface {
	Leaderboard(ctx context.Context, date string, limit int) ([]daily.LBRow, error)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.opts.Leaderboard == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "daily_disabled"})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.today()
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_limit"})
			return
		}
		limit = min(n, maxLeaderboard)
	}
	rows, err := s.opts.Leaderboard.Leaderboard(r.Context(), date, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("date", date).Msg("leaderboard")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
