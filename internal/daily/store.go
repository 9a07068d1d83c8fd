// internal/daily/store.go
//
// Daily results and leaderboard, backed by the daily_results table.
// A session records at most one result per date (UNIQUE(session_id, date));
// later inserts for the same pair are ignored.

package daily

import (
	"context"
	"database/sql"
	"fmt"
)

// Result is one finished daily round.
type Result struct {
	SessionID string `json:"sessionId"`
	Date      string `json:"date"`
	Target    int    `json:"target"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	SessionID string `json:"sessionId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether sessionID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, sessionID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE session_id=? AND date=?`,
		sessionID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(session_id, date, target, guesses, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.SessionID, r.Date, r.Target, r.Guesses, r.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("insert daily result: %w", err)
	}
	return nil
}

// Leaderboard returns the best results for date: fewest guesses first,
// then fastest, then earliest. limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=?
		 ORDER BY guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.SessionID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
