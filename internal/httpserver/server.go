// internal/httpserver/server.go
//
// HTTP server wiring for the Number Genie webhook.
// Responsibilities:
//   - Router + middleware (request ids, access logs, JSON, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health".
//   - Webhook: POST /conversation, one dialog turn per request, optionally
//     authenticated with an HS256 bearer token.
//   - Daily leaderboard (routes_daily.go) and string catalog diagnostics.
//
// Notes:
//   - Turns of one conversation are serialized with a per-session lock; the
//     dialog layer itself is not.
//   - Callers that send no sessionId get a fresh uuid, echoed in the response.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numbergenie/internal/daily"
	"github.com/robalobadob/numbergenie/internal/dialog"
	"github.com/robalobadob/numbergenie/internal/game"
)

// Options configure the optional parts of a Server.
type Options struct {
	// WebhookSecret enables bearer-token checks on /conversation when set.
	WebhookSecret string
	// Audience is the required "aud" claim (the project id). Empty skips the check.
	Audience     string
	ClientOrigin string
	// Leaderboard serves /daily/leaderboard; nil disables it.
	Leaderboard Leaderboard
	// Strings reports per-locale string counts for /debug/strings.
	Strings interface{ Stats() map[string]int }
	Now     func() time.Time
}

// Server bundles router, dialog app and per-session locks.
type Server struct {
	r     *chi.Mux
	app   *dialog.App
	opts  Options
	locks *keyedMutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(app *dialog.App, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), app: app, opts: opts, locks: newKeyedMutex()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"number-genie","endpoints":["/health","POST /conversation","/daily/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/strings", s.handleDebugStrings)

	// --- webhook ---
	s.r.With(s.requireWebhookAuth()).Post("/conversation", s.handleConversation)

	s.mountDaily(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// --------------------------- conversation ----------------------------------

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	var req dialog.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	unlock := s.locks.Lock(req.SessionID)
	defer unlock()

	res, err := s.app.Handle(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDebugStrings(w http.ResponseWriter, r *http.Request) {
	if s.opts.Strings == nil {
		writeJSON(w, http.StatusOK, map[string]int{})
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Strings.Stats())
}

// ------------------------------- helpers -----------------------------------

// writeError maps dialog and game errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "server_error"
	switch {
	case errors.Is(err, dialog.ErrMissingSession),
		errors.Is(err, dialog.ErrMissingGuess),
		errors.Is(err, dialog.ErrMissingNumber),
		errors.Is(err, dialog.ErrUnknownIntent):
		status, code = http.StatusBadRequest, err.Error()
	case errors.Is(err, game.ErrInvalidSession):
		status, code = http.StatusConflict, "invalid_session"
	}
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("conversation turn")
	} else {
		hlog.FromRequest(r).Warn().Err(err).Msg("rejected turn")
	}
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// today is the date key used when a request names none.
func (s *Server) today() string { return daily.DateKey(s.opts.Now()) }
