// internal/httpserver/auth.go
//
// Webhook request authentication.
// The conversational platform signs each request with an HS256 JWT in the
// Authorization header ("Bearer <token>"). When no secret is configured the
// check is skipped, which is how local development and `play` run.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
)

var errNoToken = errors.New("missing bearer token")

// SignToken mints a webhook token for audience, valid for ttl from now.
// Used by the `token` command and by tests.
func SignToken(secret, audience string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "webhook",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// verifyToken checks signature, algorithm, expiry and audience.
func verifyToken(tokenStr, secret, audience string, now time.Time) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	_, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	return err
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) (string, error) {
	a := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return "", errNoToken
	}
	tok := strings.TrimSpace(a[len("bearer "):])
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}

// requireWebhookAuth rejects unsigned or badly signed requests with 401.
func (s *Server) requireWebhookAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.opts.WebhookSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := bearer(r)
			if err == nil {
				err = verifyToken(tok, s.opts.WebhookSecret, s.opts.Audience, s.opts.Now())
			}
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("webhook auth")
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
