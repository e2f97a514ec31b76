// Package auth provides password hashing, session tokens and the authentication
// middleware of the cyrel API server.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

// ErrNoToken is returned by ExtractBearerToken when no Authorization header is set
var ErrNoToken = errors.New("no bearer token")

// WithUserID returns a context carrying the authenticated user id
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKey{}).(int64)
	return id, ok
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("authorization header is not a bearer token")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}

// Middleware authenticates requests carrying a bearer token and stores the user id
// in the request context. Requests without a valid token pass through anonymously:
// JSON-RPC methods decide themselves whether they need a user.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearerToken(r)
			if err != nil {
				if !errors.Is(err, ErrNoToken) {
					slog.Warn("Token extraction failed",
						"error", err,
						"remote_addr", r.RemoteAddr,
						"path", r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			userID, err := issuer.Parse(token)
			if err != nil {
				slog.Warn("Token validation failed",
					"error", err,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			slog.Debug("Authentication successful", "user", userID, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
