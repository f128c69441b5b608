package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/models"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 24 * time.Hour

var authenticator auth.Authenticator
var cache store.Cache

// SetupGoGuardian sets up the go-guardian middleware. Sessions live in a
// FIFO cache keyed by bearer token; the role rides along in the auth groups.
func SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), SessionTTL)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// NewSession mints a session token for user and registers it with the cached
// bearer strategy.
func NewSession(user models.User, r *http.Request) string {
	token := uuid.New().String()
	info := auth.NewDefaultUser(user.Username, strconv.Itoa(user.ID), []string{user.Role}, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, info, r)
	return token
}

// RevokeSession drops the token from the bearer cache.
func RevokeSession(token string, r *http.Request) {
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, token, r)
}

// Middleware guards the protected routes. The browser presents the session
// token in a cookie, so it is copied into the Authorization header before
// go-guardian sees the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				r.Header.Set("Authorization", "Bearer "+c.Value)
			}
		}
		info, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Authentication required"}`))
			return
		}
		zap.S().Debugf("User %s Authenticated\n", info.UserName())
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), info)))
	})
}

// AdminOnly rejects sessions whose role group is not admin. It must sit
// inside Middleware so the session is already on the context.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionRole(r.Context()) != "admin" {
			zap.S().Warnw("forbidden",
				"url", r.URL,
				"role", SessionRole(r.Context()))
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "Admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
