package api

import (
	"context"
	"strconv"
	"time"

	"github.com/shaj13/go-guardian/auth"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type sessionContextKey struct{}

// WithSession stashes the authenticated session info on the context.
func WithSession(ctx context.Context, info auth.Info) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, info)
}

// SessionInfo returns the session info, or nil outside Middleware.
func SessionInfo(ctx context.Context) auth.Info {
	if v := ctx.Value(sessionContextKey{}); v != nil {
		return v.(auth.Info)
	}
	return nil
}

// SessionUserID returns the numeric user id of the session, 0 when absent.
func SessionUserID(ctx context.Context) int {
	info := SessionInfo(ctx)
	if info == nil {
		return 0
	}
	id, err := strconv.Atoi(info.ID())
	if err != nil {
		return 0
	}
	return id
}

// SessionRole returns the role group of the session, "" when absent.
func SessionRole(ctx context.Context) string {
	info := SessionInfo(ctx)
	if info == nil {
		return ""
	}
	groups := info.Groups()
	if len(groups) == 0 {
		return ""
	}
	return groups[0]
}
