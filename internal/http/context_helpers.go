package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/ports"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// requestScope is everything ClientSession binds to one request.
type requestScope struct {
	session *service.SessionService
	api     ports.BackendAPI
	nav     *pendingNavigation
	logger  *slog.Logger
}

func withScope(ctx context.Context, sc *requestScope) context.Context {
	if sc == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, sc)
}

func scopeFromContext(ctx context.Context) (*requestScope, bool) {
	sc, ok := ctx.Value(sessionKey{}).(*requestScope)
	return sc, ok && sc != nil
}

// SessionFromContext returns the browser session bound by ClientSession.
func SessionFromContext(ctx context.Context) (*service.SessionService, bool) {
	if sc, ok := scopeFromContext(ctx); ok {
		return sc.session, true
	}
	return nil, false
}

// BackendFromContext returns the session-bound backend client bound by ClientSession.
func BackendFromContext(ctx context.Context) (ports.BackendAPI, bool) { //nolint:ireturn // port contract
	if sc, ok := scopeFromContext(ctx); ok && sc.api != nil {
		return sc.api, true
	}
	return nil, false
}

// requestLogger returns the logger bound to the request by ClientSession, or
// slog.Default() outside the session chain.
func requestLogger(r *http.Request) *slog.Logger {
	if sc, ok := scopeFromContext(r.Context()); ok && sc.logger != nil {
		return sc.logger
	}
	return slog.Default()
}
