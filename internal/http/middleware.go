package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/observability/metrics"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
	"github.com/skillhub/skills-dashboard/internal/ports"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.LogAttrs(r.Context(), slog.LevelInfo, "http",
				slog.String("request_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler { //nolint:errorlint,err113 // sentinel re-panicked as documented by net/http
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RouteGuard returns a middleware that applies the guard decision table to every
// request using only the presence of the access_token cookie. Redirects away
// from the login page apply to page loads (GET/HEAD) only, so a browser with a
// stale cookie can still post credentials.
func RouteGuard(guard domainauth.RouteGuard, sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := guard.Decide(r.URL.Path, HasTokenCookie(r))
			if decision == domainauth.DecisionRedirectDashboard && !isPageLoad(r) {
				decision = domainauth.DecisionAllow
			}
			metrics.EmitGuardDecision(sink, decision.String())

			switch decision {
			case domainauth.DecisionRedirectLogin:
				navigate(w, r, guard.LoginTarget(), http.StatusUnauthorized)
			case domainauth.DecisionRedirectDashboard:
				navigate(w, r, guard.DashboardTarget(), http.StatusOK)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func isPageLoad(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// BackendFactory binds the backend client to one browser session.
type BackendFactory func(tokens ports.TokenSource, onUnauthorized ports.UnauthorizedHandler) ports.BackendAPI

// ClientSessionConfig configures the ClientSession middleware.
type ClientSessionConfig struct {
	Storage      ports.ClientStorageProvider // Required: durable storage backend
	Backend      BackendFactory              // Required: session-bound backend client
	Hooks        service.SessionHooks        // Optional: verifier, logger and metrics for each session
	CookieDomain string
}

// ClientSession returns a middleware that identifies the browser by its sid
// cookie, restores its session from durable storage and binds a backend client
// whose 401 handling tears that session down. A navigation requested during the
// request is written if the handler did not answer on its own.
func ClientSession(cfg ClientSessionConfig) func(http.Handler) http.Handler {
	if cfg.Storage == nil || cfg.Backend == nil {
		panic("ClientSession requires Storage and Backend")
	}
	logger := cfg.Hooks.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := clientIDFromRequest(r)
			if clientID == "" {
				clientID = uuid.NewString()
				setClientIDCookie(w, r, cfg.CookieDomain, clientID)
			}

			nav := &pendingNavigation{}
			session := service.NewSessionService(service.SessionServiceOptions{
				Storage: cfg.Storage.ForClient(clientID),
				Browser: service.SessionBrowser{
					Cookies:   newTokenCookie(w, r, cfg.CookieDomain),
					Navigator: nav,
				},
				Hooks: cfg.Hooks,
			})
			if err := session.Hydrate(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "restore session failed", "error", err)
				WriteError(w, ErrorParams{
					Code:    http.StatusServiceUnavailable,
					ErrCode: "session_unavailable",
					Err:     err,
				})
				return
			}

			sc := &requestScope{
				session: session,
				api:     cfg.Backend(session, session),
				nav:     nav,
				logger:  logger,
			}
			if reqID := w.Header().Get(RequestIDHeader); reqID != "" {
				sc.logger = logger.With("request_id", reqID)
			}
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r.WithContext(withScope(r.Context(), sc)))

			if target := nav.Target(); target != "" && !ww.wroteHeader {
				navigate(w, r, target, http.StatusUnauthorized)
			}
		})
	}
}

func clientIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(ClientIDCookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}
