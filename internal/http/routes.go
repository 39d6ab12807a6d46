package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/ports"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// RouterOptions toggles the optional middleware.
type RouterOptions struct {
	CookieDomain       string
	CSRFEnabled        bool
	CompressionEnabled bool
	CompressionLevel   int
}

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Storage ports.ClientStorageProvider // Required: durable per-browser storage
	Backend BackendFactory              // Required: session-bound skills backend client
	Guard   domainauth.RouteGuard
	Session service.SessionHooks   // Optional: token verifier, logger and metrics sink
	Health  map[string]HealthCheck // Optional: readiness checks served at /readyz
	Options RouterOptions
	Logger  *slog.Logger
}

// NewRouter builds the BFF handler. Health endpoints bypass the session chain;
// everything else runs through the route guard and the per-browser session.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if services.Session.Logger == nil {
		services.Session.Logger = logger
	}

	app := http.NewServeMux()
	registerAuthRoutes(app, &AuthHandlers{Guard: services.Guard, Logger: logger})
	registerDashboardRoutes(app, &DashboardHandlers{Logger: logger})
	registerUserRoutes(app, &UserHandlers{})
	registerSkillRoutes(app, &SkillHandlers{})
	registerHelpdeskRoutes(app, &HelpdeskHandlers{})
	app.HandleFunc("/", notFound)

	var chain http.Handler = app
	if services.Options.CSRFEnabled {
		chain = CSRFProtection(CSRFConfig{CookieDomain: services.Options.CookieDomain})(chain)
	}
	chain = ClientSession(ClientSessionConfig{
		Storage:      services.Storage,
		Backend:      services.Backend,
		Hooks:        services.Session,
		CookieDomain: services.Options.CookieDomain,
	})(chain)
	chain = RouteGuard(services.Guard, services.Session.Metrics)(chain)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("HEAD /healthz", healthHandler)
	root.Handle("GET /readyz", readinessHandler(services.Health))
	root.Handle("/", chain)

	var handler http.Handler = root
	if services.Options.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.Options.CompressionLevel, Logger: logger})(handler)
	}
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /session", h.Session)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /designations", h.Designations)
	mux.HandleFunc("POST /auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /auth/verify-otp", h.VerifyOTP)
	mux.HandleFunc("POST /auth/reset-password", h.ResetPassword)
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers) {
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /profile", h.Profile)
	mux.HandleFunc("GET /reports/users/{id}", h.UserReport)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers) {
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("GET /users/{id}", h.Get)
	mux.HandleFunc("PATCH /users/{id}", h.Update)
	mux.HandleFunc("PATCH /users/team-members/{id}/skills/{skillId}", h.UpdateMemberSkill)
}

func registerSkillRoutes(mux *http.ServeMux, h *SkillHandlers) {
	mux.HandleFunc("GET /skills", h.Directory)
	mux.HandleFunc("POST /skills", h.Create)
	mux.HandleFunc("POST /skills/assessments", h.Assess)
}

func registerHelpdeskRoutes(mux *http.ServeMux, h *HelpdeskHandlers) {
	mux.HandleFunc("GET /helpdesk/tickets", h.List)
	mux.HandleFunc("POST /helpdesk/tickets", h.Create)
	mux.HandleFunc("PATCH /helpdesk/tickets/{id}", h.Update)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: string(apperrors.ErrCodeNotFound),
		Err:     apperrors.NotFoundf("no route for %s %s", r.Method, r.URL.Path),
	})
}
