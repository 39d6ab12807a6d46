package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// DashboardHandlers serves the role-specific dashboards and user reports.
type DashboardHandlers struct {
	Logger *slog.Logger
}

func (h *DashboardHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *DashboardHandlers) service(sc *requestScope) *service.DashboardService {
	return service.NewDashboardService(service.DashboardServiceOptions{
		API:    sc.api,
		Users:  sc.api,
		Logger: h.logger(),
	})
}

// Dashboard renders the dashboard for the signed-in role. Managers and admins
// may preview another variant with ?view=; everyone else always gets their
// role default. Each request starts from the default, so a reload without
// ?view= resets the preview.
// GET /dashboard.
func (h *DashboardHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	var user domainauth.User
	if u := sc.session.User(); u != nil {
		user = *u
	}

	q := r.URL.Query()
	var requested *domainauth.Dashboard
	if v := strings.ToLower(strings.TrimSpace(q.Get("view"))); v != "" {
		d := domainauth.Dashboard(v)
		requested = &d
	}
	dash := domainauth.ResolveDashboard(user.Role, requested)
	sc.session.SwitchView(dash)

	view, err := h.service(sc).Build(r.Context(), service.DashboardQuery{
		Dashboard:  dash,
		UserID:     user.ID,
		Search:     q.Get("search"),
		Department: q.Get("department"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	view.CanSwitchView = domainauth.CanSwitchView(user.Role)
	WriteJSON(w, http.StatusOK, view)
}

// Profile returns the signed-in user's full record.
// GET /profile.
func (h *DashboardHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	u := sc.session.User()
	if u == nil || u.ID.IsZero() {
		respondError(w, r, apperrors.NotFoundf("session has no user record"))
		return
	}
	profile, err := sc.api.GetUser(r.Context(), u.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// UserReport summarises one user's assessments for printing.
// GET /reports/users/{id}.
func (h *DashboardHandlers) UserReport(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireSession(w, r)
	if !ok {
		return
	}
	rep, err := h.service(sc).UserReport(r.Context(), pathID(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}

// pathID reads a record identifier from the route pattern.
func pathID(r *http.Request, name string) domainauth.ID {
	return domainauth.ID(strings.TrimSpace(r.PathValue(name)))
}
