package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteGuard_DecisionTable(t *testing.T) {
	for _, mode := range []GuardMode{GuardStrict, GuardLegacy} {
		g := NewRouteGuard(mode, nil, nil)
		t.Run(string(mode), func(t *testing.T) {
			tests := []struct {
				path      string
				hasCookie bool
				want      Decision
			}{
				{"/dashboard", false, DecisionRedirectLogin},
				{"/admin/x", false, DecisionRedirectLogin},
				{"/skills", false, DecisionRedirectLogin},
				{"/users/5", false, DecisionRedirectLogin},
				{"/manager/team", false, DecisionRedirectLogin},
				{"/login", true, DecisionRedirectDashboard},
				{"/login", false, DecisionAllow},
				{"/register", false, DecisionAllow},
				{"/dashboard", true, DecisionAllow},
				{"/users/5", true, DecisionAllow},
			}
			for _, tt := range tests {
				assert.Equal(t, tt.want, g.Decide(tt.path, tt.hasCookie), "path=%s cookie=%v", tt.path, tt.hasCookie)
			}
		})
	}
}

func TestRouteGuard_LegacyRawPrefix(t *testing.T) {
	g := NewRouteGuard(GuardLegacy, nil, nil)

	// Raw prefix matching also catches look-alike paths.
	assert.Equal(t, DecisionRedirectLogin, g.Decide("/dashboardextra", false))
	// Paths outside the list are reachable without a session.
	assert.Equal(t, DecisionAllow, g.Decide("/profile", false))
	assert.Equal(t, DecisionAllow, g.Decide("/helpdesk/tickets", false))
}

func TestRouteGuard_StrictDefaultsToProtected(t *testing.T) {
	g := NewRouteGuard(GuardStrict, nil, nil)

	assert.Equal(t, DecisionRedirectLogin, g.Decide("/profile", false))
	assert.Equal(t, DecisionRedirectLogin, g.Decide("/helpdesk/tickets", false))
	assert.Equal(t, DecisionRedirectLogin, g.Decide("/session", false))
	assert.Equal(t, DecisionAllow, g.Decide("/auth/verify-otp", false))
	assert.Equal(t, DecisionAllow, g.Decide("/healthz", false))
	assert.Equal(t, DecisionAllow, g.Decide("/static/app.css", false))
	assert.Equal(t, DecisionRedirectLogin, g.Decide("/registered", false))
}

func TestRouteGuard_CookieOnLoginSubpath(t *testing.T) {
	g := NewRouteGuard(GuardStrict, nil, nil)
	assert.Equal(t, DecisionAllow, g.Decide("/login/help", true))
}

func TestRouteGuard_ZeroValueTargets(t *testing.T) {
	var g RouteGuard
	assert.Equal(t, "/login", g.LoginTarget())
	assert.Equal(t, "/dashboard", g.DashboardTarget())
	assert.Equal(t, DecisionRedirectDashboard, g.Decide("/login", true))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "redirect_login", DecisionRedirectLogin.String())
	assert.Equal(t, "redirect_dashboard", DecisionRedirectDashboard.String())
}
