package auth

import "strings"

// GuardMode selects how protected paths are recognised.
type GuardMode string

const (
	// GuardStrict protects every path that is not explicitly public.
	GuardStrict GuardMode = "strict"
	// GuardLegacy protects only paths with a listed prefix, using a raw prefix match.
	GuardLegacy GuardMode = "legacy"
)

// Decision is the outcome of evaluating a navigation.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectLogin
	DecisionRedirectDashboard
)

func (d Decision) String() string {
	switch d {
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectDashboard:
		return "redirect_dashboard"
	default:
		return "allow"
	}
}

const (
	DefaultLoginPath     = "/login"
	DefaultDashboardPath = "/dashboard"
)

// LegacyProtectedPrefixes is the prefix list used when no other is configured.
var LegacyProtectedPrefixes = []string{"/dashboard", "/manager", "/admin", "/skills", "/users"}

// DefaultPublicPaths lists paths reachable without a session in strict mode.
var DefaultPublicPaths = []string{"/login", "/register", "/forgot-password", "/auth/", "/healthz", "/static/", "/designations"}

// RouteGuard decides whether a navigation may proceed. It only looks at the path
// and whether the access_token cookie is present; token validity is not checked.
type RouteGuard struct {
	Mode              GuardMode
	ProtectedPrefixes []string
	PublicPaths       []string
	LoginPath         string
	DashboardPath     string
}

// NewRouteGuard returns a guard with defaults filled in for empty fields.
func NewRouteGuard(mode GuardMode, protected, public []string) RouteGuard {
	if mode != GuardLegacy {
		mode = GuardStrict
	}
	if len(protected) == 0 {
		protected = LegacyProtectedPrefixes
	}
	if len(public) == 0 {
		public = DefaultPublicPaths
	}
	return RouteGuard{
		Mode:              mode,
		ProtectedPrefixes: protected,
		PublicPaths:       public,
		LoginPath:         DefaultLoginPath,
		DashboardPath:     DefaultDashboardPath,
	}
}

// Decide evaluates a navigation to path.
func (g RouteGuard) Decide(path string, hasCookie bool) Decision {
	if hasCookie {
		if path == g.loginPath() {
			return DecisionRedirectDashboard
		}
		return DecisionAllow
	}
	if g.IsProtected(path) {
		return DecisionRedirectLogin
	}
	return DecisionAllow
}

// IsProtected reports whether path requires a session.
func (g RouteGuard) IsProtected(path string) bool {
	if g.Mode == GuardLegacy {
		for _, p := range g.ProtectedPrefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
	if path == g.loginPath() {
		return false
	}
	for _, p := range g.PublicPaths {
		if matchPublic(path, p) {
			return false
		}
	}
	return true
}

// LoginTarget returns the path unauthenticated users are sent to.
func (g RouteGuard) LoginTarget() string { return g.loginPath() }

// DashboardTarget returns the path authenticated users are sent to from login.
func (g RouteGuard) DashboardTarget() string {
	if g.DashboardPath == "" {
		return DefaultDashboardPath
	}
	return g.DashboardPath
}

func (g RouteGuard) loginPath() string {
	if g.LoginPath == "" {
		return DefaultLoginPath
	}
	return g.LoginPath
}

func matchPublic(path, entry string) bool {
	if strings.HasSuffix(entry, "/") {
		return strings.HasPrefix(path, entry)
	}
	return path == entry || strings.HasPrefix(path, entry+"/")
}
