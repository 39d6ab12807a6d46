package httpx

import (
	"net/http"
	"strings"
	"sync"
	"time"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/ports"
)

// ClientIDCookieName holds the id of the browser's durable storage namespace.
const ClientIDCookieName = "sid"

const clientIDMaxAge = 365 * 24 * time.Hour

// isSecureRequest reports whether the request arrived over HTTPS, accounting for proxies.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// HasTokenCookie reports whether the request carries a non-empty access_token cookie.
func HasTokenCookie(r *http.Request) bool {
	c, err := r.Cookie(domainauth.TokenCookieName)
	return err == nil && c.Value != ""
}

// tokenCookie writes the access_token cookie the route guard reads. Writes are
// serialised since backend calls fanned out by one handler share it.
type tokenCookie struct {
	mu     sync.Mutex
	w      http.ResponseWriter
	secure bool
	domain string
}

var _ ports.AuthCookie = (*tokenCookie)(nil)

func newTokenCookie(w http.ResponseWriter, r *http.Request, domain string) *tokenCookie {
	return &tokenCookie{w: w, secure: isSecureRequest(r), domain: domain}
}

// Set writes the token as a browser-session cookie with no explicit expiry.
func (c *tokenCookie) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	http.SetCookie(c.w, &http.Cookie{
		Name:     domainauth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.domain,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Expire deletes the cookie, mirroring the attributes used when it was set.
func (c *tokenCookie) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	http.SetCookie(c.w, &http.Cookie{
		Name:     domainauth.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		HttpOnly: true,
		Secure:   c.secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func setClientIDCookie(w http.ResponseWriter, r *http.Request, domain, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ClientIDCookieName,
		Value:    id,
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(clientIDMaxAge.Seconds()),
	})
}

// pendingNavigation records the hard navigation requested by the session so the
// response can carry it once the handler is done.
type pendingNavigation struct {
	mu     sync.Mutex
	target string
}

var _ ports.Navigator = (*pendingNavigation)(nil)

func (n *pendingNavigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = path
}

func (n *pendingNavigation) Target() string {
	if n == nil {
		return ""
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// navigate sends the client to target: a 303 for browsers, Hx-Redirect for
// htmx and a JSON body carrying redirect_to (with jsonStatus) for scripts.
func navigate(w http.ResponseWriter, r *http.Request, target string, jsonStatus int) {
	switch {
	case IsHTMX(r):
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
	case WantsJSON(r):
		WriteJSON(w, jsonStatus, map[string]string{"redirect_to": target})
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
