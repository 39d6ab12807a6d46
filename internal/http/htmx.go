package httpx

import (
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// SetHXRedirect instructs htmx to redirect the browser to the given URL.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// WantsJSON reports whether the caller is script code expecting a JSON answer
// rather than a browser following redirects. htmx requests are handled separately.
func WantsJSON(r *http.Request) bool {
	if IsHTMX(r) {
		return false
	}
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	if accept == "" || strings.Contains(accept, "text/html") {
		return false
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
