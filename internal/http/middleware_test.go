package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/skills-dashboard/internal/adapters/memstore"
	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
	"github.com/skillhub/skills-dashboard/internal/ports"
	"github.com/skillhub/skills-dashboard/internal/service"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withTokenCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: domainauth.TokenCookieName, Value: "tok"})
	return r
}

func TestRouteGuard_Decisions(t *testing.T) {
	guard := domainauth.NewRouteGuard(domainauth.GuardStrict, nil, nil)

	tests := []struct {
		name     string
		method   string
		path     string
		cookie   bool
		wantCode int
		wantLoc  string
	}{
		{name: "protected without cookie", method: http.MethodGet, path: "/dashboard", wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "nested protected without cookie", method: http.MethodGet, path: "/admin/x", wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "skills without cookie", method: http.MethodGet, path: "/skills", wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "users without cookie", method: http.MethodGet, path: "/users/x", wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "public without cookie", method: http.MethodGet, path: "/register", wantCode: http.StatusNoContent},
		{name: "login without cookie", method: http.MethodGet, path: "/login", wantCode: http.StatusNoContent},
		{name: "login with cookie", method: http.MethodGet, path: "/login", cookie: true, wantCode: http.StatusSeeOther, wantLoc: "/dashboard"},
		{name: "login post with stale cookie", method: http.MethodPost, path: "/login", cookie: true, wantCode: http.StatusNoContent},
		{name: "protected with cookie", method: http.MethodGet, path: "/dashboard", cookie: true, wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &statsd.Recorder{}
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Accept", "text/html")
			if tt.cookie {
				withTokenCookie(req)
			}
			w := httptest.NewRecorder()

			RouteGuard(guard, rec)(okHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			assert.Len(t, rec.Samples(), 1)
		})
	}
}

func TestRouteGuard_RedirectStyles(t *testing.T) {
	guard := domainauth.NewRouteGuard(domainauth.GuardStrict, nil, nil)
	h := RouteGuard(guard, nil)(okHandler)

	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Hx-Request", "true")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Hx-Redirect"))
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"redirect_to":"/login"}`, w.Body.String())
	})
}

func TestRouteGuard_CountsDecisions(t *testing.T) {
	rec := &statsd.Recorder{}
	h := RouteGuard(domainauth.NewRouteGuard(domainauth.GuardStrict, nil, nil), rec)(okHandler)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	h.ServeHTTP(httptest.NewRecorder(), withTokenCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))
	h.ServeHTTP(httptest.NewRecorder(), withTokenCookie(httptest.NewRequest(http.MethodGet, "/login", nil)))

	assert.Equal(t, int64(1), rec.Counter("guard.decision", map[string]string{"decision": "redirect_login"}))
	assert.Equal(t, int64(1), rec.Counter("guard.decision", map[string]string{"decision": "allow"}))
	assert.Equal(t, int64(1), rec.Counter("guard.decision", map[string]string{"decision": "redirect_dashboard"}))
}

func TestRouteGuard_LegacyMode(t *testing.T) {
	guard := domainauth.NewRouteGuard(domainauth.GuardLegacy, nil, nil)
	h := RouteGuard(guard, nil)(okHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/helpdesk/tickets", nil))
	assert.Equal(t, http.StatusNoContent, w.Code, "legacy mode protects listed prefixes only")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboardx", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code, "legacy mode uses a raw prefix match")
}

// stubBackend satisfies ports.BackendAPI for middleware tests that never call it.
type stubBackend struct {
	ports.BackendAPI
	tokens         ports.TokenSource
	onUnauthorized ports.UnauthorizedHandler
}

func stubFactory(got **stubBackend) BackendFactory {
	return func(tokens ports.TokenSource, onUnauthorized ports.UnauthorizedHandler) ports.BackendAPI {
		b := &stubBackend{tokens: tokens, onUnauthorized: onUnauthorized}
		if got != nil {
			*got = b
		}
		return b
	}
}

func seedSession(t *testing.T, store *memstore.Storage, clientID, token string, user domainauth.User) {
	t.Helper()
	ns := store.ForClient(clientID)
	rec, err := json.Marshal(domainauth.AuthRecord{User: &user, AccessToken: token})
	require.NoError(t, err)
	require.NoError(t, ns.Set(context.Background(), domainauth.StorageKeyAuth, rec))
	u, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, ns.Set(context.Background(), domainauth.StorageKeyUserData, u))
}

func TestClientSession_IssuesClientID(t *testing.T) {
	store := memstore.New(0)
	var seen *service.SessionService
	h := ClientSession(ClientSessionConfig{Storage: store, Backend: stubFactory(nil)})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SessionFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.NotNil(t, seen)
	assert.False(t, seen.IsAuthenticated())

	var sid *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == ClientIDCookieName {
			sid = c
		}
	}
	require.NotNil(t, sid, "a new browser gets a sid cookie")
	_, err := uuid.Parse(sid.Value)
	require.NoError(t, err)
	assert.True(t, sid.HttpOnly)
	assert.Equal(t, 365*24*60*60, sid.MaxAge)
}

func TestClientSession_RestoresSession(t *testing.T) {
	store := memstore.New(0)
	sid := uuid.NewString()
	seedSession(t, store, sid, "tok-1", domainauth.User{ID: "7", Role: domainauth.RoleManager})

	var backend *stubBackend
	var seen *service.SessionService
	h := ClientSession(ClientSessionConfig{Storage: store, Backend: stubFactory(&backend)})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SessionFromContext(r.Context())
			api, ok := BackendFromContext(r.Context())
			assert.True(t, ok)
			assert.NotNil(t, api)
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: ClientIDCookieName, Value: sid})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.NotNil(t, seen)
	assert.True(t, seen.IsAuthenticated())
	assert.Equal(t, domainauth.DashboardManager, seen.ActiveDashboard())
	assert.Empty(t, w.Result().Cookies(), "known browsers keep their sid")

	require.NotNil(t, backend)
	tok, err := backend.tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestClientSession_UnauthorizedNavigatesToLogin(t *testing.T) {
	store := memstore.New(0)
	sid := uuid.NewString()
	seedSession(t, store, sid, "tok-1", domainauth.User{ID: "7", Role: domainauth.RoleEmployee})

	var backend *stubBackend
	h := ClientSession(ClientSessionConfig{Storage: store, Backend: stubFactory(&backend)})(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			// The handler observes the 401 but writes nothing itself.
			_ = backend.onUnauthorized.HandleUnauthorized(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: ClientIDCookieName, Value: sid})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"redirect_to":"/login"}`, w.Body.String())

	var expired bool
	for _, c := range w.Result().Cookies() {
		if c.Name == domainauth.TokenCookieName && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "access_token cookie must be expired")

	_, ok, err := store.ForClient(sid).Get(context.Background(), domainauth.StorageKeyAuth)
	require.NoError(t, err)
	assert.False(t, ok, "auth record must be removed")
	_, ok, err = store.ForClient(sid).Get(context.Background(), domainauth.StorageKeyUserData)
	require.NoError(t, err)
	assert.False(t, ok, "userdata record must be removed")
}

type failingProvider struct{}

func (failingProvider) ForClient(string) ports.DurableStorage { //nolint:ireturn // port contract
	return failingStorage{}
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("storage down")
}
func (failingStorage) Set(context.Context, string, []byte) error { return errors.New("storage down") }
func (failingStorage) Remove(context.Context, string) error      { return errors.New("storage down") }

func TestClientSession_StorageUnavailable(t *testing.T) {
	h := ClientSession(ClientSessionConfig{Storage: failingProvider{}, Backend: stubFactory(nil)})(okHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "session_unavailable")
}

func TestClientSession_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { ClientSession(ClientSessionConfig{Backend: stubFactory(nil)}) })
	assert.Panics(t, func() { ClientSession(ClientSessionConfig{Storage: memstore.New(0)}) })
}

func TestClientSession_BindsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reqID := uuid.NewString()

	h := ClientSession(ClientSessionConfig{
		Storage: memstore.New(0),
		Backend: stubFactory(nil),
		Hooks:   service.SessionHooks{Logger: logger},
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).InfoContext(r.Context(), "inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(RequestIDHeader, reqID)
	Logging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(h).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "inside handler")
	assert.Contains(t, buf.String(), "request_id="+reqID)
}

func TestLogging_AssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	w := httptest.NewRecorder()
	Logging(logger)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"status":204`)
	assert.Contains(t, buf.String(), id)
}

func TestLogging_KeepsValidRequestID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	Logging(logger)(okHandler).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "boom")

	abort := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
