package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/observability/metrics"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
	"github.com/skillhub/skills-dashboard/internal/ports"
)

// LoginPath is where teardown sends the browser.
const LoginPath = "/login"

// SessionBrowser groups the browser-facing side effects of the session.
type SessionBrowser struct {
	Cookies   ports.AuthCookie // Required: mirrors the token into the guard cookie
	Navigator ports.Navigator  // Required: performs the hard navigation after teardown
}

// SessionHooks groups optional collaborators.
type SessionHooks struct {
	Verifier ports.TokenVerifier // Optional: rejects tokens before they are stored
	Logger   *slog.Logger        // Optional: defaults to slog.Default()
	Metrics  statsd.Sink         // Optional: session transition counters
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Storage ports.DurableStorage // Required: the browser's durable namespace
	Browser SessionBrowser
	Hooks   SessionHooks
}

// SessionState is the snapshot handed to subscribers and exposed to the UI.
type SessionState struct {
	User            *domainauth.User     `json:"user"`
	Authenticated   bool                 `json:"authenticated"`
	ActiveDashboard domainauth.Dashboard `json:"activeDashboard"`
	CanSwitchView   bool                 `json:"canSwitchView"`
}

// SessionService is the single source of truth for who is signed in and with
// what credential. One instance serves one browser for one request.
type SessionService struct {
	storage  ports.DurableStorage
	cookies  ports.AuthCookie
	nav      ports.Navigator
	verifier ports.TokenVerifier
	logger   *slog.Logger
	metrics  statsd.Sink

	// teardownMu serialises teardowns triggered by concurrent backend calls.
	teardownMu sync.Mutex
	tornDown   bool

	mu        sync.Mutex
	user      *domainauth.User
	token     string
	active    domainauth.Dashboard
	listeners map[int]func(SessionState)
	nextID    int
}

var (
	_ ports.TokenSource         = (*SessionService)(nil)
	_ ports.UnauthorizedHandler = (*SessionService)(nil)
)

// NewSessionService constructs an empty SessionService. Call Hydrate to load
// the browser's persisted state.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Storage == nil {
		panic("SessionService requires Storage")
	}
	if opts.Browser.Cookies == nil || opts.Browser.Navigator == nil {
		panic("SessionService requires Browser.Cookies and Browser.Navigator")
	}
	logger := opts.Hooks.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		storage:   opts.Storage,
		cookies:   opts.Browser.Cookies,
		nav:       opts.Browser.Navigator,
		verifier:  opts.Hooks.Verifier,
		logger:    logger.With("component", "session"),
		metrics:   opts.Hooks.Metrics,
		active:    domainauth.DashboardEmployee,
		listeners: make(map[int]func(SessionState)),
	}
}

// Hydrate loads the identity from the userdata record and the token from the
// auth record. Unreadable records are logged and treated as absent.
func (s *SessionService) Hydrate(ctx context.Context) error {
	var user *domainauth.User
	var u domainauth.User
	found, err := s.readJSON(ctx, domainauth.StorageKeyUserData, &u)
	if err != nil {
		return err
	}
	if found {
		user = &u
	}

	var rec domainauth.AuthRecord
	found, err = s.readJSON(ctx, domainauth.StorageKeyAuth, &rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.token = rec.AccessToken
		if user == nil && rec.User != nil {
			user = rec.User
		}
	}
	s.setUserLocked(user)
	return nil
}

// readJSON reports found=false for missing or undecodable records.
func (s *SessionService) readJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.WarnContext(ctx, "ignoring unreadable session record", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// User returns a copy of the signed-in identity, or nil.
func (s *SessionService) User() *domainauth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

// Token returns the in-memory bearer token.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *SessionService) IsAuthenticated() bool {
	return s.Token() != ""
}

// ActiveDashboard returns the dashboard variant currently selected.
func (s *SessionService) ActiveDashboard() domainauth.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// State returns a snapshot of the session.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *SessionService) stateLocked() SessionState {
	st := SessionState{
		User:            copyUser(s.user),
		Authenticated:   s.token != "",
		ActiveDashboard: s.active,
	}
	if s.user != nil {
		st.CanSwitchView = domainauth.CanSwitchView(s.user.Role)
	}
	return st
}

// setUserLocked replaces the identity and re-derives the active dashboard.
func (s *SessionService) setUserLocked(u *domainauth.User) {
	s.user = copyUser(u)
	if s.user == nil {
		s.active = domainauth.DashboardEmployee
		return
	}
	s.active = domainauth.DefaultDashboard(s.user.Role)
}

// Login records a successful authentication. Memory is updated first; the
// durable records are then written and the cookie is set only when both
// writes succeed. A failed write rolls back whatever was stored and resets
// memory, so no half-written session survives into the next request.
func (s *SessionService) Login(ctx context.Context, resp domainauth.LoginResponse) (err error) {
	defer func() {
		metrics.EmitSessionTransition(s.metrics, metrics.SessionMetric{
			Transition: metrics.TransitionLogin,
			Role:       string(resp.User.Role),
			Err:        err,
		})
	}()

	if resp.AccessToken == "" {
		return apperrors.Unauthorized("login response carried no access token")
	}
	if s.verifier != nil {
		if verr := s.verifier.Verify(ctx, resp.AccessToken); verr != nil {
			return apperrors.Wrap(verr, apperrors.ErrCodeUnauthorized, "access token rejected")
		}
	}

	s.teardownMu.Lock()
	defer s.teardownMu.Unlock()

	user := resp.User
	s.mu.Lock()
	s.setUserLocked(&user)
	s.token = resp.AccessToken
	s.mu.Unlock()

	if err := s.writeJSON(ctx, domainauth.StorageKeyAuth, domainauth.AuthRecord{
		User:        &user,
		AccessToken: resp.AccessToken,
	}); err != nil {
		return s.rollbackLogin(ctx, err)
	}
	if err := s.writeJSON(ctx, domainauth.StorageKeyUserData, user); err != nil {
		return s.rollbackLogin(ctx, err)
	}
	s.tornDown = false
	s.cookies.Set(resp.AccessToken)
	s.notify()
	return nil
}

// rollbackLogin undoes a partially stored login. Both keys are removed since a
// failed write may still have landed.
func (s *SessionService) rollbackLogin(ctx context.Context, cause error) error {
	errs := []error{cause}
	for _, key := range []string{domainauth.StorageKeyAuth, domainauth.StorageKeyUserData} {
		if err := s.storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("roll back %s: %w", key, err))
		}
	}

	s.mu.Lock()
	s.setUserLocked(nil)
	s.token = ""
	s.mu.Unlock()

	s.notify()
	return errors.Join(errs...)
}

func (s *SessionService) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.storage.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Logout tears the session down and navigates to the login page.
func (s *SessionService) Logout(ctx context.Context) error {
	s.teardownMu.Lock()
	defer s.teardownMu.Unlock()
	return s.teardown(ctx, metrics.TransitionLogout)
}

// HandleUnauthorized runs the same teardown as Logout after the backend
// rejected the session's token. Parallel calls that all see the 401 tear the
// session down once; later calls are no-ops until the next Login.
func (s *SessionService) HandleUnauthorized(ctx context.Context) error {
	s.teardownMu.Lock()
	defer s.teardownMu.Unlock()
	if s.tornDown {
		return nil
	}
	return s.teardown(ctx, metrics.TransitionUnauthorized)
}

// teardown clears every piece of state the session owns, in order: cookie,
// auth record, userdata record, memory, subscribers, navigation. Key removal
// failures do not stop the remaining steps. Callers hold teardownMu.
func (s *SessionService) teardown(ctx context.Context, transition string) error {
	s.tornDown = true
	s.cookies.Expire()

	var errs []error
	for _, key := range []string{domainauth.StorageKeyAuth, domainauth.StorageKeyUserData} {
		if err := s.storage.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}

	s.mu.Lock()
	role := ""
	if s.user != nil {
		role = string(s.user.Role)
	}
	s.setUserLocked(nil)
	s.token = ""
	s.mu.Unlock()

	s.notify()
	s.nav.Navigate(LoginPath)

	err := errors.Join(errs...)
	if err != nil {
		s.logger.WarnContext(ctx, "session teardown incomplete", "transition", transition, "error", err)
	}
	metrics.EmitSessionTransition(s.metrics, metrics.SessionMetric{Transition: transition, Role: role, Err: err})
	return err
}

// SwitchView selects a dashboard variant. Who may switch is decided by the caller.
func (s *SessionService) SwitchView(d domainauth.Dashboard) {
	if !d.Valid() {
		return
	}
	s.mu.Lock()
	changed := s.active != d
	s.active = d
	role := ""
	if s.user != nil {
		role = string(s.user.Role)
	}
	s.mu.Unlock()

	if changed {
		metrics.EmitSessionTransition(s.metrics, metrics.SessionMetric{
			Transition: metrics.TransitionSwitchView,
			Role:       role,
		})
		s.notify()
	}
}

// Subscribe registers fn to be called synchronously after every state change.
// The returned function removes the subscription.
func (s *SessionService) Subscribe(fn func(SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *SessionService) notify() {
	s.mu.Lock()
	st := s.stateLocked()
	fns := make([]func(SessionState), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// AccessToken returns the token from the durable auth record, falling back to
// the in-memory token when the record is absent.
func (s *SessionService) AccessToken(ctx context.Context) (string, error) {
	var rec domainauth.AuthRecord
	found, err := s.readJSON(ctx, domainauth.StorageKeyAuth, &rec)
	if err != nil {
		return "", err
	}
	if found && rec.AccessToken != "" {
		return rec.AccessToken, nil
	}
	return s.Token(), nil
}

func copyUser(u *domainauth.User) *domainauth.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
