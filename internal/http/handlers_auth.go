package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/adapters/backend"
	domainauth "github.com/skillhub/skills-dashboard/internal/domain/auth"
	"github.com/skillhub/skills-dashboard/internal/domain/model"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/service"
)

// AuthHandlers provides HTTP handlers for authentication and account operations.
type AuthHandlers struct {
	Guard  domainauth.RouteGuard
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginResult is returned to script callers after a successful login.
type loginResult struct {
	RedirectTo string               `json:"redirect_to"`
	Session    service.SessionState `json:"session"`
}

// LoginPage reports the (signed-out) session state of the login screen.
// GET /login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, sc.session.State())
}

// Login exchanges credentials with the backend and stores the session.
// Rejected credentials answer 401 invalid_credentials and leave the session untouched.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	var req model.LoginRequest
	if !DecodeValid(w, r, &req) {
		return
	}

	resp, err := sc.api.Login(r.Context(), req)
	if err != nil {
		if backend.IsUnauthorized(err) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: string(apperrors.ErrCodeInvalidCredentials),
				Err:     errors.New("invalid employee code or password"),
			})
			return
		}
		respondError(w, r, err)
		return
	}

	if err := sc.session.Login(r.Context(), resp); err != nil {
		h.logger().WarnContext(r.Context(), "login could not be stored", "error", err)
		respondError(w, r, err)
		return
	}

	target := h.Guard.DashboardTarget()
	if IsHTMX(r) || !WantsJSON(r) {
		navigate(w, r, target, http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, loginResult{RedirectTo: target, Session: sc.session.State()})
}

// Logout tears the session down and sends the browser to the login page.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	if err := sc.session.Logout(r.Context()); err != nil {
		// In-memory state and the cookie are already cleared.
		h.logger().WarnContext(r.Context(), "logout left durable records behind", "error", err)
	}
	target := sc.nav.Target()
	if target == "" {
		target = h.Guard.LoginTarget()
	}
	navigate(w, r, target, http.StatusOK)
}

// Session returns the current session state for the UI.
// GET /session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, sc.session.State())
}

// Register creates an account.
// POST /register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	var req model.RegisterRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	user, err := sc.api.Register(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

// Designations lists the designations offered at registration.
// GET /designations.
func (h *AuthHandlers) Designations(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	out, err := sc.api.Designations(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, nonNil(out))
}

// ForgotPassword starts the password reset flow by mailing a one-time password.
// POST /auth/forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	var req model.ForgotPasswordRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	if err := sc.api.ForgotPassword(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}
	writeStatus(w, http.StatusAccepted, "otp_sent")
}

// VerifyOTP exchanges the one-time password for a reset token.
// POST /auth/verify-otp.
func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	var req model.VerifyOTPRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	out, err := sc.api.VerifyOTP(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// resetPasswordBody carries the confirmation that never leaves the BFF.
type resetPasswordBody struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword completes the reset flow. The confirmation must match before
// the backend is called.
// POST /auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	sc, ok := requireScope(w, r)
	if !ok {
		return
	}
	var body resetPasswordBody
	if !DecodeJSON(w, r, &body) {
		return
	}
	req := model.ResetPasswordRequest{
		Token:           body.Token,
		NewPassword:     body.NewPassword,
		ConfirmPassword: body.ConfirmPassword,
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, model.ErrPasswordMismatch) {
			err = apperrors.ValidationField("confirmPassword", err.Error())
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: string(apperrors.ErrCodeValidation), Err: err})
		return
	}
	if err := sc.api.ResetPassword(r.Context(), req); err != nil {
		respondError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "password_reset", "redirect_to": h.Guard.LoginTarget()})
}

// requireScope fetches the per-request session, answering 500 when the
// ClientSession middleware is missing.
func requireScope(w http.ResponseWriter, r *http.Request) (*requestScope, bool) {
	sc, ok := scopeFromContext(r.Context())
	if !ok || sc.api == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: string(apperrors.ErrCodeInternal),
			Err:     errors.New("session middleware not configured"),
		})
		return nil, false
	}
	return sc, true
}

// requireSession is requireScope for protected handlers. A request without a
// token tears the session down and is sent to the login page.
func requireSession(w http.ResponseWriter, r *http.Request) (*requestScope, bool) {
	sc, ok := requireScope(w, r)
	if !ok {
		return nil, false
	}
	if sc.session.IsAuthenticated() {
		return sc, true
	}
	if err := sc.session.HandleUnauthorized(r.Context()); err != nil {
		requestLogger(r).WarnContext(r.Context(), "clearing stale session failed", "error", err)
	}
	respondError(w, r, apperrors.Unauthorized("not signed in"))
	return nil, false
}

// nonNil keeps empty lists serialised as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
