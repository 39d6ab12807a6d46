package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/skillhub/skills-dashboard/internal/adapters/backend"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
)

// errorResponse maps err to the status, code and message served to the caller.
// Backend failures pass their status and message through unchanged.
func errorResponse(err error) ErrorParams {
	var apiErr *backend.APIError
	var decErr *backend.DecodeError
	switch {
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return ErrorParams{
			Code:    apiErr.StatusCode,
			ErrCode: string(apperrors.CodeForStatus(apiErr.StatusCode)),
			Err:     errors.New(msg),
		}
	case errors.As(err, &decErr):
		return ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: string(apperrors.ErrCodeUpstream),
			Err:     errors.New("unexpected response from the skills service"),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorParams{Code: http.StatusGatewayTimeout, ErrCode: string(apperrors.ErrCodeTimeout), Err: err}
	case errors.Is(err, context.Canceled):
		return ErrorParams{Code: apperrors.StatusForCode(apperrors.ErrCodeCanceled), ErrCode: string(apperrors.ErrCodeCanceled), Err: err}
	}

	if code := apperrors.GetCode(err); code != "" {
		return ErrorParams{Code: apperrors.StatusForCode(code), ErrCode: string(code), Err: err}
	}
	return ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: string(apperrors.ErrCodeInternal),
		Err:     errors.New("internal error"),
	}
}

// respondError writes err for the caller. When the session was torn down while
// handling the request, the forced navigation replaces the error body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if sc, ok := scopeFromContext(r.Context()); ok {
		if target := sc.nav.Target(); target != "" {
			navigate(w, r, target, http.StatusUnauthorized)
			return
		}
	}

	p := errorResponse(err)
	if p.Code >= http.StatusInternalServerError {
		requestLogger(r).ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", p.Code,
			"error", err,
		)
	}
	WriteError(w, p)
}
