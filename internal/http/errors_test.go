package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillhub/skills-dashboard/internal/adapters/backend"
	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{
			name:     "backend status passes through",
			err:      fmt.Errorf("get user: %w", &backend.APIError{StatusCode: http.StatusConflict, Message: "Email already exists"}),
			wantCode: http.StatusConflict,
			wantErr:  "conflict",
			wantMsg:  "Email already exists",
		},
		{
			name:     "backend status without message",
			err:      &backend.APIError{StatusCode: http.StatusForbidden},
			wantCode: http.StatusForbidden,
			wantErr:  "forbidden",
			wantMsg:  "Forbidden",
		},
		{
			name:     "undecodable backend response",
			err:      &backend.DecodeError{Endpoint: "/skills", Err: errors.New("bad json")},
			wantCode: http.StatusBadGateway,
			wantErr:  "upstream",
			wantMsg:  "unexpected response from the skills service",
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("team members: %w", context.DeadlineExceeded),
			wantCode: http.StatusGatewayTimeout,
			wantErr:  "timeout",
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantCode: 499,
			wantErr:  "canceled",
		},
		{
			name:     "app error",
			err:      apperrors.ValidationField("id", "user id is required"),
			wantCode: http.StatusBadRequest,
			wantErr:  "validation",
		},
		{
			name:     "unknown error is hidden",
			err:      errors.New("dial tcp: secret host"),
			wantCode: http.StatusInternalServerError,
			wantErr:  "internal",
			wantMsg:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := errorResponse(tt.err)
			assert.Equal(t, tt.wantCode, p.Code)
			assert.Equal(t, tt.wantErr, p.ErrCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, p.Err.Error())
			}
		})
	}
}

func TestRespondError_PendingNavigationWins(t *testing.T) {
	nav := &pendingNavigation{}
	nav.Navigate("/login")
	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	req.Header.Set("Accept", "application/json")
	req = req.WithContext(withScope(req.Context(), &requestScope{nav: nav}))

	w := httptest.NewRecorder()
	respondError(w, req, &backend.APIError{StatusCode: http.StatusUnauthorized})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"redirect_to":"/login"}`, w.Body.String())
}

func TestRespondError_WritesJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, httptest.NewRequest(http.MethodGet, "/users/1", nil), apperrors.ValidationField("id", "user id is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"validation","message":"user id is required","field":"id"}`, w.Body.String())
}

func TestRespondError_LogsThroughRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(withScope(req.Context(), &requestScope{nav: &pendingNavigation{}, logger: logger}))

	w := httptest.NewRecorder()
	respondError(w, req, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "database exploded")
}
