package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "All fields are required"},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest, "User already exists"},
		{"bad login", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
		{"no token", domain.ErrNoToken, http.StatusUnauthorized, "Not authorized, no token provided"},
		{"revoked", domain.ErrTokenRevoked, http.StatusUnauthorized, "Token has been revoked. Please log in again."},
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized, "Session expired, please log in again."},
		{"invalid", domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid token, please log in again."},
		{"user gone", domain.ErrUserNotFound, http.StatusNotFound, "User not found, please log in again."},
		{"prompt", domain.ErrPromptRequired, http.StatusBadRequest, "Prompt is required"},
		{"wrapped", fmt.Errorf("login: %w", domain.ErrInvalidCredentials), http.StatusBadRequest, "Invalid email or password"},
		{"unscored", fmt.Errorf("analyze: %w", domain.ErrUnscoredReport), http.StatusInternalServerError, "analyze: analysis response did not contain a numeric score"},
		{"infra", errors.New("mongo: connection refused"), http.StatusInternalServerError, "mongo: connection refused"},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			handler(tc.err, e.NewContext(req, rec))

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Message != tc.wantMsg || body.Error != tc.wantMsg {
				t.Fatalf("expected %q in both keys, got %+v", tc.wantMsg, body)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNoToken, c)
	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
