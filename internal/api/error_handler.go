package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Clients
// match on either key, so both carry the same text.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to HTTP status codes by kind.
//   - Logs server-side failures with the request method and path.
//   - Renders a consistent JSON envelope: {"message": "...", "error": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg, Error: msg})
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// A failed login answers 400 so it reads like any other bad form.
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return http.StatusBadRequest, domain.ErrInvalidCredentials.Message
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation, domain.KindConflict:
			return http.StatusBadRequest, de.Message
		case domain.KindAuth:
			return http.StatusUnauthorized, de.Message
		case domain.KindNotFound:
			return http.StatusNotFound, de.Message
		}
	}

	// Internal failures carry their underlying message.
	return http.StatusInternalServerError, err.Error()
}
