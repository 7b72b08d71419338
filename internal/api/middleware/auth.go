package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/internal/core/ports"
	"github.com/reflectify/reflectify-api/pkg/metrics"
)

// Context keys set by Auth for downstream handlers.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header value, or "" when the header has another shape.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.Split(header, " ")[1]
}

// Auth is the session guard. It rejects missing, revoked, expired and
// invalid tokens in that order, resolves the owning user and stores it in
// the context under UserKey. The raw token is kept under TokenKey.
func Auth(auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				reason := rejectionReason(err)
				metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("path", c.Path()).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("request rejected by session guard")
				return err
			}

			c.Set(UserKey, user)
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoToken):
		return "no_token"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
