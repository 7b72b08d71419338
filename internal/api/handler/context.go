package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/reflectify/reflectify-api/internal/api/middleware"
	"github.com/reflectify/reflectify-api/internal/core/domain"
)

// currentUser returns the user attached by the session guard. A handler
// mounted without the guard sees ErrNoToken.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrNoToken
	}
	return user, nil
}

// presentedToken prefers the token kept by the guard and falls back to the
// Authorization header.
func presentedToken(c echo.Context) string {
	if token, _ := c.Get(middleware.TokenKey).(string); token != "" {
		return token
	}
	return middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
}
