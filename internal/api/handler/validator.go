package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Field errors are not
// rendered; each flow answers with its own fixed message.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}

// bindAndValidate decodes the body into req and validates it. Any failure,
// including a malformed body, is reported as invalid.
func bindAndValidate(c echo.Context, req any, invalid error) error {
	if err := c.Bind(req); err != nil {
		return invalid
	}
	if err := c.Validate(req); err != nil {
		return invalid
	}
	return nil
}
