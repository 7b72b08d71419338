package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

func TestValidator_ReportsFieldErrors(t *testing.T) {
	err := NewValidator().Validate(&registerRequest{Email: "a@example.com"})

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected validator.ValidationErrors, got %v", err)
	}
	if len(ve) != 2 {
		t.Fatalf("expected name and password to fail, got %v", ve)
	}

	if err := NewValidator().Validate(&registerRequest{Name: "a", Email: "a@example.com", Password: "p"}); err != nil {
		t.Fatalf("complete request should pass: %v", err)
	}
}

func TestBindAndValidate_MapsEveryFailureToFlowError(t *testing.T) {
	for _, body := range []string{`{"email":"a@example.com"}`, `{"email":`} {
		c, _ := newContext(http.MethodPost, "/api/auth/login", body)
		var req loginRequest
		if err := bindAndValidate(c, &req, domain.ErrInvalidCredentials); err != domain.ErrInvalidCredentials {
			t.Fatalf("body %s: expected the flow error unchanged, got %v", body, err)
		}
	}

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"p"}`)
	var req loginRequest
	if err := bindAndValidate(c, &req, domain.ErrInvalidCredentials); err != nil {
		t.Fatalf("valid body: %v", err)
	}
	if req.Email != "a@example.com" || req.Password != "p" {
		t.Fatalf("request not bound: %+v", req)
	}
}
