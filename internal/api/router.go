package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/reflectify/reflectify-api/docs"
	"github.com/reflectify/reflectify-api/internal/api/handler"
	"github.com/reflectify/reflectify-api/internal/api/middleware"
	"github.com/reflectify/reflectify-api/internal/core/ports"
	"github.com/reflectify/reflectify-api/internal/infrastructure/http/handlers"
)

const bodyLimit = "1M"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth        ports.AuthService
	Analysis    ports.AnalysisService
	Readiness   *handlers.HealthDependenciesHandler
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddleware("reflectify"))

	guard := middleware.Auth(d.Auth, d.Log)
	authHandler := handler.NewAuthHandler(d.Auth)
	analysisHandler := handler.NewAnalysisHandler(d.Analysis)

	// --- Auth routes ---
	// Logout stays outside the guard so a revoked token can log out again.
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/profile", authHandler.Profile, guard)

	// --- Analysis routes ---
	ai := e.Group("/api/ai", guard)
	ai.POST("/emotion", analysisHandler.Emotion)
	ai.GET("/emotion", analysisHandler.History)
	ai.POST("/expense", analysisHandler.Expense)

	// --- Health checks (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
