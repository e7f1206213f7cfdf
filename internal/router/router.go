package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/handler"
	"github.com/tallerapp/workshop-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check and the shell stylesheet.
func RegisterRoutes(e *echo.Echo, s *handler.StylesHandler) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
	// The stylesheet is public: the login dialog is styled before any
	// session exists.
	e.GET("/v1/styles", s.Get)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth; /v1/me sits behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the old one is revoked and a
	// new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body, no JWT required, so a
	// session can be ended even after the access token expired.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Account management is reserved for administrators.
	auth.POST("/users", a.CreateUser, middleware.RequireRole("admin"))
	auth.GET("/users", a.ListUsers, middleware.RequireRole("admin"))
}
