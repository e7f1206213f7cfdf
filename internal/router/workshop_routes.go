package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/handler"
	"github.com/tallerapp/workshop-api/internal/middleware"
)

// RegisterWorkshop registers the workshop endpoints under /v1. Every
// route requires a valid JWT; both roles may read and write the
// catalogs, matching the desktop shell where any logged-in user
// operated every view. The optional extra middlewares (response cache,
// rate limiter) are appended to the group.
func RegisterWorkshop(e *echo.Echo, h *handler.WorkshopHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mws := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "user"),
	}, extra...)
	g := e.Group("/v1", mws...)

	// ---- Work orders ----
	g.GET("/orders", h.ListOrders) // ?advisor= exact filter, ?q= free text
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders/:number", h.GetOrder)

	// ---- Parts on an order ----
	g.GET("/orders/:number/parts", h.ListOrderParts)
	g.POST("/orders/:number/parts", h.AssignPart)
	g.PUT("/orders/:number/parts/:partID/status", h.SetPartStatus)

	// ---- Part catalog ----
	g.GET("/parts", h.ListParts) // ?q= searches number and name
	g.POST("/parts", h.CreatePart)

	// ---- Advisors ----
	g.GET("/advisors", h.ListAdvisors)
	g.POST("/advisors", h.CreateAdvisor)

	// ---- Vehicles ----
	g.POST("/vehicles", h.CreateVehicle)
	g.POST("/vehicles/with-order", h.CreateVehicleWithOrder)
	g.GET("/vehicles/lookup", h.LookupVehicle) // ?ot= order number
}

// RegisterNavigation registers the view-navigation endpoints under /v1.
// The navigation state is per authenticated user, so these also sit
// behind the JWT middleware.
func RegisterNavigation(e *echo.Echo, n *handler.NavHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "user"),
	)
	g.GET("/views", n.CurrentView)
	g.POST("/views/select", n.SelectView)
}
