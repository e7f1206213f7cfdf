package handler // handler defines http handlers

import (
    "context"
    "fmt"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/tallerapp/workshop-api/internal/repository"
)

// WorkshopHandler bundles the repositories behind the main-window views:
// work orders, the parts catalog, vehicles and advisors.
type WorkshopHandler struct {
    Orders     *repository.WorkOrderRepo
    OrderParts *repository.WorkOrderPartRepo
    Parts      *repository.PartRepo
    Vehicles   *repository.VehicleRepo
    Advisors   *repository.AdvisorRepo
}

// NewWorkshopHandler constructs a WorkshopHandler and panics if any dependency is nil.
func NewWorkshopHandler(orders *repository.WorkOrderRepo, orderParts *repository.WorkOrderPartRepo, parts *repository.PartRepo, vehicles *repository.VehicleRepo, advisors *repository.AdvisorRepo) *WorkshopHandler {
    if orders == nil || orderParts == nil || parts == nil || vehicles == nil || advisors == nil {
        panic("nil repository passed to NewWorkshopHandler")
    }
    return &WorkshopHandler{
        Orders:     orders,
        OrderParts: orderParts,
        Parts:      parts,
        Vehicles:   vehicles,
        Advisors:   advisors,
    }
}

// reqCtx bounds the duration of database calls made from a handler.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// sessionName returns the display name of the current session for audit
// fields on published events.
func sessionName(c echo.Context) string {
    if v := c.Get("full_name"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    if v := c.Get("username"); v != nil {
        return fmt.Sprint(v)
    }
    return "unknown"
}
