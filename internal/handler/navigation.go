package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/navigation"
	"github.com/tallerapp/workshop-api/internal/repository"
)

// NavHandler keeps one navigation machine per authenticated user. The
// machine survives across requests (a session-scoped shell), and is
// torn down when the user logs out.
type NavHandler struct {
	mu       sync.Mutex
	machines map[int64]*navigation.Machine

	orders   *repository.WorkOrderRepo
	parts    *repository.PartRepo
	advisors *repository.AdvisorRepo
}

func NewNavHandler(orders *repository.WorkOrderRepo, parts *repository.PartRepo, advisors *repository.AdvisorRepo) *NavHandler {
	if orders == nil || parts == nil || advisors == nil {
		panic("handler: NewNavHandler called with nil repository")
	}
	return &NavHandler{
		machines: map[int64]*navigation.Machine{},
		orders:   orders,
		parts:    parts,
		advisors: advisors,
	}
}

// machineFor returns the user's machine, creating one at Home with the
// list loaders wired the first time the user navigates.
func (h *NavHandler) machineFor(userID int64) *navigation.Machine {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.machines[userID]; ok {
		return m
	}
	m := navigation.New()
	m.RegisterLoader(navigation.ViewWorkOrderList, func(ctx context.Context) (any, error) {
		return h.orders.List(ctx, repository.ListQuery{})
	})
	m.RegisterLoader(navigation.ViewPartList, func(ctx context.Context) (any, error) {
		return h.parts.List(ctx, "")
	})
	m.RegisterLoader(navigation.ViewAdvisorList, func(ctx context.Context) (any, error) {
		return h.advisors.List(ctx)
	})
	h.machines[userID] = m
	return m
}

// Teardown drops the user's machine. Wired to logout so the next login
// starts back at Home.
func (h *NavHandler) Teardown(userID int64) {
	h.mu.Lock()
	delete(h.machines, userID)
	h.mu.Unlock()
}

type selectViewReq struct {
	View string `json:"view"`
}

// SelectView handles POST /v1/views/select. Activates the requested
// view and, for list views, returns its freshly reloaded data — the
// same reload that clicking a nav button triggers in the shell.
func (h *NavHandler) SelectView(c echo.Context) error {
	var req selectViewReq
	if err := c.Bind(&req); err != nil || req.View == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "view required"})
	}
	v := navigation.View(req.View)
	if !navigation.Valid(v) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown view"})
	}
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	m := h.machineFor(userID)

	ctx, cancel := reqCtx(c)
	defer cancel()

	payload, err := m.Select(ctx, v)
	resp := echo.Map{
		"active":     m.Active(),
		"indicators": m.Indicators(),
	}
	if err != nil {
		// The view is active with nothing loaded; the shell shows its
		// error dialog over an empty table.
		resp["load_error"] = "could not load view data"
		return c.JSON(http.StatusOK, resp)
	}
	if payload != nil {
		resp["data"] = payload
	}
	return c.JSON(http.StatusOK, resp)
}

// CurrentView handles GET /v1/views — active view plus indicators,
// without triggering a reload.
func (h *NavHandler) CurrentView(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
	}
	m := h.machineFor(userID)
	return c.JSON(http.StatusOK, echo.Map{
		"active":     m.Active(),
		"indicators": m.Indicators(),
	})
}
