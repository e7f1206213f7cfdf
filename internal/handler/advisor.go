package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/repository"
)

// ListAdvisors handles GET /v1/advisors. The result feeds both the
// advisor catalog view and the advisor filter on the order list.
func (h *WorkshopHandler) ListAdvisors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Advisors.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type createAdvisorReq struct {
	Name string `json:"name"`
}

// CreateAdvisor handles POST /v1/advisors.
func (h *WorkshopHandler) CreateAdvisor(c echo.Context) error {
	var req createAdvisorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Advisors.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "advisor already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create advisor"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": req.Name})
}
