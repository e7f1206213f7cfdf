package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/repository"
)

// ListParts handles GET /v1/parts. `q` searches number and name,
// case-insensitive.
func (h *WorkshopHandler) ListParts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Parts.List(ctx, strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type createPartReq struct {
	PartNumber string `json:"part_number"`
	PartName   string `json:"part_name"`
}

// CreatePart handles POST /v1/parts.
func (h *WorkshopHandler) CreatePart(c echo.Context) error {
	var req createPartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PartNumber = strings.TrimSpace(req.PartNumber)
	req.PartName = strings.TrimSpace(req.PartName)
	if req.PartNumber == "" || req.PartName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "part_number and part_name are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Parts.Create(ctx, req.PartNumber, req.PartName)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "part_number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create part"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "part_number": req.PartNumber})
}
