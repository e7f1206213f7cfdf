package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/model"
	"github.com/tallerapp/workshop-api/internal/queue"
	"github.com/tallerapp/workshop-api/internal/repository"
	queue_publisher "github.com/tallerapp/workshop-api/internal/service"
)

// ListOrders handles GET /v1/orders. Optional query parameters:
// `advisor` filters by exact advisor name (the filter menu), `q` is the
// free-text search over number, advisor, date, status and insurer.
func (h *WorkshopHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Orders.List(ctx, repository.ListQuery{
		Advisor: strings.TrimSpace(c.QueryParam("advisor")),
		Search:  strings.TrimSpace(c.QueryParam("q")),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type createOrderReq struct {
	OrderNumber  string `json:"ot_number"`
	SalesAdvisor string `json:"sales_advisor"`
	VIN          string `json:"vin"`
	Status       string `json:"status"`
	RequestDate  string `json:"request_date"`
}

// CreateOrder handles POST /v1/orders. All four fields of the original
// form are required; the advisor and the VIN must already be
// registered, otherwise the statement never reaches the store.
func (h *WorkshopHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.OrderNumber = strings.TrimSpace(req.OrderNumber)
	req.VIN = strings.TrimSpace(req.VIN)
	req.RequestDate = strings.TrimSpace(req.RequestDate)
	if req.OrderNumber == "" || req.SalesAdvisor == "" || req.VIN == "" || req.RequestDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ot_number, sales_advisor, vin and request_date are required"})
	}
	if req.Status == "" {
		req.Status = model.StatusPendiente
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Orders.Create(ctx, model.WorkOrder{
		OrderNumber:  req.OrderNumber,
		SalesAdvisor: req.SalesAdvisor,
		VIN:          req.VIN,
		Status:       req.Status,
		RequestDate:  req.RequestDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ot_number already exists"})
		case errors.Is(err, repository.ErrAdvisorUnknown):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "advisor is not registered"})
		case errors.Is(err, repository.ErrVehicleUnknown):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "vin is not registered; create the vehicle first"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "ot_number": req.OrderNumber})
}

// GetOrder handles GET /v1/orders/:number.
func (h *WorkshopHandler) GetOrder(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Orders.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ot_number":     o.OrderNumber,
		"sales_advisor": o.SalesAdvisor,
		"vin":           o.VIN,
		"status":        o.Status,
		"request_date":  o.RequestDate,
	})
}

// ListOrderParts handles GET /v1/orders/:number/parts — the parts
// dialog opened by double-clicking an order row.
func (h *WorkshopHandler) ListOrderParts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Orders.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.OrderParts.ListByOrderID(ctx, o.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ot_number": o.OrderNumber, "items": items})
}

type assignPartReq struct {
	PartNumber string `json:"part_number"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
}

// AssignPart handles POST /v1/orders/:number/parts. Assigning a part
// that is already on the order replaces its quantity and status —
// at most one link row per (order, part) pair.
func (h *WorkshopHandler) AssignPart(c echo.Context) error {
	var req assignPartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.PartNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "part_number required"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if req.Status == "" {
		req.Status = model.StatusPendiente
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Orders.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	p, err := h.Parts.GetByNumber(ctx, req.PartNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if err := h.OrderParts.Assign(ctx, model.WorkOrderPart{
		OrderID:  o.ID,
		PartID:   p.ID,
		Quantity: req.Quantity,
		Status:   req.Status,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not assign part"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ot_number": o.OrderNumber, "part_number": p.PartNumber, "quantity": req.Quantity, "status": req.Status})
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetPartStatus handles PUT /v1/orders/:number/parts/:partID/status —
// the status combo in the parts dialog. Setting the status a link row
// already has is a no-op and publishes nothing.
func (h *WorkshopHandler) SetPartStatus(c echo.Context) error {
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	partID, err := strconv.ParseInt(c.Param("partID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid part id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Orders.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// Snapshot the link row first so the event can carry the old status.
	var before *struct {
		partNumber, partName, status string
		quantity                     int
	}
	if details, err := h.OrderParts.ListByOrderID(ctx, o.ID); err == nil {
		for _, d := range details {
			if d.PartID == partID {
				before = &struct {
					partNumber, partName, status string
					quantity                     int
				}{d.PartNumber, d.PartName, d.Status, d.Quantity}
				break
			}
		}
	}

	changed, err := h.OrderParts.SetStatus(ctx, o.ID, partID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part is not assigned to this order"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update status"})
	}

	if changed && before != nil {
		// Fire-and-forget: a broker failure never fails the request.
		_ = queue_publisher.PublishPartStatusChanged(c.Request().Context(), queue.PartStatusChangedEvent{
			OrderNumber: o.OrderNumber,
			PartNumber:  before.partNumber,
			PartName:    before.partName,
			Quantity:    before.quantity,
			OldStatus:   before.status,
			NewStatus:   req.Status,
			ChangedBy:   sessionName(c),
			ChangedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"ot_number": o.OrderNumber, "part_id": partID, "status": req.Status, "changed": changed})
}
