package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/model"
	"github.com/tallerapp/workshop-api/internal/repository"
)

type createVehicleReq struct {
	VIN          string `json:"vin"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Insurance    string `json:"insurance"`
	OwnerName    string `json:"owner_name"`
	OwnerEmail   string `json:"owner_email"`
	OwnerPhone   string `json:"owner_phone"`
	SalesAdvisor string `json:"sales_advisor"`
}

func (req *createVehicleReq) validate() string {
	req.VIN = strings.TrimSpace(req.VIN)
	if req.VIN == "" || req.Model == "" || req.OwnerName == "" || req.SalesAdvisor == "" {
		return "vin, model, owner_name and sales_advisor are required"
	}
	if req.Year <= 0 {
		return "year must be positive"
	}
	return ""
}

func (req *createVehicleReq) vehicle() model.Vehicle {
	return model.Vehicle{
		VIN:          req.VIN,
		Model:        req.Model,
		Year:         req.Year,
		Insurance:    req.Insurance,
		OwnerName:    req.OwnerName,
		OwnerEmail:   req.OwnerEmail,
		OwnerPhone:   req.OwnerPhone,
		SalesAdvisor: req.SalesAdvisor,
	}
}

// CreateVehicle handles POST /v1/vehicles.
func (h *WorkshopHandler) CreateVehicle(c echo.Context) error {
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Vehicles.Create(ctx, req.vehicle())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return c.JSON(http.StatusConflict, echo.Map{"error": "vin already registered"})
		case errors.Is(err, repository.ErrAdvisorUnknown):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "advisor is not registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create vehicle"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"vin": req.VIN})
}

type createVehicleWithOrderReq struct {
	createVehicleReq
	OrderNumber string `json:"ot_number"`
	RequestDate string `json:"request_date"`
	Status      string `json:"status"`
}

// CreateVehicleWithOrder handles POST /v1/vehicles/with-order: registers
// the vehicle and opens its first work order in one transaction.
func (h *WorkshopHandler) CreateVehicleWithOrder(c echo.Context) error {
	var req createVehicleWithOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	req.OrderNumber = strings.TrimSpace(req.OrderNumber)
	req.RequestDate = strings.TrimSpace(req.RequestDate)
	if req.OrderNumber == "" || req.RequestDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ot_number and request_date are required"})
	}
	if req.Status == "" {
		req.Status = model.StatusPendiente
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err := h.Vehicles.CreateWithWorkOrder(ctx, req.vehicle(), model.WorkOrder{
		OrderNumber:  req.OrderNumber,
		SalesAdvisor: req.SalesAdvisor,
		VIN:          req.VIN,
		Status:       req.Status,
		RequestDate:  req.RequestDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return c.JSON(http.StatusConflict, echo.Map{"error": "vin or ot_number already registered"})
		case errors.Is(err, repository.ErrAdvisorUnknown):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "advisor is not registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create vehicle and order"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"vin": req.VIN, "ot_number": req.OrderNumber})
}

// LookupVehicle handles GET /v1/vehicles/lookup?ot= — the VIN-lookup
// view: type an order number, get the vehicle and owner behind it.
func (h *WorkshopHandler) LookupVehicle(c echo.Context) error {
	orderNumber := strings.TrimSpace(c.QueryParam("ot"))
	if orderNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ot query parameter required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l, err := h.Vehicles.LookupByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, l)
}
