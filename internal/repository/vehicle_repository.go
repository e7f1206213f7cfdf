package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tallerapp/workshop-api/internal/model"
)

// VehicleRepo provides access to the `vins` table. The VIN string is
// the primary key; work orders reference it as a soft foreign key.
type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

// Create inserts a vehicle record. The assigned advisor must already be
// registered; that check happens here, before the insert, so it is
// enforced on every path that creates a vehicle.
func (r *VehicleRepo) Create(ctx context.Context, v model.Vehicle) error {
	if err := r.checkAdvisor(ctx, v.SalesAdvisor); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO vins (vin, model, year, insurance, owner_name, owner_email, owner_phone, sales_advisor) VALUES (?,?,?,?,?,?,?,?)",
		strings.TrimSpace(v.VIN), v.Model, v.Year, v.Insurance, v.OwnerName, v.OwnerEmail, v.OwnerPhone, v.SalesAdvisor)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

// CreateWithWorkOrder inserts a vehicle together with its freshly
// generated work order in one transaction: either both rows exist
// afterwards or neither does.
func (r *VehicleRepo) CreateWithWorkOrder(ctx context.Context, v model.Vehicle, o model.WorkOrder) error {
	if err := r.checkAdvisor(ctx, v.SalesAdvisor); err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO vins (vin, model, year, insurance, owner_name, owner_email, owner_phone, sales_advisor) VALUES (?,?,?,?,?,?,?,?)",
		strings.TrimSpace(v.VIN), v.Model, v.Year, v.Insurance, v.OwnerName, v.OwnerEmail, v.OwnerPhone, v.SalesAdvisor)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO ots (ot_number, sales_advisor, vin, status, request_date) VALUES (?,?,?,?,?)",
		strings.TrimSpace(o.OrderNumber), o.SalesAdvisor, strings.TrimSpace(v.VIN), o.Status, o.RequestDate)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return tx.Commit()
}

// GetByVIN fetches a vehicle record by its VIN.
func (r *VehicleRepo) GetByVIN(ctx context.Context, vin string) (model.Vehicle, error) {
	var v model.Vehicle
	err := r.DB.QueryRowContext(ctx,
		"SELECT vin, model, year, insurance, owner_name, owner_email, owner_phone, sales_advisor FROM vins WHERE vin = ? LIMIT 1",
		strings.TrimSpace(vin)).Scan(&v.VIN, &v.Model, &v.Year, &v.Insurance, &v.OwnerName, &v.OwnerEmail, &v.OwnerPhone, &v.SalesAdvisor)
	if err == sql.ErrNoRows {
		return v, ErrNotFound
	}
	return v, err
}

// Exists reports whether a vehicle with the given VIN is registered.
func (r *VehicleRepo) Exists(ctx context.Context, vin string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM vins WHERE vin = ? LIMIT 1", strings.TrimSpace(vin)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// VehicleLookup is the result of the VIN-lookup view: vehicle and owner
// details for the vehicle referenced by one work order, plus the
// advisor recorded on the order itself.
type VehicleLookup struct {
	VIN          string `json:"vin"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Insurance    string `json:"insurance"`
	OwnerName    string `json:"owner_name"`
	OwnerEmail   string `json:"owner_email"`
	OwnerPhone   string `json:"owner_phone"`
	OrderAdvisor string `json:"order_advisor"`
}

// LookupByOrderNumber resolves a work-order number to its vehicle
// details. The join is LEFT so an order whose VIN was never registered
// still resolves, with empty vehicle fields.
func (r *VehicleRepo) LookupByOrderNumber(ctx context.Context, orderNumber string) (VehicleLookup, error) {
	const q = `
	SELECT o.vin, COALESCE(v.model,''), COALESCE(v.year,0), COALESCE(v.insurance,''),
	       COALESCE(v.owner_name,''), COALESCE(v.owner_email,''), COALESCE(v.owner_phone,''),
	       o.sales_advisor
	FROM ots AS o
	LEFT JOIN vins AS v ON o.vin = v.vin
	WHERE o.ot_number = ?`
	var l VehicleLookup
	err := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(orderNumber)).Scan(
		&l.VIN, &l.Model, &l.Year, &l.Insurance,
		&l.OwnerName, &l.OwnerEmail, &l.OwnerPhone, &l.OrderAdvisor)
	if err == sql.ErrNoRows {
		return l, ErrNotFound
	}
	return l, err
}

func (r *VehicleRepo) checkAdvisor(ctx context.Context, name string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM advisors WHERE name = ? LIMIT 1", strings.TrimSpace(name)).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrAdvisorUnknown
	}
	return err
}
