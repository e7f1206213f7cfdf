package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tallerapp/workshop-api/internal/model"
)

// WorkOrderRepo provides access to the `ots` table.
type WorkOrderRepo struct{ DB *sql.DB }

func NewWorkOrderRepo(db *sql.DB) *WorkOrderRepo { return &WorkOrderRepo{DB: db} }

// Create inserts a work order. Both soft references are validated
// before the insert: the advisor must be registered and the VIN must
// belong to an existing vehicle record.
func (r *WorkOrderRepo) Create(ctx context.Context, o model.WorkOrder) (int64, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM advisors WHERE name = ? LIMIT 1", strings.TrimSpace(o.SalesAdvisor)).Scan(&one)
	if err == sql.ErrNoRows {
		return 0, ErrAdvisorUnknown
	}
	if err != nil {
		return 0, err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM vins WHERE vin = ? LIMIT 1", strings.TrimSpace(o.VIN)).Scan(&one)
	if err == sql.ErrNoRows {
		return 0, ErrVehicleUnknown
	}
	if err != nil {
		return 0, err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO ots (ot_number, sales_advisor, vin, status, request_date) VALUES (?,?,?,?,?)",
		strings.TrimSpace(o.OrderNumber), o.SalesAdvisor, strings.TrimSpace(o.VIN), o.Status, o.RequestDate)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, err
	}
	return res.LastInsertId()
}

// ListQuery narrows the order list. Advisor is an exact match (the
// shell's advisor filter menu); Search is a free-text term matched
// case-insensitively as a substring against order number, advisor,
// request date, status and the vehicle's insurance provider, OR-combined.
type ListQuery struct {
	Advisor string
	Search  string
}

// List returns one summary row per work order. The LEFT JOIN onto
// ot_parts keeps orders without parts in the result with a count of 0,
// and the LEFT JOIN onto vins tolerates orders whose VIN was never
// registered.
func (r *WorkOrderRepo) List(ctx context.Context, q ListQuery) ([]model.WorkOrderSummary, error) {
	base := `
	SELECT o.ot_number, o.sales_advisor, o.request_date, o.status,
	       COALESCE(v.insurance, '') AS insurance, COUNT(op.part_id) AS part_count
	FROM ots AS o
	LEFT JOIN ot_parts AS op ON o.id = op.ot_id
	LEFT JOIN vins AS v ON o.vin = v.vin`

	where := []string{}
	args := []any{}
	if q.Advisor != "" {
		where = append(where, "o.sales_advisor = ?")
		args = append(args, q.Advisor)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, `(
			LOWER(o.ot_number) LIKE ? OR
			LOWER(o.sales_advisor) LIKE ? OR
			LOWER(o.request_date) LIKE ? OR
			LOWER(o.status) LIKE ? OR
			LOWER(COALESCE(v.insurance, '')) LIKE ?
		)`)
		like := "%" + strings.ToLower(s) + "%"
		args = append(args, like, like, like, like, like)
	}

	query := base
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY o.id ORDER BY o.ot_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorkOrderSummary{}
	for rows.Next() {
		var s model.WorkOrderSummary
		if err := rows.Scan(&s.OrderNumber, &s.SalesAdvisor, &s.RequestDate, &s.Status, &s.Insurance, &s.PartCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByNumber fetches a work order by its unique order number.
func (r *WorkOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (model.WorkOrder, error) {
	var o model.WorkOrder
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, ot_number, sales_advisor, vin, status, request_date FROM ots WHERE ot_number = ? LIMIT 1",
		strings.TrimSpace(orderNumber)).Scan(&o.ID, &o.OrderNumber, &o.SalesAdvisor, &o.VIN, &o.Status, &o.RequestDate)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}
