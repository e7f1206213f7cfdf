package repository

import (
	"context"
	"database/sql"

	"github.com/tallerapp/workshop-api/internal/model"
)

// WorkOrderPartRepo provides access to the `ot_parts` link table.
type WorkOrderPartRepo struct{ DB *sql.DB }

func NewWorkOrderPartRepo(db *sql.DB) *WorkOrderPartRepo { return &WorkOrderPartRepo{DB: db} }

// Assign links a catalog part to a work order with a quantity and an
// initial status. INSERT OR REPLACE on the (ot_id, part_id) primary key
// means re-assigning the same part replaces quantity and status instead
// of producing a second row.
func (r *WorkOrderPartRepo) Assign(ctx context.Context, l model.WorkOrderPart) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT OR REPLACE INTO ot_parts (ot_id, part_id, quantity, status) VALUES (?,?,?,?)",
		l.OrderID, l.PartID, l.Quantity, l.Status)
	return err
}

// ListByOrderID returns the parts linked to one work order with their
// catalog details, ordered by part number.
func (r *WorkOrderPartRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderPartDetail, error) {
	const q = `
	SELECT p.id, p.part_number, p.part_name, op.quantity, op.status
	FROM ot_parts AS op
	JOIN parts AS p ON p.id = op.part_id
	WHERE op.ot_id = ?
	ORDER BY p.part_number`
	rows, err := r.DB.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.OrderPartDetail{}
	for rows.Next() {
		var d model.OrderPartDetail
		if err := rows.Scan(&d.PartID, &d.PartNumber, &d.PartName, &d.Quantity, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SetStatus updates the status of one link row. It is idempotent:
// setting the status it already has changes nothing and reports
// changed=false. ErrNotFound is returned when no link row exists for
// the (order, part) pair.
func (r *WorkOrderPartRepo) SetStatus(ctx context.Context, orderID, partID int64, status string) (changed bool, err error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ot_parts SET status = ? WHERE ot_id = ? AND part_id = ? AND status <> ?",
		status, orderID, partID, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	// Nothing updated: either the row already carries this status or
	// the pair does not exist at all.
	var one int
	err = r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM ot_parts WHERE ot_id = ? AND part_id = ? LIMIT 1", orderID, partID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	return false, err
}
