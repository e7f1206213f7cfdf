package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tallerapp/workshop-api/internal/model"
)

// PartRepo provides access to the `parts` catalog table.
type PartRepo struct{ DB *sql.DB }

func NewPartRepo(db *sql.DB) *PartRepo { return &PartRepo{DB: db} }

// Create inserts a catalog part and returns its ID.
func (r *PartRepo) Create(ctx context.Context, partNumber, partName string) (int64, error) {
	partNumber = strings.TrimSpace(partNumber)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO parts (part_number, part_name) VALUES (?,?)", partNumber, partName)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, err
	}
	return res.LastInsertId()
}

// List returns catalog parts ordered by part number. A non-empty search
// term narrows the list: substring, case-insensitive, part number OR
// display name.
func (r *PartRepo) List(ctx context.Context, search string) ([]model.Part, error) {
	query := "SELECT id, part_number, part_name FROM parts"
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		query += " WHERE LOWER(part_number) LIKE ? OR LOWER(part_name) LIKE ?"
		like := "%" + strings.ToLower(s) + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY part_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Part{}
	for rows.Next() {
		var p model.Part
		if err := rows.Scan(&p.ID, &p.PartNumber, &p.PartName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByNumber fetches a part by its unique part number.
func (r *PartRepo) GetByNumber(ctx context.Context, partNumber string) (model.Part, error) {
	var p model.Part
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, part_number, part_name FROM parts WHERE part_number = ? LIMIT 1",
		strings.TrimSpace(partNumber)).Scan(&p.ID, &p.PartNumber, &p.PartName)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}
