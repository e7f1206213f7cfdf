package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tallerapp/workshop-api/internal/model"
)

// AdvisorRepo provides access to the `advisors` table. Advisors are
// referenced by name from vehicles and work orders, so the name is the
// key that matters; the numeric id exists only for the table itself.
type AdvisorRepo struct{ DB *sql.DB }

func NewAdvisorRepo(db *sql.DB) *AdvisorRepo { return &AdvisorRepo{DB: db} }

// Create inserts a new advisor and returns its ID.
func (r *AdvisorRepo) Create(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx, "INSERT INTO advisors (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, err
	}
	return res.LastInsertId()
}

// List returns every advisor ordered by name.
func (r *AdvisorRepo) List(ctx context.Context) ([]model.Advisor, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM advisors ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Advisor{}
	for rows.Next() {
		var a model.Advisor
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Exists reports whether an advisor with the given name is registered.
func (r *AdvisorRepo) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM advisors WHERE name = ? LIMIT 1", strings.TrimSpace(name)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
