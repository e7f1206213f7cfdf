package database

import (
	"database/sql"

	"github.com/tallerapp/workshop-api/internal/utils"
)

// Seed inserts the first-run data set: one admin and one standard user,
// two advisors, two vehicles, two work orders, two catalog parts and
// two link rows. Every statement is INSERT OR IGNORE so running Seed
// again is a no-op.
func Seed(db *sql.DB, bcryptCost int) error {
	adminHash, err := utils.HashPassword("password", bcryptCost)
	if err != nil {
		return err
	}
	userHash, err := utils.HashPassword("pass", bcryptCost)
	if err != nil {
		return err
	}

	seedUsers := []struct {
		username, hash, fullName, role string
	}{
		{"admin", adminHash, "Administrador", "admin"},
		{"user1", userHash, "Usuario Estándar", "user"},
	}
	for _, u := range seedUsers {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO users (username, password, full_name, role) VALUES (?,?,?,?)",
			u.username, u.hash, u.fullName, u.role); err != nil {
			return err
		}
	}

	for _, name := range []string{"Laura Gómez", "Juan Pérez"} {
		if _, err := db.Exec("INSERT OR IGNORE INTO advisors (name) VALUES (?)", name); err != nil {
			return err
		}
	}

	seedVehicles := []struct {
		vin, model    string
		year          int
		insurance     string
		owner, email  string
		phone, adviso string
	}{
		{"VIN1234567890", "Tesla Model 3", 2023, "Seguros Nacionales", "Carlos Ruíz", "carlos@email.com", "5512345678", "Laura Gómez"},
		{"VIN0987654321", "Honda Civic", 2022, "GNP", "Ana Torres", "ana@email.com", "5598765432", "Juan Pérez"},
	}
	for _, v := range seedVehicles {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO vins (vin, model, year, insurance, owner_name, owner_email, owner_phone, sales_advisor) VALUES (?,?,?,?,?,?,?,?)",
			v.vin, v.model, v.year, v.insurance, v.owner, v.email, v.phone, v.adviso); err != nil {
			return err
		}
	}

	seedOrders := []struct {
		number, advisor, vin, status, date string
	}{
		{"OT-001", "Laura Gómez", "VIN1234567890", "Pendiente", "2025-09-10"},
		{"OT-002", "Juan Pérez", "VIN0987654321", "Pendiente", "2025-09-10"},
	}
	for _, o := range seedOrders {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO ots (ot_number, sales_advisor, vin, status, request_date) VALUES (?,?,?,?,?)",
			o.number, o.advisor, o.vin, o.status, o.date); err != nil {
			return err
		}
	}

	seedParts := []struct{ number, name string }{
		{"NP-010-F", "Filtro de aire"},
		{"NP-011-B", "Balatas delanteras"},
	}
	for _, p := range seedParts {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO parts (part_number, part_name) VALUES (?,?)",
			p.number, p.name); err != nil {
			return err
		}
	}

	// Two link rows on the first order. The ids are looked up by their
	// natural keys so the seed works no matter what ids autoincrement
	// handed out.
	var otID int64
	if err := db.QueryRow("SELECT id FROM ots WHERE ot_number = 'OT-001'").Scan(&otID); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}
	seedLinks := []struct {
		partNumber string
		quantity   int
		status     string
	}{
		{"NP-010-F", 2, "Pedida"},
		{"NP-011-B", 1, "Pendiente"},
	}
	for _, l := range seedLinks {
		var partID int64
		err := db.QueryRow("SELECT id FROM parts WHERE part_number = ?", l.partNumber).Scan(&partID)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return err
		}
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO ot_parts (ot_id, part_id, quantity, status) VALUES (?,?,?,?)",
			otID, partID, l.quantity, l.status); err != nil {
			return err
		}
	}
	return nil
}
