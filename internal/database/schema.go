package database

import (
	"database/sql"
	"strings"
)

// schema creates every table the application needs. All statements are
// idempotent so EnsureSchema can run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    username  TEXT NOT NULL UNIQUE,
    password  TEXT NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    role      TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS advisors (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS ots (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    ot_number     TEXT NOT NULL UNIQUE,
    sales_advisor TEXT NOT NULL DEFAULT '',
    vin           TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'Pendiente',
    request_date  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS parts (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    part_number TEXT NOT NULL UNIQUE,
    part_name   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS ot_parts (
    ot_id    INTEGER NOT NULL REFERENCES ots(id),
    part_id  INTEGER NOT NULL REFERENCES parts(id),
    quantity INTEGER NOT NULL DEFAULT 1,
    status   TEXT NOT NULL DEFAULT 'Pendiente',
    PRIMARY KEY (ot_id, part_id)
);

CREATE TABLE IF NOT EXISTS vins (
    vin           TEXT PRIMARY KEY,
    model         TEXT NOT NULL DEFAULT '',
    year          INTEGER NOT NULL DEFAULT 0,
    insurance     TEXT NOT NULL DEFAULT '',
    owner_name    TEXT NOT NULL DEFAULT '',
    owner_email   TEXT NOT NULL DEFAULT '',
    owner_phone   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL,
    token_hash TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMP NOT NULL,
    revoked_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user ON refresh_tokens(user_id);
`

// migrations are additive column changes applied after the base schema.
// Databases created by older releases lack these columns; databases
// created by the schema above already have them, and sqlite reports
// "duplicate column name" which is treated as success.
var migrations = []string{
	"ALTER TABLE users ADD COLUMN role TEXT NOT NULL DEFAULT 'user'",
	"ALTER TABLE vins ADD COLUMN sales_advisor TEXT NOT NULL DEFAULT ''",
}

// EnsureSchema creates all tables if absent and applies the additive
// migrations. It is safe to call on every startup.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return err
		}
	}
	return nil
}
