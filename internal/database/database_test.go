package database

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := EnsureSchema(db); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	// Every table must exist afterwards.
	for _, table := range []string{"users", "advisors", "ots", "parts", "ot_parts", "vins", "refresh_tokens"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := Seed(db, bcrypt.MinCost); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	counts := map[string]int{
		"users":    2,
		"advisors": 2,
		"vins":     2,
		"ots":      2,
		"parts":    2,
		"ot_parts": 2,
	}
	for table, want := range counts {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Fatalf("%s: want %d rows after double seed, got %d", table, want, n)
		}
	}
}

func TestSeedStoresHashedPasswords(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := Seed(db, bcrypt.MinCost); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var stored string
	if err := db.QueryRow("SELECT password FROM users WHERE username = 'admin'").Scan(&stored); err != nil {
		t.Fatalf("select: %v", err)
	}
	if stored == "password" {
		t.Fatal("seed stored the admin password in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("password")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}
