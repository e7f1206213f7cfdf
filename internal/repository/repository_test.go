package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tallerapp/workshop-api/internal/database"
	"github.com/tallerapp/workshop-api/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

// seedBase registers one advisor and one vehicle so order creation can
// pass referential validation.
func seedBase(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	if _, err := NewAdvisorRepo(db).Create(ctx, "Laura Gómez"); err != nil {
		t.Fatalf("seed advisor: %v", err)
	}
	err := NewVehicleRepo(db).Create(ctx, model.Vehicle{
		VIN: "VIN1234567890", Model: "Tesla Model 3", Year: 2023,
		Insurance: "Seguros Nacionales", OwnerName: "Carlos Ruíz",
		SalesAdvisor: "Laura Gómez",
	})
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
}

func TestWorkOrderCreateDuplicateLeavesOneRow(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	repo := NewWorkOrderRepo(db)

	order := model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	}
	if _, err := repo.Create(ctx, order); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.Create(ctx, order); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("second create: want ErrDuplicateKey, got %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM ots WHERE ot_number = 'OT-100'").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 row after duplicate insert, got %d", n)
	}
}

func TestWorkOrderCreateValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	repo := NewWorkOrderRepo(db)

	_, err := repo.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-101", SalesAdvisor: "Nadie",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	})
	if !errors.Is(err, ErrAdvisorUnknown) {
		t.Fatalf("unknown advisor: want ErrAdvisorUnknown, got %v", err)
	}

	_, err = repo.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-101", SalesAdvisor: "Laura Gómez",
		VIN: "VINDOESNOTEXIST", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	})
	if !errors.Is(err, ErrVehicleUnknown) {
		t.Fatalf("unknown vin: want ErrVehicleUnknown, got %v", err)
	}
}

func TestWorkOrderListCountsAndInsurance(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	orders := NewWorkOrderRepo(db)
	parts := NewPartRepo(db)
	links := NewWorkOrderPartRepo(db)

	orderID, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-200", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPedida, RequestDate: "2026-02-01",
	}); err != nil {
		t.Fatalf("create second order: %v", err)
	}

	for _, p := range []struct{ number, name string }{
		{"NP-010-F", "Filtro de aire"},
		{"NP-011-B", "Balatas delanteras"},
	} {
		partID, err := parts.Create(ctx, p.number, p.name)
		if err != nil {
			t.Fatalf("create part %s: %v", p.number, err)
		}
		if err := links.Assign(ctx, model.WorkOrderPart{
			OrderID: orderID, PartID: partID, Quantity: 1, Status: model.StatusPendiente,
		}); err != nil {
			t.Fatalf("assign part %s: %v", p.number, err)
		}
	}

	rows, err := orders.List(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	// Sorted by ot_number: OT-100 first.
	if rows[0].PartCount != 2 {
		t.Fatalf("OT-100 part_count: want 2, got %d", rows[0].PartCount)
	}
	if rows[1].PartCount != 0 {
		t.Fatalf("OT-200 part_count: want 0, got %d", rows[1].PartCount)
	}
	if rows[0].Insurance != "Seguros Nacionales" {
		t.Fatalf("insurance from vehicle: want %q, got %q", "Seguros Nacionales", rows[0].Insurance)
	}
}

func TestWorkOrderListAdvisorFilterIsExact(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	orders := NewWorkOrderRepo(db)

	if _, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := orders.List(ctx, ListQuery{Advisor: "Laura"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("partial advisor name must not match, got %d rows", len(rows))
	}
	rows, err = orders.List(ctx, ListQuery{Advisor: "Laura Gómez"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("exact advisor name: want 1 row, got %d", len(rows))
	}
}

func TestWorkOrderListSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	orders := NewWorkOrderRepo(db)

	if _, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPedida, RequestDate: "2026-01-15",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, q := range []string{"pedida", "PEDIDA", "ot-10", "laura", "2026-01"} {
		rows, err := orders.List(ctx, ListQuery{Search: q})
		if err != nil {
			t.Fatalf("list %q: %v", q, err)
		}
		if len(rows) != 1 {
			t.Fatalf("search %q: want 1 row, got %d", q, len(rows))
		}
	}
	rows, err := orders.List(ctx, ListQuery{Search: "entregada"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("non-matching search: want 0 rows, got %d", len(rows))
	}
}

func TestAssignReplacesExistingLink(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	orders := NewWorkOrderRepo(db)
	parts := NewPartRepo(db)
	links := NewWorkOrderPartRepo(db)

	orderID, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	partID, err := parts.Create(ctx, "NP-010-F", "Filtro de aire")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if err := links.Assign(ctx, model.WorkOrderPart{OrderID: orderID, PartID: partID, Quantity: 1, Status: model.StatusPendiente}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if err := links.Assign(ctx, model.WorkOrderPart{OrderID: orderID, PartID: partID, Quantity: 3, Status: model.StatusPedida}); err != nil {
		t.Fatalf("second assign: %v", err)
	}

	details, err := links.ListByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("want a single link row, got %d", len(details))
	}
	if details[0].Quantity != 3 || details[0].Status != model.StatusPedida {
		t.Fatalf("re-assign must replace: got quantity=%d status=%q", details[0].Quantity, details[0].Status)
	}
}

func TestSetStatusChangeAndIdempotence(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	orders := NewWorkOrderRepo(db)
	parts := NewPartRepo(db)
	links := NewWorkOrderPartRepo(db)

	orderID, err := orders.Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	partID, err := parts.Create(ctx, "NP-010-F", "Filtro de aire")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if err := links.Assign(ctx, model.WorkOrderPart{OrderID: orderID, PartID: partID, Quantity: 1, Status: model.StatusPendiente}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	changed, err := links.SetStatus(ctx, orderID, partID, model.StatusEntregada)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if !changed {
		t.Fatal("first transition must report changed")
	}
	details, err := links.ListByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if details[0].Status != model.StatusEntregada {
		t.Fatalf("status not persisted: got %q", details[0].Status)
	}

	changed, err = links.SetStatus(ctx, orderID, partID, model.StatusEntregada)
	if err != nil {
		t.Fatalf("repeat set status: %v", err)
	}
	if changed {
		t.Fatal("setting the same status again must be a no-op")
	}

	if _, err := links.SetStatus(ctx, orderID, partID+100, model.StatusPedida); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unlinked part: want ErrNotFound, got %v", err)
	}
}

func TestCreateWithWorkOrderIsAtomic(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	vehicles := NewVehicleRepo(db)

	// Occupy the order number first.
	if _, err := NewWorkOrderRepo(db).Create(ctx, model.WorkOrder{
		OrderNumber: "OT-300", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	err := vehicles.CreateWithWorkOrder(ctx,
		model.Vehicle{VIN: "VINNEW000000001", Model: "Mazda 3", Year: 2024, OwnerName: "Eva", SalesAdvisor: "Laura Gómez"},
		model.WorkOrder{OrderNumber: "OT-300", SalesAdvisor: "Laura Gómez", Status: model.StatusPendiente, RequestDate: "2026-01-16"},
	)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}

	// The vehicle insert must have rolled back with the failed order.
	exists, err := vehicles.Exists(ctx, "VINNEW000000001")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("vehicle row survived a failed order insert")
	}
}

func TestLookupByOrderNumber(t *testing.T) {
	db := newTestDB(t)
	seedBase(t, db)
	ctx := context.Background()
	vehicles := NewVehicleRepo(db)

	if _, err := NewWorkOrderRepo(db).Create(ctx, model.WorkOrder{
		OrderNumber: "OT-100", SalesAdvisor: "Laura Gómez",
		VIN: "VIN1234567890", Status: model.StatusPendiente, RequestDate: "2026-01-15",
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	l, err := vehicles.LookupByOrderNumber(ctx, "OT-100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if l.Model != "Tesla Model 3" || l.OwnerName != "Carlos Ruíz" || l.OrderAdvisor != "Laura Gómez" {
		t.Fatalf("unexpected lookup result: %+v", l)
	}

	if _, err := vehicles.LookupByOrderNumber(ctx, "OT-999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order: want ErrNotFound, got %v", err)
	}
}

func TestPartListSearch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	parts := NewPartRepo(db)

	for _, p := range []struct{ number, name string }{
		{"NP-010-F", "Filtro de aire"},
		{"NP-011-B", "Balatas delanteras"},
	} {
		if _, err := parts.Create(ctx, p.number, p.name); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := parts.List(ctx, "filtro")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].PartNumber != "NP-010-F" {
		t.Fatalf("search by name: got %+v", got)
	}
	got, err = parts.List(ctx, "np-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search by number prefix: want 2, got %d", len(got))
	}
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)

	if _, err := users.Create(ctx, "admin", "secret", "Administrador", "admin", 4); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.Create(ctx, "admin", "other", "Otro", "user", 4); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("want ErrDuplicateKey, got %v", err)
	}
	if _, err := users.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTokenRepoLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepo(db)
	tokens := NewTokenRepo(db)

	uid, err := users.Create(ctx, "admin", "secret", "Administrador", "admin", 4)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	hash := "deadbeefdeadbeef"
	if err := tokens.StoreRefresh(ctx, uid, hash, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got != uid {
		t.Fatalf("validate: want user %d, got %d", uid, got)
	}
	if err := tokens.RevokeByHash(ctx, hash); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := tokens.ValidateRefresh(ctx, hash); err == nil {
		t.Fatal("revoked token must not validate")
	}
}
