package navigation

import (
	"context"
	"errors"
	"testing"
)

func TestInitialStateIsHome(t *testing.T) {
	m := New()
	if m.Active() != ViewHome {
		t.Fatalf("expected initial view home, got %s", m.Active())
	}
	ind := m.Indicators()
	if !ind[ViewHome] {
		t.Fatalf("expected home indicator checked")
	}
}

func TestExactlyOneIndicatorAfterAnySequence(t *testing.T) {
	m := New()
	sequence := []View{ViewWorkOrderList, ViewPartList, ViewVehicleLookup, ViewAdvisorList, ViewHome, ViewWorkOrderList}
	for _, v := range sequence {
		if _, err := m.Select(context.Background(), v); err != nil {
			t.Fatalf("Select(%s): %v", v, err)
		}
		ind := m.Indicators()
		checked := 0
		for _, on := range ind {
			if on {
				checked++
			}
		}
		if checked != 1 {
			t.Fatalf("after Select(%s): %d indicators checked, want 1", v, checked)
		}
		if !ind[v] {
			t.Fatalf("after Select(%s): indicator does not match active view", v)
		}
		if m.Active() != v {
			t.Fatalf("after Select(%s): active view is %s", v, m.Active())
		}
	}
}

func TestListViewsReloadOnEveryEntry(t *testing.T) {
	m := New()
	loads := 0
	m.RegisterLoader(ViewWorkOrderList, func(ctx context.Context) (any, error) {
		loads++
		return []string{"OT-001"}, nil
	})

	payload, err := m.Select(context.Background(), ViewWorkOrderList)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if loads != 1 {
		t.Fatalf("expected 1 load, got %d", loads)
	}
	if rows, ok := payload.([]string); !ok || len(rows) != 1 {
		t.Fatalf("unexpected payload %v", payload)
	}

	// Leaving and coming back triggers a full reload, not a diff.
	if _, err := m.Select(context.Background(), ViewHome); err != nil {
		t.Fatalf("Select home: %v", err)
	}
	if _, err := m.Select(context.Background(), ViewWorkOrderList); err != nil {
		t.Fatalf("Select again: %v", err)
	}
	if loads != 2 {
		t.Fatalf("expected reload on re-entry, got %d loads", loads)
	}
}

func TestLookupViewDoesNotPreload(t *testing.T) {
	m := New()
	payload, err := m.Select(context.Background(), ViewVehicleLookup)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected no payload for lookup view, got %v", payload)
	}
}

func TestRegisterLoaderRejectsNonListViews(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for loader on lookup view")
		}
	}()
	New().RegisterLoader(ViewVehicleLookup, func(ctx context.Context) (any, error) { return nil, nil })
}

func TestLoadFailureKeepsViewActive(t *testing.T) {
	m := New()
	boom := errors.New("storage failure")
	m.RegisterLoader(ViewAdvisorList, func(ctx context.Context) (any, error) { return nil, boom })

	if _, err := m.Select(context.Background(), ViewAdvisorList); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if m.Active() != ViewAdvisorList {
		t.Fatalf("expected view to stay active after load failure, got %s", m.Active())
	}
}

func TestUnknownViewRejected(t *testing.T) {
	m := New()
	if _, err := m.Select(context.Background(), View("settings")); err == nil {
		t.Fatalf("expected error for unknown view")
	}
	if m.Active() != ViewHome {
		t.Fatalf("failed select must not move the machine, got %s", m.Active())
	}
}
