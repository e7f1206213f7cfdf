// Package navigation tracks which top-level view of the shell is
// active. Exactly one view is active at any time, the nav indicator
// set always mirrors the active view, and entering a list view reloads
// its backing data in full.
package navigation

import (
	"context"
	"fmt"
	"sync"
)

// View names a top-level view of the shell.
type View string

const (
	ViewHome          View = "home"
	ViewWorkOrderList View = "ot_list"
	ViewPartList      View = "parts_list"
	ViewVehicleLookup View = "vin_lookup"
	ViewAdvisorList   View = "advisor_list"
)

// Views lists every top-level view in display order.
var Views = []View{ViewHome, ViewWorkOrderList, ViewPartList, ViewVehicleLookup, ViewAdvisorList}

// Valid reports whether v names a known view.
func Valid(v View) bool {
	for _, k := range Views {
		if k == v {
			return true
		}
	}
	return false
}

// reloadOnEntry marks the views whose backing list is reloaded in full
// every time they become active. The lookup form and home never
// preload.
var reloadOnEntry = map[View]bool{
	ViewWorkOrderList: true,
	ViewPartList:      true,
	ViewAdvisorList:   true,
}

// ReloadFunc loads a view's backing data. The returned payload is
// whatever the view renders (a list of summaries, parts, advisors).
type ReloadFunc func(ctx context.Context) (any, error)

// Machine is the view-navigation state machine for one session. It
// starts at Home and has no terminal state: it lives until logout tears
// the whole session down.
type Machine struct {
	mu      sync.Mutex
	active  View
	loaders map[View]ReloadFunc
}

// New returns a machine positioned at Home.
func New() *Machine {
	return &Machine{active: ViewHome, loaders: map[View]ReloadFunc{}}
}

// RegisterLoader attaches the reload function for one of the list
// views. Registering a loader for a view that never reloads on entry is
// a programming error.
func (m *Machine) RegisterLoader(v View, fn ReloadFunc) {
	if !reloadOnEntry[v] {
		panic(fmt.Sprintf("navigation: view %q does not reload on entry", v))
	}
	m.mu.Lock()
	m.loaders[v] = fn
	m.mu.Unlock()
}

// Active returns the currently active view.
func (m *Machine) Active() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Indicators returns the checked state of every nav control. Exactly
// one entry is true and it names the active view.
func (m *Machine) Indicators() map[View]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[View]bool, len(Views))
	for _, v := range Views {
		out[v] = v == m.active
	}
	return out
}

// Select activates the given view. For list views the registered loader
// runs and its payload is returned; selecting the view that is already
// active still reloads, matching the shell's behavior of refreshing a
// list when its nav button is clicked again. A load failure leaves the
// view active with no payload: the shell shows its error dialog over an
// empty table rather than bouncing back to the previous view.
func (m *Machine) Select(ctx context.Context, v View) (any, error) {
	if !Valid(v) {
		return nil, fmt.Errorf("navigation: unknown view %q", v)
	}
	m.mu.Lock()
	m.active = v
	fn := m.loaders[v]
	m.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}
