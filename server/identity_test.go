package server

import "testing"

func TestIdentityTableAssignsMonotonicIds(t *testing.T) {
	table := newIdentityTable()

	first := table.getOrAdd("10.0.0.1:9000")
	second := table.getOrAdd("10.0.0.2:9000")
	repeat := table.getOrAdd("10.0.0.1:9000")

	if first != 1 {
		t.Errorf("first id: got %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second id: got %d, want 2", second)
	}
	if repeat != first {
		t.Errorf("repeat lookup: got %d, want %d", repeat, first)
	}
}

func TestIdentityTableLookupAndRemove(t *testing.T) {
	table := newIdentityTable()
	table.getOrAdd("10.0.0.1:9000")

	if _, ok := table.lookup("10.0.0.9:9000"); ok {
		t.Error("lookup of an unseen address should return ok=false")
	}

	id, ok := table.lookup("10.0.0.1:9000")
	if !ok || id != 1 {
		t.Errorf("lookup: got (%d, %v), want (1, true)", id, ok)
	}

	table.remove("10.0.0.1:9000")
	if _, ok := table.lookup("10.0.0.1:9000"); ok {
		t.Error("expected removed address to no longer be present")
	}
}

func TestIdentityTableAddressesSnapshot(t *testing.T) {
	table := newIdentityTable()
	idA := table.getOrAdd("10.0.0.1:9000")
	idB := table.getOrAdd("10.0.0.2:9000")

	snap := table.addresses()
	if snap[idA] != "10.0.0.1:9000" || snap[idB] != "10.0.0.2:9000" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}
