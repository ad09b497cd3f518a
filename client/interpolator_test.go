package client

import (
	"testing"

	"github.com/henrikhaus/nettworkers/shared"
)

func TestInterpolatorInactiveBeforeFirstSnapshot(t *testing.T) {
	ip := NewInterpolator()
	result := ip.Interpolate(1, 0)
	if len(result) != 0 {
		t.Fatalf("expected no positions before any snapshot arrives, got %v", result)
	}
}

func TestInterpolatorEndpoints(t *testing.T) {
	ip := NewInterpolator()
	ip.InterpolationMicros = 1000

	ip.SetNewState(shared.PositionSnapshot{2: {X: 0, Y: 0}}, 0)
	ip.SetNewState(shared.PositionSnapshot{2: {X: 10, Y: 20}}, 0)

	start := ip.Interpolate(1, 0)
	if start[2] != (shared.Vec2{X: 0, Y: 0}) {
		t.Errorf("expected t=0 to return the old position, got %+v", start[2])
	}

	end := ip.Interpolate(1, 1000)
	if end[2] != (shared.Vec2{X: 10, Y: 20}) {
		t.Errorf("expected t=1 to return the new position, got %+v", end[2])
	}

	mid := ip.Interpolate(1, 500)
	if mid[2] != (shared.Vec2{X: 5, Y: 10}) {
		t.Errorf("expected t=0.5 to return the midpoint, got %+v", mid[2])
	}
}

func TestInterpolatorSkipsLocalPlayer(t *testing.T) {
	ip := NewInterpolator()
	ip.SetNewState(shared.PositionSnapshot{1: {X: 1, Y: 1}, 2: {X: 2, Y: 2}}, 0)

	result := ip.Interpolate(1, 0)
	if _, ok := result[1]; ok {
		t.Error("expected the local player to be excluded from the interpolated result")
	}
	if _, ok := result[2]; !ok {
		t.Error("expected the remote player to be present")
	}
}

func TestSetNewStateRecomputesInterpolationMicrosFromGap(t *testing.T) {
	ip := NewInterpolator()

	ip.SetNewState(shared.PositionSnapshot{2: {X: 0, Y: 0}}, 1000)
	if ip.InterpolationMicros != DefaultInterpolationMicros {
		t.Fatalf("expected the first snapshot to leave the default window untouched, got %d", ip.InterpolationMicros)
	}

	ip.SetNewState(shared.PositionSnapshot{2: {X: 10, Y: 20}}, 1300)
	if ip.InterpolationMicros != 300 {
		t.Fatalf("expected the blend window to track the 300us gap between snapshots, got %d", ip.InterpolationMicros)
	}

	ip.SetNewState(shared.PositionSnapshot{2: {X: 20, Y: 40}}, 2100)
	if ip.InterpolationMicros != 800 {
		t.Fatalf("expected the blend window to track a wider 800us gap, got %d", ip.InterpolationMicros)
	}
}

func TestInterpolatorHoldsNewlyVisiblePlayerStationary(t *testing.T) {
	ip := NewInterpolator()
	ip.InterpolationMicros = 1000

	ip.SetNewState(shared.PositionSnapshot{2: {X: 0, Y: 0}}, 0)
	ip.SetNewState(shared.PositionSnapshot{2: {X: 0, Y: 0}, 3: {X: 50, Y: 60}}, 0)

	mid := ip.Interpolate(1, 500)
	if mid[3] != (shared.Vec2{X: 50, Y: 60}) {
		t.Errorf("expected a newly visible player to be held at its known position, got %+v", mid[3])
	}
}
