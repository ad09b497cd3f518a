package client

import (
	"github.com/henrikhaus/nettworkers/internal/mathutil"
	"github.com/henrikhaus/nettworkers/shared"
)

// DefaultInterpolationMicros is how long Interpolate takes to blend
// fully from the old snapshot to the new one, matching the server's
// broadcast cadence (one tick).
const DefaultInterpolationMicros = uint64(shared.FixedDtMicros)

// Interpolator smooths remote players' positions between the two most
// recently received server snapshots, so motion stays visually
// continuous between ticks (grounded on
// original_source/client/src/interpolator.rs).
type Interpolator struct {
	InterpolationMicros uint64

	old    shared.PositionSnapshot
	newest shared.PositionSnapshot

	receivedAtMicros uint64
	active           bool
}

// NewInterpolator builds an Interpolator with the default blend window.
func NewInterpolator() *Interpolator {
	return &Interpolator{InterpolationMicros: DefaultInterpolationMicros}
}

// SetNewState rotates the previous "newest" snapshot into "old" and
// records snap as the new target to blend toward, starting the clock
// for computeT over at nowMicros. The blend window itself is
// recomputed from the gap since the previous call, so it tracks actual
// inter-snapshot jitter instead of assuming a fixed tick period.
func (ip *Interpolator) SetNewState(snap shared.PositionSnapshot, nowMicros uint64) {
	if ip.active && nowMicros > ip.receivedAtMicros {
		ip.InterpolationMicros = nowMicros - ip.receivedAtMicros
	}

	ip.old = ip.newest
	ip.newest = snap
	ip.receivedAtMicros = nowMicros
	ip.active = true
}

// computeT returns how far, in [0, 1], nowMicros is through the
// current blend window.
func (ip *Interpolator) computeT(nowMicros uint64) float32 {
	if ip.InterpolationMicros == 0 {
		return 1
	}
	elapsed := float32(0)
	if nowMicros > ip.receivedAtMicros {
		elapsed = float32(nowMicros - ip.receivedAtMicros)
	}
	return mathutil.Clamp01(elapsed / float32(ip.InterpolationMicros))
}

// Interpolate returns the blended position of every remote player
// (every id in the newest snapshot except localPlayer) at nowMicros. A
// player present in the newest snapshot but absent from the old one is
// held stationary at its known (newest) position rather than snapped
// from the origin — it has no prior position to blend from, and the
// origin is not a meaningful default.
func (ip *Interpolator) Interpolate(localPlayer shared.PlayerID, nowMicros uint64) shared.PositionSnapshot {
	out := make(shared.PositionSnapshot, len(ip.newest))
	if !ip.active {
		return out
	}

	t := ip.computeT(nowMicros)
	for id, newPos := range ip.newest {
		if id == localPlayer {
			continue
		}
		oldPos, ok := ip.old[id]
		if !ok {
			out[id] = newPos
			continue
		}
		out[id] = oldPos.Lerp(newPos, t)
	}
	return out
}
