package client

import "github.com/henrikhaus/nettworkers/shared"

// Predictor applies the local player's own commands to a client-local
// GameState immediately, ahead of server confirmation, and later
// reconciles that speculative state against an authoritative sequence
// number the server has acknowledged (grounded on
// original_source/client/src/predictor.rs).
type Predictor struct {
	// ActivePrediction enables applying commands locally as soon as
	// they're sampled, rather than waiting for the server's snapshot.
	ActivePrediction bool
	// ActiveReconciliation enables replaying unconfirmed commands after
	// a server snapshot arrives, to correct for drift.
	ActiveReconciliation bool

	sequence    uint32
	unconfirmed []shared.PlayerStateCommand
}

// NextSequence allocates and returns the next monotonic command
// sequence number.
func (p *Predictor) NextSequence() uint32 {
	p.sequence++
	return p.sequence
}

// Predict applies cmd to state immediately, as the local player, and —
// if both prediction and reconciliation are active — records it as
// unconfirmed so Reconcile can replay it later.
func (p *Predictor) Predict(state *shared.GameState, localPlayer shared.PlayerID, cmd shared.PlayerStateCommand, nowMicros uint64) {
	if !p.ActivePrediction {
		return
	}

	state.Mutate([]shared.CommandContent{{
		PlayerID:          localPlayer,
		Command:           cmd,
		ClientDelayMicros: 0,
	}}, cmd.DtMicros, nowMicros)

	if p.ActiveReconciliation {
		p.unconfirmed = append(p.unconfirmed, cmd)
	}
}

// Reconcile drops every unconfirmed command the server has already
// incorporated (sequence <= serverSequence, compared with wraparound
// awareness) and replays the remainder against state, which the caller
// has just overwritten with the server's authoritative snapshot for
// the local player.
//
// Each replayed command's dt is serverDelayMicros*2: an estimate of the
// round trip the command has already been "in flight" for.
func (p *Predictor) Reconcile(state *shared.GameState, localPlayer shared.PlayerID, serverSequence uint32, serverDelayMicros uint64, nowMicros uint64) {
	if !p.ActiveReconciliation {
		p.unconfirmed = nil
		return
	}

	remaining := p.unconfirmed[:0]
	for _, cmd := range p.unconfirmed {
		if shared.SequenceGreater(cmd.Sequence, serverSequence) {
			remaining = append(remaining, cmd)
		}
	}
	p.unconfirmed = remaining

	state.ClearCache()

	replayDt := serverDelayMicros * 2
	for _, cmd := range p.unconfirmed {
		state.Mutate([]shared.CommandContent{{
			PlayerID:          localPlayer,
			Command:           cmd,
			ClientDelayMicros: 0,
		}}, replayDt, nowMicros)
	}
}
