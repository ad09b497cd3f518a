package client

import (
	"testing"

	"github.com/henrikhaus/nettworkers/shared"
)

func testScene() shared.Scene {
	return shared.Scene{
		Width:      800,
		Height:     600,
		SpawnPoint: shared.SpawnPoint{X: 100, Y: 100},
	}
}

func TestPredictorAppliesCommandsLocally(t *testing.T) {
	state := shared.NewGameState(testScene())
	p := &Predictor{ActivePrediction: true, ActiveReconciliation: true}

	cmd := shared.PlayerStateCommand{
		Sequence:              p.NextSequence(),
		DtMicros:              shared.FixedDtMicros,
		ClientTimestampMicros: 0,
		Commands:              []shared.PlayerCommand{shared.CommandMoveRight},
	}
	p.Predict(state, 1, cmd, shared.FixedDtMicros)

	player, ok := state.Players[1]
	if !ok {
		t.Fatal("expected the predictor to create the local player")
	}
	if player.Vel.X <= 0 {
		t.Fatalf("expected positive X velocity after predicting a move-right, got %v", player.Vel.X)
	}
	if len(p.unconfirmed) != 1 {
		t.Fatalf("expected the command to be recorded as unconfirmed, got %d entries", len(p.unconfirmed))
	}
}

func TestPredictorDisabledDoesNothing(t *testing.T) {
	state := shared.NewGameState(testScene())
	p := &Predictor{ActivePrediction: false}

	cmd := shared.PlayerStateCommand{Commands: []shared.PlayerCommand{shared.CommandMoveRight}}
	p.Predict(state, 1, cmd, 0)

	if _, ok := state.Players[1]; ok {
		t.Fatal("expected no player to be created when prediction is disabled")
	}
}

func TestReconcileDropsConfirmedAndReplaysRemainder(t *testing.T) {
	state := shared.NewGameState(testScene())
	p := &Predictor{ActivePrediction: true, ActiveReconciliation: true}

	for i := 0; i < 3; i++ {
		cmd := shared.PlayerStateCommand{
			Sequence:              p.NextSequence(),
			DtMicros:              shared.FixedDtMicros,
			ClientTimestampMicros: uint64(i) * shared.FixedDtMicros,
			Commands:              []shared.PlayerCommand{shared.CommandMoveRight},
		}
		p.Predict(state, 1, cmd, uint64(i+1)*shared.FixedDtMicros)
	}

	if len(p.unconfirmed) != 3 {
		t.Fatalf("expected 3 unconfirmed commands before reconciliation, got %d", len(p.unconfirmed))
	}

	p.Reconcile(state, 1, 1, 0, 4*shared.FixedDtMicros)

	if len(p.unconfirmed) != 2 {
		t.Fatalf("expected 2 unconfirmed commands to survive reconciliation against sequence 1, got %d", len(p.unconfirmed))
	}
	for _, cmd := range p.unconfirmed {
		if !shared.SequenceGreater(cmd.Sequence, 1) {
			t.Fatalf("found a confirmed command that should have been dropped: %+v", cmd)
		}
	}
}

func TestReconcileDisabledClearsUnconfirmed(t *testing.T) {
	state := shared.NewGameState(testScene())
	p := &Predictor{ActivePrediction: true, ActiveReconciliation: false}

	p.Reconcile(state, 1, 5, 0, 0)
	if p.unconfirmed != nil {
		t.Fatalf("expected unconfirmed to be cleared when reconciliation is disabled, got %v", p.unconfirmed)
	}
}
