package shared

// FixedDtMicros is the logical time one physics substep always
// consumes, regardless of how much wall-clock time actually elapsed.
const FixedDtMicros uint64 = 16_000

// GameState is the full replicated world model: the player map plus
// the static scene geometry plus the bookkeeping the fixed-timestep
// mutator needs (leftover time, pending scheduled commands).
type GameState struct {
	Players map[PlayerID]*PlayerState

	Width       float32
	Height      float32
	SpawnPoint  SpawnPoint
	WinPoint    SceneObject
	Collidables []SceneObject

	// CachedDtMicros is logical time not yet consumed by a full
	// FixedDtMicros substep; always < FixedDtMicros after Mutate.
	CachedDtMicros uint64

	scheduled scheduledCommandHeap
}

// NewGameState builds the authoritative (or a client-local) world
// state from loaded scene geometry. The player map starts empty;
// players are created lazily on first command.
func NewGameState(scene Scene) *GameState {
	return &GameState{
		Players:     make(map[PlayerID]*PlayerState),
		Width:       scene.Width,
		Height:      scene.Height,
		SpawnPoint:  scene.SpawnPoint,
		WinPoint:    scene.WinPoint,
		Collidables: scene.Collidables,
		scheduled:   make(scheduledCommandHeap, 0, 64),
	}
}

// getOrAddPlayer returns the player with id, creating it at the scene
// spawn point if this is the first time id has been seen.
func (s *GameState) getOrAddPlayer(id PlayerID) *PlayerState {
	if p, ok := s.Players[id]; ok {
		return p
	}
	p := NewPlayerState(id, s.SpawnPoint)
	s.Players[id] = p
	return p
}

// OverwritePlayers replaces the player map wholesale, as the client
// does when it applies a server snapshot: every remote player plus the
// server's authoritative copy of the local player.
func (s *GameState) OverwritePlayers(players map[PlayerID]*PlayerState) {
	s.Players = players
}

// RemovePlayer drops a player from the world, used by the server's
// idle-timeout sweep.
func (s *GameState) RemovePlayer(id PlayerID) {
	delete(s.Players, id)
}

// PositionSnapshot captures just the positions of every player, the
// minimal state the interpolator needs to blend between two ticks.
type PositionSnapshot map[PlayerID]Vec2

// Snapshot extracts a PositionSnapshot from the current player map.
func (s *GameState) Snapshot() PositionSnapshot {
	snap := make(PositionSnapshot, len(s.Players))
	for id, p := range s.Players {
		snap[id] = p.Pos
	}
	return snap
}
