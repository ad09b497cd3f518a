package shared

// PlayerID identifies a player for the lifetime of the server process.
type PlayerID uint32

// PlayerState is a player's full simulated state. Size must stay > 0;
// position is clamped into the world AABB by the physics substep, not
// by the wire decoder.
type PlayerState struct {
	ID         PlayerID
	Name       string
	Pos        Vec2
	Vel        Vec2
	Grounded   bool
	JumpTimer  float32
	Color      Color
	Size       float32
}

const defaultPlayerSize float32 = 16.0

// NewPlayerState creates a freshly-spawned player at the scene's spawn
// point, matching the defaults the original simulation assigns a
// first-seen player.
func NewPlayerState(id PlayerID, spawn SpawnPoint) *PlayerState {
	return &PlayerState{
		ID:        id,
		Name:      "player",
		Pos:       Vec2{X: spawn.X, Y: spawn.Y},
		Vel:       ZeroVec2,
		Grounded:  false,
		JumpTimer: 0,
		Color:     ColorRed,
		Size:      defaultPlayerSize,
	}
}
