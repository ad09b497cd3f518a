package shared

import "github.com/henrikhaus/nettworkers/internal/mathutil"

// Physics constants, in world-pixel / second units.
const (
	Gravity             float32 = 2200
	GroundFriction      float32 = 0.0001
	JumpForce           float32 = 800
	PlayerAcceleration  float32 = 3
	JumpCooldown        float32 = 0.3
)

// physicsSubstep advances every player by one substep of length dt
// seconds: ground friction, gravity, integration, world-AABB clamp,
// and static-collidable resolution. It also runs the win-point check
// that precedes the kinematic update; a substep in which that check
// resets the players ends right there, leaving everyone at the spawn
// point at rest.
func physicsSubstep(s *GameState, dt float32) {
	if applyWinPointReset(s) {
		return
	}

	for _, p := range s.Players {
		p.Vel.X *= mathutil.Pow32(GroundFriction, dt)
		p.Vel.Y += Gravity * dt
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt

		p.JumpTimer += dt
		p.Grounded = false

		clampToWorld(s, p)
	}

	resolveCollidables(s)
}

// applyWinPointReset implements the shared "round restart" semantics:
// if any player's AABB overlaps the win point, every player snaps back
// to the spawn point with zero velocity. It reports whether it did so.
func applyWinPointReset(s *GameState) bool {
	touched := false
	for _, p := range s.Players {
		if aabbOverlap(playerRect(p), s.WinPoint) {
			touched = true
			break
		}
	}
	if !touched {
		return false
	}
	for _, p := range s.Players {
		p.Pos = Vec2{X: s.SpawnPoint.X, Y: s.SpawnPoint.Y}
		p.Vel = ZeroVec2
	}
	return true
}

func clampToWorld(s *GameState, p *PlayerState) {
	if p.Pos.Y > s.Height-p.Size {
		p.Pos.Y = s.Height - p.Size
		p.Vel.Y = 0
		p.Grounded = true
	}
	if p.Pos.Y < 0 {
		p.Pos.Y = 0
		p.Vel.Y = 0
	}
	if p.Pos.X > s.Width-p.Size {
		p.Pos.X = s.Width - p.Size
		p.Vel.X = 0
	}
	if p.Pos.X < 0 {
		p.Pos.X = 0
		p.Vel.X = 0
	}
}

// resolveCollidables pushes every player out of any static collidable
// it overlaps, resolving along whichever axis has the smaller
// penetration depth.
func resolveCollidables(s *GameState) {
	for _, p := range s.Players {
		px1, py1 := p.Pos.X, p.Pos.Y
		px2, py2 := px1+p.Size, py1+p.Size

		for _, col := range s.Collidables {
			cx1, cy1 := col.X, col.Y
			cx2, cy2 := cx1+col.W, cy1+col.H

			if !(px1 < cx2 && px2 > cx1 && py1 < cy2 && py2 > cy1) {
				continue
			}

			var penX float32
			if p.Vel.X > 0 {
				penX = px2 - cx1
			} else {
				penX = cx2 - px1
			}

			var penY float32
			if p.Vel.Y > 0 {
				penY = py2 - cy1
			} else {
				penY = cy2 - py1
			}

			if penX < penY {
				if p.Vel.X > 0 {
					p.Pos.X = cx1 - p.Size
				} else {
					p.Pos.X = cx2
				}
				p.Vel.X = 0
			} else {
				if p.Vel.Y > 0 {
					p.Pos.Y = cy1 - p.Size
					p.Grounded = true
				} else {
					p.Pos.Y = cy2
				}
				p.Vel.Y = 0
			}

			px1, py1 = p.Pos.X, p.Pos.Y
			px2, py2 = px1+p.Size, py1+p.Size
		}
	}
}

func playerRect(p *PlayerState) SceneObject {
	return SceneObject{X: p.Pos.X, Y: p.Pos.Y, W: p.Size, H: p.Size}
}

func aabbOverlap(a, b SceneObject) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
