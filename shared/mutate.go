package shared

const fixedDtSeconds float32 = float32(FixedDtMicros) / 1_000_000

// Mutate is the single fixed-timestep entry point both the server and
// the client's predictor call. commands is every CommandContent
// observed since the previous call; dtMicros is the elapsed logical
// time to cover; nowMicros is the wall-clock instant ("end_tick" in
// this call's substeps are anchored to.
//
// On return, state has been advanced by exactly
// floor((dtMicros+cached)/FixedDtMicros) substeps, every scheduled
// command whose execute-at fell within the covered window has been
// applied before the substep it belongs to, and the remainder of
// logical time is stored back into CachedDtMicros.
func (s *GameState) Mutate(commands []CommandContent, dtMicros uint64, nowMicros uint64) {
	s.scheduleCommands(commands)

	accumulator := s.CachedDtMicros + dtMicros
	for accumulator >= FixedDtMicros {
		executeTime := nowMicros - accumulator
		s.applyDueCommands(executeTime)
		physicsSubstep(s, fixedDtSeconds)
		accumulator -= FixedDtMicros
	}

	// Drain anything left over: it targets a wall-clock instant
	// earlier than the end of this tick but didn't land cleanly on a
	// substep boundary.
	s.applyDueCommands(nowMicros)

	s.CachedDtMicros = accumulator
}

// ClearCache zeroes the leftover logical time and discards every
// pending scheduled command. The client calls this before each
// reconciliation replay so stale residual time from prediction can't
// leak into the replayed segment.
func (s *GameState) ClearCache() {
	s.CachedDtMicros = 0
	s.scheduled = s.scheduled[:0]
}

// scheduleCommands pushes every PlayerCommand in every CommandContent
// into the heap at its intended execution instant: the client's
// sample time adjusted by the one-way delay the server measured for
// the packet.
func (s *GameState) scheduleCommands(commands []CommandContent) {
	for _, content := range commands {
		executeAt := content.Command.ClientTimestampMicros + content.ClientDelayMicros
		clientDtMs := float32(content.Command.DtMicros) / 1000

		for _, cmd := range content.Command.Commands {
			pushScheduledCommand(&s.scheduled, ScheduledCommand{
				ExecuteAtTimestamp: executeAt,
				PlayerID:           content.PlayerID,
				ClientDtMs:         clientDtMs,
				Command:            cmd,
			})
		}
	}
}

// applyDueCommands pops and applies every scheduled command whose
// execute-at timestamp is no later than deadline, in heap (ascending
// timestamp) order.
func (s *GameState) applyDueCommands(deadline uint64) {
	for {
		next, ok := peekScheduledCommand(s.scheduled)
		if !ok || next.ExecuteAtTimestamp > deadline {
			return
		}
		popped := popScheduledCommand(&s.scheduled)
		s.applyScheduledCommand(popped)
	}
}

func (s *GameState) applyScheduledCommand(cmd ScheduledCommand) {
	player := s.getOrAddPlayer(cmd.PlayerID)

	switch cmd.Command {
	case CommandMoveRight:
		player.Vel.X += PlayerAcceleration * cmd.ClientDtMs
	case CommandMoveLeft:
		player.Vel.X -= PlayerAcceleration * cmd.ClientDtMs
	case CommandJump:
		if player.Grounded && player.JumpTimer > JumpCooldown {
			player.Vel.Y -= JumpForce
			player.JumpTimer = 0
		}
	}
}
