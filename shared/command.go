package shared

// PlayerCommand is a single discrete input. Several may co-occur in
// one PlayerStateCommand (e.g. MoveRight + Jump in the same frame).
type PlayerCommand uint8

const (
	CommandMoveLeft PlayerCommand = iota
	CommandMoveRight
	CommandJump
)

// PlayerStateCommand is the per-frame input bundle a client samples
// and uploads to the server.
type PlayerStateCommand struct {
	// Sequence is monotonic per client; used by reconciliation.
	Sequence uint32
	// DtMicros is the client frame span this bundle covers.
	DtMicros uint64
	// ClientTimestampMicros is the client's wall clock at sample time,
	// in microseconds since the Unix epoch.
	ClientTimestampMicros uint64
	Commands               []PlayerCommand
}

// CommandContent is a per-player input bundle as observed by the
// server authority: the player it came from, the bundle itself, and
// the one-way delay the server measured for the packet it arrived in.
type CommandContent struct {
	PlayerID          PlayerID
	Command           PlayerStateCommand
	ClientDelayMicros uint64
}

// SequenceGreater reports whether sequence a is logically after b,
// tolerating a single wraparound of the uint32 sequence space. Both
// the server's per-player acknowledgment tracking and the client's
// reconciliation use this to compare command sequence numbers.
func SequenceGreater(a, b uint32) bool {
	return int32(a-b) > 0
}
