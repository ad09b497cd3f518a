package shared

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxDatagramBytes bounds every encoded message; a datagram contains
// exactly one message.
const MaxDatagramBytes = 2048

// MaxPlayerNameBytes bounds a player's display name.
const MaxPlayerNameBytes = 64

// WirePlayer is the generic, no-velocity view of a non-recipient
// player sent in every GameState snapshot's players array.
type WirePlayer struct {
	ID    PlayerID
	Name  string
	Pos   Vec2
	Size  float32
	Color Color
}

// WireClientPlayer is the recipient's own full authoritative state,
// carried once per snapshot as the client_player field.
type WireClientPlayer struct {
	WirePlayer
	Vel       Vec2
	Grounded  bool
	JumpTimer float32
}

// StateSnapshot is the server->client GameState wire message: a view
// specialized to one recipient.
type StateSnapshot struct {
	Players             []WirePlayer
	ClientPlayer         WireClientPlayer
	Sequence             uint32
	ServerTimestampMicros uint64
}

// EncodePlayerStateCommand serializes the client->server PlayerCommands
// message: sequence, dt_micros, client_timestamp_micros, then a
// length-delimited list of one-byte command enums.
func EncodePlayerStateCommand(cmd PlayerStateCommand) ([]byte, error) {
	buf := new(bytes.Buffer)

	if err := writeFields(buf,
		cmd.Sequence,
		cmd.DtMicros,
		cmd.ClientTimestampMicros,
	); err != nil {
		return nil, errors.Wrap(err, "encoding player state command header")
	}

	if len(cmd.Commands) > math.MaxUint8 {
		return nil, errors.Errorf("too many commands in one bundle: %d", len(cmd.Commands))
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(len(cmd.Commands))); err != nil {
		return nil, errors.Wrap(err, "encoding command count")
	}
	for _, c := range cmd.Commands {
		if err := binary.Write(buf, binary.LittleEndian, uint8(c)); err != nil {
			return nil, errors.Wrap(err, "encoding command")
		}
	}

	if buf.Len() > MaxDatagramBytes {
		return nil, errors.Errorf("encoded player state command exceeds %d bytes", MaxDatagramBytes)
	}
	return buf.Bytes(), nil
}

// DecodePlayerStateCommand is the inverse of EncodePlayerStateCommand.
func DecodePlayerStateCommand(data []byte) (PlayerStateCommand, error) {
	r := bytes.NewReader(data)
	var cmd PlayerStateCommand

	if err := readFields(r,
		&cmd.Sequence,
		&cmd.DtMicros,
		&cmd.ClientTimestampMicros,
	); err != nil {
		return PlayerStateCommand{}, errors.Wrap(err, "decoding player state command header")
	}

	var count uint8
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return PlayerStateCommand{}, errors.Wrap(err, "decoding command count")
	}
	cmd.Commands = make([]PlayerCommand, count)
	for i := range cmd.Commands {
		var c uint8
		if err := binary.Read(r, binary.LittleEndian, &c); err != nil {
			return PlayerStateCommand{}, errors.Wrap(err, "decoding command")
		}
		cmd.Commands[i] = PlayerCommand(c)
	}

	return cmd, nil
}

// EncodeStateSnapshot serializes the server->client GameState message.
func EncodeStateSnapshot(snap StateSnapshot) ([]byte, error) {
	buf := new(bytes.Buffer)

	if len(snap.Players) > math.MaxUint16 {
		return nil, errors.Errorf("too many players in one snapshot: %d", len(snap.Players))
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(snap.Players))); err != nil {
		return nil, errors.Wrap(err, "encoding player count")
	}
	for _, p := range snap.Players {
		if err := writeWirePlayer(buf, p); err != nil {
			return nil, errors.Wrap(err, "encoding player")
		}
	}

	if err := writeWirePlayer(buf, snap.ClientPlayer.WirePlayer); err != nil {
		return nil, errors.Wrap(err, "encoding client player")
	}
	if err := writeFields(buf,
		snap.ClientPlayer.Vel.X,
		snap.ClientPlayer.Vel.Y,
		snap.ClientPlayer.Grounded,
		snap.ClientPlayer.JumpTimer,
		snap.Sequence,
		snap.ServerTimestampMicros,
	); err != nil {
		return nil, errors.Wrap(err, "encoding client player kinematics")
	}

	if buf.Len() > MaxDatagramBytes {
		return nil, errors.Errorf("encoded snapshot exceeds %d bytes", MaxDatagramBytes)
	}
	return buf.Bytes(), nil
}

// DecodeStateSnapshot is the inverse of EncodeStateSnapshot.
func DecodeStateSnapshot(data []byte) (StateSnapshot, error) {
	r := bytes.NewReader(data)
	var snap StateSnapshot

	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return StateSnapshot{}, errors.Wrap(err, "decoding player count")
	}
	snap.Players = make([]WirePlayer, count)
	for i := range snap.Players {
		p, err := readWirePlayer(r)
		if err != nil {
			return StateSnapshot{}, errors.Wrap(err, "decoding player")
		}
		snap.Players[i] = p
	}

	clientBase, err := readWirePlayer(r)
	if err != nil {
		return StateSnapshot{}, errors.Wrap(err, "decoding client player")
	}
	snap.ClientPlayer.WirePlayer = clientBase

	if err := readFields(r,
		&snap.ClientPlayer.Vel.X,
		&snap.ClientPlayer.Vel.Y,
		&snap.ClientPlayer.Grounded,
		&snap.ClientPlayer.JumpTimer,
		&snap.Sequence,
		&snap.ServerTimestampMicros,
	); err != nil {
		return StateSnapshot{}, errors.Wrap(err, "decoding client player kinematics")
	}

	return snap, nil
}

func writeWirePlayer(w io.Writer, p WirePlayer) error {
	name := p.Name
	if len(name) > MaxPlayerNameBytes {
		name = name[:MaxPlayerNameBytes]
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(p.ID)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(len(name))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	return writeFields(w, p.Pos.X, p.Pos.Y, p.Size, uint8(p.Color))
}

func readWirePlayer(r io.Reader) (WirePlayer, error) {
	var p WirePlayer
	var id uint32
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return WirePlayer{}, err
	}
	p.ID = PlayerID(id)

	var nameLen uint8
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return WirePlayer{}, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return WirePlayer{}, err
	}
	p.Name = string(name)

	var color uint8
	if err := readFields(r, &p.Pos.X, &p.Pos.Y, &p.Size, &color); err != nil {
		return WirePlayer{}, err
	}
	p.Color = Color(color)
	return p, nil
}

// writeFields writes each value in order, little-endian, stopping at
// the first error.
func writeFields(w io.Writer, values ...any) error {
	for _, v := range values {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// readFields reads into each pointer in order, little-endian, stopping
// at the first error.
func readFields(r io.Reader, ptrs ...any) error {
	for _, p := range ptrs {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return err
		}
	}
	return nil
}
