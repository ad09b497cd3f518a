package client

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/henrikhaus/nettworkers/shared"
)

// FrameDuration is the client's own fixed loop period, independent of
// the server's tick rate.
const FrameDuration = 16 * time.Millisecond

// SampleInputFunc returns whatever commands are currently held down.
// The caller supplies this; a real build would read a keyboard or
// controller, the synthetic demo in cmd/client generates one instead.
type SampleInputFunc func() []shared.PlayerCommand

// DrawFunc is called once per frame with the locally predicted player
// state and the interpolated positions of every remote player. A real
// build would render a frame; it is a no-op hook here since windowing
// is out of scope.
type DrawFunc func(local *shared.PlayerState, remotes shared.PositionSnapshot)

// Client owns the UDP socket, the local prediction state, the
// interpolator, and the two delay queues that simulate artificial
// network latency on top of the real connection.
type Client struct {
	conn   *net.UDPConn
	log    *logrus.Entry
	name   string

	localID shared.PlayerID
	haveID  bool

	local        *shared.GameState
	predictor    *Predictor
	interpolator *Interpolator

	outbound *delayQueue[shared.PlayerStateCommand]
	inbound  *delayQueue[shared.StateSnapshot]

	lastServerSequence      uint32
	lastServerDelayMicros   uint64
}

// New dials serverAddr over UDP and builds a Client ready to Run.
func New(serverAddr, name string, delayMicros uint64, predict, reconcile bool, scene shared.Scene, log *logrus.Entry) (*Client, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", serverAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving server address %q", serverAddr)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing server %q", serverAddr)
	}

	return &Client{
		conn:         conn,
		log:          log,
		name:         name,
		local:        shared.NewGameState(scene),
		predictor:    &Predictor{ActivePrediction: predict, ActiveReconciliation: reconcile},
		interpolator: NewInterpolator(),
		outbound:     newDelayQueue[shared.PlayerStateCommand](delayMicros),
		inbound:      newDelayQueue[shared.StateSnapshot](delayMicros),
	}, nil
}

// Run drives the client's per-frame loop until ctx is canceled. sample
// is polled once per frame for the commands currently held down; draw
// is called once per frame with the result of this frame's step.
func (c *Client) Run(ctx context.Context, sample SampleInputFunc, draw DrawFunc) error {
	go c.receiveLoop(ctx)

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.step(sample, draw)
		}
	}
}

// step runs exactly one frame: release and apply any server snapshot
// whose artificial delay has elapsed, reconciling the local player's
// predicted state against it, and only then sample this frame's input,
// predict and queue it, and report the resulting renderable state.
// Draining inbound before sampling matters: applySnapshot overwrites
// the entire local player map, so a command predicted before the
// drain would have this frame's local simulation of it thrown away and
// survive only through Reconcile's replay.
func (c *Client) step(sample SampleInputFunc, draw DrawFunc) {
	now := uint64(time.Now().UnixMicro())

	for _, snap := range c.inbound.Drain(now) {
		c.applySnapshot(snap, now)
	}

	commands := sample()
	cmd := shared.PlayerStateCommand{
		Sequence:              c.predictor.NextSequence(),
		DtMicros:              uint64(FrameDuration.Microseconds()),
		ClientTimestampMicros: now,
		Commands:              commands,
	}

	if c.haveID {
		c.predictor.Predict(c.local, c.localID, cmd, now)
	}

	c.outbound.Push(cmd, now)
	for _, released := range c.outbound.Drain(now) {
		c.send(released)
	}

	if !c.haveID {
		if draw != nil {
			draw(nil, nil)
		}
		return
	}

	local := c.local.Players[c.localID]
	remotes := c.interpolator.Interpolate(c.localID, now)
	if draw != nil {
		draw(local, remotes)
	}
}

func (c *Client) send(cmd shared.PlayerStateCommand) {
	encoded, err := shared.EncodePlayerStateCommand(cmd)
	if err != nil {
		c.log.WithError(err).Warn("failed to encode outbound command")
		return
	}
	if _, err := c.conn.Write(encoded); err != nil {
		c.log.WithError(err).Debug("failed to send command")
	}
}

// receiveLoop blocks on reading datagrams from the server and enqueues
// each decoded snapshot into the inbound delay queue, simulating
// artificial latency on the downlink as well as the uplink.
func (c *Client) receiveLoop(ctx context.Context) {
	buf := make([]byte, shared.MaxDatagramBytes)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
			c.log.WithError(err).Warn("setting read deadline")
			return
		}

		n, err := c.conn.Read(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			c.log.WithError(err).Debug("receive failed")
			continue
		}

		snap, err := shared.DecodeStateSnapshot(buf[:n])
		if err != nil {
			c.log.WithError(err).Debug("dropping malformed snapshot")
			continue
		}

		c.inbound.Push(snap, uint64(time.Now().UnixMicro()))
	}
}

// applySnapshot folds a released server snapshot into local state: it
// establishes the local player's id on first contact, overwrites every
// remote player, feeds the interpolator, and triggers reconciliation
// of the local player's predicted state.
func (c *Client) applySnapshot(snap shared.StateSnapshot, now uint64) {
	if !c.haveID {
		c.localID = snap.ClientPlayer.ID
		c.haveID = true
	}

	positions := make(shared.PositionSnapshot, len(snap.Players)+1)
	players := make(map[shared.PlayerID]*shared.PlayerState, len(snap.Players)+1)
	for _, wp := range snap.Players {
		players[wp.ID] = &shared.PlayerState{ID: wp.ID, Name: wp.Name, Pos: wp.Pos, Size: wp.Size, Color: wp.Color}
		positions[wp.ID] = wp.Pos
	}
	positions[snap.ClientPlayer.ID] = snap.ClientPlayer.Pos

	local := &shared.PlayerState{
		ID:        snap.ClientPlayer.ID,
		Name:      snap.ClientPlayer.Name,
		Pos:       snap.ClientPlayer.Pos,
		Vel:       snap.ClientPlayer.Vel,
		Grounded:  snap.ClientPlayer.Grounded,
		JumpTimer: snap.ClientPlayer.JumpTimer,
		Size:      snap.ClientPlayer.Size,
		Color:     snap.ClientPlayer.Color,
	}
	players[local.ID] = local

	c.local.OverwritePlayers(players)
	c.interpolator.SetNewState(positions, now)

	delay := uint64(0)
	if now > snap.ServerTimestampMicros {
		delay = now - snap.ServerTimestampMicros
	}
	c.lastServerSequence = snap.Sequence
	c.lastServerDelayMicros = delay

	c.predictor.Reconcile(c.local, c.localID, snap.Sequence, delay, now)
}
