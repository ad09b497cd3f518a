package server

import (
	"context"
	"net"
	"sync"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/henrikhaus/nettworkers/shared"
)

// DefaultTickDuration is the server's wall-clock tick period absent an
// explicit override. Each tick the server drains inbound commands,
// advances the simulation by the elapsed wall-clock time, and
// broadcasts a snapshot to every client.
const DefaultTickDuration = 16 * time.Millisecond

// IdleTimeout is how long a player may go without sending a command
// before the server removes it from the world.
const IdleTimeout = 10 * time.Second

// maxRecvBufferBytes matches MaxDatagramBytes, the largest message a
// client can encode.
const maxRecvBufferBytes = 2048

// inboundCommand pairs a decoded command with the address it arrived
// from and the instant the server received it, so the tick loop can
// compute the one-way delay and refresh the idle timer.
type inboundCommand struct {
	addr      string
	udpAddr   *net.UDPAddr
	command   shared.PlayerStateCommand
	recvUnixMicros uint64
}

// Server owns the UDP socket, the identity table, the authoritative
// GameState, and the goroutines that drive them.
type Server struct {
	conn  *net.UDPConn
	log   *logrus.Entry
	state *shared.GameState

	identity *identityTable

	remotesMu sync.Mutex
	remotes   map[shared.PlayerID]*remoteClient

	inbound      chan inboundCommand
	tickDuration time.Duration
}

// remoteClient tracks everything the tick loop needs to know about one
// connected address: where to send its snapshot, when it was last
// heard from, and the highest command sequence it has sent so far —
// the sequence the server acknowledges back to it every broadcast.
type remoteClient struct {
	addr          *net.UDPAddr
	lastSeen      time.Time
	ackedSequence uint32
}

// New builds a Server bound to addr, simulating scene, ticking at
// tickDuration.
func New(addr string, scene shared.Scene, tickDuration time.Duration, log *logrus.Entry) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving server address %q", addr)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "binding UDP socket on %q", addr)
	}

	return &Server{
		conn:         conn,
		log:          log,
		state:        shared.NewGameState(scene),
		identity:     newIdentityTable(),
		remotes:      make(map[shared.PlayerID]*remoteClient),
		inbound:      make(chan inboundCommand, 1024),
		tickDuration: tickDuration,
	}, nil
}

// Run drives the ingress loop and the tick loop until ctx is canceled
// or either goroutine returns a fatal error.
func (s *Server) Run(ctx context.Context) error {
	defer s.conn.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.ingressLoop(ctx) })
	g.Go(func() error { return s.tickLoop(ctx) })

	return g.Wait()
}

// ingressLoop blocks on ReadFromUDP, decoding each datagram as a
// PlayerStateCommand and handing it to the tick loop. A short read
// deadline lets it notice ctx cancellation promptly.
func (s *Server) ingressLoop(ctx context.Context) error {
	buf := make([]byte, maxRecvBufferBytes)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
			return errors.Wrap(err, "setting read deadline")
		}

		n, udpAddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			s.log.WithError(err).Warn("udp read failed")
			continue
		}

		cmd, err := shared.DecodePlayerStateCommand(buf[:n])
		if err != nil {
			s.log.WithError(err).WithField("addr", udpAddr.String()).Debug("dropping malformed datagram")
			continue
		}

		select {
		case s.inbound <- inboundCommand{
			addr:           udpAddr.String(),
			udpAddr:        udpAddr,
			command:        cmd,
			recvUnixMicros: uint64(time.Now().UnixMicro()),
		}:
		case <-ctx.Done():
			return nil
		}
	}
}

// tickLoop advances the simulation once per tickDuration: drain
// whatever commands arrived since the last tick, mutate, then
// broadcast a specialized snapshot to every known address.
func (s *Server) tickLoop(ctx context.Context) error {
	ticker := channerics.NewTicker(ctx.Done(), s.tickDuration)
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticker:
			if !ok {
				return ctx.Err()
			}
			dt := now.Sub(lastTick)
			lastTick = now

			commands := s.drainInbound()
			s.state.Mutate(commands, uint64(dt.Microseconds()), uint64(now.UnixMicro()))

			s.sweepIdle(now)
			s.broadcast()
		}
	}
}

// drainInbound pulls every queued inboundCommand without blocking,
// resolving each to a CommandContent (with its one-way delay) and
// refreshing the sender's identity, last-seen time, and acknowledged
// sequence (the highest command.sequence seen from this player so far)
// as a side effect.
func (s *Server) drainInbound() []shared.CommandContent {
	var out []shared.CommandContent

	for {
		select {
		case in := <-s.inbound:
			id := s.identity.getOrAdd(in.addr)

			delay := uint64(0)
			if in.recvUnixMicros > in.command.ClientTimestampMicros {
				delay = in.recvUnixMicros - in.command.ClientTimestampMicros
			}

			out = append(out, shared.CommandContent{
				PlayerID:          id,
				Command:           in.command,
				ClientDelayMicros: delay,
			})

			s.remotesMu.Lock()
			remote, ok := s.remotes[id]
			if !ok {
				remote = &remoteClient{}
				s.remotes[id] = remote
			}
			remote.addr = in.udpAddr
			remote.lastSeen = time.Now()
			if !ok || shared.SequenceGreater(in.command.Sequence, remote.ackedSequence) {
				remote.ackedSequence = in.command.Sequence
			}
			s.remotesMu.Unlock()
		default:
			return out
		}
	}
}

// sweepIdle removes any player that hasn't sent a command within
// IdleTimeout from both the identity table and the simulation.
func (s *Server) sweepIdle(now time.Time) {
	s.remotesMu.Lock()
	var stale []shared.PlayerID
	for id, remote := range s.remotes {
		if now.Sub(remote.lastSeen) > IdleTimeout {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		if addr := s.remotes[id].addr; addr != nil {
			s.identity.remove(addr.String())
		}
		delete(s.remotes, id)
	}
	s.remotesMu.Unlock()

	for _, id := range stale {
		s.state.RemovePlayer(id)
		s.log.WithField("player_id", id).Info("removed idle player")
	}
}

// broadcast sends every known remote its own specialized StateSnapshot:
// its full kinematic state as ClientPlayer, and every other player as a
// WirePlayer.
func (s *Server) broadcast() {
	s.remotesMu.Lock()
	remotes := make(map[shared.PlayerID]remoteClient, len(s.remotes))
	for id, r := range s.remotes {
		remotes[id] = *r
	}
	s.remotesMu.Unlock()

	now := uint64(time.Now().UnixMicro())

	for recipient, remote := range remotes {
		self, ok := s.state.Players[recipient]
		if !ok {
			continue
		}

		others := make([]shared.WirePlayer, 0, len(s.state.Players)-1)
		for id, p := range s.state.Players {
			if id == recipient {
				continue
			}
			others = append(others, toWirePlayer(p))
		}

		snap := shared.StateSnapshot{
			Players: others,
			ClientPlayer: shared.WireClientPlayer{
				WirePlayer: toWirePlayer(self),
				Vel:        self.Vel,
				Grounded:   self.Grounded,
				JumpTimer:  self.JumpTimer,
			},
			Sequence:              remote.ackedSequence,
			ServerTimestampMicros: now,
		}

		encoded, err := shared.EncodeStateSnapshot(snap)
		if err != nil {
			s.log.WithError(err).WithField("player_id", recipient).Warn("failed to encode snapshot")
			continue
		}

		if _, err := s.conn.WriteToUDP(encoded, remote.addr); err != nil {
			s.log.WithError(err).WithField("player_id", recipient).Debug("failed to send snapshot")
		}
	}
}

func toWirePlayer(p *shared.PlayerState) shared.WirePlayer {
	return shared.WirePlayer{
		ID:    p.ID,
		Name:  p.Name,
		Pos:   p.Pos,
		Size:  p.Size,
		Color: p.Color,
	}
}
