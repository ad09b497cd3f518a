// Package server runs the authoritative simulation: a UDP ingress loop,
// an identity table mapping socket addresses to stable player ids, and
// a fixed-tick loop that advances shared.GameState and broadcasts a
// per-recipient snapshot to every connected address.
package server

import (
	"sync"

	"github.com/henrikhaus/nettworkers/shared"
)

// identityTable assigns each observed UDP address a PlayerID that stays
// stable until the address is removed: the first address seen gets
// id 1, and each subsequent new address gets the next id from a counter
// that only grows, so an id freed by remove is never handed out again.
type identityTable struct {
	mu   sync.Mutex
	ids  map[string]shared.PlayerID
	next shared.PlayerID
}

func newIdentityTable() *identityTable {
	return &identityTable{
		ids:  make(map[string]shared.PlayerID),
		next: 1,
	}
}

// getOrAdd returns the PlayerID for addr, assigning a new one if this is
// the first time addr has been seen.
func (t *identityTable) getOrAdd(addr string) shared.PlayerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.ids[addr]; ok {
		return id
	}
	id := t.next
	t.ids[addr] = id
	t.next++
	return id
}

// lookup returns the PlayerID for addr without creating one.
func (t *identityTable) lookup(addr string) (shared.PlayerID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.ids[addr]
	return id, ok
}

// remove drops addr from the table, used by the idle-timeout sweep.
func (t *identityTable) remove(addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ids, addr)
}

// addresses returns a snapshot of every address currently registered,
// keyed by PlayerID, for the broadcast step.
func (t *identityTable) addresses() map[shared.PlayerID]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[shared.PlayerID]string, len(t.ids))
	for addr, id := range t.ids {
		out[id] = addr
	}
	return out
}
