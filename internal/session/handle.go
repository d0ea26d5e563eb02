package session

import (
	"sync/atomic"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/google/uuid"
)

// Handle is the shareable object by which external tasks send events to a
// session. It is held strongly by every connected client bridge and by the
// session engine itself (see Session.self); the lobby holds only a
// weak.Pointer built from a Handle returned here. When no client bridge and
// the engine itself hold a reference any longer, the Handle becomes
// unreachable and the lobby's weak pointer stops upgrading — this is how
// housekeeping observes session death without the lobby owning the
// session's lifetime.
type Handle struct {
	ID     uuid.UUID
	Maze   maze.Maze
	events chan<- event

	// playerCount is maintained by the engine goroutine with atomic stores
	// so Snapshot can be read from any goroutine without touching the
	// engine's own state, the same "atomic accessor beside the owned
	// state" shape the teacher uses for its session snapshots.
	playerCount atomic.Int32
}

// SessionSnapshot is a read-only, copy-based view of a session for
// monitoring and admin tooling, obtainable without synchronizing with the
// engine goroutine.
type SessionSnapshot struct {
	ID          uuid.UUID
	Width       uint32
	Height      uint32
	PlayerCount int
}

// Snapshot returns a cheap, eventually-consistent view of the session.
func (h *Handle) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:          h.ID,
		Width:       h.Maze.Width,
		Height:      h.Maze.Height,
		PlayerCount: int(h.playerCount.Load()),
	}
}

// InitPlayer registers or reattaches player id with an outbound channel.
// See the event table in the session engine design for the exact
// semantics of new vs. reconnecting vs. already-connected ids.
func (h *Handle) InitPlayer(id uuid.UUID, out chan<- protocol.Message) {
	h.events <- initPlayerEvent{id: id, out: out}
}

// ClientMessage forwards one client-originated message to the session.
func (h *Handle) ClientMessage(id uuid.UUID, msg protocol.Message) {
	h.events <- clientMessageEvent{id: id, msg: msg}
}
