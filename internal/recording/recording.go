// Package recording implements the optional per-session message log
// described for the session engine, grounded on the same append-then-
// freeze shape the original sources use for their own recording state.
package recording

import (
	"time"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/google/uuid"
)

// MessageRecord is one recorded client-originated message: the delay since
// the previously recorded message (zero for the first), the player that
// sent it, and the message itself.
type MessageRecord struct {
	Delay   time.Duration
	Player  uuid.UUID
	Message protocol.Message
}

// Recorder accumulates MessageRecords for one active session. It is not
// safe for concurrent use; the session engine is its only owner.
type Recorder struct {
	maze      maze.Maze
	players   map[uuid.UUID]struct{}
	messages  []MessageRecord
	lastStamp time.Time
	hasLast   bool
}

// NewRecorder starts an empty recording over m.
func NewRecorder(m maze.Maze) *Recorder {
	return &Recorder{maze: m, players: make(map[uuid.UUID]struct{})}
}

// Track appends one client-originated message, computing its delay from
// the previous call (zero on the first).
func (r *Recorder) Track(player uuid.UUID, msg protocol.Message) {
	r.players[player] = struct{}{}

	now := time.Now()
	var delay time.Duration
	if r.hasLast {
		delay = now.Sub(r.lastStamp)
	}
	r.lastStamp = now
	r.hasLast = true

	r.messages = append(r.messages, MessageRecord{Delay: delay, Player: player, Message: msg})
}

// GameRecord is a finalized recording: the maze it was played on, the set
// of players observed, and the ordered message list.
type GameRecord struct {
	Maze     maze.Maze
	Players  []uuid.UUID
	Messages []MessageRecord
}

// Finish freezes the recorder into a GameRecord.
func (r *Recorder) Finish() GameRecord {
	players := make([]uuid.UUID, 0, len(r.players))
	for id := range r.players {
		players = append(players, id)
	}
	return GameRecord{Maze: r.maze, Players: players, Messages: r.messages}
}
