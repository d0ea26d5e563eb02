package aidriver

import (
	"context"
	"time"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/session"
	"github.com/google/uuid"
)

// StepInterval is the cadence at which the group drains the latest info
// per driver and asks it for a move.
const StepInterval = 500 * time.Millisecond

type member struct {
	id     uuid.UUID
	driver Driver
	in     chan protocol.Message
}

// Group owns a set of Driver instances registered against one session. It
// drains the latest info snapshot per driver on a fixed cadence, asks the
// driver for a move, and forwards any produced move back to the session
// as a ClientMessage. This mirrors the teacher's Handler: a single
// goroutine consuming per-entity channels and applying a strategy.
type Group struct {
	handle  *session.Handle
	maze    maze.Maze
	members []member
}

// NewGroup creates count drivers via factory, each assigned a fresh uuid,
// and registers them with handle using one outbound channel per driver.
func NewGroup(handle *session.Handle, count int, factory func() Driver) *Group {
	g := &Group{handle: handle, maze: handle.Maze}

	for i := 0; i < count; i++ {
		id := uuid.New()
		in := make(chan protocol.Message, 8)
		handle.InitPlayer(id, in)
		g.members = append(g.members, member{id: id, driver: factory(), in: in})
	}
	return g
}

// Run drains and steps every driver on StepInterval until ctx is
// cancelled.
func (g *Group) Run(ctx context.Context) {
	ticker := time.NewTicker(StepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.step()
		}
	}
}

func (g *Group) step() {
	for _, m := range g.members {
		var latest *protocol.InfoBody
		for drained := true; drained; {
			select {
			case msg := <-m.in:
				if body, ok := msg.Body.(protocol.InfoBody); ok {
					latest = &body
				}
			default:
				drained = false
			}
		}
		if latest == nil {
			continue
		}

		dir := m.driver.Step(&g.maze, latest)
		if dir == nil {
			continue
		}
		g.handle.ClientMessage(m.id, protocol.NewMove(*dir))
	}
}
