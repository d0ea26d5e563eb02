package aidriver

import (
	"context"
	"testing"
	"time"

	"github.com/dantte-lp/antcolonyd/internal/game"
	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
	"github.com/dantte-lp/antcolonyd/internal/session"
	"github.com/google/uuid"
)

// fixedDriver always returns the same direction, so step()'s behavior is
// deterministic regardless of any driver-internal randomness.
type fixedDriver struct{ dir maze.Direction }

func (f fixedDriver) Step(*maze.Maze, *protocol.InfoBody) *maze.Direction {
	d := f.dir
	return &d
}

func buildGroupTestMaze() *maze.Maze {
	m := maze.New(3, 3)
	m.SetNest(1, 1)
	tile, _ := m.Get(0, 0)
	m.Set(0, 0, tile.SetFood(true))
	m.ApplyBorderHull()
	m.RemoveWallBetween(1, 1, maze.West)
	m.RemoveWallBetween(0, 1, maze.North)
	return m
}

// TestGroupStepForwardsLatestInfoToDriverAndAppliesTheMove exercises
// step() directly: it primes a member's inbound channel with a synthetic
// Info snapshot, calls step(), and confirms the resulting move was
// actually applied by the session (not just sent) by reading the
// session's follow-up Info reply off the same channel.
func TestGroupStepForwardsLatestInfoToDriverAndAppliesTheMove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gs := game.New(buildGroupTestMaze())
	handle := session.StartNew(ctx, gs, false, nil, nil, nil)

	id := uuid.New()
	in := make(chan protocol.Message, 8)
	handle.InitPlayer(id, in)

	g := &Group{
		handle: handle,
		maze:   handle.Maze,
		members: []member{
			{id: id, driver: fixedDriver{dir: maze.West}, in: in},
		},
	}

	// Prime the member's channel with the player's current position, as
	// the session would have sent on InitPlayer's first broadcast.
	in <- protocol.NewInfo(1, 1, false, nil)

	g.step()

	select {
	case msg := <-in:
		info, ok := msg.Body.(protocol.InfoBody)
		if !ok {
			t.Fatalf("reply body type = %T, want InfoBody", msg.Body)
		}
		if info.PlayerColumn != 0 || info.PlayerLine != 1 {
			t.Fatalf("position after step = (%d,%d), want (0,1)", info.PlayerColumn, info.PlayerLine)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the session's reply to the forwarded move")
	}
}

// TestGroupStepSkipsMembersWithNoPendingInfo confirms step() leaves a
// member alone (no move sent) when its channel has no Info queued,
// instead of panicking or blocking.
func TestGroupStepSkipsMembersWithNoPendingInfo(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gs := game.New(buildGroupTestMaze())
	handle := session.StartNew(ctx, gs, false, nil, nil, nil)

	id := uuid.New()
	in := make(chan protocol.Message, 8)
	handle.InitPlayer(id, in)

	g := &Group{
		handle: handle,
		maze:   handle.Maze,
		members: []member{
			{id: id, driver: fixedDriver{dir: maze.West}, in: in},
		},
	}

	g.step()

	select {
	case msg := <-in:
		t.Fatalf("unexpected message with no pending info: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
