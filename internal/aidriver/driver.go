// Package aidriver defines the polymorphic AI driver contract and two
// sample drivers, grounded on the original sources' AntAI trait and its
// probabilistic/dfs implementations, expressed here as a Go interface
// satisfied by independent driver types. The group owner that drains
// per-driver info and forwards produced moves is grounded on the
// teacher's gobgp.Handler: a single goroutine consuming a channel of
// domain events and applying a pluggable strategy.
package aidriver

import (
	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
)

// Driver is a polymorphic AI driver. Step is given the maze (immutable
// for the session's lifetime) and the most recent info snapshot for the
// driver's own player, and returns a move to take, or nil to skip this
// cycle. Drivers must be safe to own by a single worker; no cross-driver
// sharing is required.
type Driver interface {
	Step(m *maze.Maze, info *protocol.InfoBody) *maze.Direction
}
