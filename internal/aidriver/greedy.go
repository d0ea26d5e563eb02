package aidriver

import (
	"math/rand/v2"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
)

// GreedyDriver prefers moving into a tile it has not visited before,
// falling back to a random walkable direction once every neighbor has
// already been seen.
type GreedyDriver struct {
	rng     *rand.Rand
	visited map[[2]uint32]struct{}
}

// NewGreedyDriver builds a GreedyDriver seeded from rng. If rng is nil, a
// process-wide source is used.
func NewGreedyDriver(rng *rand.Rand) *GreedyDriver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &GreedyDriver{rng: rng, visited: make(map[[2]uint32]struct{})}
}

// Step implements Driver.
func (d *GreedyDriver) Step(m *maze.Maze, info *protocol.InfoBody) *maze.Direction {
	d.visited[[2]uint32{info.PlayerColumn, info.PlayerLine}] = struct{}{}

	tile, ok := m.Get(int(info.PlayerColumn), int(info.PlayerLine))
	if !ok {
		return nil
	}

	dirs := maze.AllDirections
	d.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	var fallback *maze.Direction
	for _, dir := range dirs {
		if tile.WallIn(dir) {
			continue
		}
		if fallback == nil {
			fallback = &dir
		}

		dx, dy := dir.Delta()
		next := [2]uint32{uint32(int(info.PlayerColumn) + dx), uint32(int(info.PlayerLine) + dy)}
		if _, seen := d.visited[next]; !seen {
			return &dir
		}
	}
	return fallback
}
