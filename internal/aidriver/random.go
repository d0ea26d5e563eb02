package aidriver

import (
	"math/rand/v2"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/dantte-lp/antcolonyd/internal/protocol"
)

// RandomDriver walks randomly: it shuffles the four directions and picks
// the first one that isn't walled from the player's current tile.
type RandomDriver struct {
	rng *rand.Rand
}

// NewRandomDriver builds a RandomDriver seeded from rng. If rng is nil, a
// process-wide source is used.
func NewRandomDriver(rng *rand.Rand) *RandomDriver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomDriver{rng: rng}
}

// Step implements Driver.
func (d *RandomDriver) Step(m *maze.Maze, info *protocol.InfoBody) *maze.Direction {
	tile, ok := m.Get(int(info.PlayerColumn), int(info.PlayerLine))
	if !ok {
		return nil
	}

	dirs := maze.AllDirections
	d.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, dir := range dirs {
		if !tile.WallIn(dir) {
			return &dir
		}
	}
	return nil
}
