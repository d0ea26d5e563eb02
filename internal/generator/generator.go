// Package generator builds mazes with a randomized backtracking carver,
// following the same "iterative, stack-driven, shuffle the neighbor order"
// shape the teacher repo uses for its own randomized jitter and allocation
// retry loops, generalized here to grid carving.
package generator

import (
	"math/rand/v2"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
	"github.com/dantte-lp/antcolonyd/internal/maze"
)

// NestPosition selects how the nest tile is placed for a generated maze.
type NestPosition struct {
	Fixed      bool
	X, Y       uint32
	Randomized bool
}

// Params are the fully-resolved inputs to Generate, already derived from
// configuration and the requested difficulty.
type Params struct {
	Width, Height uint32
	Nest          NestPosition
	FoodCount     uint32
	CarvingPasses uint32
}

// Generate builds a new maze from params, using rng for every randomized
// decision (food placement, neighbor shuffling, and nest placement when
// Nest.Randomized is set).
func Generate(params Params, rng *rand.Rand) (*maze.Maze, error) {
	if params.Width == 0 || params.Height == 0 {
		return nil, apperr.InvalidMaze("zero dimension %dx%d", params.Width, params.Height)
	}

	nx, ny := int(params.Nest.X), int(params.Nest.Y)
	if params.Nest.Randomized {
		nx = rng.IntN(int(params.Width))
		ny = rng.IntN(int(params.Height))
	}
	if nx < 0 || ny < 0 || uint32(nx) >= params.Width || uint32(ny) >= params.Height {
		return nil, apperr.InvalidMaze("nest (%d,%d) out of bounds for %dx%d", nx, ny, params.Width, params.Height)
	}

	usableTiles := (int(params.Width) - 1) * (int(params.Height) - 1)
	if int(params.FoodCount)+1 >= usableTiles {
		return nil, apperr.InvalidMaze("food budget %d infeasible for %dx%d maze", params.FoodCount, params.Width, params.Height)
	}

	m := maze.New(params.Width, params.Height)
	m.SetNest(nx, ny)
	m.ApplyBorderHull()

	placeFood(m, params, nx, rng)

	passes := params.CarvingPasses
	if passes == 0 {
		passes = 1
	}
	for i := uint32(0); i < passes; i++ {
		carve(m, nx, ny, rng)
	}

	m.ApplyBorderHull()

	if err := m.Validate(); err != nil {
		return nil, apperr.InvalidMaze("generated maze failed validation: %v", err)
	}
	return m, nil
}

// minFoodDistanceSquared reproduces the source contract verbatim: it mixes
// maze height with nest column, which looks like a bug, but this exact
// formula is kept as the food-placement contract.
func minFoodDistanceSquared(height uint32, nestX int) int {
	a := int(height) / 3
	b := nestX / 3
	m := a
	if b > m {
		m = b
	}
	return m * m
}

func placeFood(m *maze.Maze, params Params, nestX int, rng *rand.Rand) {
	minDistSq := minFoodDistanceSquared(params.Height, nestX)
	placed := uint32(0)
	for attempt := uint32(0); attempt < params.FoodCount && placed < params.FoodCount; attempt++ {
		x := rng.IntN(int(params.Width))
		y := rng.IntN(int(params.Height))

		t, ok := m.Get(x, y)
		if !ok || t.IsFood() {
			continue
		}
		if x*x+y*y < minDistSq {
			continue
		}
		m.Set(x, y, t.SetFood(true))
		placed++
	}
}

// carve runs one iterative-deepening backtracking pass starting at
// (startX, startY), mutually clearing walls between the current cell and a
// randomly chosen unmarked neighbor until the stack empties.
func carve(m *maze.Maze, startX, startY int, rng *rand.Rand) {
	marked := make([]bool, int(m.Width)*int(m.Height))
	markIndex := func(x, y int) int { return x + y*int(m.Width) }

	type pos struct{ x, y int }
	stack := []pos{{startX, startY}}
	marked[markIndex(startX, startY)] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		dirs := maze.AllDirections
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		found := false
		for _, d := range dirs {
			dx, dy := d.Delta()
			nx, ny := cur.x+dx, cur.y+dy
			if !m.InBounds(nx, ny) {
				continue
			}
			if marked[markIndex(nx, ny)] {
				continue
			}

			m.RemoveWallBetween(cur.x, cur.y, d)
			marked[markIndex(nx, ny)] = true
			stack = append(stack, pos{nx, ny})
			found = true
			break
		}

		if !found {
			stack = stack[:len(stack)-1]
		}
	}
}
