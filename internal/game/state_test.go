package game

import (
	"testing"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/google/uuid"
)

// buildLine makes a 3x1 maze: nest at (0,0), food at (2,0), no interior walls.
func buildLine(t *testing.T) *maze.Maze {
	t.Helper()
	m := maze.New(3, 1)
	m.RemoveWallBetween(0, 0, maze.East)
	m.RemoveWallBetween(1, 0, maze.East)
	m.SetNest(0, 0)
	tile, _ := m.Get(2, 0)
	m.Set(2, 0, tile.SetFood(true))
	m.ApplyBorderHull()
	// ApplyBorderHull sets only outward-facing walls, so the corridor
	// opened above stays open; clearing it again here changes nothing.
	m.RemoveWallBetween(0, 0, maze.East)
	m.RemoveWallBetween(1, 0, maze.East)
	return m
}

func TestProcessMoveGathersFood(t *testing.T) {
	m := buildLine(t)
	gs := New(m)
	id := uuid.New()
	p := gs.InitPlayer(id)

	wantCols := []uint32{1, 2, 2}
	wantFood := []bool{false, false, true}

	for i, wantCol := range wantCols {
		gs.ProcessMove(nil, p, maze.East)
		if p.Column != wantCol {
			t.Fatalf("step %d: column = %d, want %d", i, p.Column, wantCol)
		}
		if p.HasFood != wantFood[i] {
			t.Fatalf("step %d: hasFood = %v, want %v", i, p.HasFood, wantFood[i])
		}
	}
}

func TestProcessMoveIntoWallIsNoop(t *testing.T) {
	m := maze.New(3, 3)
	m.SetNest(1, 1)
	tile, _ := m.Get(0, 0)
	m.Set(0, 0, tile.SetFood(true))
	m.ApplyBorderHull()

	gs := New(m)
	p := gs.InitPlayer(uuid.New())
	gs.ProcessMove(nil, p, maze.North)

	if p.Column != 1 || p.Line != 1 {
		t.Fatalf("position = (%d,%d), want unchanged (1,1)", p.Column, p.Line)
	}
}

func TestPheromoneDropAndEvaporate(t *testing.T) {
	gs := New(maze.New(2, 2))
	gs.Pheromone.Drop(0, 0)
	snap := gs.Pheromone.Snapshot()
	if snap[0] != 0.2 {
		t.Fatalf("level after drop = %v, want 0.2", snap[0])
	}

	gs.Evaporate()
	// Snapshot taken before Evaporate must be untouched (copy-on-write).
	if snap[0] != 0.2 {
		t.Fatalf("prior snapshot mutated: level = %v, want 0.2", snap[0])
	}

	newSnap := gs.Pheromone.Snapshot()
	if got, want := newSnap[0], float32(0.18); got < want-1e-6 || got > want+1e-6 {
		t.Fatalf("level after evaporate = %v, want %v", got, want)
	}
}
