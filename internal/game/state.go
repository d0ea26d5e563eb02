// Package game implements the per-session simulation: player positions and
// food carriage, movement rules, and the decaying pheromone field. Every
// method here assumes single-threaded ownership by the session engine; no
// locking is performed or required.
package game

import (
	"log/slog"

	"github.com/dantte-lp/antcolonyd/internal/maze"
	"github.com/google/uuid"
)

// PlayerInfo is one player's mutable simulation state. It is created at
// the nest tile on first init and persists for the lifetime of the
// session.
type PlayerInfo struct {
	Column, Line uint32
	HasFood      bool
}

// GameState owns the maze, the player table, and the pheromone field for
// one session. The maze is immutable after construction.
type GameState struct {
	Maze      *maze.Maze
	Players   map[uuid.UUID]*PlayerInfo
	Pheromone *PheromoneField
}

// New builds a fresh GameState over m with no players and a zeroed
// pheromone field.
func New(m *maze.Maze) *GameState {
	return &GameState{
		Maze:      m,
		Players:   make(map[uuid.UUID]*PlayerInfo),
		Pheromone: NewPheromoneField(int(m.Width), int(m.Height)),
	}
}

// InitPlayer returns the existing PlayerInfo for id, or creates one at the
// nest tile if this is the first time id is seen.
func (g *GameState) InitPlayer(id uuid.UUID) *PlayerInfo {
	if p, ok := g.Players[id]; ok {
		return p
	}
	p := &PlayerInfo{Column: g.Maze.NestX, Line: g.Maze.NestY}
	g.Players[id] = p
	return p
}

// ProcessMove applies one movement command for player, following the
// wall/food/nest rules. Movement into a wall or off the grid leaves the
// position unchanged.
func (g *GameState) ProcessMove(logger *slog.Logger, player *PlayerInfo, dir maze.Direction) {
	tile, ok := g.Maze.Get(int(player.Column), int(player.Line))
	if !ok {
		if logger != nil {
			logger.Warn("process move: player position out of bounds", "column", player.Column, "line", player.Line)
		}
		return
	}

	if tile.WallIn(dir) {
		return
	}

	dx, dy := dir.Delta()
	nx, ny := int(player.Column)+dx, int(player.Line)+dy

	nextTile, ok := g.Maze.Get(nx, ny)
	if !ok {
		return
	}
	if logger != nil && nextTile.WallIn(dir.Opposite()) {
		logger.Warn("process move: asymmetric wall", "from_col", player.Column, "from_line", player.Line, "direction", dir)
	}

	player.Column, player.Line = uint32(nx), uint32(ny)

	if player.HasFood {
		g.Pheromone.Drop(nx, ny)
	}
	if nextTile.IsNest() && player.HasFood {
		player.HasFood = false
	} else if nextTile.IsFood() {
		player.HasFood = true
	}
}

// Evaporate runs one decay step over the pheromone field.
func (g *GameState) Evaporate() {
	g.Pheromone.Evaporate()
}
