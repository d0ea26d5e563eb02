package maze

import "fmt"

// Maze is a rectangular grid of tiles. Width and height are fixed at
// construction and the tile slice is always exactly Width*Height long,
// indexed as x + y*Width (x is column, y is line).
type Maze struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	NestX  uint32 `json:"nestX"`
	NestY  uint32 `json:"nestY"`
	Tiles  []Tile `json:"tiles"`
}

// New allocates a maze of the given dimensions with every tile set to
// AllWalls and no nest or food flags. Callers are expected to set the nest
// flag themselves once the nest position is decided.
func New(width, height uint32) *Maze {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = AllWalls
	}
	return &Maze{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) lies within the grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && uint32(x) < m.Width && uint32(y) < m.Height
}

func (m *Maze) index(x, y int) int {
	return x + y*int(m.Width)
}

// Get returns the tile at (x, y) and true, or the zero Tile and false when
// out of bounds.
func (m *Maze) Get(x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	return m.Tiles[m.index(x, y)], true
}

// Set overwrites the tile at (x, y). It is a no-op when out of bounds.
func (m *Maze) Set(x, y int, t Tile) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[m.index(x, y)] = t
}

// SetWall sets or clears the wall flag for direction d at (x, y).
func (m *Maze) SetWall(x, y int, d Direction, present bool) {
	t, ok := m.Get(x, y)
	if !ok {
		return
	}
	m.Set(x, y, t.SetWall(d, present))
}

// RemoveWallBetween clears the wall between (x, y) and its neighbor in
// direction d on both sides, keeping the shared-wall invariant intact.
func (m *Maze) RemoveWallBetween(x, y int, d Direction) {
	m.SetWall(x, y, d, false)
	dx, dy := d.Delta()
	m.SetWall(x+dx, y+dy, d.Opposite(), false)
}

// SetNest clears any existing nest flag and sets it at (x, y).
func (m *Maze) SetNest(x, y int) {
	for i, t := range m.Tiles {
		if t.IsNest() {
			m.Tiles[i] = t.SetNest(false)
		}
	}
	m.NestX, m.NestY = uint32(x), uint32(y)
	t, _ := m.Get(x, y)
	m.Set(x, y, t.SetNest(true))
}

// ApplyBorderHull sets the outward wall flag on every border tile.
func (m *Maze) ApplyBorderHull() {
	for y := 0; y < int(m.Height); y++ {
		for x := 0; x < int(m.Width); x++ {
			if x == 0 {
				m.SetWall(x, y, West, true)
			}
			if x == int(m.Width)-1 {
				m.SetWall(x, y, East, true)
			}
			if y == 0 {
				m.SetWall(x, y, North, true)
			}
			if y == int(m.Height)-1 {
				m.SetWall(x, y, South, true)
			}
		}
	}
}

// Validate checks the invariants required of every maze handed out by the
// generator or accepted from the wire: mutual walls between in-bounds
// neighbors, exactly one nest tile, at least one food tile.
func (m *Maze) Validate() error {
	if m.Width == 0 || m.Height == 0 {
		return fmt.Errorf("maze has zero dimension (%dx%d)", m.Width, m.Height)
	}
	if len(m.Tiles) != int(m.Width*m.Height) {
		return fmt.Errorf("maze tile count %d does not match %dx%d", len(m.Tiles), m.Width, m.Height)
	}

	nestCount, foodCount := 0, 0
	for y := 0; y < int(m.Height); y++ {
		for x := 0; x < int(m.Width); x++ {
			t, _ := m.Get(x, y)
			if t.IsNest() {
				nestCount++
			}
			if t.IsFood() {
				foodCount++
			}
			for _, d := range AllDirections {
				dx, dy := d.Delta()
				nx, ny := x+dx, y+dy
				if !m.InBounds(nx, ny) {
					continue
				}
				nt, _ := m.Get(nx, ny)
				if t.WallIn(d) != nt.WallIn(d.Opposite()) {
					return fmt.Errorf("asymmetric wall between (%d,%d) and (%d,%d) facing %s", x, y, nx, ny, d)
				}
			}
		}
	}
	if nestCount != 1 {
		return fmt.Errorf("maze has %d nest tiles, want exactly 1", nestCount)
	}
	if foodCount < 1 {
		return fmt.Errorf("maze has no food tiles")
	}
	return nil
}
