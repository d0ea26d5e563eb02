package game

// PheromoneField is a dense per-tile scalar field, values clamped to
// [0,1]. It is owned by exactly one session engine; Snapshot hands out the
// current backing slice as an immutable view. A later mutation clones the
// slice first if it has been handed out since the last mutation, so a
// snapshot a consumer is holding is never changed under it.
type PheromoneField struct {
	width, height int
	levels        []float32
	shared        bool
}

// NewPheromoneField allocates a zeroed field for a width*height grid.
func NewPheromoneField(width, height int) *PheromoneField {
	return &PheromoneField{width: width, height: height, levels: make([]float32, width*height)}
}

// Snapshot returns the current backing slice as an immutable view. Callers
// must not mutate the returned slice.
func (p *PheromoneField) Snapshot() []float32 {
	p.shared = true
	return p.levels
}

func (p *PheromoneField) ensureOwned() {
	if !p.shared {
		return
	}
	cloned := make([]float32, len(p.levels))
	copy(cloned, p.levels)
	p.levels = cloned
	p.shared = false
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Drop adds 0.2 to the level at (x, y), clamped to [0,1]. Out-of-bounds is
// a no-op.
func (p *PheromoneField) Drop(x, y int) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	p.ensureOwned()
	idx := x + y*p.width
	p.levels[idx] = clamp01(p.levels[idx] + 0.2)
}

// Evaporate multiplies every level by 0.9, clamped to [0,1].
func (p *PheromoneField) Evaporate() {
	p.ensureOwned()
	for i, v := range p.levels {
		p.levels[i] = clamp01(v * 0.9)
	}
}
