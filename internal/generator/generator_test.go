package generator

import (
	"math/rand/v2"
	"testing"

	"github.com/dantte-lp/antcolonyd/internal/apperr"
)

func TestGenerateProducesValidMaze(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	params := Params{
		Width: 9, Height: 8,
		Nest:          NestPosition{Fixed: true, X: 1, Y: 1},
		FoodCount:     3,
		CarvingPasses: 2,
	}

	m, err := Generate(params, rng)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("generated maze invalid: %v", err)
	}
	if m.NestX != 1 || m.NestY != 1 {
		t.Fatalf("nest = (%d,%d), want (1,1)", m.NestX, m.NestY)
	}
}

func TestGenerateRejectsZeroDimension(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := Generate(Params{Width: 0, Height: 4}, rng)
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidMaze {
		t.Fatalf("Generate() error = %v, want InvalidMaze", err)
	}
}

func TestGenerateRejectsInfeasibleFoodBudget(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := Generate(Params{Width: 3, Height: 3, FoodCount: 10}, rng)
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidMaze {
		t.Fatalf("Generate() error = %v, want InvalidMaze", err)
	}
}

func TestGenerateRejectsOutOfBoundsNest(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := Generate(Params{
		Width: 4, Height: 4, FoodCount: 1,
		Nest: NestPosition{Fixed: true, X: 9, Y: 9},
	}, rng)
	if err == nil {
		t.Fatalf("expected error for out-of-bounds nest")
	}
}
