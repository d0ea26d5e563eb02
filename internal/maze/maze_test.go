package maze

import "testing"

func TestTileBitLayout(t *testing.T) {
	var tile Tile
	tile = tile.SetWall(North, true)
	if !tile.WallIn(North) {
		t.Fatalf("expected north wall set")
	}
	if tile.WallIn(South) || tile.WallIn(East) || tile.WallIn(West) {
		t.Fatalf("unexpected wall flags set on %08b", tile)
	}

	tile = tile.SetNest(true).SetFood(true)
	if !tile.IsNest() || !tile.IsFood() {
		t.Fatalf("expected nest and food flags set")
	}
	if tile&0xC0 != 0 {
		t.Fatalf("reserved bits must stay zero, got %08b", tile)
	}
}

func TestWalkableDirections(t *testing.T) {
	tile := AllWalls.SetWall(East, false)
	got := tile.WalkableDirections()
	if len(got) != 1 || got[0] != East {
		t.Fatalf("WalkableDirections() = %v, want [east]", got)
	}
}

func TestRemoveWallBetweenIsMutual(t *testing.T) {
	m := New(3, 3)
	m.RemoveWallBetween(1, 1, East)

	center, _ := m.Get(1, 1)
	right, _ := m.Get(2, 1)
	if center.WallIn(East) {
		t.Fatalf("center still has east wall")
	}
	if right.WallIn(West) {
		t.Fatalf("right neighbor still has west wall")
	}
}

func TestValidateRejectsMissingNestOrFood(t *testing.T) {
	m := New(4, 4)
	m.ApplyBorderHull()
	if err := m.Validate(); err == nil {
		t.Fatalf("expected Validate to fail with no nest/food")
	}

	m.SetNest(1, 1)
	m.Set(2, 2, func() Tile { t, _ := m.Get(2, 2); return t.SetFood(true) }())
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateDetectsAsymmetricWall(t *testing.T) {
	m := New(2, 2)
	m.SetNest(0, 0)
	t0, _ := m.Get(1, 1)
	m.Set(1, 1, t0.SetFood(true))

	// Break the mutual-wall invariant by hand.
	t1, _ := m.Get(0, 0)
	m.Set(0, 0, t1.SetWall(East, false))

	if err := m.Validate(); err == nil {
		t.Fatalf("expected Validate to detect asymmetric wall")
	}
}
