package runtime

import (
	"testing"

	"survivalcore/internal/domain/world"
)

func TestTerrain_Deterministic(t *testing.T) {
	a, b := NewTerrain(7), NewTerrain(7)
	for _, xz := range [][2]int{{0, 0}, {13, -40}, {-200, 311}} {
		if ca, cb := a.Column(xz[0], xz[1]), b.Column(xz[0], xz[1]); ca != cb {
			t.Fatalf("column %v got=%+v want=%+v", xz, ca, cb)
		}
	}
}

func TestTerrain_ColumnLayers(t *testing.T) {
	tr := NewTerrain(42)
	for x := -30; x <= 30; x += 6 {
		for z := -30; z <= 30; z += 6 {
			col := tr.Column(x, z)
			top := tr.Block(world.DimensionOverworld, world.BlockPos{X: x, Y: col.Height, Z: z})
			if top.Type != col.Surface {
				t.Fatalf("surface at %d,%d got=%s want=%s", x, z, top.Type, col.Surface)
			}
			below := tr.Block(world.DimensionOverworld, world.BlockPos{X: x, Y: col.Height - 10, Z: z})
			if below.Type != world.BlockStone {
				t.Fatalf("deep block at %d,%d got=%s want=%s", x, z, below.Type, world.BlockStone)
			}
			sky := tr.Block(world.DimensionOverworld, world.BlockPos{X: x, Y: 300, Z: z})
			if !sky.IsAir() {
				t.Fatalf("sky at %d,%d got=%s", x, z, sky.Type)
			}
			if col.Height < seaLevel && col.Feature != "" {
				t.Fatalf("submerged column %d,%d has feature %s", x, z, col.Feature)
			}
		}
	}
}

func TestTerrain_OtherDimensions(t *testing.T) {
	tr := NewTerrain(1)
	if b := tr.Block(world.DimensionNether, world.BlockPos{X: 3, Y: netherFloor - 1, Z: 3}); b.Type != blockNetherrack {
		t.Fatalf("nether got=%s want=%s", b.Type, blockNetherrack)
	}
	if b := tr.Block(world.DimensionNether, world.BlockPos{X: 3, Y: netherFloor + 5, Z: 3}); !b.IsAir() {
		t.Fatalf("nether air got=%s", b.Type)
	}
	if b := tr.Block(world.DimensionEnd, world.BlockPos{Y: endIslandTop}); b.Type != blockEndStone {
		t.Fatalf("end got=%s want=%s", b.Type, blockEndStone)
	}
	if got := tr.SurfaceY(world.DimensionEnd, 0, 0); got != endIslandTop+1 {
		t.Fatalf("end surface got=%d want=%d", got, endIslandTop+1)
	}
}

func TestTerrain_SurfaceNeverUnderwater(t *testing.T) {
	tr := NewTerrain(99)
	for x := -100; x <= 100; x += 10 {
		if y := tr.SurfaceY(world.DimensionOverworld, x, x); y <= seaLevel {
			t.Fatalf("surface at %d got=%d want>%d", x, y, seaLevel)
		}
	}
}
