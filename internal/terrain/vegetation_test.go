package terrain

import (
	"testing"

	"aeroterra/internal/worldgen"
)

func placementGen() *worldgen.Generator {
	return worldgen.NewGenerator(42, worldgen.DefaultClimateTuning())
}

// TestPlaceTreesDeterministic verifies placement is a pure function of seed
// and chunk: respawning a chunk must put every tree back exactly where it
// was.
func TestPlaceTreesDeterministic(t *testing.T) {
	gen := placementGen()
	origin := ChunkCoord{X: 7, Z: -3}.Origin()

	a := PlaceTrees(gen, origin)
	b := PlaceTrees(gen.Clone(), origin)

	if len(a) != len(b) {
		t.Fatalf("tree counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tree %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// TestPlaceTreesInBounds verifies chunk-local positions stay inside the
// chunk footprint and above sea level. A tree outside its chunk would be
// duplicated by the neighbor or orphaned on despawn.
func TestPlaceTreesInBounds(t *testing.T) {
	gen := placementGen()

	for _, coord := range []ChunkCoord{{0, 0}, {13, 5}, {-20, 11}, {4, -9}} {
		origin := coord.Origin()
		for i, tree := range PlaceTrees(gen, origin) {
			x, z := tree.Position.X(), tree.Position.Z()
			if x < -ChunkSize/2 || x > ChunkSize/2 || z < -ChunkSize/2 || z > ChunkSize/2 {
				t.Errorf("chunk %v tree %d outside footprint: (%f, %f)", coord, i, x, z)
			}
			if tree.Position.Y() <= 0 {
				t.Errorf("chunk %v tree %d at or below sea level: %f", coord, i, tree.Position.Y())
			}
			if tree.Scale <= 0 {
				t.Errorf("chunk %v tree %d has non-positive scale %f", coord, i, tree.Scale)
			}
		}
	}
}

// TestPlaceTreesOnSurface verifies every tree sits exactly on the terrain
// height at its world position.
func TestPlaceTreesOnSurface(t *testing.T) {
	gen := placementGen()
	coord := ChunkCoord{X: 2, Z: 2}
	origin := coord.Origin()

	for i, tree := range PlaceTrees(gen, origin) {
		worldPos := [3]float32{
			tree.Position.X() + origin.X(),
			0,
			tree.Position.Z() + origin.Z(),
		}
		if want := gen.TerrainHeight(worldPos); tree.Position.Y() != want {
			t.Errorf("tree %d at height %f, terrain says %f", i, tree.Position.Y(), want)
		}
	}
}

// TestPlaceTreesKnownModels verifies only registered model identifiers are
// emitted, never on ocean or desert chunks' candidates.
func TestPlaceTreesKnownModels(t *testing.T) {
	gen := placementGen()
	known := map[string]bool{TreeModelPine: true, TreeModelOak: true, TreeModelDead: true}

	total := 0
	for x := -8; x <= 8; x += 2 {
		for z := -8; z <= 8; z += 2 {
			trees := PlaceTrees(gen, ChunkCoord{X: x, Z: z}.Origin())
			total += len(trees)
			for i, tree := range trees {
				if !known[tree.Model] {
					t.Fatalf("chunk (%d,%d) tree %d has unknown model %q", x, z, i, tree.Model)
				}
			}
		}
	}
	if total == 0 {
		t.Errorf("no trees placed across an 81-chunk sample")
	}
}

// TestPlaceTreesSeedsDiffer verifies different world seeds shuffle the
// placement.
func TestPlaceTreesSeedsDiffer(t *testing.T) {
	origin := ChunkCoord{X: 1, Z: 1}.Origin()
	a := PlaceTrees(worldgen.NewGenerator(1, worldgen.DefaultClimateTuning()), origin)
	b := PlaceTrees(worldgen.NewGenerator(2, worldgen.DefaultClimateTuning()), origin)

	if len(a) == len(b) {
		same := true
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
		if same && len(a) > 0 {
			t.Errorf("seeds 1 and 2 produced identical placements")
		}
	}
}
