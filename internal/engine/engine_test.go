package engine

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/config"
	"aeroterra/internal/terrain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.RenderDistance = 2
	cfg.LODBands = []config.LODBand{{MaxDistance: 4, Subdivisions: 2}}
	cfg.Workers = 2
	cfg.BuildQueueSize = 256

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func updateUntilIdle(t *testing.T, e *Engine, viewpoint mgl32.Vec3) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		e.Update(viewpoint)
		if e.PendingBuilds() == 0 && e.SpawnedChunks() > 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("engine never went idle, %d builds pending", e.PendingBuilds())
		}
		time.Sleep(time.Millisecond)
	}
}

// TestNewRejectsInvalidSettings verifies validation happens at assembly.
func TestNewRejectsInvalidSettings(t *testing.T) {
	cfg := config.Default()
	cfg.RenderDistance = 0
	if _, err := New(cfg); err == nil {
		t.Fatalf("invalid settings accepted")
	}
}

// TestUpdateStreamsChunks verifies the facade streams a neighborhood around
// the viewpoint and realizes every chunk.
func TestUpdateStreamsChunks(t *testing.T) {
	e := newTestEngine(t)
	updateUntilIdle(t, e, mgl32.Vec3{0, 400, 0})

	if got := e.SpawnedChunks(); got != 13 { // lattice points with x^2+z^2 <= 4
		t.Errorf("spawned %d chunks, want 13", got)
	}

	realized := 0
	e.EachChunk(func(c *terrain.Chunk) {
		if c.Visible && c.Mesh != nil {
			realized++
		}
	})
	if realized != e.SpawnedChunks() {
		t.Errorf("%d of %d chunks realized after idle", realized, e.SpawnedChunks())
	}
}

// TestTerrainHeightMatchesMeshes verifies the collision query agrees with
// what the builds produced.
func TestTerrainHeightMatchesMeshes(t *testing.T) {
	e := newTestEngine(t)
	updateUntilIdle(t, e, mgl32.Vec3{0, 400, 0})

	checked := false
	e.EachChunk(func(c *terrain.Chunk) {
		if c.Mesh == nil || checked {
			return
		}
		checked = true
		for i, p := range c.Mesh.Positions {
			world := [3]float32{p.X() + c.Origin.X(), 0, p.Z() + c.Origin.Z()}
			if want := e.TerrainHeight(world); p.Y() != want {
				t.Fatalf("chunk %v vertex %d height %f, query says %f", c.Coord, i, p.Y(), want)
			}
		}
	})
	if !checked {
		t.Fatalf("no realized chunk to check")
	}
}

// TestReseedReplacesWorld verifies a reseed drops every chunk and the new
// world's terrain differs from the old one's.
func TestReseedReplacesWorld(t *testing.T) {
	e := newTestEngine(t)
	updateUntilIdle(t, e, mgl32.Vec3{0, 400, 0})

	probe := [3]float32{512, 0, -731}
	before := e.TerrainHeight(probe)

	e.Reseed(1337)
	if got := e.SpawnedChunks(); got != 0 {
		t.Fatalf("%d chunks survived reseed", got)
	}
	if after := e.TerrainHeight(probe); after == before {
		t.Errorf("terrain height unchanged across reseed: %f", after)
	}

	updateUntilIdle(t, e, mgl32.Vec3{0, 400, 0})
	if got := e.SpawnedChunks(); got != 13 {
		t.Errorf("respawned %d chunks, want 13", got)
	}
}

// TestSettingsSurfaceLive verifies runtime settings changes flow through to
// the next update.
func TestSettingsSurfaceLive(t *testing.T) {
	e := newTestEngine(t)
	updateUntilIdle(t, e, mgl32.Vec3{0, 400, 0})

	e.Settings().SetRenderDistance(1)
	for i := 0; i < 50 && e.SpawnedChunks() > 5; i++ {
		e.Update(mgl32.Vec3{0, 400, 0})
		time.Sleep(time.Millisecond)
	}
	// Radius 1 keeps 5 chunks; hysteresis allows the ring at distance 2 to
	// linger, so only chunks beyond distance 2 must be gone.
	e.EachChunk(func(c *terrain.Chunk) {
		if c.Coord.DistanceSqTo(terrain.ChunkCoord{}) > 4 {
			t.Errorf("chunk %v alive beyond shrunken despawn radius", c.Coord)
		}
	})
}

// TestClimateQueries verifies the climate and biome queries are consistent
// with each other.
func TestClimateQueries(t *testing.T) {
	e := newTestEngine(t)

	pos := [3]float32{12345, 0, -6789}
	temp, hum := e.Climate(pos)
	if temp < 0 || temp > 1 || hum < 0 || hum > 1 {
		t.Fatalf("climate out of range: temp=%f hum=%f", temp, hum)
	}
	// Same position, same classification, every time.
	b := e.BiomeAt(pos)
	for i := 0; i < 10; i++ {
		if got := e.BiomeAt(pos); got != b {
			t.Fatalf("biome query unstable: %v then %v", b, got)
		}
	}
}

// TestAnimateWaterSafeWhileStreaming verifies water animation can interleave
// with updates without touching unrealized chunks.
func TestAnimateWaterSafeWhileStreaming(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 20; i++ {
		e.Update(mgl32.Vec3{float32(i) * 100, 400, 0})
		e.AnimateWater(float64(i) * 0.016)
	}
}
