// Package engine is the in-process boundary of the terrain core: the
// surrounding simulation hands it a seed and a viewpoint each tick, and reads
// back heights, biomes and per-chunk mesh state. Everything behind this
// facade is single-writer; only the query methods are safe to call from
// other goroutines.
package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/config"
	"aeroterra/internal/terrain"
	"aeroterra/internal/worldgen"
)

// Engine owns the world generator, the chunk registry and the build pool.
type Engine struct {
	settings *config.Runtime
	gen      *worldgen.Generator
	pool     *terrain.BuildPool
	manager  *terrain.Manager
	palettes worldgen.Palettes
}

// New assembles an engine from validated settings.
func New(cfg config.Settings) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	settings := config.NewRuntime(cfg)
	gen := worldgen.NewGenerator(cfg.Seed, cfg.ClimateTuning())
	pool := terrain.NewBuildPool(cfg.WorkerCount(), cfg.BuildQueueSize)
	palettes := worldgen.DefaultPalettes()
	manager := terrain.NewManager(terrain.NewRegistry(), pool, gen, settings, palettes)

	return &Engine{
		settings: settings,
		gen:      gen,
		pool:     pool,
		manager:  manager,
		palettes: palettes,
	}, nil
}

// Close stops the background workers.
func (e *Engine) Close() {
	e.pool.Shutdown()
}

// Update runs one tick of chunk streaming for the given viewpoint.
func (e *Engine) Update(viewpoint mgl32.Vec3) {
	e.manager.Tick(viewpoint)
}

// AnimateWater advances water planes; elapsed is total simulation time in
// seconds.
func (e *Engine) AnimateWater(elapsed float64) {
	e.manager.AnimateWater(elapsed)
}

// Reseed tears down the current world and regenerates deterministically from
// a new seed, e.g. when the host starts a new flight over a fresh world.
func (e *Engine) Reseed(seed int64) {
	e.gen = worldgen.NewGenerator(seed, e.gen.Tuning())
	e.manager.Reset(e.gen)
}

// TerrainHeight returns the exact terrain height at a world position, the
// same value any chunk build produces there. Used for collision and crash
// detection.
func (e *Engine) TerrainHeight(pos [3]float32) float32 {
	return e.gen.TerrainHeight(pos)
}

// RaycastTerrain casts a ray against the heightfield, for crash detection
// and terrain picking. Works anywhere in the world, streamed or not.
func (e *Engine) RaycastTerrain(start, direction mgl32.Vec3, maxDist float32) terrain.RaycastResult {
	return terrain.RaycastTerrain(e.gen, start, direction, maxDist)
}

// BiomeAt returns the biome classification at a world position.
func (e *Engine) BiomeAt(pos [3]float32) worldgen.Biome {
	return e.gen.Biome(pos)
}

// Climate returns normalized (temperature, humidity) at a world position.
func (e *Engine) Climate(pos [3]float32) (temp, humidity float32) {
	return e.gen.Climate(pos)
}

// SpawnedChunks returns the live chunk count, for diagnostics overlays.
func (e *Engine) SpawnedChunks() int {
	return e.manager.SpawnedCount()
}

// PendingBuilds returns the number of chunk builds in flight.
func (e *Engine) PendingBuilds() int {
	return e.manager.PendingBuilds()
}

// EachChunk visits every spawned chunk, for the renderer.
func (e *Engine) EachChunk(fn func(*terrain.Chunk)) {
	e.manager.EachChunk(fn)
}

// Settings exposes the runtime-tunable settings surface.
func (e *Engine) Settings() *config.Runtime {
	return e.settings
}
