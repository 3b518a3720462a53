package terrain

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/config"
	"aeroterra/internal/profiling"
	"aeroterra/internal/worldgen"
)

// Manager drives the chunk lifecycle from the main loop: once per tick it
// rescans the desired chunk set when the camera crosses a chunk boundary,
// drains the spawn and LOD queues at a bounded rate, collects finished async
// builds and despawns chunks that left the hysteresis band.
//
// State machine per coordinate:
//
//	Unspawned -> Queued(toSpawn) -> Building -> Visible
//	          -> [Queued(lodToUpdate) -> Building -> Visible]* -> Despawned
type Manager struct {
	reg      *Registry
	pool     *BuildPool
	gen      *worldgen.Generator
	settings *config.Runtime
	palettes worldgen.Palettes

	// pending tracks coordinates with an in-flight build. A pending chunk is
	// excluded from LOD scanning and from despawn until its build lands.
	pending map[ChunkCoord]struct{}

	// generation counts world resets. Every build job is stamped with it, so
	// results computed against a replaced generator can never be swapped into
	// a chunk of the new world, even at the same coordinate.
	generation uint64
}

// NewManager wires a lifecycle manager. The registry is owned exclusively by
// the manager from here on.
func NewManager(reg *Registry, pool *BuildPool, gen *worldgen.Generator, settings *config.Runtime, palettes worldgen.Palettes) *Manager {
	return &Manager{
		reg:      reg,
		pool:     pool,
		gen:      gen,
		settings: settings,
		palettes: palettes,
		pending:  make(map[ChunkCoord]struct{}),
	}
}

// Tick runs one frame of chunk bookkeeping. Phases run in a fixed order;
// builds may complete in any order between ticks, which is safe because
// results are swapped in keyed by coordinate.
func (m *Manager) Tick(camPos mgl32.Vec3) {
	camChunk := CoordAt(camPos)
	budget := m.settings.MaxChunksPerFrame()

	m.rescan(camChunk)
	m.drainSpawns(camChunk, budget)
	m.drainLODUpdates(camChunk, budget)
	m.collectBuilds()
	m.despawnOutOfRange(camChunk, budget*2)
}

// rescan recomputes the desired chunk set and LOD assignments. Skipped
// entirely unless the camera entered a new chunk or a settings change forced
// it; scanning a 51x51 neighborhood every frame would dwarf the actual work.
func (m *Manager) rescan(camChunk ChunkCoord) {
	justUpdated := m.settings.ConsumeJustUpdated()
	if m.reg.hasLastCameraChunk && m.reg.lastCameraChunk == camChunk && !justUpdated {
		return
	}
	defer profiling.Track("terrain.rescan")()

	m.reg.lastCameraChunk = camChunk
	m.reg.hasLastCameraChunk = true

	renderDistance := m.settings.RenderDistance()
	renderDistanceSq := float32(renderDistance * renderDistance)

	m.reg.toSpawn = m.reg.toSpawn[:0]
	for x := camChunk.X - renderDistance; x <= camChunk.X+renderDistance; x++ {
		for z := camChunk.Z - renderDistance; z <= camChunk.Z+renderDistance; z++ {
			coord := ChunkCoord{X: x, Z: z}
			if coord.DistanceSqTo(camChunk) > renderDistanceSq {
				continue
			}
			if !m.reg.Spawned(coord) {
				m.reg.toSpawn = append(m.reg.toSpawn, coord)
			}
		}
	}
	sortByDistance(m.reg.toSpawn, camChunk, false)

	// Re-derive desired LOD for everything already spawned. Chunks with a
	// build in flight are skipped; they get reconsidered once they land.
	m.reg.lodToUpdate = m.reg.lodToUpdate[:0]
	m.reg.Each(func(c *Chunk) {
		if _, building := m.pending[c.Coord]; building {
			return
		}
		desired := m.lodFor(c.Coord.DistanceSqTo(camChunk))
		if desired != c.CurrentLOD {
			m.reg.lodToUpdate = append(m.reg.lodToUpdate, c.Coord)
		}
	})
	sortByDistance(m.reg.lodToUpdate, camChunk, false)
}

// drainSpawns pops up to budget coordinates off the spawn queue. Each entry
// is re-validated against the current camera: the queue may be several frames
// stale by the time it drains.
func (m *Manager) drainSpawns(camChunk ChunkCoord, budget int) {
	defer profiling.Track("terrain.drainSpawns")()

	renderDistance := m.settings.RenderDistance()
	renderDistanceSq := float32(renderDistance * renderDistance)

	spawned := 0
	for spawned < budget && len(m.reg.toSpawn) > 0 {
		coord := m.reg.toSpawn[0]

		if coord.DistanceSqTo(camChunk) > renderDistanceSq || m.reg.Spawned(coord) {
			m.reg.toSpawn = m.reg.toSpawn[1:]
			continue
		}

		lod := m.lodFor(coord.DistanceSqTo(camChunk))
		if !m.submitBuild(camChunk, coord, lod) {
			// Worker queue full; leave the coordinate queued for next frame.
			break
		}

		m.reg.toSpawn = m.reg.toSpawn[1:]
		chunk := NewChunk(coord, lod)
		m.reg.Add(chunk)
		m.pending[coord] = struct{}{}
		spawned++
	}
}

// drainLODUpdates pops up to budget coordinates off the LOD queue, skipping
// entries that despawned, started another build, or drifted back to their
// assigned LOD since the scan.
func (m *Manager) drainLODUpdates(camChunk ChunkCoord, budget int) {
	defer profiling.Track("terrain.drainLODUpdates")()

	processed := 0
	for processed < budget && len(m.reg.lodToUpdate) > 0 {
		coord := m.reg.lodToUpdate[0]

		chunk := m.reg.Chunk(coord)
		if chunk == nil {
			m.reg.lodToUpdate = m.reg.lodToUpdate[1:]
			continue
		}
		if _, building := m.pending[coord]; building {
			m.reg.lodToUpdate = m.reg.lodToUpdate[1:]
			continue
		}
		desired := m.lodFor(coord.DistanceSqTo(camChunk))
		if desired == chunk.CurrentLOD {
			m.reg.lodToUpdate = m.reg.lodToUpdate[1:]
			continue
		}

		if !m.submitBuild(camChunk, coord, desired) {
			break
		}
		m.reg.lodToUpdate = m.reg.lodToUpdate[1:]

		// The LOD is committed now; the visible mesh swaps when the build
		// lands. The chunk keeps showing its old mesh until then.
		chunk.CurrentLOD = desired
		m.pending[coord] = struct{}{}
		processed++
	}
}

// collectBuilds drains every finished build without blocking. A result whose
// chunk no longer exists (despawned or reseeded mid-build) is discarded; the
// task only ever held owned clones, so there is nothing to unwind.
func (m *Manager) collectBuilds() {
	defer profiling.Track("terrain.collectBuilds")()

	for {
		res, ok := m.pool.TryCollect()
		if !ok {
			return
		}
		if res.Generation != m.generation {
			// Stale world. The coordinate may have respawned with its own
			// build in flight, so the pending marker stays untouched.
			continue
		}
		delete(m.pending, res.Coord)

		chunk := m.reg.Chunk(res.Coord)
		if chunk == nil {
			continue
		}
		chunk.Mesh = res.Mesh
		chunk.Trees = res.Trees
		chunk.Visible = true
	}
}

// despawnOutOfRange removes chunks beyond renderDistance+1, farthest first,
// capped at limit per tick. The extra chunk of margin is hysteresis: a camera
// jittering on the render-distance boundary must not thrash spawn/despawn.
// Chunks with a pending build are left alone until the build lands.
func (m *Manager) despawnOutOfRange(camChunk ChunkCoord, limit int) {
	defer profiling.Track("terrain.despawn")()

	despawnDistance := float32(m.settings.RenderDistance() + 1)
	despawnDistanceSq := despawnDistance * despawnDistance

	var far []ChunkCoord
	m.reg.Each(func(c *Chunk) {
		if _, building := m.pending[c.Coord]; building {
			return
		}
		if c.Coord.DistanceSqTo(camChunk) > despawnDistanceSq {
			far = append(far, c.Coord)
		}
	})
	sortByDistance(far, camChunk, true)

	if len(far) > limit {
		far = far[:limit]
	}
	for _, coord := range far {
		m.reg.Remove(coord)
	}
}

// submitBuild queues an async build at the given subdivision for a chunk.
// Vegetation is only computed inside the tree render distance; a chunk crossing
// that radius picks its trees up (or drops them) on its next LOD rebuild.
func (m *Manager) submitBuild(camChunk, coord ChunkCoord, lod int) bool {
	treeDistance := m.settings.TreeRenderDistance()
	return m.pool.Submit(BuildJob{
		Coord:         coord,
		Origin:        coord.Origin(),
		Generation:    m.generation,
		Mesh:          NewPlaneMesh(ChunkSize, lod),
		Gen:           m.gen.Clone(),
		Smoothness:    m.settings.TerrainSmoothness(),
		SmoothNormals: m.settings.SmoothNormals(),
		Palettes:      m.palettes,
		WithTrees:     coord.DistanceSqTo(camChunk) <= treeDistance*treeDistance,
	})
}

// lodFor resolves a squared chunk distance through the LOD band table: first
// band that covers the distance wins, scaled by the quality and distance
// multipliers. Beyond the last band the coarsest LOD applies.
func (m *Manager) lodFor(distanceSq float32) int {
	bands := m.settings.LODBands()
	quality, distMult := m.settings.LODMultipliers()

	distance := sqrt32(distanceSq)
	for _, band := range bands {
		if distance <= band.MaxDistance*distMult {
			return band.Subdivisions * quality
		}
	}
	return bands[len(bands)-1].Subdivisions * quality
}

// HighestLOD returns the subdivision count of the nearest LOD band, used to
// decide which chunks get animated water.
func (m *Manager) HighestLOD() int {
	bands := m.settings.LODBands()
	quality, _ := m.settings.LODMultipliers()
	return bands[0].Subdivisions * quality
}

// AnimateWater advances the water planes of all visible chunks.
func (m *Manager) AnimateWater(elapsed float64) {
	defer profiling.Track("terrain.AnimateWater")()

	highest := m.HighestLOD()
	m.reg.Each(func(c *Chunk) {
		if !c.Visible {
			return
		}
		AnimateWater(c, elapsed, c.CurrentLOD == highest)
	})
}

// SpawnedCount returns the live chunk count, for diagnostics.
func (m *Manager) SpawnedCount() int {
	return m.reg.Count()
}

// PendingBuilds returns the number of in-flight builds, for diagnostics.
func (m *Manager) PendingBuilds() int {
	return len(m.pending)
}

// EachChunk exposes the spawned chunks to the renderer.
func (m *Manager) EachChunk(fn func(*Chunk)) {
	m.reg.Each(fn)
}

// Reset replaces the world generator and wipes every chunk, queue and pending
// marker. Required on seed change: terrain from two generations must never
// coexist. In-flight builds of the old world finish on their own and are
// discarded when collected.
func (m *Manager) Reset(gen *worldgen.Generator) {
	m.gen = gen
	m.generation++
	m.reg.Clear()
	m.pending = make(map[ChunkCoord]struct{})
	m.settings.ForceRescan()
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func sortByDistance(coords []ChunkCoord, from ChunkCoord, farthestFirst bool) {
	sort.Slice(coords, func(i, j int) bool {
		di := coords[i].DistanceSqTo(from)
		dj := coords[j].DistanceSqTo(from)
		if farthestFirst {
			return di > dj
		}
		return di < dj
	})
}
