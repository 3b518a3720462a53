package config

import "sync"

// Runtime holds the settings the host is allowed to change while the engine
// is running (menu sliders, quality toggles). Every setter raises the
// just-updated flag, which forces the lifecycle manager to do one full rescan
// even if the camera has not crossed a chunk boundary.
type Runtime struct {
	mu sync.RWMutex

	renderDistance        int
	maxChunksPerFrame     int
	lodBands              []LODBand
	lodQualityMultiplier  int
	lodDistanceMultiplier float32
	terrainSmoothness     float32
	smoothNormals         bool
	treeRenderDistance    float32

	justUpdated bool
}

// NewRuntime seeds a runtime settings object from loaded settings.
func NewRuntime(s Settings) *Runtime {
	bands := make([]LODBand, len(s.LODBands))
	copy(bands, s.LODBands)
	return &Runtime{
		renderDistance:        s.RenderDistance,
		maxChunksPerFrame:     s.MaxChunksPerFrame,
		lodBands:              bands,
		lodQualityMultiplier:  s.LODQualityMultiplier,
		lodDistanceMultiplier: s.LODDistanceMultiplier,
		terrainSmoothness:     s.TerrainSmoothness,
		smoothNormals:         s.SmoothNormals,
		treeRenderDistance:    s.TreeRenderDistance,
	}
}

// RenderDistance returns the render distance in chunks.
func (r *Runtime) RenderDistance() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.renderDistance
}

// SetRenderDistance clamps and stores a new render distance.
func (r *Runtime) SetRenderDistance(d int) {
	if d < 1 {
		d = 1
	}
	if d > 64 {
		d = 64
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if d != r.renderDistance {
		r.renderDistance = d
		r.justUpdated = true
	}
}

// MaxChunksPerFrame returns the per-frame queue drain budget.
func (r *Runtime) MaxChunksPerFrame() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxChunksPerFrame
}

// SetMaxChunksPerFrame stores a new per-frame budget.
func (r *Runtime) SetMaxChunksPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxChunksPerFrame = n
}

// LODBands returns a copy of the LOD band table.
func (r *Runtime) LODBands() []LODBand {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bands := make([]LODBand, len(r.lodBands))
	copy(bands, r.lodBands)
	return bands
}

// SetLODBands replaces the LOD band table. An empty table is ignored; the
// lifecycle manager resolves every chunk's LOD through the table and must
// always find at least one band.
func (r *Runtime) SetLODBands(bands []LODBand) {
	if len(bands) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lodBands = make([]LODBand, len(bands))
	copy(r.lodBands, bands)
	r.justUpdated = true
}

// LODMultipliers returns the quality and distance multipliers.
func (r *Runtime) LODMultipliers() (quality int, distance float32) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lodQualityMultiplier, r.lodDistanceMultiplier
}

// SetLODMultipliers stores new quality/distance multipliers.
func (r *Runtime) SetLODMultipliers(quality int, distance float32) {
	if quality < 1 {
		quality = 1
	}
	if distance <= 0 {
		distance = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if quality != r.lodQualityMultiplier || distance != r.lodDistanceMultiplier {
		r.lodQualityMultiplier = quality
		r.lodDistanceMultiplier = distance
		r.justUpdated = true
	}
}

// TerrainSmoothness returns the palette blending factor.
func (r *Runtime) TerrainSmoothness() float32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.terrainSmoothness
}

// SetTerrainSmoothness clamps and stores the palette blending factor.
func (r *Runtime) SetTerrainSmoothness(s float32) {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s != r.terrainSmoothness {
		r.terrainSmoothness = s
		r.justUpdated = true
	}
}

// SmoothNormals reports whether builds compute shared-vertex normals.
func (r *Runtime) SmoothNormals() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.smoothNormals
}

// SetSmoothNormals stores the normals mode.
func (r *Runtime) SetSmoothNormals(smooth bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if smooth != r.smoothNormals {
		r.smoothNormals = smooth
		r.justUpdated = true
	}
}

// TreeRenderDistance returns the vegetation radius in chunks.
func (r *Runtime) TreeRenderDistance() float32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.treeRenderDistance
}

// ForceRescan raises the just-updated flag directly, for host-side changes
// that bypass the setters (e.g. a reloaded config file).
func (r *Runtime) ForceRescan() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.justUpdated = true
}

// ConsumeJustUpdated returns the just-updated flag and lowers it, so exactly
// one manager tick sees each settings change.
func (r *Runtime) ConsumeJustUpdated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.justUpdated
	r.justUpdated = false
	return was
}
