package terrain

// Registry is the chunk bookkeeping state: which coordinates exist, which are
// queued to spawn, which need a LOD change, and where the camera was last
// scanned from. It has no locking on purpose; only the lifecycle manager
// touches it, once per tick, on the main loop.
type Registry struct {
	spawned map[ChunkCoord]*Chunk

	toSpawn     []ChunkCoord
	lodToUpdate []ChunkCoord

	lastCameraChunk    ChunkCoord
	hasLastCameraChunk bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		spawned: make(map[ChunkCoord]*Chunk),
	}
}

// Spawned reports whether a coordinate currently has a chunk.
func (r *Registry) Spawned(coord ChunkCoord) bool {
	_, ok := r.spawned[coord]
	return ok
}

// Chunk returns the chunk at a coordinate, or nil.
func (r *Registry) Chunk(coord ChunkCoord) *Chunk {
	return r.spawned[coord]
}

// Add registers a chunk. Adding a coordinate twice is a logic bug upstream;
// the existing chunk wins so the spawned set can never hold duplicates.
func (r *Registry) Add(c *Chunk) bool {
	if _, ok := r.spawned[c.Coord]; ok {
		return false
	}
	r.spawned[c.Coord] = c
	return true
}

// Remove drops a chunk from the spawned set.
func (r *Registry) Remove(coord ChunkCoord) {
	delete(r.spawned, coord)
}

// Count returns the number of spawned chunks.
func (r *Registry) Count() int {
	return len(r.spawned)
}

// Each calls fn for every spawned chunk. The callback must not add or remove
// chunks.
func (r *Registry) Each(fn func(*Chunk)) {
	for _, c := range r.spawned {
		fn(c)
	}
}

// Clear wipes all state, used on reseed so no chunk of the old world can
// survive into the new one.
func (r *Registry) Clear() {
	r.spawned = make(map[ChunkCoord]*Chunk)
	r.toSpawn = r.toSpawn[:0]
	r.lodToUpdate = r.lodToUpdate[:0]
	r.hasLastCameraChunk = false
}
