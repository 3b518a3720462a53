package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the edge length of one terrain tile in world units.
const ChunkSize float32 = 1000.0

// ChunkCoord identifies a chunk on the integer streaming grid.
type ChunkCoord struct {
	X, Z int
}

// CoordAt returns the chunk containing a world position. Chunks are centered
// on their anchor, so the mapping rounds rather than floors.
func CoordAt(pos mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: int(math.Round(float64(pos.X() / ChunkSize))),
		Z: int(math.Round(float64(pos.Z() / ChunkSize))),
	}
}

// Origin returns the chunk's world-space anchor.
func (c ChunkCoord) Origin() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) * ChunkSize, 0, float32(c.Z) * ChunkSize}
}

// DistanceSqTo returns the squared distance, in chunk units, to another
// chunk coordinate.
func (c ChunkCoord) DistanceSqTo(other ChunkCoord) float32 {
	dx := float32(c.X - other.X)
	dz := float32(c.Z - other.Z)
	return dx*dx + dz*dz
}

// Chunk is one spawned terrain tile. Mutated only by the lifecycle manager on
// the main loop; background builds work on owned copies and their output is
// swapped in through the manager.
type Chunk struct {
	Coord      ChunkCoord
	CurrentLOD int
	Origin     mgl32.Vec3

	// Mesh is nil until the first build completes.
	Mesh *Mesh
	// Water is the flat child plane sharing the chunk's anchor.
	Water *Mesh
	// Trees are the vegetation instances placed on this tile, in chunk-local
	// coordinates.
	Trees []Tree

	// Visible stays false until the initial async build lands.
	Visible bool
}

// NewChunk creates a hidden chunk at the target LOD with its water child.
// The terrain mesh itself arrives later from the async builder.
func NewChunk(coord ChunkCoord, lod int) *Chunk {
	return &Chunk{
		Coord:      coord,
		CurrentLOD: lod,
		Origin:     coord.Origin(),
		Water:      NewWaterPlane(),
	}
}
