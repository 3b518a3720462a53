package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/profiling"
	"aeroterra/internal/worldgen"
)

const (
	// rayStepSize is the coarse march step in world units. Terrain features
	// narrower than this can be stepped over; the bisection refine only
	// sharpens crossings the march already found.
	rayStepSize = 2.0

	rayRefineIterations = 24
)

// RaycastResult is the outcome of a ray query against the heightfield.
type RaycastResult struct {
	// Position is the world-space point where the ray meets the surface.
	Position mgl32.Vec3
	Distance float32
	Hit      bool
}

// RaycastTerrain marches a ray against the procedural heightfield: a coarse
// fixed-step walk to find the first above-to-below crossing, then bisection
// to pin the surface point. Queries the generator directly, so results agree
// exactly with built chunk meshes and work beyond the streamed radius.
// Used by the host for crash detection and terrain picking.
func RaycastTerrain(gen *worldgen.Generator, start, direction mgl32.Vec3, maxDist float32) RaycastResult {
	defer profiling.Track("terrain.Raycast")()

	if direction.Len() < 1e-8 || maxDist <= 0 {
		return RaycastResult{}
	}
	direction = direction.Normalize()

	below := func(p mgl32.Vec3) bool {
		return p.Y() <= gen.TerrainHeight([3]float32{p.X(), 0, p.Z()})
	}

	if below(start) {
		return RaycastResult{Position: start, Distance: 0, Hit: true}
	}

	prev := float32(0)
	for dist := float32(rayStepSize); ; dist += rayStepSize {
		if dist > maxDist {
			dist = maxDist
		}
		if below(start.Add(direction.Mul(dist))) {
			// Crossing is between prev and dist; bisect it down.
			lo, hi := prev, dist
			for i := 0; i < rayRefineIterations; i++ {
				mid := (lo + hi) / 2
				if below(start.Add(direction.Mul(mid))) {
					hi = mid
				} else {
					lo = mid
				}
			}
			return RaycastResult{
				Position: start.Add(direction.Mul(hi)),
				Distance: hi,
				Hit:      true,
			}
		}
		if dist == maxDist {
			return RaycastResult{}
		}
		prev = dist
	}
}
