package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/worldgen"
)

// Tree model identifiers handed to the renderer's asset loader.
const (
	TreeModelPine = "pine"
	TreeModelOak  = "oak"
	TreeModelDead = "dead_tree"
)

const (
	treeDensity         = 0.5
	treeSpacingGridSize = 270.0
	treeBaseScale       = 40.0
)

// Tree is one vegetation instance on a chunk, positioned in chunk-local
// coordinates so it follows the chunk's anchor.
type Tree struct {
	Model     string
	Position  mgl32.Vec3
	RotationY float32
	Scale     float32
}

// PlaceTrees returns the deterministic tree set for the chunk anchored at
// origin. Candidate positions come from a world-space grid jittered by seeded
// noise, so placements never pop or shift when the chunk respawns or changes
// LOD, and trees near a chunk border always land in exactly one chunk.
func PlaceTrees(gen *worldgen.Generator, origin mgl32.Vec3) []Tree {
	treeNoise := perlin.NewPerlin(2, 2, 1, gen.Seed()+9999)
	densityNoise := perlin.NewPerlin(2, 2, 1, gen.Seed()+7777)

	minX := origin.X() - ChunkSize/2
	maxX := origin.X() + ChunkSize/2
	minZ := origin.Z() - ChunkSize/2
	maxZ := origin.Z() + ChunkSize/2

	gridMinX := int(math.Floor(float64(minX) / treeSpacingGridSize))
	gridMaxX := int(math.Ceil(float64(maxX) / treeSpacingGridSize))
	gridMinZ := int(math.Floor(float64(minZ) / treeSpacingGridSize))
	gridMaxZ := int(math.Ceil(float64(maxZ) / treeSpacingGridSize))

	var trees []Tree
	for gx := gridMinX; gx < gridMaxX; gx++ {
		for gz := gridMinZ; gz < gridMaxZ; gz++ {
			cellX := float64(gx) * treeSpacingGridSize
			cellZ := float64(gz) * treeSpacingGridSize

			offsetX := float32(treeNoise.Noise3D(cellX*0.01, cellZ*0.01, 137.5)*0.5+0.5) * treeSpacingGridSize
			offsetZ := float32(treeNoise.Noise3D(cellX*0.01, cellZ*0.01, 742.3)*0.5+0.5) * treeSpacingGridSize

			worldX := float32(cellX) + offsetX
			worldZ := float32(cellZ) + offsetZ
			if worldX < minX || worldX > maxX || worldZ < minZ || worldZ > maxZ {
				continue
			}

			worldPos := [3]float32{worldX, 0, worldZ}
			biome := gen.Biome(worldPos)

			var model string
			scaleMult := float32(1.0)
			density := float32(treeDensity)
			switch biome {
			case worldgen.BiomeForest:
				model, scaleMult, density = TreeModelPine, 0.7, treeDensity*1.2
			case worldgen.BiomeTaiga:
				model, scaleMult, density = TreeModelPine, 1.2, treeDensity
			case worldgen.BiomeGrasslands:
				model, scaleMult, density = TreeModelOak, 0.8, treeDensity*1.4
			default:
				continue
			}

			// Density d keeps roughly the d fraction of candidates: noise is
			// in [-1,1], so the cutoff sits at 2d-1.
			densitySample := float32(densityNoise.Noise2D(cellX*0.01, cellZ*0.01))
			if densitySample > density*2.0-1.0 {
				continue
			}

			height := gen.TerrainHeight(worldPos)
			if height <= 0 {
				continue
			}

			deadChance := float32(treeNoise.Noise3D(float64(worldX)*0.19, float64(worldZ)*0.19, 555.0))
			isDead := deadChance > -0.04 && deadChance < 0.04
			if isDead {
				model = TreeModelDead
				if biome == worldgen.BiomeTaiga || biome == worldgen.BiomeForest {
					scaleMult *= 1.3
				}
			}

			rotY := float32(treeNoise.Noise3D(float64(worldX)*0.33, float64(worldZ)*0.33, 999.0)*0.5+0.5) * 2 * math.Pi
			scale := (0.4 + float32(treeNoise.Noise3D(float64(worldX)*0.27, float64(worldZ)*0.27, 123.0)*0.5+0.5)*1.2) * scaleMult

			trees = append(trees, Tree{
				Model:     model,
				Position:  mgl32.Vec3{worldX - origin.X(), height, worldZ - origin.Z()},
				RotationY: rotY,
				Scale:     scale * treeBaseScale,
			})
		}
	}
	return trees
}
