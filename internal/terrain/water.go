package terrain

import (
	"math"
)

const (
	waterWaveAmplitude = 5.0
	waterWaveFrequency = 0.015
	waterWaveSpeed     = 1.5
	waterSubdivisions  = 8
)

// NewWaterPlane builds the flat water child mesh every chunk carries at Y=0.
// Coarse on purpose: the wave animation only ever runs on the nearest chunks.
func NewWaterPlane() *Mesh {
	m := NewPlaneMesh(ChunkSize, waterSubdivisions)
	m.ComputeSmoothNormals()
	return m
}

// AnimateWater displaces a chunk's water vertices with two crossed sine
// waves, evaluated in world space so wave crests line up across chunk
// borders. Chunks below the highest LOD get flattened instead; the trig for
// distant water is wasted work no one can see.
func AnimateWater(c *Chunk, elapsed float64, highFidelity bool) {
	if c.Water == nil {
		return
	}
	if !highFidelity {
		for i, pos := range c.Water.Positions {
			if pos.Y() != 0 {
				c.Water.Positions[i][1] = 0
			}
		}
		return
	}

	t := elapsed * waterWaveSpeed
	for i, pos := range c.Water.Positions {
		worldX := float64(pos.X() + c.Origin.X())
		worldZ := float64(pos.Z() + c.Origin.Z())

		wave1 := math.Sin(worldX*waterWaveFrequency+t) * waterWaveAmplitude
		wave2 := math.Cos(worldZ*waterWaveFrequency*0.8+t*1.2) * waterWaveAmplitude
		c.Water.Positions[i][1] = float32(wave1 + wave2)
	}
}
