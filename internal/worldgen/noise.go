package worldgen

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters shared by every layer. A single iteration keeps each
// NoiseLayer one octave; the layer stack in Generator provides the octaves.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 1
)

// NoiseLayer is one octave of seeded coherent gradient noise with its own
// horizontal frequency, vertical amplitude and per-seed coordinate offset.
// Immutable after construction; safe to share across goroutines.
type NoiseLayer struct {
	noise           *perlin.Perlin
	horizontalScale float32
	verticalScale   float32
	offset          float64
}

// NewNoiseLayer creates a layer for the given seed and scales. The coordinate
// offset is derived from the seed so that stacked layers built from
// consecutive seeds sample decorrelated regions of the noise field.
func NewNoiseLayer(seed int64, horizontalScale, verticalScale float32) NoiseLayer {
	return NoiseLayer{
		noise:           perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed),
		horizontalScale: horizontalScale,
		verticalScale:   verticalScale,
		offset:          math.Mod(float64(seed)*1337.42, 100000.0),
	}
}

// Sample evaluates the layer at a world position. Purely a function of the
// position and the layer's fixed parameters; the same point always yields the
// same value no matter which goroutine or frame asks.
//
// The two axes use different offset terms (sqrt of the offset plus a large
// constant on Z) so that X and Z never share a lattice origin, which would
// show up as a diagonal correlation artifact in the terrain.
func (l NoiseLayer) Sample(pos [3]float32) float32 {
	x := float64(pos[0]*l.horizontalScale/1000.0) + l.offset
	z := float64(pos[2]*l.horizontalScale/1000.0) + (math.Sqrt(l.offset) + 202994.0)
	return float32(l.noise.Noise2D(x, z)) * l.verticalScale
}

// VerticalScale returns the layer's amplitude, used to normalize raw samples
// back into [-1, 1].
func (l NoiseLayer) VerticalScale() float32 {
	return l.verticalScale
}
