package worldgen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TerrainStop is one entry of a biome palette: the color used up to (and
// blended across) the given palette-space height.
type TerrainStop struct {
	Height float32
	Color  mgl32.Vec4
}

// Palettes holds the four land biome palettes. Ocean has no palette of its
// own: every palette bottoms out in water tones, and the climate blend pulls
// submerged terrain toward them from all four corners at once.
//
// All colors are linear RGBA. Mixing gamma-encoded values would visibly band
// at every palette boundary.
type Palettes struct {
	Desert     []TerrainStop
	Grasslands []TerrainStop
	Taiga      []TerrainStop
	Forest     []TerrainStop
}

// DefaultPalettes returns the shipped terrain palettes. Heights are in
// palette space, i.e. shaped height before MapHeightScale is applied.
func DefaultPalettes() Palettes {
	return Palettes{
		Desert: []TerrainStop{
			{Height: -1.2, Color: mgl32.Vec4{0.05, 0.22, 0.35, 1}},
			{Height: -0.1, Color: mgl32.Vec4{0.60, 0.50, 0.28, 1}},
			{Height: 0.5, Color: mgl32.Vec4{0.75, 0.62, 0.35, 1}},
			{Height: 2.0, Color: mgl32.Vec4{0.82, 0.70, 0.45, 1}},
			{Height: 8.0, Color: mgl32.Vec4{0.55, 0.45, 0.35, 1}},
		},
		Grasslands: []TerrainStop{
			{Height: -1.2, Color: mgl32.Vec4{0.04, 0.25, 0.30, 1}},
			{Height: -0.1, Color: mgl32.Vec4{0.25, 0.22, 0.12, 1}},
			{Height: 0.3, Color: mgl32.Vec4{0.22, 0.48, 0.15, 1}},
			{Height: 2.0, Color: mgl32.Vec4{0.16, 0.36, 0.12, 1}},
			{Height: 6.0, Color: mgl32.Vec4{0.45, 0.42, 0.38, 1}},
			{Height: 12.0, Color: mgl32.Vec4{0.90, 0.92, 0.95, 1}},
		},
		Taiga: []TerrainStop{
			{Height: -1.2, Color: mgl32.Vec4{0.03, 0.20, 0.28, 1}},
			{Height: 0.5, Color: mgl32.Vec4{0.30, 0.34, 0.30, 1}},
			{Height: 4.0, Color: mgl32.Vec4{0.12, 0.25, 0.18, 1}},
			{Height: 9.0, Color: mgl32.Vec4{0.55, 0.60, 0.62, 1}},
			{Height: 14.0, Color: mgl32.Vec4{0.88, 0.90, 0.94, 1}},
			{Height: 20.0, Color: mgl32.Vec4{0.97, 0.97, 1.00, 1}},
		},
		Forest: []TerrainStop{
			{Height: -1.2, Color: mgl32.Vec4{0.04, 0.22, 0.26, 1}},
			{Height: -0.1, Color: mgl32.Vec4{0.20, 0.16, 0.10, 1}},
			{Height: 0.4, Color: mgl32.Vec4{0.10, 0.32, 0.10, 1}},
			{Height: 1.5, Color: mgl32.Vec4{0.07, 0.24, 0.08, 1}},
			{Height: 4.0, Color: mgl32.Vec4{0.18, 0.22, 0.16, 1}},
			{Height: 9.0, Color: mgl32.Vec4{0.50, 0.50, 0.52, 1}},
		},
	}
}

// PaletteColor evaluates a palette at a height. Below the first stop or above
// the last it clamps to the end color. Within a band the color stays at the
// lower stop until the normalized position passes 1-smoothness, then blends
// linearly into the upper stop: smoothness 0 gives hard banding, smoothness 1
// a full gradient.
func PaletteColor(height float32, palette []TerrainStop, smoothness float32) mgl32.Vec4 {
	if len(palette) == 0 {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	if height != height { // NaN guard
		return palette[0].Color
	}

	upper := 0
	for upper < len(palette) && height > palette[upper].Height {
		upper++
	}
	if upper == 0 {
		return palette[0].Color
	}
	if upper >= len(palette) {
		return palette[len(palette)-1].Color
	}

	lo := palette[upper-1]
	hi := palette[upper]

	bandWidth := hi.Height - lo.Height
	if bandWidth <= 0 {
		return lo.Color
	}
	t := clamp01((height - lo.Height) / bandWidth)

	smoothness = clamp01(smoothness)
	blendStart := 1.0 - smoothness
	if t <= blendStart || smoothness == 0 {
		return lo.Color
	}
	return mixColor(lo.Color, hi.Color, (t-blendStart)/smoothness)
}

// TerrainColor maps a vertex's shaped height and climate to its color: each
// biome palette is evaluated independently, then the four results are blended
// bilinearly, humidity first within the cold and hot rows, temperature last.
func TerrainColor(height, temp, humidity, smoothness float32, p Palettes) mgl32.Vec4 {
	desert := PaletteColor(height, p.Desert, smoothness)
	grass := PaletteColor(height, p.Grasslands, smoothness)
	taiga := PaletteColor(height, p.Taiga, smoothness)
	forest := PaletteColor(height, p.Forest, smoothness)

	coldBlend := mixColor(grass, taiga, humidity)
	hotBlend := mixColor(desert, forest, humidity)
	return mixColor(coldBlend, hotBlend, temp)
}

func mixColor(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	t = clamp01(t)
	return a.Add(b.Sub(a).Mul(t))
}
