package worldgen

// MapHeightScale converts shaped noise height into world units.
const MapHeightScale = 100.0

// TerrainHorizontalScale is the global frequency multiplier applied to every
// terrain layer's horizontal scale. Sized against the 1000-unit chunk so the
// largest features span several chunks.
const TerrainHorizontalScale = 25.0

// Generator owns the layered noise fields that define a world: a stack of
// terrain layers summed for base height, plus single temperature and humidity
// layers driving climate. Fully determined by the seed, immutable after
// construction, and cheap to copy so worker goroutines can take their own.
type Generator struct {
	seed          int64
	terrainLayers []NoiseLayer
	temperature   NoiseLayer
	humidity      NoiseLayer
	tuning        ClimateTuning
}

// NewGenerator builds the layer stack for a seed. Layer seeds are spread out
// so no two layers share a gradient lattice; temperature and humidity use
// deliberately low frequencies because climate must vary over whole regions,
// not individual hills.
func NewGenerator(seed int64, tuning ClimateTuning) *Generator {
	return &Generator{
		seed: seed,
		terrainLayers: []NoiseLayer{
			NewNoiseLayer(seed, 0.08*TerrainHorizontalScale, 4.5),
			NewNoiseLayer(seed, 0.20*TerrainHorizontalScale, 3.5),
			NewNoiseLayer(seed+100, 0.50*TerrainHorizontalScale, 1.75),
			NewNoiseLayer(seed+200, 1.00*TerrainHorizontalScale, 0.5),
			NewNoiseLayer(seed+300, 2.00*TerrainHorizontalScale, 0.4),
		},
		temperature: NewNoiseLayer(seed+400, 0.06*TerrainHorizontalScale, 1.0),
		humidity:    NewNoiseLayer(seed+500, 0.06*TerrainHorizontalScale, 1.0),
		tuning:      tuning,
	}
}

// Seed returns the world seed the generator was built from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Tuning returns the climate threshold set in use.
func (g *Generator) Tuning() ClimateTuning {
	return g.tuning
}

// Clone returns an independent copy for use by a worker goroutine. The layers
// themselves are immutable; only the slice header needs duplicating.
func (g *Generator) Clone() *Generator {
	c := *g
	c.terrainLayers = make([]NoiseLayer, len(g.terrainLayers))
	copy(c.terrainLayers, g.terrainLayers)
	return &c
}

// Climate returns (temperature, humidity) at a position, each normalized from
// the raw noise range to [0,1] and clamped.
func (g *Generator) Climate(pos [3]float32) (temp, humidity float32) {
	rawTemp := g.temperature.Sample(pos)
	rawHum := g.humidity.Sample(pos)

	temp = clamp01((rawTemp/g.temperature.VerticalScale() + 1.0) * 0.5)
	humidity = clamp01((rawHum/g.humidity.VerticalScale() + 1.0) * 0.5)
	return temp, humidity
}

// Biome classifies the climate at a position. Ocean wins in wet areas or at
// either temperature extreme; the remaining four biomes form a 2x2
// temperature/humidity matrix.
func (g *Generator) Biome(pos [3]float32) Biome {
	temp, humidity := g.Climate(pos)

	if humidity > g.tuning.OceanHumidityThreshold+g.tuning.OceanHumidityOffset ||
		temp > g.tuning.OceanHotTempThreshold ||
		temp < g.tuning.OceanColdTempThreshold {
		return BiomeOcean
	}

	if temp > 0.5 {
		if humidity > 0.45 {
			return BiomeForest
		}
		return BiomeDesert
	}
	if humidity < 0.45 {
		return BiomeGrasslands
	}
	return BiomeTaiga
}

// TerrainHeight returns the world-space terrain height at a position.
// Bit-for-bit reproducible for a fixed seed: chunk builds at any LOD, rebuild
// tasks and external collision queries all go through this one code path, and
// they must agree exactly or aircraft would clip through the ground.
func (g *Generator) TerrainHeight(pos [3]float32) float32 {
	shaped, _, _ := g.shapedHeight(pos)
	return shaped * MapHeightScale
}

// shapedHeight returns the pre-scale height along with the climate used to
// shape it, so the mesh builder can color a vertex without resampling.
func (g *Generator) shapedHeight(pos [3]float32) (height, temp, humidity float32) {
	temp, humidity = g.Climate(pos)

	var base float32
	for _, layer := range g.terrainLayers {
		base += layer.Sample(pos)
	}

	mult := g.tuning.biomeHeightMultiplier(temp, humidity)
	offset := g.tuning.biomeElevationOffset(temp, humidity)
	return base*mult + offset, temp, humidity
}

// SurfaceSample is the single-pass per-vertex query used by mesh builds:
// world height plus the palette-space height and climate needed for coloring.
func (g *Generator) SurfaceSample(pos [3]float32) (worldHeight, paletteHeight, temp, humidity float32) {
	shaped, temp, humidity := g.shapedHeight(pos)
	return shaped * MapHeightScale, shaped, temp, humidity
}
