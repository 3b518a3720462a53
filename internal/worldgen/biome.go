package worldgen

// Biome classifies terrain by climate. The classification drives both height
// shaping and vertex coloring, so the two must agree on thresholds.
type Biome int

const (
	BiomeDesert Biome = iota
	BiomeGrasslands
	BiomeTaiga
	BiomeForest
	BiomeOcean
)

func (b Biome) String() string {
	switch b {
	case BiomeDesert:
		return "Desert"
	case BiomeGrasslands:
		return "Grasslands"
	case BiomeTaiga:
		return "Taiga"
	case BiomeForest:
		return "Forest"
	case BiomeOcean:
		return "Ocean"
	}
	return "Unknown"
}

// ClimateTuning holds the ocean/biome threshold constants. These were retuned
// repeatedly in playtesting, so they are configuration, not code.
type ClimateTuning struct {
	// Humidity above threshold+offset classifies as ocean.
	OceanHumidityThreshold float32
	OceanHumidityOffset    float32
	// Temperature extremes that also classify as ocean.
	OceanHotTempThreshold  float32
	OceanColdTempThreshold float32
	// Width of the band over which land blends into ocean. Must be > 0:
	// the same thresholds feed continuous blending in height computation,
	// and a hard cutoff would leave a visible cliff at every coastline.
	OceanTransitionWidth float32
}

// DefaultClimateTuning returns the shipped tuning.
func DefaultClimateTuning() ClimateTuning {
	return ClimateTuning{
		OceanHumidityThreshold: 0.60,
		OceanHumidityOffset:    0.02,
		OceanHotTempThreshold:  0.92,
		OceanColdTempThreshold: 0.08,
		OceanTransitionWidth:   0.05,
	}
}

// Per-biome height shaping. Multipliers scale the summed noise layers, offsets
// raise or sink the whole biome. Ocean is flat and sunken.
const (
	desertHeightMult = 0.01
	grassHeightMult  = 0.02
	forestHeightMult = 0.05
	taigaHeightMult  = 1.5
	oceanHeightMult  = 0.01

	desertElevOffset = 0.0
	grassElevOffset  = 0.04
	forestElevOffset = 0.5
	taigaElevOffset  = 8.0
	oceanElevOffset  = -2.5
)

// oceanFactor returns how far the given climate is into ocean territory,
// 0 on land rising linearly to 1 across the transition band. Wet climates,
// very hot climates and very cold climates all pull toward ocean; the
// strongest pull wins.
func (t ClimateTuning) oceanFactor(temp, humidity float32) float32 {
	var humBlend, hotBlend, coldBlend float32

	if humidity > t.OceanHumidityThreshold {
		humBlend = clamp01((humidity - t.OceanHumidityThreshold) / t.OceanTransitionWidth)
	}
	if temp > t.OceanHotTempThreshold-t.OceanTransitionWidth {
		hotBlend = clamp01((temp - (t.OceanHotTempThreshold - t.OceanTransitionWidth)) / t.OceanTransitionWidth)
	}
	if temp < t.OceanColdTempThreshold+t.OceanTransitionWidth {
		coldBlend = clamp01((t.OceanColdTempThreshold + t.OceanTransitionWidth - temp) / t.OceanTransitionWidth)
	}

	return max(humBlend, max(hotBlend, coldBlend))
}

// biomeHeightMultiplier blends the four land multipliers bilinearly over
// climate, then blends the result toward the flat ocean multiplier.
func (t ClimateTuning) biomeHeightMultiplier(temp, humidity float32) float32 {
	coldBlend := grassHeightMult + (taigaHeightMult-grassHeightMult)*humidity
	hotBlend := desertHeightMult + (forestHeightMult-desertHeightMult)*humidity
	landMult := coldBlend + (hotBlend-coldBlend)*temp

	ocean := t.oceanFactor(temp, humidity)
	return landMult + (oceanHeightMult-landMult)*ocean
}

// biomeElevationOffset is the same bilinear blend over the elevation offsets.
func (t ClimateTuning) biomeElevationOffset(temp, humidity float32) float32 {
	coldBlend := grassElevOffset + (taigaElevOffset-grassElevOffset)*humidity
	hotBlend := desertElevOffset + (forestElevOffset-desertElevOffset)*humidity
	landElev := coldBlend + (hotBlend-coldBlend)*temp

	ocean := t.oceanFactor(temp, humidity)
	return landElev + (oceanElevOffset-landElev)*ocean
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
