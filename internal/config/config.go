package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"aeroterra/internal/worldgen"
)

// LODBand maps a camera distance (in chunks) to a mesh subdivision count.
// Bands are checked in order; the first band whose MaxDistance covers the
// chunk wins.
type LODBand struct {
	MaxDistance  float32 `yaml:"max_distance"`
	Subdivisions int     `yaml:"subdivisions"`
}

// ClimateSettings mirrors worldgen.ClimateTuning in the config file.
type ClimateSettings struct {
	OceanHumidityThreshold float32 `yaml:"ocean_humidity_threshold"`
	OceanHumidityOffset    float32 `yaml:"ocean_humidity_offset"`
	OceanHotTempThreshold  float32 `yaml:"ocean_hot_temp_threshold"`
	OceanColdTempThreshold float32 `yaml:"ocean_cold_temp_threshold"`
	OceanTransitionWidth   float32 `yaml:"ocean_transition_width"`
}

// Settings is the full tunable surface of the terrain engine.
type Settings struct {
	Seed int64 `yaml:"seed"`

	RenderDistance    int `yaml:"render_distance"`
	MaxChunksPerFrame int `yaml:"max_chunks_per_frame"`

	LODBands              []LODBand `yaml:"lod_bands"`
	LODQualityMultiplier  int       `yaml:"lod_quality_multiplier"`
	LODDistanceMultiplier float32   `yaml:"lod_distance_multiplier"`

	TerrainSmoothness float32 `yaml:"terrain_smoothness"`
	SmoothNormals     bool    `yaml:"smooth_normals"`

	TreeRenderDistance float32 `yaml:"tree_render_distance"`

	// Worker pool sizing. Workers <= 0 means one per CPU.
	Workers        int `yaml:"workers"`
	BuildQueueSize int `yaml:"build_queue_size"`

	Climate ClimateSettings `yaml:"climate"`
}

// Default returns the shipped settings.
func Default() Settings {
	tuning := worldgen.DefaultClimateTuning()
	return Settings{
		Seed:              42,
		RenderDistance:    25,
		MaxChunksPerFrame: 100,
		LODBands: []LODBand{
			{MaxDistance: 2, Subdivisions: 64},
			{MaxDistance: 4, Subdivisions: 32},
			{MaxDistance: 8, Subdivisions: 16},
			{MaxDistance: 16, Subdivisions: 8},
			{MaxDistance: 25, Subdivisions: 4},
		},
		LODQualityMultiplier:  1,
		LODDistanceMultiplier: 1.0,
		TerrainSmoothness:     0.0,
		SmoothNormals:         true,
		TreeRenderDistance:    6,
		Workers:               0,
		BuildQueueSize:        256,
		Climate: ClimateSettings{
			OceanHumidityThreshold: tuning.OceanHumidityThreshold,
			OceanHumidityOffset:    tuning.OceanHumidityOffset,
			OceanHotTempThreshold:  tuning.OceanHotTempThreshold,
			OceanColdTempThreshold: tuning.OceanColdTempThreshold,
			OceanTransitionWidth:   tuning.OceanTransitionWidth,
		},
	}
}

// Load reads settings from a YAML file, overlaying the defaults. An empty
// path returns the defaults untouched.
func Load(path string) (Settings, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (s *Settings) Validate() error {
	if s.RenderDistance < 1 || s.RenderDistance > 64 {
		return fmt.Errorf("render_distance %d out of range [1,64]", s.RenderDistance)
	}
	if s.MaxChunksPerFrame < 1 {
		return fmt.Errorf("max_chunks_per_frame must be at least 1, got %d", s.MaxChunksPerFrame)
	}
	if len(s.LODBands) == 0 {
		return fmt.Errorf("lod_bands must not be empty")
	}
	prev := float32(0)
	for i, band := range s.LODBands {
		if band.MaxDistance <= prev {
			return fmt.Errorf("lod_bands[%d].max_distance %v not increasing", i, band.MaxDistance)
		}
		if band.Subdivisions < 0 {
			return fmt.Errorf("lod_bands[%d].subdivisions %d negative", i, band.Subdivisions)
		}
		prev = band.MaxDistance
	}
	if s.LODQualityMultiplier < 1 {
		return fmt.Errorf("lod_quality_multiplier must be at least 1, got %d", s.LODQualityMultiplier)
	}
	if s.LODDistanceMultiplier <= 0 {
		return fmt.Errorf("lod_distance_multiplier must be positive, got %v", s.LODDistanceMultiplier)
	}
	if s.TerrainSmoothness < 0 || s.TerrainSmoothness > 1 {
		return fmt.Errorf("terrain_smoothness %v out of range [0,1]", s.TerrainSmoothness)
	}
	if s.Climate.OceanTransitionWidth <= 0 {
		return fmt.Errorf("climate.ocean_transition_width must be positive, got %v", s.Climate.OceanTransitionWidth)
	}
	return nil
}

// ClimateTuning converts the config climate block into the worldgen type.
func (s *Settings) ClimateTuning() worldgen.ClimateTuning {
	return worldgen.ClimateTuning{
		OceanHumidityThreshold: s.Climate.OceanHumidityThreshold,
		OceanHumidityOffset:    s.Climate.OceanHumidityOffset,
		OceanHotTempThreshold:  s.Climate.OceanHotTempThreshold,
		OceanColdTempThreshold: s.Climate.OceanColdTempThreshold,
		OceanTransitionWidth:   s.Climate.OceanTransitionWidth,
	}
}

// WorkerCount resolves the configured worker count against the machine.
func (s *Settings) WorkerCount() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return max(runtime.NumCPU(), 1)
}
