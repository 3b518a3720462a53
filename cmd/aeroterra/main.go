// Headless streaming demo: flies a scripted viewpoint across the procedural
// world and reports chunk counts and per-phase timings, so streaming behavior
// can be observed and tuned without a renderer attached.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"aeroterra/internal/config"
	"aeroterra/internal/engine"
	"aeroterra/internal/profiling"
)

const (
	tickRate    = 60
	cruiseSpeed = 250.0  // world units per second
	cruiseAlt   = 1600.0 // clears taiga peaks
)

func main() {
	configPath := flag.String("config", "", "path to settings YAML (optional)")
	seed := flag.Int64("seed", 0, "world seed override (0 keeps the configured seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}
	closer.Bind(func() {
		eng.Close()
		log.Printf("engine stopped, %d chunks live at shutdown", eng.SpawnedChunks())
	})

	go fly(eng)

	closer.Hold()
}

// fly moves the viewpoint along a widening spiral so the stream sees both
// steady cruise and sharp turns across chunk boundaries.
func fly(eng *engine.Engine) {
	pacer := newFramePacer(tickRate)
	start := time.Now()
	lastReport := start

	for {
		pacer.Wait()
		elapsed := time.Since(start).Seconds()

		angle := elapsed * 0.05
		radius := cruiseSpeed * elapsed * 0.2
		pos := mgl32.Vec3{
			float32(math.Cos(angle) * radius),
			cruiseAlt,
			float32(math.Sin(angle) * radius),
		}

		profiling.ResetFrame()
		eng.Update(pos)
		eng.AnimateWater(elapsed)

		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			biome := eng.BiomeAt([3]float32{pos.X(), 0, pos.Z()})
			clearance := float32(-1)
			if hit := eng.RaycastTerrain(pos, mgl32.Vec3{0, -1, 0}, 2*cruiseAlt); hit.Hit {
				clearance = hit.Distance
			}
			log.Printf("pos=(%.0f,%.0f) chunks=%d pending=%d clearance=%.1f biome=%s [%s]",
				pos.X(), pos.Z(), eng.SpawnedChunks(), eng.PendingBuilds(), clearance, biome, profiling.TopN(3))
		}
	}
}
