package terrain

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"aeroterra/internal/worldgen"
)

// BuildJob carries everything a worker needs to realize one chunk mesh. All
// fields are owned by the job: the mesh is freshly allocated, the generator
// is a private clone, so workers never touch shared mutable state.
type BuildJob struct {
	Coord  ChunkCoord
	Origin mgl32.Vec3

	// Generation identifies the world the job was built for. Results from an
	// older generation are discarded on collection; a coordinate match alone
	// is not enough after a reseed.
	Generation uint64

	Mesh *Mesh
	Gen  *worldgen.Generator

	Smoothness    float32
	SmoothNormals bool
	Palettes      worldgen.Palettes

	// WithTrees is set for chunks inside the tree render distance; distant
	// chunks skip vegetation entirely.
	WithTrees bool
}

// BuildResult is a finished chunk build, polled from the main loop and
// swapped in keyed by coordinate. There is no error field: the build is pure
// computation with no failure path.
type BuildResult struct {
	Coord      ChunkCoord
	Generation uint64
	Mesh       *Mesh
	Trees      []Tree
}

// BuildPool runs chunk builds on background goroutines. Submission and result
// collection are both non-blocking so the main loop never stalls on terrain
// work.
type BuildPool struct {
	jobs    chan BuildJob
	results chan BuildResult
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewBuildPool starts the worker goroutines with the given queue depth.
func NewBuildPool(workers, queueSize int) *BuildPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < workers {
		queueSize = workers
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &BuildPool{
		jobs:    make(chan BuildJob, queueSize),
		results: make(chan BuildResult, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit queues a build job. Returns false if the queue is full; the caller
// keeps the coordinate queued and retries next frame.
func (p *BuildPool) Submit(job BuildJob) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// TryCollect returns a finished build if one is ready, without blocking.
func (p *BuildPool) TryCollect() (BuildResult, bool) {
	select {
	case res := <-p.results:
		return res, true
	default:
		return BuildResult{}, false
	}
}

// Shutdown stops the workers and waits for them to exit.
func (p *BuildPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the number of jobs waiting for a worker.
func (p *BuildPool) QueueLength() int {
	return len(p.jobs)
}

func (p *BuildPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			res := buildChunk(job)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// buildChunk runs entirely on owned data: it lifts every vertex of the flat
// plane to the generator's terrain height, colors it, computes normals and
// places vegetation. Deterministic for a given seed and coordinate, so a
// low-LOD build and a later high-LOD rebuild agree wherever they share
// sample positions.
func buildChunk(job BuildJob) BuildResult {
	mesh := job.Mesh
	mesh.Colors = make([]mgl32.Vec4, len(mesh.Positions))

	for i := range mesh.Positions {
		local := mesh.Positions[i]
		worldPos := [3]float32{
			local.X() + job.Origin.X(),
			local.Y() + job.Origin.Y(),
			local.Z() + job.Origin.Z(),
		}

		worldHeight, paletteHeight, temp, humidity := job.Gen.SurfaceSample(worldPos)
		mesh.Positions[i] = mgl32.Vec3{local.X(), worldHeight, local.Z()}
		mesh.Colors[i] = worldgen.TerrainColor(paletteHeight, temp, humidity, job.Smoothness, job.Palettes)
	}

	if job.SmoothNormals {
		mesh.ComputeSmoothNormals()
	} else {
		mesh.ComputeFlatNormals()
	}

	var trees []Tree
	if job.WithTrees {
		trees = PlaceTrees(job.Gen, job.Origin)
	}

	return BuildResult{Coord: job.Coord, Generation: job.Generation, Mesh: mesh, Trees: trees}
}
