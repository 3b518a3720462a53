package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultValidates verifies the shipped settings pass their own
// validation.
func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

// TestLoadEmptyPath verifies an empty path yields the defaults.
func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Seed != Default().Seed || cfg.RenderDistance != Default().RenderDistance {
		t.Errorf("empty path did not return defaults: %+v", cfg)
	}
}

// TestLoadOverlaysDefaults verifies a partial YAML file only overrides the
// keys it names.
func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "seed: 1337\nrender_distance: 8\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != 1337 || cfg.RenderDistance != 8 {
		t.Errorf("overrides not applied: seed=%d rd=%d", cfg.Seed, cfg.RenderDistance)
	}
	if cfg.MaxChunksPerFrame != Default().MaxChunksPerFrame {
		t.Errorf("unnamed key lost its default: %d", cfg.MaxChunksPerFrame)
	}
	if len(cfg.LODBands) != len(Default().LODBands) {
		t.Errorf("LOD bands lost their default: %v", cfg.LODBands)
	}
}

// TestLoadRejectsInvalid verifies validation runs on loaded files.
func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("render_distance: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("render_distance 0 accepted")
	}
}

// TestLoadMissingFile verifies a bad path surfaces the error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("missing file accepted")
	}
}

// TestValidateRejections spot-checks every validation rule.
func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"render distance too large", func(s *Settings) { s.RenderDistance = 65 }},
		{"zero budget", func(s *Settings) { s.MaxChunksPerFrame = 0 }},
		{"no LOD bands", func(s *Settings) { s.LODBands = nil }},
		{"non-increasing bands", func(s *Settings) {
			s.LODBands = []LODBand{{MaxDistance: 4, Subdivisions: 8}, {MaxDistance: 4, Subdivisions: 4}}
		}},
		{"negative subdivisions", func(s *Settings) {
			s.LODBands = []LODBand{{MaxDistance: 4, Subdivisions: -1}}
		}},
		{"zero quality multiplier", func(s *Settings) { s.LODQualityMultiplier = 0 }},
		{"negative distance multiplier", func(s *Settings) { s.LODDistanceMultiplier = -1 }},
		{"smoothness above one", func(s *Settings) { s.TerrainSmoothness = 1.5 }},
		{"zero transition width", func(s *Settings) { s.Climate.OceanTransitionWidth = 0 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: accepted", tc.name)
		}
	}
}

// TestWorkerCountFallback verifies Workers <= 0 resolves to at least one
// worker per CPU.
func TestWorkerCountFallback(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	if got := cfg.WorkerCount(); got < 1 {
		t.Errorf("WorkerCount() = %d", got)
	}
	cfg.Workers = 3
	if got := cfg.WorkerCount(); got != 3 {
		t.Errorf("explicit worker count ignored: %d", got)
	}
}

// TestRuntimeJustUpdated verifies the consume-once semantics of the rescan
// flag and that setters only raise it on an actual change.
func TestRuntimeJustUpdated(t *testing.T) {
	r := NewRuntime(Default())

	if r.ConsumeJustUpdated() {
		t.Errorf("fresh runtime flagged as updated")
	}

	r.SetRenderDistance(10)
	if !r.ConsumeJustUpdated() {
		t.Errorf("render distance change not flagged")
	}
	if r.ConsumeJustUpdated() {
		t.Errorf("flag not consumed")
	}

	// Setting the same value again must not force a rescan.
	r.SetRenderDistance(10)
	if r.ConsumeJustUpdated() {
		t.Errorf("no-op setter raised the flag")
	}

	r.ForceRescan()
	if !r.ConsumeJustUpdated() {
		t.Errorf("ForceRescan did not raise the flag")
	}
}

// TestRuntimeClamps verifies setters clamp out-of-range values instead of
// storing them.
func TestRuntimeClamps(t *testing.T) {
	r := NewRuntime(Default())

	r.SetRenderDistance(0)
	if got := r.RenderDistance(); got != 1 {
		t.Errorf("render distance clamped to %d, want 1", got)
	}
	r.SetRenderDistance(1000)
	if got := r.RenderDistance(); got != 64 {
		t.Errorf("render distance clamped to %d, want 64", got)
	}
	r.SetTerrainSmoothness(2)
	if got := r.TerrainSmoothness(); got != 1 {
		t.Errorf("smoothness clamped to %f, want 1", got)
	}
	r.SetLODMultipliers(0, -5)
	if q, d := r.LODMultipliers(); q != 1 || d != 1 {
		t.Errorf("multipliers clamped to (%d, %f), want (1, 1)", q, d)
	}
}

// TestRuntimeIgnoresEmptyLODBands verifies an empty band table is dropped:
// every chunk's LOD resolves through the table, so it may never go empty.
func TestRuntimeIgnoresEmptyLODBands(t *testing.T) {
	r := NewRuntime(Default())
	want := len(r.LODBands())

	r.SetLODBands(nil)
	if got := len(r.LODBands()); got != want {
		t.Fatalf("nil band table accepted: %d bands, want %d", got, want)
	}
	r.SetLODBands([]LODBand{})
	if got := len(r.LODBands()); got != want {
		t.Fatalf("empty band table accepted: %d bands, want %d", got, want)
	}
	if r.ConsumeJustUpdated() {
		t.Errorf("ignored setter raised the rescan flag")
	}
}

// TestRuntimeLODBandsCopied verifies callers cannot mutate the stored band
// table through the returned slice.
func TestRuntimeLODBandsCopied(t *testing.T) {
	r := NewRuntime(Default())
	bands := r.LODBands()
	bands[0].Subdivisions = 9999

	if got := r.LODBands()[0].Subdivisions; got == 9999 {
		t.Errorf("returned band slice aliases internal state")
	}
}
