package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/AnyUserName/magicgraphic/internal/encoder"
	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/AnyUserName/magicgraphic/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile // fallback for scenes without output settings
	Workers   int
	Strict    bool         // unknown output formats fail the scene
	Logger    *slog.Logger // nil uses graphic.Logger()
}

// Pipeline renders a directory of scenes.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.cfg.Logger != nil {
		return p.cfg.Logger
	}
	return graphic.Logger()
}

// Run renders every scene under InputDir and returns the manifest. Scenes
// that fail are logged and counted; Run errors only when none succeed or
// ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	log := p.logger()
	log.Debug("pipeline start", "input", p.cfg.InputDir, "workers", p.cfg.Workers,
		"encoders", p.registry.Available())

	// Step 1: Scan for scenes.
	sources, err := ScanScenes(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no scenes found in %s", p.cfg.InputDir)
	}
	log.Debug("scenes found", "count", len(sources))

	// Step 2: Render scenes in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}: // acquire
			case <-ctx.Done():
				results[idx] = processResult{key: s.Key, err: ctx.Err()}
				return
			}
			defer func() { <-sem }() // release

			log.Debug("rendering", "scene", s.Key)
			results[idx] = p.processScene(s)
			if r := results[idx]; r.err == nil {
				log.Debug("rendered", "scene", s.Key, "path", r.render.Path, "bytes", r.render.Size)
			}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			log.Error("scene failed", "scene", r.key, "err", r.err)
			continue
		}
		m.Renders[r.key] = r.render
	}

	// Partial failures don't fail the build.
	if failed > 0 {
		if failed == len(sources) {
			return nil, fmt.Errorf("all %d scenes failed to render", failed)
		}
		log.Warn("some scenes had errors", "failed", failed, "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:  p.cfg.Workers,
		Encoders: p.registry.Available(),
	}
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
