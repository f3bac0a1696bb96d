package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/magicgraphic/internal/encoder"
	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/hasher"
	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/AnyUserName/magicgraphic/internal/raster"
	"github.com/AnyUserName/magicgraphic/internal/scene"
)

// processResult holds the outcome of rendering a single scene.
type processResult struct {
	key    string
	render manifest.Render
	err    error
}

// processScene loads, validates, builds and renders one scene, then writes
// the encoded image under a content-addressed name.
func (p *Pipeline) processScene(src Source) processResult {
	result := processResult{key: src.Key}

	sc, err := scene.Load(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}
	if problems := scene.Validate(sc); len(problems) > 0 {
		msg := problems[0]
		if len(problems) > 1 {
			msg = fmt.Sprintf("%s (and %d more)", msg, len(problems)-1)
		}
		result.err = fmt.Errorf("%s: invalid scene: %s", src.RelPath, msg)
		return result
	}

	out, err := p.renderScene(sc, p.cfg.Profile)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
		filepath.Base(src.Key), out.Width, out.Height, out.Hash[:8], out.Ext)
	relPath := filepath.ToSlash(filepath.Join(filepath.Dir(src.Key), fileName))
	outPath := filepath.Join(p.cfg.OutputDir, relPath)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("create dir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.render = manifest.Render{
		Scene:    src.RelPath,
		Layers:   out.Layers,
		Width:    out.Width,
		Height:   out.Height,
		Format:   out.Format,
		Quality:  out.Quality,
		HasAlpha: out.HasAlpha,
		Size:     int64(len(out.Data)),
		Hash:     out.Hash,
		Path:     relPath,
	}
	return result
}

// Output is one encoded composition.
type Output struct {
	Data     []byte
	Format   string // canonical encoder name actually used
	Ext      string
	Quality  int
	Width    int
	Height   int
	Layers   int
	HasAlpha bool
	Hash     string // 16 hex chars
}

// RenderScene builds sc and encodes it with the scene's output settings
// layered over fallback. Exposed for the single-scene render command.
func (p *Pipeline) RenderScene(sc *scene.Scene, fallback profile.Profile) (*Output, error) {
	return p.renderScene(sc, fallback)
}

func (p *Pipeline) renderScene(sc *scene.Scene, fallback profile.Profile) (*Output, error) {
	opts := []graphic.Option{
		graphic.WithRegistry(p.registry),
		graphic.WithLogger(p.logger().With("scene", sc.Name)),
	}
	if p.cfg.Strict {
		opts = append(opts, graphic.WithFormatPolicy(graphic.Strict))
	}
	stage, err := scene.Build(sc, opts...)
	if err != nil {
		return nil, err
	}

	prof := sc.OutputProfile(fallback)
	enc, err := stage.Encoder(prof.Format)
	if err != nil {
		return nil, err
	}
	// Render with the resolved name so a substitution is logged once.
	data, err := stage.Render(enc.Format(), prof.Quality)
	if err != nil {
		return nil, err
	}

	w, h := stage.Size()
	return &Output{
		Data:     data,
		Format:   enc.Format(),
		Ext:      enc.Extension(),
		Quality:  prof.Quality,
		Width:    w,
		Height:   h,
		Layers:   stage.Len(),
		HasAlpha: raster.HasAlpha(stage.Canvas()),
		Hash:     hasher.ContentHash(data, 16),
	}, nil
}

// Registry exposes the encoders the pipeline renders with.
func (p *Pipeline) Registry() *encoder.Registry { return p.registry }
