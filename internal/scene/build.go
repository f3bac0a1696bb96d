package scene

import (
	"fmt"

	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/AnyUserName/magicgraphic/internal/raster"
)

// Build turns a scene into a ready-to-render stage. Layers are created in
// order, so a duplicate copies its source as transformed so far. Extra
// options are applied after the ones derived from the scene.
func Build(sc *Scene, opts ...graphic.Option) (*graphic.Stage, error) {
	base, err := stageOptions(sc)
	if err != nil {
		return nil, err
	}
	stage := graphic.NewStage(append(base, opts...)...)

	for i, l := range sc.Layers {
		if err := addLayer(stage, l); err != nil {
			return nil, fmt.Errorf("layer[%d] %q: %w", i, l.Name, err)
		}
	}

	if c := sc.Crop; c != nil {
		if err := stage.SetCrop(c.Width, c.Height, c.X, c.Y); err != nil {
			return nil, err
		}
	}
	return stage, nil
}

// OutputProfile resolves the scene's output settings on top of fallback.
func (sc *Scene) OutputProfile(fallback profile.Profile) profile.Profile {
	p := fallback
	if sc.Output.Profile != "" {
		p = profile.Get(sc.Output.Profile)
	}
	return p.Override(sc.Output.Format, sc.Output.Quality)
}

func stageOptions(sc *Scene) ([]graphic.Option, error) {
	var opts []graphic.Option

	w, h := sc.Stage.Width, sc.Stage.Height
	if sc.Stage.Preset != "" {
		pw, ph, ok := profile.Canvas(sc.Stage.Preset)
		if !ok {
			return nil, fmt.Errorf("stage: unknown preset %q", sc.Stage.Preset)
		}
		w, h = pw, ph
	}
	if w > 0 {
		opts = append(opts, graphic.WithWidth(w))
	}
	if h > 0 {
		opts = append(opts, graphic.WithHeight(h))
	}

	basis, err := anchorBasis(sc.Stage.AnchorBasis)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	opts = append(opts, graphic.WithAnchorBasis(basis))

	if sc.Stage.Filter != "" {
		f, ok := raster.FilterByName(sc.Stage.Filter)
		if !ok {
			return nil, fmt.Errorf("stage: unknown filter %q", sc.Stage.Filter)
		}
		opts = append(opts, graphic.WithFilter(f))
	}

	if sc.Output.Strict {
		opts = append(opts, graphic.WithFormatPolicy(graphic.Strict))
	}
	return opts, nil
}

func anchorBasis(s string) (graphic.AnchorBasis, error) {
	switch s {
	case "", "extent":
		return graphic.AnchorExtent, nil
	case "configured":
		return graphic.AnchorConfigured, nil
	default:
		return 0, fmt.Errorf("unknown anchor basis %q", s)
	}
}

func addLayer(stage *graphic.Stage, l Layer) error {
	var (
		layer *graphic.Layer
		err   error
	)
	switch {
	case l.Duplicate != "":
		src := stage.Layer(l.Duplicate)
		if src == nil {
			return fmt.Errorf("duplicate source %q not found", l.Duplicate)
		}
		layer, err = stage.DuplicateLayer(l.Name, src)
	case l.File != "":
		layer = stage.CreateLayer(l.Name)
		err = layer.LoadFromFile(l.File)
	case l.Color != "":
		c, cerr := graphic.ParseColor(l.Color)
		if cerr != nil {
			return cerr
		}
		layer = stage.CreateLayer(l.Name)
		err = layer.LoadColor(l.Width, l.Height, c)
	default:
		return fmt.Errorf("no pixel source")
	}
	if err != nil {
		return err
	}

	for j, op := range l.Ops {
		if err := applyOp(layer, op); err != nil {
			return fmt.Errorf("op[%d] %s: %w", j, op.Op, err)
		}
	}

	if l.Offset != nil {
		layer.SetOffset(l.Offset.X, l.Offset.Y)
	}
	if l.Anchor != "" {
		a, err := graphic.ParseAnchor(l.Anchor)
		if err != nil {
			return err
		}
		if a != graphic.AnchorNone {
			if err := stage.AnchorLayer(layer, a); err != nil {
				return err
			}
		}
	}
	if l.Alpha != nil {
		if err := layer.SetAlpha(*l.Alpha); err != nil {
			return err
		}
	}
	return nil
}

func applyOp(l *graphic.Layer, op Op) error {
	switch op.Op {
	case OpResize:
		return l.Resize(op.Width, op.Height)
	case OpAutoResizeWidth:
		return l.AutoResizeWidth(op.Width)
	case OpAutoResizeHeight:
		return l.AutoResizeHeight(op.Height)
	case OpRotate:
		return l.Rotate(op.Degrees)
	case OpCrop:
		return l.Crop(op.Width, op.Height, op.X, op.Y)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}
