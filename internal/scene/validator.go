package scene

import (
	"fmt"

	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/AnyUserName/magicgraphic/internal/raster"
)

// Validate checks a scene without touching any pixels and returns every
// problem found. Build still fails on anything Validate would report.
func Validate(sc *Scene) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if sc.Stage.Preset != "" {
		if _, _, ok := profile.Canvas(sc.Stage.Preset); !ok {
			add("stage: unknown preset %q", sc.Stage.Preset)
		}
	}
	if sc.Stage.Width < 0 || sc.Stage.Height < 0 {
		add("stage: negative size %dx%d", sc.Stage.Width, sc.Stage.Height)
	}
	if _, err := anchorBasis(sc.Stage.AnchorBasis); err != nil {
		add("stage: %v", err)
	}
	if sc.Stage.Filter != "" {
		if _, ok := raster.FilterByName(sc.Stage.Filter); !ok {
			add("stage: unknown filter %q", sc.Stage.Filter)
		}
	}
	if c := sc.Crop; c != nil && (c.Width <= 0 || c.Height <= 0) {
		add("crop: non-positive size %dx%d", c.Width, c.Height)
	}
	if q := sc.Output.Quality; q < 0 || q > 100 {
		add("output: quality %d outside 0-100", q)
	}

	if len(sc.Layers) == 0 {
		add("scene has no layers")
	}

	seen := map[string]bool{}
	for i, l := range sc.Layers {
		where := fmt.Sprintf("layer[%d] %q", i, l.Name)

		sources := 0
		for _, set := range []bool{l.File != "", l.Color != "", l.Duplicate != ""} {
			if set {
				sources++
			}
		}
		if sources != 1 {
			add("%s: needs exactly one of file, color, duplicate (got %d)", where, sources)
		}
		if l.Color != "" {
			if _, err := graphic.ParseColor(l.Color); err != nil {
				add("%s: %v", where, err)
			}
			if l.Width <= 0 || l.Height <= 0 {
				add("%s: color fill needs positive width and height", where)
			}
		}
		if l.Duplicate != "" && !seen[l.Duplicate] {
			add("%s: duplicate source %q is not an earlier layer", where, l.Duplicate)
		}
		if l.Anchor != "" {
			if _, err := graphic.ParseAnchor(l.Anchor); err != nil {
				add("%s: %v", where, err)
			}
		}
		if a := l.Alpha; a != nil && (*a < 0 || *a > 1) {
			add("%s: alpha %v outside 0-1", where, *a)
		}
		for j, op := range l.Ops {
			if err := checkOp(op); err != nil {
				add("%s op[%d]: %v", where, j, err)
			}
		}

		seen[l.Name] = true
	}

	return problems
}

func checkOp(op Op) error {
	switch op.Op {
	case OpResize, OpCrop:
		if op.Width <= 0 || op.Height <= 0 {
			return fmt.Errorf("%s: non-positive size %dx%d", op.Op, op.Width, op.Height)
		}
	case OpAutoResizeWidth:
		if op.Width <= 0 {
			return fmt.Errorf("%s: non-positive width %d", op.Op, op.Width)
		}
	case OpAutoResizeHeight:
		if op.Height <= 0 {
			return fmt.Errorf("%s: non-positive height %d", op.Op, op.Height)
		}
	case OpRotate:
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}
