package graphic

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/AnyUserName/magicgraphic/internal/raster"
)

// Layer is one positioned image on a stage. A layer starts empty and must
// be loaded (LoadFromBytes, LoadFromFile, LoadFromImage or LoadColor)
// before it can be transformed or rendered. Every transform replaces the
// layer's buffer and refreshes Width and Height.
type Layer struct {
	name   string
	img    *image.NRGBA
	x, y   int
	width  int
	height int
	alpha  float64
	anchor Anchor
	filter raster.Filter
}

func newLayer(name string, filter raster.Filter) *Layer {
	return &Layer{name: name, alpha: 1, filter: filter}
}

func (l *Layer) Name() string   { return l.name }
func (l *Layer) X() int         { return l.x }
func (l *Layer) Y() int         { return l.y }
func (l *Layer) Width() int     { return l.width }
func (l *Layer) Height() int    { return l.height }
func (l *Layer) Alpha() float64 { return l.alpha }
func (l *Layer) Anchor() Anchor { return l.anchor }
func (l *Layer) Loaded() bool   { return l.img != nil }
func (l *Layer) Bounds() image.Rectangle {
	return image.Rect(l.x, l.y, l.x+l.width, l.y+l.height)
}

// Image returns the layer's current buffer, or nil if nothing is loaded.
// The buffer is owned by the layer; use LoadFromImage on another layer to
// get an independent copy.
func (l *Layer) Image() *image.NRGBA { return l.img }

// LoadFromBytes decodes an encoded image into the layer.
func (l *Layer) LoadFromBytes(data []byte) error {
	img, err := raster.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("layer %q: %w: %w", l.name, ErrDecode, err)
	}
	l.set(img)
	return nil
}

// LoadFromFile reads and decodes an image file into the layer.
func (l *Layer) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("layer %q: read %s: %w", l.name, path, err)
	}
	if err := l.LoadFromBytes(data); err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}
	return nil
}

// LoadFromImage loads a deep copy of img, so later changes to img (or to
// the layer) never leak across.
func (l *Layer) LoadFromImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("layer %q: empty source image: %w", l.name, ErrInvalidDimensions)
	}
	l.set(raster.Clone(img))
	return nil
}

// LoadColor fills the layer with a w×h block of c.
func (l *Layer) LoadColor(w, h int, c color.Color) error {
	if err := checkSize(w, h); err != nil {
		return fmt.Errorf("layer %q: load color: %w", l.name, err)
	}
	l.set(raster.NewFilled(w, h, c))
	return nil
}

func (l *Layer) SetX(x int) { l.x = x }
func (l *Layer) SetY(y int) { l.y = y }

// SetOffset places the layer's top-left corner relative to the stage
// origin. An anchor, if set, overrides this at render time.
func (l *Layer) SetOffset(x, y int) {
	l.x, l.y = x, y
}

// SetAnchor pins the layer to a named stage position. The offset is
// recomputed on every render, overwriting any SetOffset value.
func (l *Layer) SetAnchor(a Anchor) error {
	if !a.Valid() {
		return fmt.Errorf("layer %q: %w: %v", l.name, ErrUnknownAnchor, a)
	}
	l.anchor = a
	return nil
}

// ClearAnchor returns the layer to explicit positioning.
func (l *Layer) ClearAnchor() { l.anchor = AnchorNone }

// SetAlpha records the layer opacity. It is kept with the layer but not
// applied when compositing.
func (l *Layer) SetAlpha(a float64) error {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return fmt.Errorf("layer %q: %w: %v", l.name, ErrInvalidAlpha, a)
	}
	l.alpha = a
	return nil
}

// Resize resamples the layer to exactly w×h.
func (l *Layer) Resize(w, h int) error {
	if err := l.ready("resize"); err != nil {
		return err
	}
	if err := checkSize(w, h); err != nil {
		return fmt.Errorf("layer %q: resize: %w", l.name, err)
	}
	l.set(raster.Resample(l.img, w, h, l.filter))
	return nil
}

// AutoResizeWidth scales the layer to width w, keeping its aspect ratio.
func (l *Layer) AutoResizeWidth(w int) error {
	if err := l.ready("auto resize"); err != nil {
		return err
	}
	if l.width == 0 || l.height == 0 {
		return fmt.Errorf("layer %q: auto resize %dx%d: %w", l.name, l.width, l.height, ErrDegenerateSource)
	}
	h := int(math.Round(float64(l.height) * (float64(w) / float64(l.width))))
	return l.Resize(w, h)
}

// AutoResizeHeight scales the layer to height h, keeping its aspect ratio.
func (l *Layer) AutoResizeHeight(h int) error {
	if err := l.ready("auto resize"); err != nil {
		return err
	}
	if l.width == 0 || l.height == 0 {
		return fmt.Errorf("layer %q: auto resize %dx%d: %w", l.name, l.width, l.height, ErrDegenerateSource)
	}
	w := int(math.Round(float64(l.width) * (float64(h) / float64(l.height))))
	return l.Resize(w, h)
}

// Rotate turns the layer clockwise by degrees. The buffer grows to hold
// the rotated content and the uncovered corners are transparent.
func (l *Layer) Rotate(degrees float64) error {
	if err := l.ready("rotate"); err != nil {
		return err
	}
	l.set(raster.RotateCCW(l.img, -degrees, color.Transparent))
	return nil
}

// Crop keeps the w×h region starting at (x, y). Parts of the region outside
// the current buffer come out transparent.
func (l *Layer) Crop(w, h, x, y int) error {
	if err := l.ready("crop"); err != nil {
		return err
	}
	if err := checkSize(w, h); err != nil {
		return fmt.Errorf("layer %q: crop: %w", l.name, err)
	}
	dst := raster.New(w, h)
	raster.Blit(dst, l.img, 0, 0, x, y, w, h)
	l.set(dst)
	return nil
}

func (l *Layer) set(img *image.NRGBA) {
	l.img = img
	b := img.Bounds()
	l.width, l.height = b.Dx(), b.Dy()
}

func (l *Layer) ready(op string) error {
	if l.img == nil {
		return fmt.Errorf("layer %q: %s: %w", l.name, op, ErrNotLoaded)
	}
	return nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return nil
}
