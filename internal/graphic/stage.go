// Package graphic composites layers onto a stage and encodes the result.
//
// A Stage owns an ordered list of layers. Layers paint in the order they
// were created, later ones overwriting earlier ones pixel for pixel; no
// blending is done. Rendering runs five passes: anchors are resolved, the
// stage size is settled, a transparent canvas is allocated, every layer is
// copied onto it, and an optional crop is cut out of the result. The
// canvas is then handed to an encoder.
//
// A Stage is not safe for concurrent use. Concurrent renders each need
// their own Stage.
package graphic

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/AnyUserName/magicgraphic/internal/encoder"
	"github.com/AnyUserName/magicgraphic/internal/raster"
)

// Crop is a region cut out of the composited canvas.
type Crop struct {
	Width, Height int
	X, Y          int
}

// Stage is the output canvas and the layers painted onto it.
type Stage struct {
	layers []*Layer

	width, height       int
	hasWidth, hasHeight bool

	crop *Crop

	anchorBasis AnchorBasis
	policy      FormatPolicy
	registry    *encoder.Registry
	filter      raster.Filter
	logger      *slog.Logger

	canvas *image.NRGBA
}

// NewStage creates an empty stage. Without WithSize (or both WithWidth and
// WithHeight) the stage autosizes to the extent of its layers.
// Anchors resolve against that extent unless WithAnchorBasis(AnchorConfigured)
// selects the configured size instead.
func NewStage(opts ...Option) *Stage {
	s := &Stage{filter: raster.Lanczos}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = encoder.NewRegistry()
	}
	if s.logger == nil {
		s.logger = Logger()
	}
	return s
}

// Autosize reports whether either stage dimension is derived from the layers.
func (s *Stage) Autosize() bool { return !s.hasWidth || !s.hasHeight }

// Len returns the number of layers.
func (s *Stage) Len() int { return len(s.layers) }

// Layers returns the layers in paint order.
func (s *Stage) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Layer returns the topmost layer with the given name, or nil.
func (s *Stage) Layer(name string) *Layer {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].name == name {
			return s.layers[i]
		}
	}
	return nil
}

// CreateLayer appends an empty layer on top of the stack.
func (s *Stage) CreateLayer(name string) *Layer {
	l := newLayer(name, s.filter)
	s.layers = append(s.layers, l)
	return l
}

// DuplicateLayer appends a layer holding a copy of src's current pixels.
// Offset, anchor and alpha are not copied.
func (s *Stage) DuplicateLayer(name string, src *Layer) (*Layer, error) {
	if src == nil || !src.Loaded() {
		return nil, fmt.Errorf("duplicate %q: %w", name, ErrNotLoaded)
	}
	return s.DuplicateImage(name, src.Image())
}

// DuplicateImage appends a layer holding a copy of img.
func (s *Stage) DuplicateImage(name string, img image.Image) (*Layer, error) {
	l := newLayer(name, s.filter)
	if err := l.LoadFromImage(img); err != nil {
		return nil, err
	}
	s.layers = append(s.layers, l)
	return l, nil
}

// AnchorLayer pins l to anchor a.
func (s *Stage) AnchorLayer(l *Layer, a Anchor) error {
	return l.SetAnchor(a)
}

// SetCrop records a w×h crop at (x, y), applied once after compositing.
// A later call replaces the earlier one.
func (s *Stage) SetCrop(w, h, x, y int) error {
	if err := checkSize(w, h); err != nil {
		return fmt.Errorf("stage crop: %w", err)
	}
	s.crop = &Crop{Width: w, Height: h, X: x, Y: y}
	return nil
}

// Size returns the dimensions of the most recently flattened canvas, or
// zero before the first render.
func (s *Stage) Size() (w, h int) {
	if s.canvas == nil {
		return 0, 0
	}
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Flatten composites all layers and returns the resulting canvas. The
// canvas is freshly allocated on each call.
func (s *Stage) Flatten() (*image.NRGBA, error) {
	for _, l := range s.layers {
		if !l.Loaded() {
			return nil, fmt.Errorf("render: layer %q: %w", l.name, ErrNotLoaded)
		}
	}

	s.resolveAnchors()

	w, h := s.stageSize(s.layers)
	if err := checkSize(w, h); err != nil {
		return nil, fmt.Errorf("render: stage: %w", err)
	}
	s.logger.Debug("compositing", "width", w, "height", h, "layers", len(s.layers), "autosize", s.Autosize())

	canvas := raster.New(w, h)
	for _, l := range s.layers {
		raster.Blit(canvas, l.img, l.x, l.y, 0, 0, l.width, l.height)
	}

	if c := s.crop; c != nil {
		s.logger.Debug("cropping", "width", c.Width, "height", c.Height, "x", c.X, "y", c.Y)
		cropped := raster.New(c.Width, c.Height)
		raster.Blit(cropped, canvas, 0, 0, c.X, c.Y, c.Width, c.Height)
		canvas = cropped
	}

	s.canvas = canvas
	return canvas, nil
}

// Render flattens the stage and encodes it. Quality is 0-100 and is
// rescaled per format.
func (s *Stage) Render(format string, quality int) ([]byte, error) {
	enc, err := s.Encoder(format)
	if err != nil {
		return nil, err
	}
	canvas, err := s.Flatten()
	if err != nil {
		return nil, err
	}

	data, err := enc.Encode(canvas, quality)
	if err != nil {
		return nil, fmt.Errorf("render: %w: %s: %w", ErrEncode, enc.Format(), err)
	}
	s.logger.Debug("encoded", "format", enc.Format(), "quality", quality, "bytes", len(data))
	return data, nil
}

// Encoder returns the encoder Render would use for format under the
// stage's format policy. A permissive substitution is logged at Warn.
func (s *Stage) Encoder(format string) (encoder.Encoder, error) {
	enc, fellBack, err := s.registry.Resolve(format, s.policy == Strict)
	if err != nil {
		return nil, fmt.Errorf("render: %w: %w", ErrEncode, err)
	}
	if fellBack {
		s.logger.Warn("unknown output format, substituting default",
			"requested", format, "format", enc.Format())
	}
	return enc, nil
}

// Canvas returns the most recently flattened canvas, or nil before the
// first render.
func (s *Stage) Canvas() *image.NRGBA { return s.canvas }

// Display renders the stage and streams the encoded bytes to w.
func (s *Stage) Display(w io.Writer, quality int, format string) error {
	data, err := s.Render(format, quality)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// Save renders the stage and writes it to path. Nothing is written if the
// render fails.
func (s *Stage) Save(path string, quality int, format string) error {
	data, err := s.Render(format, quality)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// resolveAnchors overwrites the offset of every anchored layer.
func (s *Stage) resolveAnchors() {
	var free []*Layer
	anchored := false
	for _, l := range s.layers {
		if l.anchor == AnchorNone {
			free = append(free, l)
		} else {
			anchored = true
		}
	}
	if !anchored {
		return
	}

	bw, bh := s.width, s.height
	if s.anchorBasis == AnchorExtent {
		bw, bh = s.stageSize(free)
		if s.Autosize() {
			for _, l := range s.layers {
				if l.anchor != AnchorNone {
					bw, bh = max(bw, l.width), max(bh, l.height)
				}
			}
		}
	} else {
		if !s.hasWidth {
			bw = 0
		}
		if !s.hasHeight {
			bh = 0
		}
	}

	for _, l := range s.layers {
		if l.anchor == AnchorNone {
			continue
		}
		l.x, l.y = ResolveAnchor(l.anchor, l.width, l.height, bw, bh)
		s.logger.Debug("anchored", "layer", l.name, "anchor", l.anchor.String(), "x", l.x, "y", l.y)
	}
}

// stageSize returns the configured size, or when autosizing the extent of
// layers floored at whichever dimensions were configured.
func (s *Stage) stageSize(layers []*Layer) (w, h int) {
	if s.hasWidth {
		w = s.width
	}
	if s.hasHeight {
		h = s.height
	}
	if !s.Autosize() {
		return w, h
	}
	for _, l := range layers {
		w = max(w, l.x+l.width)
		h = max(h, l.y+l.height)
	}
	return w, h
}
