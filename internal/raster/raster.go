// Package raster is the pixel-primitive boundary used by the compositor.
// Every buffer it hands out is an *image.NRGBA whose bounds start at (0,0).
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when source bytes are not a known image encoding.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Filter selects the resampling kernel.
type Filter = imaging.ResampleFilter

// Resampling kernels exposed to callers.
var (
	Lanczos         = imaging.Lanczos
	CatmullRom      = imaging.CatmullRom
	Linear          = imaging.Linear
	Box             = imaging.Box
	NearestNeighbor = imaging.NearestNeighbor
)

var filters = map[string]Filter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// FilterByName looks up a resampling kernel by its lower-case name.
func FilterByName(name string) (Filter, bool) {
	f, ok := filters[name]
	return f, ok
}

// New allocates a fully transparent w×h buffer.
func New(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.Transparent)
}

// NewFilled allocates a w×h buffer filled with c.
func NewFilled(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// Decode reads an encoded image and returns it as an NRGBA buffer.
// EXIF orientation is applied so the buffer matches what a viewer shows.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, err
	}
	return Clone(img), nil
}

// DecodeBytes is Decode over an in-memory slice.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	return Decode(bytes.NewReader(data))
}

// Clone returns a deep copy of img rebased to (0,0).
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Blit copies the w×h region of src starting at (srcX, srcY) into dst at
// (dstX, dstY). Pixels are overwritten, not blended. Parts of the region
// that fall outside either buffer are skipped.
func Blit(dst *image.NRGBA, src image.Image, dstX, dstY, srcX, srcY, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sb := src.Bounds()
	r := image.Rect(dstX, dstY, dstX+w, dstY+h)
	sp := image.Pt(sb.Min.X+srcX, sb.Min.Y+srcY)
	draw.Draw(dst, r, src, sp, draw.Src)
}

// Resample scales src to exactly w×h.
func Resample(src image.Image, w, h int, filter Filter) *image.NRGBA {
	return imaging.Resize(src, w, h, filter)
}

// RotateCCW rotates src counter-clockwise by degrees. The result is grown
// to hold the rotated content; uncovered pixels take bg.
func RotateCCW(src image.Image, degrees float64, bg color.Color) *image.NRGBA {
	return imaging.Rotate(src, degrees, bg)
}

// HasAlpha reports whether any pixel of img is not fully opaque.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
