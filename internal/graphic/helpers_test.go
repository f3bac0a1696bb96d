package graphic

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// gradient returns an opaque w×h image whose pixels are all distinct for
// small sizes.
func gradient(w, h int, blue uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: blue, A: 255})
		}
	}
	return img
}

func pngBytes(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// assertRegion checks that canvas holds src's pixels with src's origin at
// (ox, oy), skipping points for which skip returns true.
func assertRegion(t *testing.T, canvas, src *image.NRGBA, ox, oy int, skip func(x, y int) bool) {
	t.Helper()
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cx, cy := ox+x, oy+y
			if skip != nil && skip(cx, cy) {
				continue
			}
			if got, want := canvas.NRGBAAt(cx, cy), src.NRGBAAt(x, y); got != want {
				t.Fatalf("canvas (%d,%d): got %v, want %v", cx, cy, got, want)
			}
		}
	}
}
