package encoder

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

const (
	minGIFColors = 2
	maxGIFColors = 256
)

// GIFEncoder encodes a single-frame GIF. Quality selects the palette size.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string    { return "gif" }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Available() bool   { return true }

func (e *GIFEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.GIF, imaging.GIFNumColors(GIFColors(quality))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GIFColors maps quality 0-100 linearly onto 2-256 palette entries.
func GIFColors(quality int) int {
	return minGIFColors + clampQuality(quality)*(maxGIFColors-minGIFColors)/100
}
