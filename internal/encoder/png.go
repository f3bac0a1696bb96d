package encoder

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// PNGEncoder encodes images to PNG. The only knob PNG has is compression
// effort, so quality selects a zlib level.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	level := PNGCompressionLevel(quality)
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PNGLevel maps quality 0-100 linearly onto the 0-9 zlib scale.
func PNGLevel(quality int) int {
	return int(math.Round(float64(clampQuality(quality)) / 100 * 9))
}

// PNGCompressionLevel buckets the 0-9 zlib level into the four levels the
// Go encoder exposes.
func PNGCompressionLevel(quality int) png.CompressionLevel {
	switch l := PNGLevel(quality); {
	case l == 0:
		return png.NoCompression
	case l <= 3:
		return png.BestSpeed
	case l <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
