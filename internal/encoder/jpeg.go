package encoder

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// JPEGEncoder encodes images to baseline JPEG.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

// Encode passes quality straight through; JPEG already uses a 1-100 scale
// so 0 becomes 1.
func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	q := max(clampQuality(quality), 1)

	var buf bytes.Buffer
	buf.Grow(128 * 1024)
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
