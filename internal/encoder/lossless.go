package encoder

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// LosslessEncoder covers formats without a quality setting (BMP, TIFF).
type LosslessEncoder struct {
	format imaging.Format
	name   string
	ext    string
}

// NewBMPEncoder returns an encoder for uncompressed BMP.
func NewBMPEncoder() *LosslessEncoder {
	return &LosslessEncoder{format: imaging.BMP, name: "bmp", ext: "bmp"}
}

// NewTIFFEncoder returns an encoder for deflate-compressed TIFF.
func NewTIFFEncoder() *LosslessEncoder {
	return &LosslessEncoder{format: imaging.TIFF, name: "tiff", ext: "tiff"}
}

func (e *LosslessEncoder) Format() string    { return e.name }
func (e *LosslessEncoder) Extension() string { return e.ext }
func (e *LosslessEncoder) Available() bool   { return true }

func (e *LosslessEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, e.format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
