package encoder

import (
	"errors"
	"image"
)

// ErrUnsupportedFormat is returned when no encoder is registered for a format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the canonical format name (e.g. "jpeg", "png", "gif").
	Format() string

	// Encode converts the image to bytes. Quality is on a 0-100 scale and
	// is rescaled to whatever the format natively understands.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// clampQuality pins q into [0,100].
func clampQuality(q int) int {
	return min(max(q, 0), 100)
}
