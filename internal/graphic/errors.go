package graphic

import "errors"

var (
	// ErrDecode means the source bytes are unreadable or in an unsupported format.
	ErrDecode = errors.New("decode image")

	// ErrInvalidDimensions means a width or height was not positive.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrDegenerateSource means an aspect-preserving resize was attempted
	// on a layer with a zero width or height.
	ErrDegenerateSource = errors.New("degenerate source")

	// ErrEncode means the encoder refused the canvas or the output format.
	ErrEncode = errors.New("encode image")

	// ErrNotLoaded means a layer was transformed or rendered before any
	// pixels were loaded into it.
	ErrNotLoaded = errors.New("layer not loaded")

	// ErrUnknownAnchor means an anchor value outside the nine named positions.
	ErrUnknownAnchor = errors.New("unknown anchor")

	// ErrInvalidAlpha means an opacity outside [0,1].
	ErrInvalidAlpha = errors.New("alpha out of range")
)
