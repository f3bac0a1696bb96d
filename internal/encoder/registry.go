package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFormat is used when a permissive lookup misses.
const DefaultFormat = "jpeg"

// priority is the order formats are listed in reports.
var priority = []string{"jpeg", "png", "gif", "webp", "bmp", "tiff"}

var aliases = map[string]string{
	"jpg":  "jpeg",
	"jpe":  "jpeg",
	"tif":  "tiff",
	"jfif": "jpeg",
}

// Registry holds all available encoders keyed by canonical format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&GIFEncoder{},
		&WebPEncoder{},
		NewBMPEncoder(),
		NewTIFFEncoder(),
	} {
		r.Register(enc)
	}
	return r
}

// Register adds enc if it reports itself available, replacing any encoder
// already registered for the same format.
func (r *Registry) Register(enc Encoder) {
	if enc.Available() {
		r.encoders[enc.Format()] = enc
	}
}

// Normalize lower-cases a format name and resolves aliases ("jpg" → "jpeg").
func Normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if canon, ok := aliases[f]; ok {
		return canon
	}
	return f
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[Normalize(format)]
}

// Resolve returns the encoder for format. When strict is false an unknown
// format falls back to DefaultFormat and fellBack reports the substitution.
func (r *Registry) Resolve(format string, strict bool) (enc Encoder, fellBack bool, err error) {
	if enc := r.Get(format); enc != nil {
		return enc, false, nil
	}
	if strict {
		return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if enc := r.encoders[DefaultFormat]; enc != nil {
		return enc, true, nil
	}
	return nil, false, fmt.Errorf("%w: %q (no default encoder)", ErrUnsupportedFormat, format)
}

// FormatFromPath derives a format name from a file extension, or "" when
// the path has none.
func FormatFromPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return Normalize(ext)
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
