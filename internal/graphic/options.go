package graphic

import (
	"log/slog"

	"github.com/AnyUserName/magicgraphic/internal/encoder"
	"github.com/AnyUserName/magicgraphic/internal/raster"
)

// AnchorBasis selects which stage size anchored layers are resolved against.
type AnchorBasis int

const (
	// AnchorExtent resolves anchors against the size the stage will end up
	// with: the extent of the non-anchored layers, grown to fit the largest
	// anchored layer and floored at any configured width or height.
	AnchorExtent AnchorBasis = iota

	// AnchorConfigured resolves anchors against the configured width and
	// height only; an unset axis counts as zero, so anchoring on an
	// autosized axis pulls layers towards negative offsets.
	AnchorConfigured
)

func (b AnchorBasis) String() string {
	if b == AnchorConfigured {
		return "configured"
	}
	return "extent"
}

// FormatPolicy decides what happens when the requested output format has
// no registered encoder.
type FormatPolicy int

const (
	// Permissive substitutes encoder.DefaultFormat and logs a warning.
	Permissive FormatPolicy = iota

	// Strict fails the render with ErrEncode.
	Strict
)

// Option configures a Stage.
type Option func(*Stage)

// WithSize fixes both stage dimensions and disables autosizing.
func WithSize(w, h int) Option {
	return func(s *Stage) {
		s.width, s.hasWidth = w, true
		s.height, s.hasHeight = h, true
	}
}

// WithWidth sets the stage width. Unless WithHeight is also given the stage
// still autosizes, and w only acts as a minimum.
func WithWidth(w int) Option {
	return func(s *Stage) { s.width, s.hasWidth = w, true }
}

// WithHeight sets the stage height; see WithWidth.
func WithHeight(h int) Option {
	return func(s *Stage) { s.height, s.hasHeight = h, true }
}

func WithAnchorBasis(b AnchorBasis) Option {
	return func(s *Stage) { s.anchorBasis = b }
}

func WithFormatPolicy(p FormatPolicy) Option {
	return func(s *Stage) { s.policy = p }
}

// WithRegistry replaces the default encoder registry.
func WithRegistry(r *encoder.Registry) Option {
	return func(s *Stage) { s.registry = r }
}

// WithFilter sets the resampling kernel used by layer resizes.
func WithFilter(f raster.Filter) Option {
	return func(s *Stage) { s.filter = f }
}

// WithLogger overrides the package logger for one stage.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stage) { s.logger = l }
}
