// Package scene describes a composition as JSON and builds it into a stage.
package scene

// Scene is the top-level structure of a scene file.
type Scene struct {
	Name   string  `json:"name"`
	Stage  Stage   `json:"stage"`
	Crop   *Rect   `json:"crop,omitempty"`
	Output Output  `json:"output"`
	Layers []Layer `json:"layers"`

	// BaseDir is the directory relative file paths resolve against.
	BaseDir string `json:"-"`
}

// Stage sizes the canvas. Zero width or height means autosize that axis.
// A named preset overrides explicit Width/Height.
type Stage struct {
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Preset      string `json:"preset,omitempty"`
	AnchorBasis string `json:"anchor_basis,omitempty"` // "extent" (default) or "configured"
	Filter      string `json:"filter,omitempty"`       // resampling kernel, default "lanczos"
}

// Output selects how the flattened canvas is encoded.
type Output struct {
	Profile string `json:"profile,omitempty"`
	Format  string `json:"format,omitempty"`
	Quality int    `json:"quality,omitempty"` // 0 = profile default
	Strict  bool   `json:"strict,omitempty"`  // unknown format fails instead of falling back
}

// Layer is one entry in paint order. Exactly one of File, Color or
// Duplicate supplies its pixels.
type Layer struct {
	Name string `json:"name"`

	File      string `json:"file,omitempty"`
	Color     string `json:"color,omitempty"`
	Width     int    `json:"width,omitempty"`  // colour fill size
	Height    int    `json:"height,omitempty"` // colour fill size
	Duplicate string `json:"duplicate,omitempty"`

	Ops    []Op     `json:"ops,omitempty"`
	Offset *Point   `json:"offset,omitempty"`
	Anchor string   `json:"anchor,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty"`
}

// Op is one transform applied to a layer, in order.
type Op struct {
	Op      string  `json:"op"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	X       int     `json:"x,omitempty"`
	Y       int     `json:"y,omitempty"`
	Degrees float64 `json:"degrees,omitempty"`
}

// Rect is a width×height region at (X, Y).
type Rect struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Point is an integer offset.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Layer operations.
const (
	OpResize           = "resize"
	OpAutoResizeWidth  = "auto_resize_width"
	OpAutoResizeHeight = "auto_resize_height"
	OpRotate           = "rotate"
	OpCrop             = "crop"
)
