package manifest

// Manifest is the top-level output of a magicgraphic build.
type Manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	Profile     string            `json:"profile"`
	BasePath    string            `json:"base_path"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Renders     map[string]Render `json:"renders"`
	Stats       Stats             `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers  int      `json:"workers"`
	Encoders []string `json:"encoders,omitempty"` // formats available when the build ran
}

// Render describes one scene and the image it produced.
type Render struct {
	Scene    string `json:"scene"`  // scene file, relative to the input dir
	Layers   int    `json:"layers"` // layer count after building
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Quality  int    `json:"quality"`
	HasAlpha bool   `json:"has_alpha"`
	Size     int64  `json:"size"` // bytes on disk
	Hash     string `json:"hash"` // first 16 hex chars of xxhash64
	Path     string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalRenders int   `json:"total_renders"`
	TotalLayers  int   `json:"total_layers"`
	TotalBytes   int64 `json:"total_bytes"`
	TotalPixels  int64 `json:"total_pixels"`
	Failed       int   `json:"failed,omitempty"` // scenes that did not render
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "magicgraphic.manifest.json"
