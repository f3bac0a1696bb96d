package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/magicgraphic/internal/hasher"
	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/AnyUserName/magicgraphic/internal/scene"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_or_scene>",
	Short: "Validate a manifest (and its files) or a scene",
	Long: `Given a manifest, or a build output directory, checks the schema,
the stats and that every referenced file exists with the recorded size
and hash.

Given a scene, checks it statically and then builds it, which catches
missing or undecodable layer files.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var probe struct {
		Renders json.RawMessage `json:"renders"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	var (
		kind    string
		summary string
		errs    []string
	)
	if probe.Renders != nil {
		kind = "Manifest"
		m, err := manifest.ReadJSON(path)
		if err != nil {
			return err
		}
		errs = validateManifest(m, filepath.Dir(path))
		summary = fmt.Sprintf("%d renders, all files present", len(m.Renders))
	} else {
		kind = "Scene"
		errs, summary = validateScene(path)
	}

	if len(errs) == 0 {
		fmt.Printf("  ✓ %s is valid\n", kind)
		fmt.Printf("  ✓ %s\n", summary)
		return nil
	}

	fmt.Printf("  ✗ %s has %d error(s):\n", kind, len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateScene(path string) (errs []string, summary string) {
	sc, err := scene.Load(path)
	if err != nil {
		return []string{err.Error()}, ""
	}
	if errs := scene.Validate(sc); len(errs) > 0 {
		return errs, ""
	}
	stage, err := scene.Build(sc)
	if err != nil {
		return []string{err.Error()}, ""
	}
	canvas, err := stage.Flatten()
	if err != nil {
		return []string{err.Error()}, ""
	}
	b := canvas.Bounds()
	return nil, fmt.Sprintf("%d layers, renders at %dx%d", stage.Len(), b.Dx(), b.Dy())
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Renders))
	for k := range m.Renders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	var layers int
	for _, key := range keys {
		r := m.Renders[key]
		layers += r.Layers

		if r.Format == "" {
			errs = append(errs, fmt.Sprintf("render %q: empty format", key))
		}
		if r.Width <= 0 || r.Height <= 0 {
			errs = append(errs, fmt.Sprintf("render %q: invalid dimensions %dx%d", key, r.Width, r.Height))
		}
		if len(r.Hash) != 16 {
			errs = append(errs, fmt.Sprintf("render %q: malformed hash %q", key, r.Hash))
		}
		if r.Path == "" {
			errs = append(errs, fmt.Sprintf("render %q: missing path", key))
			continue
		}
		if other, dup := seenPaths[r.Path]; dup {
			errs = append(errs, fmt.Sprintf("render %q: path %q already used by %q", key, r.Path, other))
		}
		seenPaths[r.Path] = key

		if len(r.Hash) >= 8 && !strings.Contains(filepath.Base(r.Path), "."+r.Hash[:8]+".") {
			errs = append(errs, fmt.Sprintf("render %q: file name does not carry hash %s", key, r.Hash[:8]))
		}

		errs = append(errs, checkRenderFile(key, r, filepath.Join(baseDir, r.Path))...)
	}

	// Verify stats consistency.
	if m.Stats.TotalRenders != len(m.Renders) {
		errs = append(errs, fmt.Sprintf("stats.total_renders mismatch: %d != %d", m.Stats.TotalRenders, len(m.Renders)))
	}
	if m.Stats.TotalLayers != layers {
		errs = append(errs, fmt.Sprintf("stats.total_layers mismatch: %d != %d", m.Stats.TotalLayers, layers))
	}

	return errs
}

// checkRenderFile compares a render's file on disk with its manifest size
// and hash, streaming the file through the hasher.
func checkRenderFile(key string, r manifest.Render, path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return []string{fmt.Sprintf("render %q: file not found: %s", key, r.Path)}
	}
	defer f.Close()

	var errs []string
	if info, err := f.Stat(); err == nil && info.Size() != r.Size {
		errs = append(errs, fmt.Sprintf("render %q: size mismatch: manifest=%d, disk=%d",
			key, r.Size, info.Size()))
	}
	got, err := hasher.ContentHashReader(f, 16)
	if err != nil {
		return append(errs, fmt.Sprintf("render %q: read %s: %v", key, r.Path, err))
	}
	if r.Hash != "" && got != r.Hash {
		errs = append(errs, fmt.Sprintf("render %q: hash mismatch: manifest=%s, disk=%s", key, r.Hash, got))
	}
	return errs
}
