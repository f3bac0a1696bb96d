package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a build output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		if len(m.BuildInfo.Encoders) > 0 {
			fmt.Printf("  Encoders:         %v\n", m.BuildInfo.Encoders)
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total renders:    %d\n", s.TotalRenders)
	if s.Failed > 0 {
		fmt.Printf("  Failed scenes:    %d\n", s.Failed)
	}
	fmt.Printf("  Total layers:     %d\n", s.TotalLayers)
	fmt.Printf("  Total pixels:     %s\n", formatPixels(s.TotalPixels))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalBytes))
	if s.TotalPixels > 0 {
		fmt.Printf("  Bytes per pixel:  %.3f\n", float64(s.TotalBytes)/float64(s.TotalPixels))
	}
	fmt.Println()

	// Per-format breakdown.
	type formatStat struct {
		count int
		bytes int64
	}
	byFormat := map[string]formatStat{}
	for _, r := range m.Renders {
		fs := byFormat[r.Format]
		fs.count++
		fs.bytes += r.Size
		byFormat[r.Format] = fs
	}
	fmt.Println("  Format breakdown:")
	for _, f := range detectOutputFormats(m) {
		fs := byFormat[f]
		fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
	}
	fmt.Println()

	// Per-size breakdown.
	sizes := map[string]int{}
	for _, r := range m.Renders {
		sizes[fmt.Sprintf("%dx%d", r.Width, r.Height)]++
	}
	var dims []string
	for d := range sizes {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	fmt.Println("  Size breakdown:")
	for _, d := range dims {
		fmt.Printf("    %11s  %4d renders\n", d, sizes[d])
	}
	fmt.Println()

	alpha := 0
	for _, r := range m.Renders {
		if r.HasAlpha {
			alpha++
		}
	}
	fmt.Printf("  With transparency: %d / %d renders\n", alpha, len(m.Renders))

	// Warnings.
	var warnings []string
	for key, r := range m.Renders {
		if r.HasAlpha && (r.Format == "jpeg" || r.Format == "bmp") {
			warnings = append(warnings, fmt.Sprintf("render %q has transparency but %s drops it", key, r.Format))
		}
		if r.Layers == 0 {
			warnings = append(warnings, fmt.Sprintf("render %q has no layers", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
