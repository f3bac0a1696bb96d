package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/AnyUserName/magicgraphic/internal/pipeline"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir  string
	buildProfile string
	buildWorkers int
	buildFormat  string
	buildQuality int
	buildStrict  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <scene_dir>",
	Short: "Render every scene in a directory and write a manifest",
	Long: `Scans a directory for *.json scenes, renders each one and writes
the outputs plus a manifest file.

Output filenames are content-addressed: <key>.<w>.<h>.<hash>.<ext>

--format and --quality set the fallback used by scenes that do not name
their own output settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./magicgraphic_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.DefaultName, profileUsage())
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "fallback output format (overrides profile)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "fallback quality 1-100 (0 = profile default)")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail scenes with unknown output formats")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := resolveProfile(buildProfile).Override(buildFormat, buildQuality)

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (format=%s, quality=%d)", prof.Name, prof.Format, prof.Quality)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Strict:    buildStrict,
	})

	m, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            magicgraphic build complete           ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Renders:     %d\n", stats.TotalRenders)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d scenes (see log)\n", stats.Failed)
	}
	fmt.Printf("  Layers:      %d\n", stats.TotalLayers)
	fmt.Printf("  Pixels:      %s\n", formatPixels(stats.TotalPixels))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest renders.
	if len(m.Renders) > 0 {
		keys := sortedBySize(m)
		n := min(len(keys), 10)
		fmt.Printf("  Top %d heaviest:\n", n)
		for _, key := range keys[:n] {
			r := m.Renders[key]
			fmt.Printf("    %-40s %5dx%-5d %-4s %8s\n",
				truncKey(key, 40), r.Width, r.Height, r.Format, formatBytes(r.Size))
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

// sortedBySize returns render keys, largest output first.
func sortedBySize(m *manifest.Manifest) []string {
	keys := make([]string, 0, len(m.Renders))
	for k := range m.Renders {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m.Renders[keys[i]], m.Renders[keys[j]]
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		return keys[i] < keys[j]
	})
	return keys
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, r := range m.Renders {
		set[r.Format] = true
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func formatPixels(p int64) string {
	if p >= 1_000_000 {
		return fmt.Sprintf("%.1f MP", float64(p)/1e6)
	}
	return fmt.Sprintf("%d px", p)
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
