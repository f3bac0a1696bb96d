package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/magicgraphic/internal/encoder"
	"github.com/AnyUserName/magicgraphic/internal/pipeline"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/AnyUserName/magicgraphic/internal/scene"
	"github.com/spf13/cobra"
)

var (
	renderOut         string
	renderHashName    bool
	renderFormat      string
	renderQuality     int
	renderProfile     string
	renderStrict      bool
	renderAnchorBasis string
)

var renderCmd = &cobra.Command{
	Use:   "render <scene.json>",
	Short: "Render a single scene to an image file or stdout",
	Long: `Loads a scene, composites its layers and encodes the result.

The output format comes from --format, then the scene's output block,
then the extension of --out, then the profile. Unknown formats fall back
to JPEG with a warning unless --strict is set.

Use --out - to write the encoded bytes to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", `output file, "-" for stdout (default <scene>.<ext>)`)
	renderCmd.Flags().BoolVar(&renderHashName, "hash-name", false, "name the output <scene>.<w>.<h>.<hash>.<ext> inside --out")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format (jpeg, png, gif, webp, bmp, tiff)")
	renderCmd.Flags().IntVarP(&renderQuality, "quality", "q", 0, "quality 1-100 (0 = scene or profile default)")
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", profile.DefaultName, profileUsage())
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "fail on unknown output formats")
	renderCmd.Flags().StringVar(&renderAnchorBasis, "anchor-basis", "", `override the scene's anchor basis ("extent" or "configured")`)
	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, args []string) error {
	sc, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	if renderAnchorBasis != "" {
		sc.Stage.AnchorBasis = renderAnchorBasis
	}
	if problems := scene.Validate(sc); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  • %s\n", p)
		}
		return fmt.Errorf("scene has %d problem(s)", len(problems))
	}

	// Flags beat the scene; an --out extension fills in a missing format.
	if renderFormat != "" {
		sc.Output.Format = renderFormat
	} else if sc.Output.Format == "" && renderOut != "-" && !renderHashName {
		sc.Output.Format = encoder.FormatFromPath(renderOut)
	}
	if renderQuality > 0 {
		sc.Output.Quality = renderQuality
	}

	prof := resolveProfile(renderProfile)
	logVerbose("scene:   %s (%d layers)", args[0], len(sc.Layers))
	logVerbose("profile: %s (format=%s, quality=%d)", prof.Name, prof.Format, prof.Quality)

	p := pipeline.New(pipeline.Config{Profile: prof, Strict: renderStrict})
	out, err := p.RenderScene(sc, prof)
	if err != nil {
		return fmt.Errorf("render %s: %w", args[0], err)
	}

	if renderOut == "-" {
		_, err := os.Stdout.Write(out.Data)
		return err
	}

	path := renderOutputPath(args[0], out)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("  ✓ %s  %dx%d %s q=%d  %s\n",
		path, out.Width, out.Height, out.Format, out.Quality, formatBytes(int64(len(out.Data))))
	return nil
}

func renderOutputPath(scenePath string, out *pipeline.Output) string {
	base := trimExt(filepath.Base(scenePath))
	switch {
	case renderHashName:
		name := fmt.Sprintf("%s.%d.%d.%s.%s", base, out.Width, out.Height, out.Hash[:8], out.Ext)
		return filepath.Join(renderOut, name)
	case renderOut != "":
		return renderOut
	default:
		return filepath.Join(filepath.Dir(scenePath), base+"."+out.Ext)
	}
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
