package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "magicgraphic",
	Short: "Layer compositor for generated graphics",
	Long: `magicgraphic stacks image and colour layers on a stage and
flattens them into a single JPEG, PNG, GIF, WebP, BMP or TIFF.

Compositions are described as JSON scenes. Render one scene with
"render", or a whole directory of them with "build", which writes
content-addressed outputs and a manifest.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"magicgraphic %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setupLogging routes compositor logs to stderr. Warnings (such as an
// output format substitution) are always shown; debug only with --verbose.
func setupLogging(_ *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	graphic.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// resolveProfile returns the named output profile. Unknown names fall
// back to the default profile with a warning.
func resolveProfile(name string) profile.Profile {
	if _, ok := profile.Lookup(name); !ok {
		graphic.Logger().Warn("unknown profile, using default", "profile", name, "default", profile.DefaultName)
	}
	return profile.Get(name)
}

// profileUsage is the help text shared by every --profile flag.
func profileUsage() string {
	return "output profile (" + strings.Join(profile.Names(), ", ") + ")"
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[magicgraphic] "+format+"\n", args...)
	}
}
