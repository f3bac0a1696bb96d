package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/magicgraphic/internal/manifest"
	"github.com/AnyUserName/magicgraphic/internal/pipeline"
	"github.com/AnyUserName/magicgraphic/internal/profile"
)

const badgeScene = `{
	"stage": {"width": 40, "height": 30},
	"output": {"format": "png"},
	"layers": [
		{"name": "bg", "color": "#202020", "width": 40, "height": 30},
		{"name": "dot", "color": "orange", "width": 6, "height": 6, "anchor": "center"}
	]
}`

func buildFixture(t *testing.T) (*manifest.Manifest, string) {
	t.Helper()
	in, out := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "badge.json"), []byte(badgeScene), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := pipeline.New(pipeline.Config{InputDir: in, OutputDir: out, Profile: profile.Get("web")}).
		Run(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := manifest.WriteJSON(m, filepath.Join(out, manifest.FileName)); err != nil {
		t.Fatal(err)
	}
	return m, out
}

func TestValidateManifest_Clean(t *testing.T) {
	m, out := buildFixture(t)
	if errs := validateManifest(m, out); len(errs) != 0 {
		t.Errorf("fresh build reported errors: %v", errs)
	}
}

func TestValidateManifest_DetectsTampering(t *testing.T) {
	m, out := buildFixture(t)
	r := m.Renders["badge"]
	if err := os.WriteFile(filepath.Join(out, r.Path), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := strings.Join(validateManifest(m, out), "\n")
	for _, want := range []string{"size mismatch", "hash mismatch"} {
		if !strings.Contains(errs, want) {
			t.Errorf("missing %q in:\n%s", want, errs)
		}
	}
}

func TestValidateManifest_MissingFileAndStats(t *testing.T) {
	m, out := buildFixture(t)
	r := m.Renders["badge"]
	if err := os.Remove(filepath.Join(out, r.Path)); err != nil {
		t.Fatal(err)
	}
	m.Stats.TotalRenders = 7

	errs := strings.Join(validateManifest(m, out), "\n")
	for _, want := range []string{"file not found", "stats.total_renders mismatch"} {
		if !strings.Contains(errs, want) {
			t.Errorf("missing %q in:\n%s", want, errs)
		}
	}
}

func TestValidateScene(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(good, []byte(badgeScene), 0o644)
	os.WriteFile(bad, []byte(`{"layers": [{"name": "gone", "file": "nope.png"}]}`), 0o644)

	errs, summary := validateScene(good)
	if len(errs) != 0 {
		t.Fatalf("good scene: %v", errs)
	}
	if summary != "2 layers, renders at 40x30" {
		t.Errorf("summary: got %q", summary)
	}

	if errs, _ := validateScene(bad); len(errs) == 0 {
		t.Error("scene with a missing file passed")
	}
}

func TestRenderOutputPath(t *testing.T) {
	out := &pipeline.Output{Width: 10, Height: 20, Hash: "0123456789abcdef", Ext: "png"}

	defer func() { renderOut, renderHashName = "", false }()

	renderOut, renderHashName = "", false
	if got, want := renderOutputPath("scenes/card.json", out), filepath.Join("scenes", "card.png"); got != want {
		t.Errorf("default: got %q, want %q", got, want)
	}

	renderOut = "dist/hero.webp"
	if got := renderOutputPath("scenes/card.json", out); got != "dist/hero.webp" {
		t.Errorf("explicit: got %q", got)
	}

	renderOut, renderHashName = "dist", true
	if got, want := renderOutputPath("card.json", out), filepath.Join("dist", "card.10.20.01234567.png"); got != want {
		t.Errorf("hash name: got %q, want %q", got, want)
	}
}
