package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/magicgraphic/internal/graphic"
	"github.com/AnyUserName/magicgraphic/internal/hasher"
	"github.com/AnyUserName/magicgraphic/internal/profile"
	"github.com/AnyUserName/magicgraphic/internal/raster"
	"github.com/AnyUserName/magicgraphic/internal/scene"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.String())
}

const cardScene = `{
	"name": "card",
	"output": {"format": "png", "quality": 90},
	"layers": [
		{"name": "bg", "color": "navy", "width": 64, "height": 48},
		{"name": "photo", "file": "photo.png", "offset": {"x": 8, "y": 8}}
	]
}`

func newInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "photo.png"), 20, 10)
	writeFile(t, filepath.Join(dir, "card.json"), cardScene)
	writeFile(t, filepath.Join(dir, "nested", "wide.json"), `{
		"stage": {"width": 100, "height": 20},
		"output": {"format": "jpg"},
		"layers": [{"name": "fill", "color": "#336699", "width": 100, "height": 20}]
	}`)
	return dir
}

func TestScanScenes(t *testing.T) {
	dir := newInput(t)
	writeFile(t, filepath.Join(dir, ".cache", "skip.json"), "{}")
	writeFile(t, filepath.Join(dir, ".hidden.json"), "{}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a scene")

	sources, err := ScanScenes(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key)
	}
	if got := strings.Join(keys, ","); got != "card,nested/wide" {
		t.Errorf("keys: got %q", got)
	}
}

func TestRun(t *testing.T) {
	in := newInput(t)
	out := t.TempDir()

	p := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("web"), Workers: 2})
	m, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if m.Stats.TotalRenders != 2 || m.Stats.Failed != 0 {
		t.Fatalf("stats: %+v", m.Stats)
	}

	card, ok := m.Renders["card"]
	if !ok {
		t.Fatal("card render missing")
	}
	if card.Width != 64 || card.Height != 48 {
		t.Errorf("card size: got %dx%d, want 64x48", card.Width, card.Height)
	}
	if card.Format != "png" || card.Quality != 90 || card.Layers != 2 {
		t.Errorf("card render: %+v", card)
	}
	want := "card.64.48." + card.Hash[:8] + ".png"
	if card.Path != want {
		t.Errorf("path: got %q, want %q", card.Path, want)
	}

	data, err := os.ReadFile(filepath.Join(out, card.Path))
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if got := hasher.ContentHash(data, 16); got != card.Hash {
		t.Errorf("hash: got %s, manifest says %s", got, card.Hash)
	}
	img, err := raster.DecodeBytes(data)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	// (8,8) is the photo's origin pixel.
	if got := img.NRGBAAt(8, 8); got != (color.NRGBA{R: 0, G: 0, B: 90, A: 255}) {
		t.Errorf("photo origin: got %v", got)
	}

	wide := m.Renders["nested/wide"]
	if wide.Format != "jpeg" || !strings.HasPrefix(wide.Path, "nested/wide.100.20.") ||
		!strings.HasSuffix(wide.Path, ".jpg") {
		t.Errorf("wide render: %+v", wide)
	}
	if wide.Quality != profile.Get("web").Quality {
		t.Errorf("wide quality: got %d, want profile default", wide.Quality)
	}
	if wide.HasAlpha {
		t.Error("opaque render reported alpha")
	}
}

func TestRun_PartialFailure(t *testing.T) {
	in := newInput(t)
	writeFile(t, filepath.Join(in, "broken.json"), `{"layers": [{"name": "x", "file": "missing.png"}]}`)
	writeFile(t, filepath.Join(in, "garbage.json"), `{not json`)

	m, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: profile.Get("web")}).
		Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Stats.TotalRenders != 2 || m.Stats.Failed != 2 {
		t.Errorf("stats: %+v", m.Stats)
	}
	if _, ok := m.Renders["broken"]; ok {
		t.Error("failed scene has a render entry")
	}
}

func TestRun_AllFail(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.json"), `{"layers": []}`)

	_, err := New(Config{InputDir: in, OutputDir: t.TempDir()}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "all 1 scenes failed") {
		t.Errorf("got %v", err)
	}
}

func TestRun_NoScenes(t *testing.T) {
	_, err := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir()}).Run(context.Background())
	if err == nil {
		t.Error("empty input dir should fail")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{InputDir: newInput(t), OutputDir: t.TempDir(), Workers: 1}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRenderScene_FormatPolicy(t *testing.T) {
	sc, err := scene.Parse([]byte(`{
		"output": {"format": "heic"},
		"layers": [{"name": "dot", "color": "red", "width": 4, "height": 4}]
	}`), "")
	if err != nil {
		t.Fatal(err)
	}

	p := New(Config{})
	out, err := p.RenderScene(sc, profile.Get("web"))
	if err != nil {
		t.Fatalf("permissive render: %v", err)
	}
	if out.Format != "jpeg" || out.Ext != "jpg" {
		t.Errorf("fallback: got %s/.%s", out.Format, out.Ext)
	}

	strict := New(Config{Strict: true})
	if _, err := strict.RenderScene(sc, profile.Get("web")); !errors.Is(err, graphic.ErrEncode) {
		t.Errorf("strict: got %v, want ErrEncode", err)
	}
}

func TestRenderScene_KeepsAlpha(t *testing.T) {
	sc, err := scene.Parse([]byte(`{
		"stage": {"width": 10, "height": 10},
		"output": {"format": "png"},
		"layers": [{"name": "dot", "color": "white", "width": 4, "height": 4}]
	}`), "")
	if err != nil {
		t.Fatal(err)
	}
	out, err := New(Config{}).RenderScene(sc, profile.Get("web"))
	if err != nil {
		t.Fatal(err)
	}
	if !out.HasAlpha {
		t.Error("uncovered stage pixels should be transparent")
	}
	if out.Width != 10 || out.Height != 10 {
		t.Errorf("size: got %dx%d", out.Width, out.Height)
	}
}

func TestRenderScene_FallbackLoggedOnce(t *testing.T) {
	sc, err := scene.Parse([]byte(`{
		"name": "promo",
		"output": {"format": "heic"},
		"layers": [{"name": "dot", "color": "red", "width": 4, "height": 4}]
	}`), "")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	out, err := New(Config{Logger: log}).RenderScene(sc, profile.Get("web"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 4 || out.Height != 4 {
		t.Errorf("size: got %dx%d", out.Width, out.Height)
	}

	logged := buf.String()
	if n := strings.Count(logged, "substituting default"); n != 1 {
		t.Errorf("fallback warnings: got %d, want 1\n%s", n, logged)
	}
	if !strings.Contains(logged, "scene=promo") || !strings.Contains(logged, "requested=heic") {
		t.Errorf("warning lacks context: %s", logged)
	}
}
