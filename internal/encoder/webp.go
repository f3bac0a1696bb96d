package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

// WebPEncoder encodes images to WebP by shelling out to cwebp, which keeps
// the build free of CGO. Decoding WebP sources needs no external tool.
// Install: brew install webp / apt install webp
type WebPEncoder struct {
	once sync.Once
	path string
}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Available() bool {
	e.once.Do(func() {
		if p, err := exec.LookPath("cwebp"); err == nil {
			e.path = p
		}
	})
	return e.path != ""
}

func (e *WebPEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("cwebp not found in PATH; install with: brew install webp")
	}

	dir, err := os.MkdirTemp("", "magicgraphic-webp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	srcPath := filepath.Join(dir, "in.png")
	dstPath := filepath.Join(dir, "out.webp")
	if err := writeTempPNG(srcPath, img); err != nil {
		return nil, err
	}

	cmd := exec.Command(e.path,
		"-q", strconv.Itoa(clampQuality(quality)),
		"-alpha_q", "100",
		"-m", "6",
		"-quiet",
		srcPath,
		"-o", dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("cwebp: %w: %s", err, string(out))
	}
	return os.ReadFile(dstPath)
}

// writeTempPNG stores img losslessly so cwebp sees the exact canvas.
func writeTempPNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode temp png: %w", err)
	}
	return f.Close()
}
