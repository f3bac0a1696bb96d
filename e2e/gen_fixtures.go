//go:build ignore

// gen_fixtures writes layer images and scenes for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
//
// Then: magicgraphic build <output_dir> --out <out> && magicgraphic validate <out>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	must(os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	must(os.MkdirAll(filepath.Join(dir, "cards"), 0o755))

	writeJPEG(filepath.Join(dir, "assets", "base.jpg"), gradient(250, 200))
	writePNG(filepath.Join(dir, "assets", "overlay.png"), solidWithBorder(300, 200, 60))
	writePNG(filepath.Join(dir, "assets", "logo.png"), alphaGradient(100, 100))

	writeScene(filepath.Join(dir, "banner.json"), bannerScene)
	for i, c := range []string{"navy", "darkgreen", "#8b0000"} {
		writeScene(filepath.Join(dir, "cards", fmt.Sprintf("card-%d.json", i+1)),
			fmt.Sprintf(cardScene, c))
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 images and 4 scenes in %s\n", dir)
}

// bannerScene: base widened to 500 (500x400), overlay scaled to 150 wide
// at (100,315), a rotated sub-crop of the overlay on top. Renders 500x415.
const bannerScene = `{
  "name": "banner",
  "output": {"format": "png", "quality": 90},
  "layers": [
    {"name": "base", "file": "assets/base.jpg",
     "ops": [{"op": "auto_resize_width", "width": 500}]},
    {"name": "overlay", "file": "assets/overlay.png",
     "ops": [{"op": "auto_resize_width", "width": 150}],
     "offset": {"x": 100, "y": 315}},
    {"name": "detail", "duplicate": "overlay",
     "ops": [{"op": "rotate", "degrees": 90}, {"op": "crop", "width": 20, "height": 20, "x": 50, "y": 50}],
     "offset": {"x": 220, "y": 350}}
  ]
}
`

const cardScene = `{
  "stage": {"preset": "og_image"},
  "output": {"profile": "web"},
  "layers": [
    {"name": "bg", "color": %q, "width": 1200, "height": 630},
    {"name": "logo", "file": "../assets/logo.png", "anchor": "bottom-right"}
  ]
}
`

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeScene(path, body string) {
	must(os.WriteFile(path, []byte(body), 0o644))
}

func writePNG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	must(err)
	defer f.Close()
	must(png.Encode(f, img))
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	must(err)
	defer f.Close()
	must(jpeg.Encode(f, img, &jpeg.Options{Quality: 85}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
