package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 32), B: 90, A: 255})
		}
	}
	return img
}

func TestRegistry_BuiltinsAvailable(t *testing.T) {
	r := NewRegistry()
	for _, f := range []string{"jpeg", "png", "gif", "bmp", "tiff"} {
		if r.Get(f) == nil {
			t.Errorf("encoder %q missing", f)
		}
	}
}

func TestRegistry_Aliases(t *testing.T) {
	r := NewRegistry()
	if enc := r.Get("JPG"); enc == nil || enc.Format() != "jpeg" {
		t.Errorf("JPG alias: got %v", enc)
	}
	if enc := r.Get(".tif"); enc == nil || enc.Format() != "tiff" {
		t.Errorf(".tif alias: got %v", enc)
	}
}

func TestRegistry_ResolveStrict(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Resolve("xcf", true)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestRegistry_ResolvePermissive(t *testing.T) {
	r := NewRegistry()
	enc, fellBack, err := r.Resolve("xcf", false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !fellBack {
		t.Error("fallback not reported")
	}
	if enc.Format() != DefaultFormat {
		t.Errorf("fallback format: got %q, want %q", enc.Format(), DefaultFormat)
	}

	enc, fellBack, err = r.Resolve("png", false)
	if err != nil || fellBack || enc.Format() != "png" {
		t.Errorf("png: enc=%v fellBack=%v err=%v", enc, fellBack, err)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"out/banner.PNG": "png",
		"a.jpg":          "jpeg",
		"b.tif":          "tiff",
		"noext":          "",
	}
	for in, want := range cases {
		if got := FormatFromPath(in); got != want {
			t.Errorf("FormatFromPath(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestPNGLevel(t *testing.T) {
	cases := map[int]int{0: 0, 100: 9, 50: 5, 10: 1, -5: 0, 250: 9}
	for q, want := range cases {
		if got := PNGLevel(q); got != want {
			t.Errorf("PNGLevel(%d): got %d, want %d", q, got, want)
		}
	}
	if PNGCompressionLevel(0) != png.NoCompression {
		t.Error("quality 0 should disable compression")
	}
	if PNGCompressionLevel(100) != png.BestCompression {
		t.Error("quality 100 should compress hardest")
	}
}

func TestGIFColors(t *testing.T) {
	if got := GIFColors(0); got != 2 {
		t.Errorf("GIFColors(0): got %d", got)
	}
	if got := GIFColors(100); got != 256 {
		t.Errorf("GIFColors(100): got %d", got)
	}
	if got := GIFColors(50); got != 129 {
		t.Errorf("GIFColors(50): got %d", got)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	r := NewRegistry()
	img := sample()

	decoders := map[string]func([]byte) (image.Image, error){
		"png":  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		"jpeg": func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
		"gif":  func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) },
	}
	for format, decode := range decoders {
		data, err := r.Get(format).Encode(img, 80)
		if err != nil {
			t.Fatalf("%s encode: %v", format, err)
		}
		out, err := decode(data)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		if out.Bounds().Dx() != 16 || out.Bounds().Dy() != 8 {
			t.Errorf("%s bounds: got %v", format, out.Bounds())
		}
	}
}

func TestEncode_PNGLossless(t *testing.T) {
	img := sample()
	data, err := (&PNGEncoder{}).Encode(img, 0)
	if err != nil {
		t.Fatal(err)
	}
	out, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := color.NRGBAModel.Convert(out.At(3, 5)), img.At(3, 5); got != want {
		t.Errorf("pixel: got %v, want %v", got, want)
	}
}
