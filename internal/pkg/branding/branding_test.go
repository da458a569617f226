package branding

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessLogoDownscalesLargeImages(t *testing.T) {
	out, err := ProcessLogo(testPNG(t, 1024, 768))
	if err != nil {
		t.Fatalf("ProcessLogo failed: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if img.Bounds().Dx() > MaxLogoSize || img.Bounds().Dy() > MaxLogoSize {
		t.Fatalf("logo not downscaled: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessLogoKeepsSmallImages(t *testing.T) {
	out, err := ProcessLogo(testPNG(t, 100, 50))
	if err != nil {
		t.Fatalf("ProcessLogo failed: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Fatalf("small logo was resized: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessLogoRejectsGarbage(t *testing.T) {
	if _, err := ProcessLogo([]byte("not an image")); err == nil {
		t.Fatal("expected decode error for garbage input")
	}
}

func TestLogoExtension(t *testing.T) {
	tests := []struct {
		contentType string
		ext         string
		ok          bool
	}{
		{contentType: "image/png", ext: ".png", ok: true},
		{contentType: "image/jpeg", ext: ".jpg", ok: true},
		{contentType: "IMAGE/PNG", ext: ".png", ok: true},
		{contentType: "application/pdf", ok: false},
		{contentType: "", ok: false},
	}

	for _, tt := range tests {
		ext, ok := LogoExtension(tt.contentType)
		if ok != tt.ok || ext != tt.ext {
			t.Fatalf("LogoExtension(%q) = (%q, %v), want (%q, %v)", tt.contentType, ext, ok, tt.ext, tt.ok)
		}
	}
}
