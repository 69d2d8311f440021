package transcode

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		compress bool
	}{
		{"zero", 0, false},
		{"small", 1 << 20, false},
		{"exactly at threshold", Threshold, false},
		{"one byte over threshold", Threshold + 1, true},
		{"well over threshold", 12 << 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.size)
			if d.Compress != tt.compress {
				t.Fatalf("Decide(%d).Compress = %v, want %v", tt.size, d.Compress, tt.compress)
			}

			if d.Compress {
				if d.Quality != Quality {
					t.Errorf("quality = %d, want %d", d.Quality, Quality)
				}
				if d.Format != "jpeg" {
					t.Errorf("format = %q, want jpeg", d.Format)
				}
			}
		})
	}
}

func testImage(t *testing.T, w, h int) image.Image {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}

	return img
}

func TestRecode(t *testing.T) {
	t.Run("png input becomes jpeg", func(t *testing.T) {
		var src bytes.Buffer
		if err := png.Encode(&src, testImage(t, 128, 96)); err != nil {
			t.Fatalf("encode source png: %v", err)
		}

		out, n, err := Recode(&src, Decide(Threshold+1))
		if err != nil {
			t.Fatalf("Recode: %v", err)
		}
		if n <= 0 {
			t.Fatalf("reported size = %d, want > 0", n)
		}

		img, format, err := image.Decode(out)
		if err != nil {
			t.Fatalf("decode output: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("output format = %q, want jpeg", format)
		}
		if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 96 {
			t.Errorf("output bounds = %v, want 128x96", img.Bounds())
		}
	})

	t.Run("jpeg input is re-encoded", func(t *testing.T) {
		var src bytes.Buffer
		if err := jpeg.Encode(&src, testImage(t, 64, 64), &jpeg.Options{Quality: 95}); err != nil {
			t.Fatalf("encode source jpeg: %v", err)
		}

		out, _, err := Recode(&src, Decision{Compress: true, Quality: Quality, Format: "jpeg"})
		if err != nil {
			t.Fatalf("Recode: %v", err)
		}

		if _, format, err := image.Decode(out); err != nil || format != "jpeg" {
			t.Fatalf("decode output: format=%q err=%v", format, err)
		}
	})

	t.Run("passthrough decision is rejected", func(t *testing.T) {
		if _, _, err := Recode(strings.NewReader("x"), Decision{}); err == nil {
			t.Fatal("expected error for passthrough decision")
		}
	})

	t.Run("garbage input fails to decode", func(t *testing.T) {
		if _, _, err := Recode(strings.NewReader("not an image"), Decide(Threshold+1)); err == nil {
			t.Fatal("expected decode error")
		}
	})
}
