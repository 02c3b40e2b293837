package posekit

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func checkerImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x/2+y/2)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"mask.png", FormatPNG},
		{"photo.JPG", FormatJPEG},
		{"photo.jpeg", FormatJPEG},
		{"mask.webp", FormatWebP},
		{"noext", FormatPNG},
		{"dir.webp/file.bmp", FormatPNG},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestEncodeDecodeLossless(t *testing.T) {
	src := checkerImage(16, 8)
	for _, f := range []Format{FormatPNG, FormatWebP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeImage(&buf, src, f); err != nil {
				t.Fatal(err)
			}
			img, err := DecodeImage(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			for y := range 8 {
				for x := range 16 {
					r, _, _, _ := img.At(x, y).RGBA()
					wr, _, _, _ := src.At(x, y).RGBA()
					if r>>8 != wr>>8 {
						t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, r>>8, wr>>8)
					}
				}
			}
		})
	}
}

func TestSaveLoadImage(t *testing.T) {
	dir := t.TempDir()
	src := checkerImage(10, 6)
	for _, name := range []string{"a.png", "b.jpg", "c.webp"} {
		path := filepath.Join(dir, "out", name)
		if err := SaveImage(path, src); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		img, err := LoadImage(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 6 {
			t.Errorf("%s: bounds = %v", name, img.Bounds())
		}
	}
}

func TestDecodeImageUnknown(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error")
	}
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
