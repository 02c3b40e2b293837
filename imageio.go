package posekit

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Format selects an encoding for exported images.
type Format uint8

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatWebP
)

// String returns the format's file extension without the dot.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatWebP:
		return "webp"
	default:
		return "png"
	}
}

// FormatFromPath picks a format from a file extension. Unknown extensions
// map to PNG, the lossless default for masks.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".webp":
		return FormatWebP
	default:
		return FormatPNG
	}
}

// jpegQuality is used for JPEG exports of backgrounds; masks should not be
// exported lossy.
const jpegQuality = 90

// LoadImage reads an image file. PNG, JPEG, GIF, BMP and TIFF are decoded
// with EXIF orientation applied; WebP is decoded explicitly.
func LoadImage(path string) (image.Image, error) {
	if FormatFromPath(path) != FormatWebP {
		if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
			return img, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	img, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes an image from r in any supported format.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (image.Image, error) {
	if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// EncodeImage writes img to w in the given format. WebP is written
// lossless.
func EncodeImage(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// SaveImage writes img to path, choosing the format from the extension.
func SaveImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	if err := EncodeImage(f, img, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
