package posekit

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("posekit: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

var defaultFonts = map[float64]*Font{}

// DefaultFont returns Go Regular at the given size. Fonts are cached per
// size.
func DefaultFont(size float64) (*Font, error) {
	if f, ok := defaultFonts[size]; ok {
		return f, nil
	}
	f, err := LoadFont(goregular.TTF, size)
	if err != nil {
		return nil, err
	}
	defaultFonts[size] = f
	return f, nil
}

// Measure returns the width and height of s.
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Label is a single line of text on a padded background, rendered once to
// a cached image and redrawn only when its text changes.
type Label struct {
	font *Font
	fg   Color
	bg   Color
	pad  float64

	text  string
	image *ebiten.Image
	w, h  float64
}

// NewLabel creates an empty label.
func NewLabel(font *Font, fg, bg Color) *Label {
	return &Label{font: font, fg: fg, bg: bg, pad: 4}
}

// Text returns the label's text.
func (l *Label) Text() string {
	return l.text
}

// Size returns the label's padded size.
func (l *Label) Size() (w, h float64) {
	return l.w, l.h
}

// SetText changes the text. The cached image is re-rendered on the next
// Draw only when the text differs.
func (l *Label) SetText(s string) {
	if s == l.text && (l.image != nil || s == "") {
		return
	}
	l.text = s
	tw, th := l.font.Measure(s)
	l.w, l.h = tw+2*l.pad, th+2*l.pad
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
}

func (l *Label) render() {
	if l.image != nil || l.text == "" {
		return
	}
	l.image = ebiten.NewImage(int(math.Ceil(l.w)), int(math.Ceil(l.h)))
	l.image.Fill(l.bg.RGBA())
	op := &text.DrawOptions{}
	op.GeoM.Translate(l.pad, l.pad)
	op.ColorScale = l.fg.colorScale()
	op.LineSpacing = l.font.lh
	text.Draw(l.image, l.text, l.font.face, op)
}

// Draw draws the label with its top-left corner at (x, y).
func (l *Label) Draw(dst *ebiten.Image, x, y, alpha float64) {
	if l.text == "" || alpha <= 0 {
		return
	}
	l.render()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(math.Round(x), math.Round(y))
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(l.image, &op)
}

// Dispose frees the cached image.
func (l *Label) Dispose() {
	if l.image != nil {
		l.image.Deallocate()
		l.image = nil
	}
}
