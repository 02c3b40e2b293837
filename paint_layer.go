package posekit

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// PaintLayer is the persistent offscreen canvas of a Mask Painter, at the
// document's native resolution. Closed strokes are baked into it once;
// only undo and reset trigger a full rebuild.
type PaintLayer struct {
	image *ebiten.Image
	w, h  int

	base   *ebiten.Image // existing mask, already at layer size
	bake   bakeState
	pen    Color
	eraser Color
}

// NewPaintLayer creates a layer of the given size filled with the eraser
// (background) color.
func NewPaintLayer(w, h int, pen, eraser Color) *PaintLayer {
	l := &PaintLayer{
		image:  ebiten.NewImage(w, h),
		w:      w,
		h:      h,
		pen:    pen,
		eraser: eraser,
	}
	l.Clear()
	return l
}

// Image returns the underlying *ebiten.Image.
func (l *PaintLayer) Image() *ebiten.Image {
	return l.image
}

// Width returns the layer width in pixels.
func (l *PaintLayer) Width() int {
	return l.w
}

// Height returns the layer height in pixels.
func (l *PaintLayer) Height() int {
	return l.h
}

// SetBase sets the existing mask drawn beneath all strokes. It is scaled
// to the layer size. Forces a rebuild on the next Sync.
func (l *PaintLayer) SetBase(img image.Image) {
	if l.base != nil {
		l.base.Deallocate()
		l.base = nil
	}
	if img != nil {
		b := img.Bounds()
		if b.Dx() != l.w || b.Dy() != l.h {
			img = scaleImage(img, l.w, l.h)
		}
		l.base = ebiten.NewImageFromImage(img)
	}
	l.Clear()
}

// Clear resets the layer to the background plus base mask and forgets
// every baked stroke.
func (l *PaintLayer) Clear() {
	l.image.Fill(l.eraser.RGBA())
	if l.base != nil {
		l.image.DrawImage(l.base, nil)
	}
	l.bake.baked = 0
}

// Sync brings the layer up to date with the document's closed strokes.
// Strokes already baked are not redrawn unless the document lost strokes
// since the last Sync.
func (l *PaintLayer) Sync(doc *MaskDocument) {
	rebuild, from, to := l.bake.advance(doc)
	if rebuild {
		l.Clear()
	}
	doc.each(func(i int, s *Stroke) {
		if i < from || i >= to {
			return
		}
		l.DrawStroke(s, identityTransform, 1)
	})
	l.bake.baked = to
}

// bakeState tracks which document strokes a layer already holds.
type bakeState struct {
	baked int    // number of document strokes drawn
	gen   uint64 // document generation they were drawn from
}

// advance reports whether the layer must be cleared and which closed
// strokes [from, to) still need drawing.
func (b *bakeState) advance(doc *MaskDocument) (rebuild bool, from, to int) {
	to = doc.Len()
	if doc.Open() {
		to--
	}
	if gen := doc.Generation(); gen != b.gen || to < b.baked {
		b.gen = gen
		b.baked = 0
		rebuild = true
	}
	return rebuild, b.baked, to
}

// DrawStroke draws one stroke onto the layer through the affine matrix m.
// Width is multiplied by scale.
func (l *PaintLayer) DrawStroke(s *Stroke, m [6]float64, scale float64) {
	drawStroke(l.image, s, m, scale, l.strokeColor(s.Tool))
}

func (l *PaintLayer) strokeColor(t Tool) Color {
	if t == ToolEraser {
		return l.eraser
	}
	return l.pen
}

// Dispose frees the layer's GPU images.
func (l *PaintLayer) Dispose() {
	if l.base != nil {
		l.base.Deallocate()
		l.base = nil
	}
	l.image.Deallocate()
}

// drawStroke renders s onto dst in color c. Points are mapped through m.
func drawStroke(dst *ebiten.Image, s *Stroke, m [6]float64, scale float64, c Color) {
	n := s.Len()
	if n == 0 {
		return
	}
	pts := make([]Point, n)
	for i := range pts {
		x, y := transformPoint(m, s.Points[2*i], s.Points[2*i+1])
		pts[i] = Point{X: x, Y: y}
	}
	strokePolyline(dst, pts, float64(s.PenWidth)*scale, c)
}
