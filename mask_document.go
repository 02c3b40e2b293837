package posekit

import (
	"fmt"
	"slices"
)

// Stroke is one continuous pen or eraser gesture. Points holds flattened
// x,y pairs in document (image-native) space.
type Stroke struct {
	Tool     Tool      `json:"tool"`
	PenWidth int       `json:"penWidth"`
	Points   []float64 `json:"points"`
}

// Len returns the number of recorded coordinate pairs.
func (s Stroke) Len() int {
	return len(s.Points) / 2
}

// Point returns the i-th recorded point.
func (s Stroke) Point(i int) Point {
	return Point{X: s.Points[2*i], Y: s.Points[2*i+1]}
}

// Validate checks the stroke invariants: at least one pair, even length,
// positive width.
func (s Stroke) Validate() error {
	if len(s.Points) < 2 {
		return ErrEmptyStroke
	}
	if len(s.Points)%2 != 0 {
		return fmt.Errorf("posekit: stroke has odd coordinate count %d", len(s.Points))
	}
	if s.PenWidth <= 0 {
		return fmt.Errorf("stroke width %d: %w", s.PenWidth, ErrInvalidPenWidth)
	}
	return nil
}

func (s Stroke) clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}

// MaskDocument is the ordered stroke list of one drawing session. Strokes
// render in insertion order so later strokes cover earlier ones.
//
// The open stroke is appended in place; everything handed out through
// Strokes is a deep copy.
type MaskDocument struct {
	strokes []Stroke
	open    bool
	gen     uint64 // bumped whenever strokes are removed
}

// NewMaskDocument creates a document seeded with existing strokes. The
// strokes are copied; invalid ones are dropped.
func NewMaskDocument(strokes []Stroke) *MaskDocument {
	d := &MaskDocument{}
	for _, s := range strokes {
		if s.Validate() != nil {
			continue
		}
		d.strokes = append(d.strokes, s.clone())
	}
	return d
}

// Begin opens a new stroke with one starting point. A stroke still open is
// closed first.
func (d *MaskDocument) Begin(tool Tool, penWidth int, x, y float64) {
	d.End()
	pts := make([]float64, 2, 64)
	pts[0], pts[1] = x, y
	d.strokes = append(d.strokes, Stroke{Tool: tool, PenWidth: penWidth, Points: pts})
	d.open = true
}

// Append adds a point to the open stroke. It reports false when no stroke
// is open.
func (d *MaskDocument) Append(x, y float64) bool {
	if !d.open {
		return false
	}
	last := &d.strokes[len(d.strokes)-1]
	last.Points = append(last.Points, x, y)
	return true
}

// End closes the open stroke. It reports whether a stroke was open.
func (d *MaskDocument) End() bool {
	if !d.open {
		return false
	}
	d.open = false
	return true
}

// Open reports whether a stroke is in progress.
func (d *MaskDocument) Open() bool {
	return d.open
}

// Undo removes exactly the last stroke. On an empty document it is a no-op
// and reports false.
func (d *MaskDocument) Undo() bool {
	if len(d.strokes) == 0 {
		return false
	}
	d.strokes[len(d.strokes)-1] = Stroke{}
	d.strokes = d.strokes[:len(d.strokes)-1]
	d.open = false
	d.gen++
	return true
}

// Reset removes every stroke. On an empty document it is a no-op and
// reports false.
func (d *MaskDocument) Reset() bool {
	if len(d.strokes) == 0 {
		return false
	}
	clear(d.strokes)
	d.strokes = d.strokes[:0]
	d.open = false
	d.gen++
	return true
}

// Generation changes every time Undo or Reset removes strokes. A cache
// built from an older generation may hold strokes the document no longer
// has, even when Len is unchanged.
func (d *MaskDocument) Generation() uint64 {
	return d.gen
}

// Len returns the number of strokes, including an open one.
func (d *MaskDocument) Len() int {
	return len(d.strokes)
}

// Strokes returns a deep copy of all strokes in order.
func (d *MaskDocument) Strokes() []Stroke {
	out := make([]Stroke, len(d.strokes))
	for i, s := range d.strokes {
		out[i] = s.clone()
	}
	return out
}

// Last returns a copy of the most recent stroke.
func (d *MaskDocument) Last() (Stroke, bool) {
	if len(d.strokes) == 0 {
		return Stroke{}, false
	}
	return d.strokes[len(d.strokes)-1].clone(), true
}

// each calls fn for every stroke without copying. fn must not retain or
// mutate the stroke.
func (d *MaskDocument) each(fn func(i int, s *Stroke)) {
	for i := range d.strokes {
		fn(i, &d.strokes[i])
	}
}
