package posekit

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// smoothPath builds a quadratic-smoothed path through pts: each interior
// point is a control point and the curve passes through the midpoints
// between consecutive points. Two points give a straight segment.
func smoothPath(pts []Point) *vector.Path {
	var p vector.Path
	if len(pts) == 0 {
		return &p
	}
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	if len(pts) == 1 {
		return &p
	}
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		p.QuadTo(float32(pts[i].X), float32(pts[i].Y), float32(mx), float32(my))
	}
	last := pts[len(pts)-1]
	p.LineTo(float32(last.X), float32(last.Y))
	return &p
}

// strokePath strokes a path with round caps and joins in a solid color.
// The stroke outline is filled with the non-zero rule, so overlapping
// pieces of one stroke cover each pixel once.
func strokePath(dst *ebiten.Image, path *vector.Path, width float64, c Color) {
	if width <= 0 {
		return
	}
	dop := &vector.DrawPathOptions{AntiAlias: true, ColorScale: c.colorScale()}
	vector.StrokePath(dst, path, roundStroke(width), dop)
}

func roundStroke(width float64) *vector.StrokeOptions {
	return &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
}

// strokePolyline strokes a smoothed polyline through pts. A polyline that
// never leaves its first point is drawn as a round dot.
func strokePolyline(dst *ebiten.Image, pts []Point, width float64, c Color) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	if isDot(pts) {
		fillCircle(dst, pts[0], width/2, c)
		return
	}
	strokePath(dst, smoothPath(pts), width, c)
}

// isDot reports whether every point equals the first. Paths drop
// zero-length segments, so such a stroke has no outline.
func isDot(pts []Point) bool {
	for _, p := range pts[1:] {
		if p != pts[0] {
			return false
		}
	}
	return true
}

// strokeSegment strokes one straight segment with round caps.
func strokeSegment(dst *ebiten.Image, a, b Point, width float64, c Color) {
	var p vector.Path
	p.MoveTo(float32(a.X), float32(a.Y))
	p.LineTo(float32(b.X), float32(b.Y))
	strokePath(dst, &p, width, c)
}

// fillCircle draws a filled anti-aliased circle.
func fillCircle(dst *ebiten.Image, center Point, radius float64, c Color) {
	vector.FillCircle(dst, float32(center.X), float32(center.Y), float32(radius), c.RGBA(), true)
}

// strokeCircle draws a circle outline.
func strokeCircle(dst *ebiten.Image, center Point, radius, width float64, c Color) {
	vector.StrokeCircle(dst, float32(center.X), float32(center.Y), float32(radius), float32(width), c.RGBA(), true)
}

// fillRect draws a filled rectangle.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), false)
}

// strokeRect draws a rectangle outline.
func strokeRect(dst *ebiten.Image, r Rect, width float64, c Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), c.RGBA(), false)
}
