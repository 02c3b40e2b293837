package posekit

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/vector"
)

func TestSmoothPathLongStrokeOutline(t *testing.T) {
	// Far more points than a 16-bit vertex index can address once joins
	// and curves are flattened.
	const n = 30000
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 100 + float64(i%2)}
	}

	var outline vector.Path
	outline.AddStroke(smoothPath(pts), &vector.AddStrokeOptions{StrokeOptions: *roundStroke(10)})

	b := outline.Bounds()
	if b.Min.X > -4 || b.Max.X < n+3 {
		t.Errorf("x bounds = [%d,%d], want round caps past both ends", b.Min.X, b.Max.X)
	}
	if b.Min.Y > 96 || b.Max.Y < 105 {
		t.Errorf("y bounds = [%d,%d], want half the width around the line", b.Min.Y, b.Max.Y)
	}
}

func TestIsDot(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want bool
	}{
		{"single", []Point{{1, 1}}, true},
		{"repeated", []Point{{1, 1}, {1, 1}, {1, 1}}, true},
		{"moved", []Point{{1, 1}, {1, 1}, {2, 1}}, false},
	}
	for _, tt := range tests {
		if got := isDot(tt.pts); got != tt.want {
			t.Errorf("%s: isDot = %v, want %v", tt.name, got, tt.want)
		}
	}
}
