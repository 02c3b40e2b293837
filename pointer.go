package posekit

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerKind identifies the device that produced a pointer event.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota // mouse; uses pointer capture
	PointerTouch                    // touch; no capture, keeps its press target
	PointerPen                      // stylus; uses pointer capture
)

// String returns a short device name.
func (k PointerKind) String() string {
	switch k {
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "mouse"
	}
}

// capturable reports whether the device supports pointer capture.
func (k PointerKind) capturable() bool {
	return k != PointerTouch
}

// PointerEvent is the single event shape delivered to targets. It is built
// once at the input boundary; X and Y are already in the stage's local
// coordinate space.
type PointerEvent struct {
	X, Y float64
	Kind PointerKind
	ID   int
}

// Point returns the event position.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// Target receives routed pointer events from a Stage.
type Target interface {
	// HitTest reports whether (x, y), in stage-local coordinates, is over
	// the target.
	HitTest(x, y float64) bool

	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
	PointerEnter(ev PointerEvent)
	PointerLeave(ev PointerEvent)
}

// stageAware is implemented by targets that need their owning stage, for
// example to capture the pointer.
type stageAware interface {
	attach(s *Stage)
}

// --- Built-in hit shapes ---

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}
