package posekit

// DragState is the transient interaction state of one draggable element.
// It is never persisted and is discarded when the element is disposed.
type DragState struct {
	Position      Point
	Active        bool
	PointerOffset Point
}

// DragPoint is a single pointer-draggable control point. It is independent
// of what it represents: owners fold its position updates into their own
// documents through OnPositionUpdate.
//
// State machine: Idle -> (pointer down) -> Dragging -> (pointer up) -> Idle.
// Leaving the hit area while dragging does not end the drag.
type DragPoint struct {
	// ID names the point for its owner (for example a joint id).
	ID string
	// Radius is the hit radius in stage-local units.
	Radius float64

	// OnPositionUpdate fires on every position change, including the
	// pointer down that activates the drag.
	OnPositionUpdate func(Point)
	// OnHover fires with true on pointer enter and false on pointer leave.
	OnHover func(bool)
	// OnRelease fires when a drag ends, with the retained final position.
	OnRelease func(Point)

	state     DragState
	bounds    Rect
	bounded   bool
	hovered   bool
	pointerID int
	stage     *Stage
	disposed  bool
}

// NewDragPoint creates an idle point at pos with the given hit radius.
func NewDragPoint(id string, pos Point, radius float64) *DragPoint {
	return &DragPoint{
		ID:     id,
		Radius: radius,
		state:  DragState{Position: pos},
	}
}

// State returns a copy of the current drag state.
func (d *DragPoint) State() DragState {
	return d.state
}

// Position returns the current position.
func (d *DragPoint) Position() Point {
	return d.state.Position
}

// Active reports whether the point is being dragged.
func (d *DragPoint) Active() bool {
	return d.state.Active
}

// Hovered reports whether a pointer is over the point.
func (d *DragPoint) Hovered() bool {
	return d.hovered
}

// SetPosition moves the point without firing OnPositionUpdate. Used when the
// owner's geometry changes from outside (for example a late backend reply).
func (d *DragPoint) SetPosition(p Point) {
	if d.bounded {
		p = d.bounds.Clamp(p)
	}
	d.state.Position = p
}

// SetBounds clamps all future positions to r.
func (d *DragPoint) SetBounds(r Rect) {
	d.bounds = r
	d.bounded = true
}

// ClearBounds removes the position clamp.
func (d *DragPoint) ClearBounds() {
	d.bounded = false
}

// Dispose releases any captured pointer and silences all callbacks. A
// disposed point never fires again.
func (d *DragPoint) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	if d.stage != nil {
		if d.state.Active && d.stage.Captured(d.pointerID) == d {
			d.stage.ReleasePointer(d.pointerID)
		}
		d.stage.Remove(d)
		d.stage = nil
	}
	d.state.Active = false
	d.OnPositionUpdate = nil
	d.OnHover = nil
	d.OnRelease = nil
}

// IsDisposed reports whether Dispose has been called.
func (d *DragPoint) IsDisposed() bool {
	return d.disposed
}

func (d *DragPoint) attach(s *Stage) {
	d.stage = s
}

// --- Target implementation ---

// HitTest reports whether (x, y) is within Radius of the point.
func (d *DragPoint) HitTest(x, y float64) bool {
	if d.disposed {
		return false
	}
	return HitCircle{CenterX: d.state.Position.X, CenterY: d.state.Position.Y, Radius: d.Radius}.Contains(x, y)
}

// PointerDown starts a drag. Mouse and pen pointers are captured so moves
// outside the hit area keep arriving; touch relies on the stage routing
// moves to the press target.
func (d *DragPoint) PointerDown(ev PointerEvent) {
	if d.disposed {
		return
	}
	if ev.Kind.capturable() && d.stage != nil {
		d.stage.CapturePointer(ev.ID, d)
	}
	d.pointerID = ev.ID
	d.state.Active = true
	d.state.PointerOffset = ev.Point().Sub(d.state.Position)
	d.emit()
}

// PointerMove follows the pointer while dragging:
// position - (offset - pointerRelativeToPosition), clamped to the bounds.
func (d *DragPoint) PointerMove(ev PointerEvent) {
	if d.disposed || !d.state.Active || ev.ID != d.pointerID {
		return
	}
	pos := d.state.Position
	rel := ev.Point().Sub(pos)
	next := pos.Sub(d.state.PointerOffset.Sub(rel))
	if d.bounded {
		next = d.bounds.Clamp(next)
	}
	if next == pos {
		return
	}
	d.state.Position = next
	d.emit()
}

// PointerUp ends the drag. The final position is retained.
func (d *DragPoint) PointerUp(ev PointerEvent) {
	if d.disposed || !d.state.Active || ev.ID != d.pointerID {
		return
	}
	d.state.Active = false
	if d.stage != nil && d.stage.Captured(ev.ID) == d {
		d.stage.ReleasePointer(ev.ID)
	}
	if d.OnRelease != nil {
		d.OnRelease(d.state.Position)
	}
}

// PointerEnter reports hover start.
func (d *DragPoint) PointerEnter(PointerEvent) {
	if d.disposed {
		return
	}
	d.hovered = true
	if d.OnHover != nil {
		d.OnHover(true)
	}
}

// PointerLeave reports hover end.
func (d *DragPoint) PointerLeave(PointerEvent) {
	if d.disposed {
		return
	}
	d.hovered = false
	if d.OnHover != nil {
		d.OnHover(false)
	}
}

func (d *DragPoint) emit() {
	if d.OnPositionUpdate != nil {
		d.OnPositionUpdate(d.state.Position)
	}
}
