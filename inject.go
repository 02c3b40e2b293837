package posekit

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used and converted to local coordinates via the
// stage viewport, identical to real input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	kind             PointerKind
}

// InjectPress queues a mouse press event at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Stage) InjectPress(x, y float64) {
	s.InjectPointer(x, y, PointerMouse, true)
}

// InjectMove queues a pointer move event at the given screen coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.InjectPointer(x, y, PointerMouse, true)
}

// InjectHover queues a pointer move event with no button held.
func (s *Stage) InjectHover(x, y float64) {
	s.InjectPointer(x, y, PointerMouse, false)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.InjectPointer(x, y, PointerMouse, false)
}

// InjectPointer queues one event for an arbitrary device. Touch events use
// pointer slot 1; mouse and pen use slot 0.
func (s *Stage) InjectPointer(x, y float64, kind PointerKind, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		kind:    kind,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.injectDrag(fromX, fromY, toX, toY, frames, PointerMouse)
}

// InjectTouchDrag is InjectDrag for a touch pointer.
func (s *Stage) InjectTouchDrag(fromX, fromY, toX, toY float64, frames int) {
	s.injectDrag(fromX, fromY, toX, toY, frames, PointerTouch)
}

func (s *Stage) injectDrag(fromX, fromY, toX, toY float64, frames int, kind PointerKind) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPointer(fromX, fromY, kind, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectPointer(x, y, kind, true)
	}
	s.InjectPointer(toX, toY, kind, false)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Stage) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real input
// should be skipped).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	pointerID := 0
	if evt.kind == PointerTouch {
		pointerID = 1
	}
	s.processPointer(pointerID, evt.screenX, evt.screenY, evt.kind, evt.pressed)
	return true
}
