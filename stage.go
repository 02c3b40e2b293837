package posekit

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Per-pointer state ---

type pointerState struct {
	down        bool
	kind        PointerKind
	lastX       float64
	lastY       float64
	pressTarget Target
	hoverTarget Target // last target the pointer was over (for enter/leave)
}

// Stage routes pointer input to an ordered set of targets. It owns the
// per-pointer state machine, hover tracking and pointer capture for one
// editor widget.
//
// Events arrive in screen coordinates and are converted into the stage's
// local space through its Viewport before hit testing.
type Stage struct {
	targets  []Target
	viewport Viewport
	inverse  [6]float64

	captured [maxPointers]Target
	pointers [maxPointers]pointerState

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	disposed bool
}

// NewStage creates an empty stage whose local space equals screen space.
func NewStage() *Stage {
	return &Stage{
		viewport:      IdentityViewport,
		inverse:       identityTransform,
		ScreenshotDir: "screenshots",
	}
}

// SetViewport sets the local→screen mapping. Targets then receive
// coordinates in the viewport's image space.
func (s *Stage) SetViewport(v Viewport) {
	s.viewport = v
	s.inverse = v.Inverse()
}

// Viewport returns the stage's local→screen mapping.
func (s *Stage) Viewport() Viewport {
	return s.viewport
}

// Add appends a target. Later targets are on top for hit testing.
func (s *Stage) Add(t Target) {
	if t == nil {
		panic("posekit: cannot add nil target")
	}
	s.targets = append(s.targets, t)
	if sa, ok := t.(stageAware); ok {
		sa.attach(s)
	}
}

// Remove detaches a target and drops every pointer reference to it.
func (s *Stage) Remove(t Target) {
	for i, c := range s.targets {
		if c == t {
			copy(s.targets[i:], s.targets[i+1:])
			s.targets[len(s.targets)-1] = nil
			s.targets = s.targets[:len(s.targets)-1]
			break
		}
	}
	for i := range s.pointers {
		if s.captured[i] == t {
			s.captured[i] = nil
		}
		ps := &s.pointers[i]
		if ps.pressTarget == t {
			ps.pressTarget = nil
		}
		if ps.hoverTarget == t {
			ps.hoverTarget = nil
		}
	}
}

// Targets returns the target list. The returned slice MUST NOT be mutated.
func (s *Stage) Targets() []Target {
	return s.targets
}

// CapturePointer routes all events for pointerID to the given target.
func (s *Stage) CapturePointer(pointerID int, t Target) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = t
	}
}

// ReleasePointer stops routing events for pointerID to a captured target.
func (s *Stage) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// Captured returns the target holding pointerID, or nil.
func (s *Stage) Captured(pointerID int) Target {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return s.captured[pointerID]
}

// Dispose releases all captures and drops every target. Events delivered
// after Dispose are ignored.
func (s *Stage) Dispose() {
	for i := range s.captured {
		s.captured[i] = nil
		s.pointers[i] = pointerState{}
	}
	for i := range s.targets {
		s.targets[i] = nil
	}
	s.targets = nil
	s.injectQueue = nil
	s.testRunner = nil
	s.disposed = true
}

// --- Hit testing ---

// hitTest finds the topmost target at local (x, y). Returns nil if nothing
// is hit.
func (s *Stage) hitTest(x, y float64) Target {
	for i := len(s.targets) - 1; i >= 0; i-- {
		if s.targets[i].HitTest(x, y) {
			return s.targets[i]
		}
	}
	return nil
}

// --- Input processing ---

// Update advances the test runner and processes this frame's input.
func (s *Stage) Update() {
	if s.disposed {
		return
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// processInput handles injected, mouse and touch input for one frame.
func (s *Stage) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// Dispatch feeds one boundary event, in screen coordinates, through the
// pointer state machine. Hosts that do not poll ebiten input use this
// instead of Update.
func (s *Stage) Dispatch(pointerID int, screenX, screenY float64, kind PointerKind, pressed bool) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	s.processPointer(pointerID, screenX, screenY, kind, pressed)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Stage) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), PointerMouse, pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Stage) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), PointerTouch, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				sx, sy := transformPoint(s.viewport.Matrix(), ps.lastX, ps.lastY)
				s.processPointer(i, sx, sy, PointerTouch, false)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Stage) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
// (sx, sy) are screen coordinates.
func (s *Stage) processPointer(pointerID int, sx, sy float64, kind PointerKind, pressed bool) {
	if s.disposed {
		return
	}
	ps := &s.pointers[pointerID]
	lx, ly := transformPoint(s.inverse, sx, sy)
	if ps.down {
		// The device is fixed for the duration of an interaction.
		kind = ps.kind
	}
	ev := PointerEvent{X: lx, Y: ly, Kind: kind, ID: pointerID}

	// Captured target, then the press target for touch, then hit test.
	var target Target
	switch {
	case s.captured[pointerID] != nil:
		target = s.captured[pointerID]
	case ps.down && kind == PointerTouch && ps.pressTarget != nil:
		target = ps.pressTarget
	default:
		target = s.hitTest(lx, ly)
	}

	// Fire hover enter/leave when the hovered target changes.
	if target != ps.hoverTarget {
		if ps.hoverTarget != nil {
			ps.hoverTarget.PointerLeave(ev)
		}
		if target != nil {
			target.PointerEnter(ev)
		}
		ps.hoverTarget = target
	}

	moved := lx != ps.lastX || ly != ps.lastY

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.kind = kind
		ps.pressTarget = target
		if target != nil {
			target.PointerDown(ev)
		}
	case !pressed && ps.down:
		if target != nil {
			target.PointerUp(ev)
		}
		if ps.pressTarget != nil && ps.pressTarget != target {
			ps.pressTarget.PointerUp(ev)
		}
		// Auto-release capture.
		s.captured[pointerID] = nil
		ps.down = false
		ps.pressTarget = nil
	case moved && target != nil:
		// Held-down drag or hover move.
		target.PointerMove(ev)
	}

	ps.lastX = lx
	ps.lastY = ly
}
