package posekit

import "testing"

func TestInjectClick(t *testing.T) {
	s := NewStage()
	r := &recorder{rect: HitRect{0, 0, 100, 100}}
	s.Add(r)

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInput()
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	if !r.has("down 50,50") || r.has("up 50,50") {
		t.Errorf("after press: %v", r.events)
	}

	// Frame 2: release
	s.processInput()
	if !r.has("up 50,50") {
		t.Errorf("after release: %v", r.events)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewStage()
	s.InjectDrag(0, 0, 100, 100, 1) // should clamp to 2
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", len(s.injectQueue))
	}
}

func TestInjectDrag_Interpolates(t *testing.T) {
	s := NewStage()
	s.InjectDrag(10, 10, 200, 200, 5)

	wantX := []float64{10, 57.5, 105, 152.5, 200}
	for i, ev := range s.injectQueue {
		if ev.screenX != wantX[i] || ev.screenY != wantX[i] {
			t.Errorf("event %d at (%v,%v), want %v", i, ev.screenX, ev.screenY, wantX[i])
		}
		if last := i == len(s.injectQueue)-1; ev.pressed == last {
			t.Errorf("event %d pressed = %v", i, ev.pressed)
		}
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewStage()

	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)

	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 events, got %d", len(s.injectQueue))
	}
	if !s.injectQueue[0].pressed || s.injectQueue[0].screenX != 10 {
		t.Error("first event should be press at (10,20)")
	}
	if !s.injectQueue[1].pressed || s.injectQueue[1].screenX != 30 {
		t.Error("second event should be move at (30,40)")
	}
	if s.injectQueue[2].pressed || s.injectQueue[2].screenX != 50 {
		t.Error("third event should be release at (50,60)")
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewStage()
	if s.processInjectedInput() {
		t.Error("should not consume when queue is empty")
	}
}

func TestInjectTouchUsesSlotOne(t *testing.T) {
	s := NewStage()
	r := &recorder{rect: HitRect{0, 0, 100, 100}}
	s.Add(r)

	s.InjectPointer(20, 20, PointerTouch, true)
	s.processInput()
	if !s.pointers[1].down || s.pointers[0].down {
		t.Error("touch should use pointer slot 1")
	}
}
