package posekit

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6, "touch": true}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if st := runner.steps[3]; !st.Touch || st.Frames != 6 || st.ToY != 4 {
		t.Errorf("step 3 mismatch: %+v", st)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"steps": []}`,
		`{"steps": [{"action": "teleport"}]}`,
	} {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("expected error for %s", data)
		}
	}
}

func TestRunnerStep_ClickDragsJoint(t *testing.T) {
	e, got := newTestPoseEditor(t, JointMap{"nose": {100, 50}})
	s := e.Stage()

	data := []byte(`{"steps": [
		{"action": "press", "x": 200, "y": 200},
		{"action": "move", "x": 220, "y": 200},
		{"action": "release", "x": 220, "y": 200}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	for i := 0; i < 3; i++ {
		runner.step(s)
		drain(s)
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done")
	}
	if len(*got) != 2 {
		t.Fatalf("setPose called %d times", len(*got))
	}
	assertPoint(t, "nose", e.Commit()["nose"], Point{120, 50})
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewStage()

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	for frame := 1; frame <= 3; frame++ {
		runner.step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", frame)
		}
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if s.PendingScreenshots() != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", s.screenshotQueue)
	}
}

func TestRunnerStep_TouchDrag(t *testing.T) {
	s := NewStage()
	data := []byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4, "touch": true}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events, got %d", len(s.injectQueue))
	}
	for _, ev := range s.injectQueue {
		if ev.kind != PointerTouch {
			t.Fatalf("event kind = %v, want touch", ev.kind)
		}
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewStage()

	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.injectQueue))
	}

	// Blocked until the queue drains.
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	drain(s)
	runner.step(s)
	if s.PendingScreenshots() != 1 {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
