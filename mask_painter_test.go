package posekit

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// newTestMaskPainter builds a painter for a 100x100 image on a canvas of
// the given size.
func newTestMaskPainter(canvas float64, tools *ToolState) (*MaskPainter, *[][]Stroke) {
	var got [][]Stroke
	p := NewMaskPainter(DefaultConfig().Mask, tools, func(s []Stroke) { got = append(got, s) })
	p.SetImageSize(100, 100)
	p.SetCanvasSize(canvas, canvas)
	return p, &got
}

func TestMaskPainterStroke(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 10})
	s := p.Stage()

	s.InjectPress(10, 10)
	s.InjectMove(20, 10)
	s.InjectMove(30, 10)
	s.InjectRelease(30, 10)
	drain(s)

	if len(*got) != 1 {
		t.Fatalf("setLines called %d times, want 1", len(*got))
	}
	strokes := (*got)[0]
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d", len(strokes))
	}
	st := strokes[0]
	if st.Len() != 3 || st.Tool != ToolPen || st.PenWidth != 10 {
		t.Errorf("stroke = %+v", st)
	}
	if p.Document().Open() {
		t.Error("stroke still open")
	}
}

func TestMaskPainterMoveOutsideClosesStroke(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 10})
	s := p.Stage()

	s.InjectPress(50, 50)
	s.InjectMove(60, 50)
	s.InjectMove(150, 50)
	s.InjectMove(60, 60)
	s.InjectRelease(60, 60)
	drain(s)

	if len(*got) != 1 {
		t.Fatalf("setLines called %d times, want 1", len(*got))
	}
	if n := (*got)[0][0].Len(); n != 2 {
		t.Errorf("points = %d, want 2 (outside point dropped)", n)
	}
	if s.Captured(0) != nil {
		t.Error("capture should be released")
	}
}

func TestMaskPainterDocumentSpace(t *testing.T) {
	// 100x100 image on a 50x50 canvas: ratio 0.5.
	p, got := newTestMaskPainter(50, &ToolState{Tool: ToolEraser, PenWidth: 20})
	s := p.Stage()

	s.InjectPress(10, 10)
	s.InjectRelease(10, 10)
	drain(s)

	if len(*got) != 1 {
		t.Fatalf("setLines called %d times", len(*got))
	}
	st := (*got)[0][0]
	assertPoint(t, "doc point", st.Point(0), Point{20, 20})
	if st.PenWidth != 20 {
		t.Errorf("pen width = %d, must not scale with display", st.PenWidth)
	}
	if st.Tool != ToolEraser {
		t.Errorf("tool = %v", st.Tool)
	}
}

func TestMaskPainterInvalidPenWidthFallsBack(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 7})
	s := p.Stage()

	s.InjectClick(10, 10)
	drain(s)

	if len(*got) != 1 {
		t.Fatal("no stroke")
	}
	if w := (*got)[0][0].PenWidth; w != DefaultConfig().Mask.DefaultPenWidth {
		t.Errorf("pen width = %d, want default", w)
	}
}

func TestMaskPainterInvalidPenWidthWarnsOncePerStroke(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { SetLogger(nil) })

	p, _ := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 7})

	// The cursor preview resolves the width every frame.
	for range 10 {
		if w, ok := p.penWidth(); ok || w != DefaultConfig().Mask.DefaultPenWidth {
			t.Fatalf("penWidth = %d, %v", w, ok)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("width lookup logged: %q", buf.String())
	}

	s := p.Stage()
	s.InjectPress(10, 10)
	s.InjectMove(20, 20)
	s.InjectMove(30, 30)
	s.InjectRelease(30, 30)
	drain(s)

	if n := strings.Count(buf.String(), "pen width not in allowed set"); n != 1 {
		t.Errorf("warnings = %d, want 1\n%s", n, buf.String())
	}
}

func TestMaskPainterReadsToolPerStroke(t *testing.T) {
	tools := &ToolState{Tool: ToolPen, PenWidth: 5}
	p, _ := newTestMaskPainter(100, tools)
	s := p.Stage()

	s.InjectClick(10, 10)
	drain(s)
	tools.Tool = ToolEraser
	if err := tools.SetPenWidth(40, DefaultPenWidths); err != nil {
		t.Fatal(err)
	}
	s.InjectClick(20, 20)
	drain(s)

	strokes := p.Strokes()
	if len(strokes) != 2 {
		t.Fatalf("strokes = %d", len(strokes))
	}
	if strokes[0].Tool != ToolPen || strokes[0].PenWidth != 5 {
		t.Errorf("first = %+v", strokes[0])
	}
	if strokes[1].Tool != ToolEraser || strokes[1].PenWidth != 40 {
		t.Errorf("second = %+v", strokes[1])
	}
}

func TestToolStateSetPenWidth(t *testing.T) {
	ts := &ToolState{PenWidth: 5}
	if err := ts.SetPenWidth(7, DefaultPenWidths); !errors.Is(err, ErrInvalidPenWidth) {
		t.Errorf("err = %v", err)
	}
	if ts.PenWidth != 5 {
		t.Error("width changed on error")
	}
}

func TestMaskPainterUndoReset(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 5})

	if p.Undo() || p.Reset() {
		t.Error("undo/reset on empty should report false")
	}
	if len(*got) != 0 {
		t.Error("no-op undo/reset must not emit")
	}

	s := p.Stage()
	s.InjectClick(10, 10)
	s.InjectClick(20, 20)
	drain(s)

	if !p.Undo() {
		t.Fatal("undo failed")
	}
	if last := (*got)[len(*got)-1]; len(last) != 1 {
		t.Errorf("after undo: %d strokes", len(last))
	}
	if !p.Reset() {
		t.Fatal("reset failed")
	}
	if last := (*got)[len(*got)-1]; len(last) != 0 {
		t.Errorf("after reset: %d strokes", len(last))
	}
}

func TestMaskPainterNotReady(t *testing.T) {
	p := NewMaskPainter(DefaultConfig().Mask, &ToolState{Tool: ToolPen, PenWidth: 5}, nil)
	if _, err := p.ToRaster(); !errors.Is(err, ErrNotReady) {
		t.Errorf("ToRaster err = %v", err)
	}
	if p.HitTest(1, 1) {
		t.Error("hit before ready")
	}
	p.Draw(nil)
}

func TestMaskPainterNilToolsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewMaskPainter(DefaultConfig().Mask, nil, nil)
}

func TestMaskPainterSetStrokes(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 5})
	p.SetStrokes([]Stroke{
		{Tool: ToolPen, PenWidth: 5, Points: []float64{1, 1}},
		{Tool: ToolEraser, PenWidth: 10, Points: []float64{2, 2, 3, 3}},
	})
	if len(p.Strokes()) != 2 {
		t.Errorf("strokes = %d", len(p.Strokes()))
	}
	if len(*got) != 0 {
		t.Error("SetStrokes must not emit")
	}
}

func TestMaskPainterDisposeMidStroke(t *testing.T) {
	p, got := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 5})
	s := p.Stage()

	s.InjectPress(10, 10)
	s.InjectMove(20, 20)
	drain(s)
	p.Dispose()

	if len(*got) != 0 {
		t.Error("dispose emitted")
	}
	if p.Document().Len() != 0 {
		t.Error("open stroke should be discarded")
	}
	if p.Undo() {
		t.Error("undo after dispose")
	}
	if err := p.Update(); err != nil {
		t.Fatal(err)
	}
}

func TestMaskPainterExport(t *testing.T) {
	p, _ := newTestMaskPainter(100, &ToolState{Tool: ToolPen, PenWidth: 10})
	s := p.Stage()
	s.InjectDrag(20, 50, 80, 50, 4)
	drain(s)

	var buf bytes.Buffer
	if err := p.Export(&buf, FormatPNG); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("bounds = %v", b)
	}
}
