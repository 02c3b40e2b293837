package posekit

import (
	"testing"

	"github.com/tanema/gween/ease"
)

type fakeOwner struct{ disposed bool }

func (o *fakeOwner) IsDisposed() bool { return o.disposed }

func TestTweenValue(t *testing.T) {
	v := 0.0
	g := TweenValue(&fakeOwner{}, &v, 10, 1, ease.Linear)

	g.Update(0.5)
	if v < 4.9 || v > 5.1 {
		t.Errorf("halfway = %v, want ~5", v)
	}
	if g.Done {
		t.Error("done too early")
	}
	g.Update(0.6)
	if v != 10 || !g.Done {
		t.Errorf("end = %v, done = %v", v, g.Done)
	}
}

func TestTweenValue_ZeroDurationSnaps(t *testing.T) {
	v := 0.0
	g := TweenValue(nil, &v, 1, 0, ease.OutQuad)
	if v != 1 || !g.Done {
		t.Errorf("v = %v, done = %v", v, g.Done)
	}
	g.Update(1)
}

func TestTweenColor(t *testing.T) {
	c := ColorBlack
	g := TweenColor(&fakeOwner{}, &c, ColorWhite, 0.2, ease.Linear)
	g.Update(0.3)
	if c != ColorWhite || !g.Done {
		t.Errorf("color = %+v, done = %v", c, g.Done)
	}
}

func TestTween_OwnerDisposedStops(t *testing.T) {
	owner := &fakeOwner{}
	v := 0.0
	g := TweenValue(owner, &v, 10, 1, ease.Linear)
	owner.disposed = true
	g.Update(0.5)
	if v != 0 || !g.Done {
		t.Errorf("v = %v, done = %v", v, g.Done)
	}
}

func TestTween_NilGroupUpdate(t *testing.T) {
	var g *TweenGroup
	g.Update(1)
}
