package posekit

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// disposable is anything a tween can stop following.
type disposable interface {
	IsDisposed() bool
}

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenValue or TweenColor and call Update(dt) each frame. If the owner is
// disposed, the group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	owner  disposable
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the owner has been disposed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	if g.owner != nil && g.owner.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue animates *field to the target value. A non-positive duration
// snaps the field immediately.
func TweenValue(owner disposable, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if duration <= 0 {
		*field = to
		return &TweenGroup{owner: owner, Done: true}
	}
	g := &TweenGroup{count: 1, owner: owner}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenColor animates all four components of *c to the target color.
func TweenColor(owner disposable, c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	if duration <= 0 {
		*c = to
		return &TweenGroup{owner: owner, Done: true}
	}
	g := &TweenGroup{count: 4, owner: owner}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// frameDelta returns the duration of one tick in seconds.
func frameDelta() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float32(tps)
}
