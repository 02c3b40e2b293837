package posekit

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// BoundingBox is a rectangle in canvas display coordinates. Width and
// Height are true pixel sizes; there is no separate scale.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ID     string  `json:"id"`
}

// Rect returns the box as a Rect.
func (b BoundingBox) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// SourceRect is a rectangle in source-image pixels, as exchanged with the
// backend.
type SourceRect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// BoxTransform is a resize expressed the way a transform handle reports
// it: a new origin plus scale factors relative to the current size.
type BoxTransform struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

// BoxHandle identifies one of the eight resize handles.
type BoxHandle uint8

const (
	HandleTopLeft BoxHandle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
	handleCount
)

var handleNames = [handleCount]string{
	"top-left", "top", "top-right", "right",
	"bottom-right", "bottom", "bottom-left", "left",
}

// String returns the handle name.
func (h BoxHandle) String() string {
	if h < handleCount {
		return handleNames[h]
	}
	return fmt.Sprintf("BoxHandle(%d)", uint8(h))
}

func (h BoxHandle) movesLeft() bool {
	return h == HandleTopLeft || h == HandleLeft || h == HandleBottomLeft
}

func (h BoxHandle) movesRight() bool {
	return h == HandleTopRight || h == HandleRight || h == HandleBottomRight
}

func (h BoxHandle) movesTop() bool {
	return h == HandleTopLeft || h == HandleTop || h == HandleTopRight
}

func (h BoxHandle) movesBottom() bool {
	return h == HandleBottomLeft || h == HandleBottom || h == HandleBottomRight
}

// anchor returns the handle's position on box b.
func (h BoxHandle) anchor(b BoundingBox) Point {
	x := b.X + b.Width/2
	y := b.Y + b.Height/2
	switch {
	case h.movesLeft():
		x = b.X
	case h.movesRight():
		x = b.X + b.Width
	}
	switch {
	case h.movesTop():
		y = b.Y
	case h.movesBottom():
		y = b.Y + b.Height
	}
	return Point{X: x, Y: y}
}

// BoxAdjuster edits exactly one bounding box over a fitted image. The body
// translates the box (committed on release) and eight handles resize it.
// A resize that would make either side smaller than MinSize is rejected.
type BoxAdjuster struct {
	cfg    BoxConfig
	setBox func(BoundingBox)

	stage   *Stage
	body    *boxBody
	handles [handleCount]*DragPoint

	box     BoundingBox
	hasBox  bool
	pending *SourceRect

	image            *ebiten.Image
	imgW, imgH       float64
	canvasW, canvasH float64
	viewport         Viewport

	strokeColor Color
	hoverFade   *TweenGroup

	disposed bool
}

// NewBoxAdjuster creates an adjuster with no box. setBox receives the box
// after every committed translate or resize; it may be nil.
func NewBoxAdjuster(cfg BoxConfig, setBox func(BoundingBox)) *BoxAdjuster {
	a := &BoxAdjuster{
		cfg:         cfg,
		setBox:      setBox,
		stage:       NewStage(),
		strokeColor: cfg.StrokeColor,
	}
	a.body = &boxBody{a: a}
	a.stage.Add(a.body)
	for h := BoxHandle(0); h < handleCount; h++ {
		dp := NewDragPoint(h.String(), Point{}, cfg.HandleSize)
		handle := h
		dp.OnPositionUpdate = func(p Point) { a.dragHandle(handle, p) }
		dp.OnRelease = func(Point) {
			a.layoutHandles(a.box)
			a.commit()
		}
		a.handles[h] = dp
	}
	return a
}

// markBox records that a box exists and makes the handles interactive.
func (a *BoxAdjuster) markBox() {
	if a.hasBox {
		return
	}
	a.hasBox = true
	for _, dp := range a.handles {
		a.stage.Add(dp)
	}
}

// Stage returns the adjuster's input stage. Its local space is display
// space.
func (a *BoxAdjuster) Stage() *Stage {
	return a.stage
}

// Box returns the current box and whether one is set.
func (a *BoxAdjuster) Box() (BoundingBox, bool) {
	return a.box, a.hasBox
}

// Ready reports whether image and canvas dimensions are both known.
func (a *BoxAdjuster) Ready() bool {
	return a.imgW > 0 && a.imgH > 0 && a.canvasW > 0 && a.canvasH > 0
}

// Viewport returns the image→canvas mapping.
func (a *BoxAdjuster) Viewport() Viewport {
	return a.viewport
}

// SetImage sets the background image; its bounds are the natural size.
func (a *BoxAdjuster) SetImage(img image.Image) {
	if img == nil {
		return
	}
	a.image = ebiten.NewImageFromImage(img)
	b := img.Bounds()
	a.SetImageSize(b.Dx(), b.Dy())
}

// SetImageSize records the natural image dimensions.
func (a *BoxAdjuster) SetImageSize(w, h int) {
	a.imgW, a.imgH = float64(w), float64(h)
	Logger().Info("box image loaded", "width", w, "height", h)
	a.relayout()
}

// SetCanvasSize sets the display area size.
func (a *BoxAdjuster) SetCanvasSize(w, h float64) {
	a.canvasW, a.canvasH = w, h
	a.relayout()
}

func (a *BoxAdjuster) relayout() {
	if !a.Ready() {
		return
	}
	vp, err := FitViewport(a.canvasW, a.canvasH, a.imgW, a.imgH)
	if err != nil {
		return
	}
	old := a.viewport
	a.viewport = vp
	if a.hasBox && old.Ratio > 0 && old != vp {
		a.box = remapBox(a.box, old, vp)
	}
	bounds := vp.DisplayRect()
	for _, dp := range a.handles {
		dp.SetBounds(bounds)
	}
	if a.pending != nil {
		r := *a.pending
		a.pending = nil
		a.SetSourceRect(r)
		return
	}
	a.layoutHandles(a.box)
}

// remapBox carries b from one viewport's display space to another's
// through source space.
func remapBox(b BoundingBox, from, to Viewport) BoundingBox {
	tl := to.ToDisplay(from.ToSource(Point{X: b.X, Y: b.Y}))
	br := to.ToDisplay(from.ToSource(Point{X: b.X + b.Width, Y: b.Y + b.Height}))
	return BoundingBox{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y, ID: b.ID}
}

// SetBox replaces the box, in display coordinates, without emitting.
func (a *BoxAdjuster) SetBox(b BoundingBox) {
	if a.disposed {
		return
	}
	a.box = b
	a.markBox()
	a.layoutHandles(b)
}

// SetSourceRect sets the box from source-image coordinates. Before the
// image and canvas are known the rectangle is held until they are.
func (a *BoxAdjuster) SetSourceRect(r SourceRect) {
	if a.disposed {
		return
	}
	if !a.Ready() {
		a.pending = &r
		return
	}
	vp := a.viewport
	tl := vp.ToDisplay(Point{X: r.X1, Y: r.Y1})
	br := vp.ToDisplay(Point{X: r.X2, Y: r.Y2})
	id := a.box.ID
	a.SetBox(BoundingBox{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y, ID: id})
}

// SourceRect returns the box in source-image coordinates.
func (a *BoxAdjuster) SourceRect() (SourceRect, bool) {
	if !a.hasBox || !a.Ready() {
		return SourceRect{}, false
	}
	vp := a.viewport
	tl := vp.ToSource(Point{X: a.box.X, Y: a.box.Y})
	br := vp.ToSource(Point{X: a.box.X + a.box.Width, Y: a.box.Y + a.box.Height})
	return SourceRect{X1: tl.X, Y1: tl.Y, X2: br.X, Y2: br.Y}, true
}

// Resize proposes new geometry. A proposal with width or height below
// MinSize is rejected with ErrResizeBelowMinimum and the box is unchanged.
// An accepted resize is committed through setBox.
func (a *BoxAdjuster) Resize(proposed BoundingBox) error {
	if err := a.propose(proposed); err != nil {
		return err
	}
	a.commit()
	return nil
}

// ApplyTransform resizes by scale factors. The scale is folded into Width
// and Height and the stored scale is back to identity afterwards.
func (a *BoxAdjuster) ApplyTransform(t BoxTransform) error {
	b := a.box
	b.X, b.Y = t.X, t.Y
	b.Width *= t.ScaleX
	b.Height *= t.ScaleY
	return a.Resize(b)
}

func (a *BoxAdjuster) propose(proposed BoundingBox) error {
	if a.disposed {
		return nil
	}
	if proposed.Width < a.cfg.MinSize || proposed.Height < a.cfg.MinSize {
		Logger().Debug("resize rejected", "width", proposed.Width, "height", proposed.Height, "min", a.cfg.MinSize)
		a.layoutHandles(a.box)
		return fmt.Errorf("resize to %.1fx%.1f: %w", proposed.Width, proposed.Height, ErrResizeBelowMinimum)
	}
	proposed.ID = a.box.ID
	a.box = proposed
	a.markBox()
	a.layoutHandles(proposed)
	return nil
}

// dragHandle turns one handle position into a resize proposal.
func (a *BoxAdjuster) dragHandle(h BoxHandle, p Point) {
	if !a.hasBox {
		return
	}
	b := a.box
	right, bottom := b.X+b.Width, b.Y+b.Height
	switch {
	case h.movesLeft():
		b.X, b.Width = p.X, right-p.X
	case h.movesRight():
		b.Width = p.X - b.X
	}
	switch {
	case h.movesTop():
		b.Y, b.Height = p.Y, bottom-p.Y
	case h.movesBottom():
		b.Height = p.Y - b.Y
	}
	if b == a.box {
		return
	}
	_ = a.propose(b)
}

// layoutHandles places every handle on b without firing callbacks.
func (a *BoxAdjuster) layoutHandles(b BoundingBox) {
	for h, dp := range a.handles {
		if !dp.Active() {
			dp.SetPosition(BoxHandle(h).anchor(b))
		}
	}
}

func (a *BoxAdjuster) commit() {
	if a.disposed || !a.hasBox {
		return
	}
	if a.setBox != nil {
		a.setBox(a.box)
	}
}

func (a *BoxAdjuster) hover(on bool) {
	to := a.cfg.StrokeColor
	if on {
		to = a.cfg.HandleColor
	}
	a.hoverFade = TweenColor(a, &a.strokeColor, to, 0.15, ease.OutQuad)
}

// Update processes one frame of input and advances the hover fade.
func (a *BoxAdjuster) Update() error {
	if a.disposed {
		return nil
	}
	a.stage.Update()
	a.hoverFade.Update(frameDelta())
	return nil
}

// Draw renders the image, the box and its handles.
func (a *BoxAdjuster) Draw(dst *ebiten.Image) {
	if a.disposed || !a.Ready() {
		return
	}
	start := time.Now()
	if a.image != nil {
		var op ebiten.DrawImageOptions
		op.GeoM = geoM(a.viewport.Matrix())
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(a.image, &op)
	}
	if a.hasBox {
		b := a.body.preview()
		strokeRect(dst, b.Rect(), a.cfg.StrokeWidth, a.strokeColor)
		hs := a.cfg.HandleSize
		for h := BoxHandle(0); h < handleCount; h++ {
			p := h.anchor(b)
			r := Rect{X: p.X - hs/2, Y: p.Y - hs/2, Width: hs, Height: hs}
			fillRect(dst, r, a.cfg.HandleColor)
			strokeRect(dst, r, 1, a.cfg.StrokeColor)
		}
	}
	debugLog(debugStats{widget: "box", drawTime: time.Since(start)})
}

// Dispose releases captured pointers and silences setBox.
func (a *BoxAdjuster) Dispose() {
	if a.disposed {
		return
	}
	for _, dp := range a.handles {
		dp.Dispose()
	}
	a.body.dragging = false
	a.stage.Dispose()
	a.setBox = nil
	a.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (a *BoxAdjuster) IsDisposed() bool {
	return a.disposed
}

// boxBody is the draggable interior of the box. The translated position
// is only a preview until release.
type boxBody struct {
	a         *BoxAdjuster
	dragging  bool
	pointerID int
	offset    Point
	pos       Point
}

// preview returns the box as currently displayed.
func (b *boxBody) preview() BoundingBox {
	box := b.a.box
	if b.dragging {
		box.X, box.Y = b.pos.X, b.pos.Y
	}
	return box
}

func (b *boxBody) HitTest(x, y float64) bool {
	return b.a.hasBox && !b.a.disposed && b.a.box.Rect().Contains(x, y)
}

func (b *boxBody) PointerDown(ev PointerEvent) {
	a := b.a
	if ev.Kind.capturable() {
		a.stage.CapturePointer(ev.ID, b)
	}
	b.dragging = true
	b.pointerID = ev.ID
	b.pos = Point{X: a.box.X, Y: a.box.Y}
	b.offset = ev.Point().Sub(b.pos)
}

func (b *boxBody) PointerMove(ev PointerEvent) {
	if !b.dragging || ev.ID != b.pointerID {
		return
	}
	a := b.a
	next := ev.Point().Sub(b.offset)
	if a.Ready() {
		dr := a.viewport.DisplayRect()
		next = Rect{
			X:      dr.X,
			Y:      dr.Y,
			Width:  max(dr.Width-a.box.Width, 0),
			Height: max(dr.Height-a.box.Height, 0),
		}.Clamp(next)
	}
	b.pos = next
	a.layoutHandles(b.preview())
}

func (b *boxBody) PointerUp(ev PointerEvent) {
	if !b.dragging || ev.ID != b.pointerID {
		return
	}
	a := b.a
	b.dragging = false
	if a.stage.Captured(ev.ID) == b {
		a.stage.ReleasePointer(ev.ID)
	}
	a.box.X, a.box.Y = b.pos.X, b.pos.Y
	a.layoutHandles(a.box)
	a.commit()
}

func (b *boxBody) PointerEnter(PointerEvent) { b.a.hover(true) }
func (b *boxBody) PointerLeave(PointerEvent) { b.a.hover(false) }
