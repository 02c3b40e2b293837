package posekit

import (
	"fmt"
	"image"
	"io"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ToolSource supplies the active tool and pen width. The painter reads it
// on every pointer down but never owns it.
type ToolSource interface {
	ActiveTool() Tool
	ActivePenWidth() int
}

// ToolState is the plain ToolSource held by the surrounding application.
type ToolState struct {
	Tool     Tool
	PenWidth int
}

// ActiveTool returns the selected tool.
func (t *ToolState) ActiveTool() Tool { return t.Tool }

// ActivePenWidth returns the selected pen width.
func (t *ToolState) ActivePenWidth() int { return t.PenWidth }

// SetPenWidth selects w if it is one of allowed.
func (t *ToolState) SetPenWidth(w int, allowed []int) error {
	if !slices.Contains(allowed, w) {
		return fmt.Errorf("pen width %d: %w", w, ErrInvalidPenWidth)
	}
	t.PenWidth = w
	return nil
}

// MaskPainter is a freehand pen/eraser surface over a background image.
// Strokes are recorded in document space: the image's natural pixel grid,
// independent of display scale.
//
// Pointer down opens a stroke, moves append to it, and pointer up or
// leaving the image closes it. setLines receives a snapshot of all strokes
// whenever a stroke closes, or on Undo and Reset.
type MaskPainter struct {
	cfg      MaskConfig
	tools    ToolSource
	setLines func([]Stroke)

	stage *Stage
	doc   *MaskDocument
	layer *PaintLayer

	background *ebiten.Image
	base       image.Image

	docW, docH       float64
	canvasW, canvasH float64
	viewport         Viewport

	pointerID int
	hovered   bool
	cursor    Point
	layerOK   bool

	disposed bool
}

// NewMaskPainter creates an empty painter. tools must not be nil;
// setLines may be nil.
func NewMaskPainter(cfg MaskConfig, tools ToolSource, setLines func([]Stroke)) *MaskPainter {
	if tools == nil {
		panic("posekit: NewMaskPainter requires a ToolSource")
	}
	p := &MaskPainter{
		cfg:      cfg,
		tools:    tools,
		setLines: setLines,
		stage:    NewStage(),
		doc:      NewMaskDocument(nil),
	}
	p.stage.Add(p)
	return p
}

// Stage returns the painter's input stage.
func (p *MaskPainter) Stage() *Stage {
	return p.stage
}

// Document returns the painter's stroke document.
func (p *MaskPainter) Document() *MaskDocument {
	return p.doc
}

// Strokes returns a snapshot of all strokes.
func (p *MaskPainter) Strokes() []Stroke {
	return p.doc.Strokes()
}

// Viewport returns the current document→canvas mapping.
func (p *MaskPainter) Viewport() Viewport {
	return p.viewport
}

// Ready reports whether document and canvas dimensions are both known.
func (p *MaskPainter) Ready() bool {
	return p.docW > 0 && p.docH > 0 && p.canvasW > 0 && p.canvasH > 0
}

// SetStrokes replaces the document, for example with lines that arrived
// from the backend after mount. An open stroke is discarded.
func (p *MaskPainter) SetStrokes(strokes []Stroke) {
	if p.disposed {
		return
	}
	p.releaseCapture()
	p.doc = NewMaskDocument(strokes)
	p.layerOK = false
}

// SetImage sets the background image; its bounds define document space.
func (p *MaskPainter) SetImage(img image.Image) {
	if img == nil {
		return
	}
	p.background = ebiten.NewImageFromImage(img)
	b := img.Bounds()
	p.SetImageSize(b.Dx(), b.Dy())
}

// SetImageSize records the document's natural dimensions.
func (p *MaskPainter) SetImageSize(w, h int) {
	if float64(w) != p.docW || float64(h) != p.docH {
		p.disposeLayer()
	}
	p.docW, p.docH = float64(w), float64(h)
	Logger().Info("mask image loaded", "width", w, "height", h)
	p.relayout()
}

// SetMask sets the existing mask composited beneath all strokes.
func (p *MaskPainter) SetMask(img image.Image) {
	p.base = img
	p.layerOK = false
}

// SetCanvasSize sets the display area size.
func (p *MaskPainter) SetCanvasSize(w, h float64) {
	p.canvasW, p.canvasH = w, h
	p.relayout()
}

func (p *MaskPainter) relayout() {
	if !p.Ready() {
		return
	}
	vp, err := FitViewport(p.canvasW, p.canvasH, p.docW, p.docH)
	if err != nil {
		return
	}
	p.viewport = vp
	p.stage.SetViewport(vp)
}

func (p *MaskPainter) docRect() Rect {
	return Rect{Width: p.docW, Height: p.docH}
}

// penWidth returns the tool source's width, or the configured default when
// it is not one of the allowed sizes. ok is false when the default was
// substituted.
func (p *MaskPainter) penWidth() (w int, ok bool) {
	w = p.tools.ActivePenWidth()
	if len(p.cfg.PenWidths) > 0 && !slices.Contains(p.cfg.PenWidths, w) {
		return p.cfg.DefaultPenWidth, false
	}
	return w, true
}

// --- Target implementation ---

// HitTest reports whether (x, y), in document space, is on the image.
func (p *MaskPainter) HitTest(x, y float64) bool {
	return !p.disposed && p.Ready() && p.docRect().Contains(x, y)
}

// PointerDown opens a stroke at the pointer.
func (p *MaskPainter) PointerDown(ev PointerEvent) {
	if p.disposed || !p.Ready() {
		return
	}
	if ev.Kind.capturable() {
		p.stage.CapturePointer(ev.ID, p)
	}
	p.pointerID = ev.ID
	tool := p.tools.ActiveTool()
	width, ok := p.penWidth()
	if !ok {
		Logger().Warn("pen width not in allowed set", "width", p.tools.ActivePenWidth(), "default", width)
	}
	p.doc.Begin(tool, width, ev.X, ev.Y)
	p.cursor = ev.Point()
	Logger().Debug("stroke begin", "tool", tool, "width", width, "x", ev.X, "y", ev.Y)
}

// PointerMove appends to the open stroke. A move outside the image closes
// the stroke.
func (p *MaskPainter) PointerMove(ev PointerEvent) {
	if p.disposed {
		return
	}
	p.cursor = ev.Point()
	if !p.doc.Open() || ev.ID != p.pointerID {
		return
	}
	if !p.docRect().Contains(ev.X, ev.Y) {
		p.finishStroke()
		return
	}
	p.doc.Append(ev.X, ev.Y)
}

// PointerUp closes the open stroke.
func (p *MaskPainter) PointerUp(ev PointerEvent) {
	if p.disposed || ev.ID != p.pointerID {
		return
	}
	p.finishStroke()
}

// PointerEnter shows the brush cursor.
func (p *MaskPainter) PointerEnter(ev PointerEvent) {
	p.hovered = true
	p.cursor = ev.Point()
}

// PointerLeave hides the brush cursor and closes any open stroke.
func (p *MaskPainter) PointerLeave(PointerEvent) {
	p.hovered = false
	if !p.disposed {
		p.finishStroke()
	}
}

func (p *MaskPainter) finishStroke() {
	p.releaseCapture()
	if !p.doc.End() {
		return
	}
	if s, ok := p.doc.Last(); ok {
		Logger().Debug("stroke end", "tool", s.Tool, "points", s.Len())
	}
	p.emit()
}

func (p *MaskPainter) releaseCapture() {
	if p.stage.Captured(p.pointerID) == p {
		p.stage.ReleasePointer(p.pointerID)
	}
}

func (p *MaskPainter) emit() {
	if p.setLines != nil {
		p.setLines(p.doc.Strokes())
	}
}

// Undo removes the last stroke. It reports false, and emits nothing, on an
// empty document.
func (p *MaskPainter) Undo() bool {
	if p.disposed || !p.doc.Undo() {
		return false
	}
	p.releaseCapture()
	p.emit()
	return true
}

// Reset removes every stroke. It reports false, and emits nothing, on an
// empty document.
func (p *MaskPainter) Reset() bool {
	if p.disposed || !p.doc.Reset() {
		return false
	}
	p.releaseCapture()
	p.emit()
	return true
}

// Update processes one frame of input.
func (p *MaskPainter) Update() error {
	if p.disposed {
		return nil
	}
	p.stage.Update()
	return nil
}

func (p *MaskPainter) ensureLayer() *PaintLayer {
	if p.layer == nil {
		p.layer = NewPaintLayer(int(p.docW), int(p.docH), p.cfg.PenColor, p.cfg.EraserColor)
		p.layerOK = false
	}
	if !p.layerOK {
		p.layer.SetBase(p.base)
		p.layerOK = true
	}
	p.layer.Sync(p.doc)
	return p.layer
}

func (p *MaskPainter) disposeLayer() {
	if p.layer != nil {
		p.layer.Dispose()
		p.layer = nil
	}
}

// Draw renders the background, the painted layer and the open stroke.
// Nothing is drawn until Ready.
func (p *MaskPainter) Draw(dst *ebiten.Image) {
	if p.disposed || !p.Ready() {
		return
	}
	start := time.Now()
	vp := p.viewport
	m := vp.Matrix()

	if p.background != nil {
		var op ebiten.DrawImageOptions
		op.GeoM = geoM(m)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(p.background, &op)
	}

	layer := p.ensureLayer()
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m)
	op.ColorScale.ScaleAlpha(float32(p.cfg.LayerAlpha))
	dst.DrawImage(layer.Image(), &op)

	live := 0
	if p.doc.Open() {
		p.doc.each(func(i int, s *Stroke) {
			if i != p.doc.Len()-1 {
				return
			}
			live = s.Len()
			c := layer.strokeColor(s.Tool)
			drawStroke(dst, s, m, vp.Ratio, c.WithAlpha(c.A*p.cfg.LayerAlpha))
		})
	}

	if p.hovered {
		w, _ := p.penWidth()
		r := float64(w) * vp.Ratio / 2
		strokeCircle(dst, vp.ToDisplay(p.cursor), r, 1, ColorWhite)
	}

	debugLog(debugStats{
		widget:   "mask",
		drawTime: time.Since(start),
		strokes:  p.doc.Len(),
		livePts:  live,
	})
}

// Commit rasterizes the document at native resolution.
func (p *MaskPainter) Commit() (*image.RGBA, error) {
	return p.ToRaster()
}

// Export rasterizes the document and encodes it to w.
func (p *MaskPainter) Export(w io.Writer, format Format) error {
	img, err := p.ToRaster()
	if err != nil {
		return err
	}
	return EncodeImage(w, img, format)
}

// ToRaster composites the existing mask and every stroke, in order, into a
// new image at the document's native resolution.
func (p *MaskPainter) ToRaster() (*image.RGBA, error) {
	if p.docW <= 0 || p.docH <= 0 {
		return nil, ErrNotReady
	}
	return RasterizeMask(int(p.docW), int(p.docH), p.base, p.doc.Strokes(), p.cfg.PenColor, p.cfg.EraserColor)
}

// Dispose releases any captured pointer, discards the open stroke without
// emitting, and frees GPU images.
func (p *MaskPainter) Dispose() {
	if p.disposed {
		return
	}
	p.releaseCapture()
	if p.doc.Open() {
		p.doc.Undo()
	}
	p.stage.Dispose()
	p.disposeLayer()
	p.setLines = nil
	p.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (p *MaskPainter) IsDisposed() bool {
	return p.disposed
}
