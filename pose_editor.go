package posekit

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	xdraw "golang.org/x/image/draw"
)

// PoseEditor renders a background image, an optional translucent mask
// overlay and a skeleton whose joints can be dragged.
//
// Geometry may arrive in any order after construction: SetPose, SetImage
// (or SetImageSize), SetOverlay and SetCanvasSize. Until both the image
// dimensions and the canvas size are known the editor is not Ready and
// draws nothing.
type PoseEditor struct {
	cfg     PoseConfig
	setPose func(Pose)

	stage  *Stage
	pose   Pose
	points map[JointID]*DragPoint

	image      *ebiten.Image
	overlay    *ebiten.Image
	overlaySrc image.Image

	imgW, imgH       float64
	canvasW, canvasH float64
	viewport         Viewport

	hovered      JointID
	tooltipAlpha float64
	tooltipFade  *TweenGroup
	tooltip      *Label

	disposed bool
}

// NewPoseEditor creates an empty editor. setPose receives a full Pose
// snapshot on every joint position change; it may be nil.
func NewPoseEditor(cfg PoseConfig, setPose func(Pose)) *PoseEditor {
	return &PoseEditor{
		cfg:     cfg,
		setPose: setPose,
		stage:   NewStage(),
		points:  make(map[JointID]*DragPoint),
	}
}

// Stage returns the editor's input stage. Useful for injecting input.
func (e *PoseEditor) Stage() *Stage {
	return e.stage
}

// Pose returns the current snapshot.
func (e *PoseEditor) Pose() Pose {
	return e.pose
}

// Viewport returns the current image→canvas mapping.
func (e *PoseEditor) Viewport() Viewport {
	return e.viewport
}

// Ready reports whether image and canvas dimensions are both known.
func (e *PoseEditor) Ready() bool {
	return e.imgW > 0 && e.imgH > 0 && e.canvasW > 0 && e.canvasH > 0
}

// HoveredJoint returns the joint under the pointer, if any.
func (e *PoseEditor) HoveredJoint() (JointID, bool) {
	return e.hovered, e.hovered != ""
}

// ActiveJoint returns the joint being dragged, if any.
func (e *PoseEditor) ActiveJoint() (JointID, bool) {
	for id, p := range e.points {
		if p.Active() {
			return id, true
		}
	}
	return "", false
}

// SetJoints replaces the pose from the backend's joint mapping.
func (e *PoseEditor) SetJoints(m JointMap) {
	e.SetPose(MapBackendJointsToPose(m))
}

// SetPose replaces the edited pose. Existing drag points are moved without
// firing callbacks; points for joints no longer present are disposed. A
// joint being dragged keeps its dragged position.
func (e *PoseEditor) SetPose(p Pose) {
	if e.disposed {
		debugCheckDisposed(e.disposed, "PoseEditor", "SetPose")
		return
	}
	keep := make(map[JointID]bool, len(p.Joints))
	for _, j := range p.Joints {
		keep[j.ID] = true
		if dp, ok := e.points[j.ID]; ok {
			if dp.Active() {
				// The pointer owns the dragged joint until release.
				p = p.WithJointPosition(j.ID, dp.Position())
			} else {
				dp.SetPosition(j.Position)
			}
			continue
		}
		e.addPoint(j)
	}
	e.pose = p
	for id, dp := range e.points {
		if !keep[id] {
			dp.Dispose()
			delete(e.points, id)
			if e.hovered == id {
				e.hovered = ""
			}
		}
	}
	e.relayout()
	Logger().Info("pose received", "joints", len(p.Joints), "bones", len(p.Bones))
}

func (e *PoseEditor) addPoint(j Joint) {
	dp := NewDragPoint(string(j.ID), j.Position, e.cfg.JointRadius)
	id := j.ID
	dp.OnPositionUpdate = func(pos Point) { e.moveJoint(id, pos) }
	dp.OnHover = func(on bool) { e.hoverJoint(id, on) }
	dp.OnRelease = func(pos Point) {
		Logger().Debug("joint released", "joint", id, "x", pos.X, "y", pos.Y)
	}
	e.points[id] = dp
	e.stage.Add(dp)
}

// SetImage sets the background image; its bounds are the natural size.
func (e *PoseEditor) SetImage(img image.Image) {
	if img == nil {
		return
	}
	e.image = ebiten.NewImageFromImage(img)
	b := img.Bounds()
	e.SetImageSize(b.Dx(), b.Dy())
}

// SetImageSize records the natural image dimensions. This is the image
// "load event": before it, no fit ratio is computed.
func (e *PoseEditor) SetImageSize(w, h int) {
	e.imgW, e.imgH = float64(w), float64(h)
	Logger().Info("pose image loaded", "width", w, "height", h)
	e.relayout()
}

// SetOverlay sets the optional mask overlay. It is scaled to the image's
// natural size once that is known.
func (e *PoseEditor) SetOverlay(img image.Image) {
	e.overlaySrc = img
	e.overlay = nil
	e.relayout()
}

// SetCanvasSize sets the display area size.
func (e *PoseEditor) SetCanvasSize(w, h float64) {
	e.canvasW, e.canvasH = w, h
	e.relayout()
}

func (e *PoseEditor) relayout() {
	if !e.Ready() {
		return
	}
	vp, err := FitViewport(e.canvasW, e.canvasH, e.imgW, e.imgH)
	if err != nil {
		return
	}
	e.viewport = vp
	e.stage.SetViewport(vp)

	bounds := vp.ImageRect()
	radius := e.cfg.JointRadius / vp.Ratio
	for _, dp := range e.points {
		dp.Radius = radius
		dp.SetBounds(bounds)
	}

	if e.overlay == nil && e.overlaySrc != nil {
		e.overlay = ebiten.NewImageFromImage(scaleImage(e.overlaySrc, int(e.imgW), int(e.imgH)))
	}
}

// scaleImage resamples src to exactly w×h pixels.
func scaleImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// moveJoint folds one drag update into the pose and hands the full
// snapshot upward.
func (e *PoseEditor) moveJoint(id JointID, pos Point) {
	e.pose = e.pose.WithJointPosition(id, pos)
	if e.setPose != nil {
		e.setPose(e.pose)
	}
}

func (e *PoseEditor) hoverJoint(id JointID, on bool) {
	if on {
		e.hovered = id
		e.tooltipAlpha = 0
		e.tooltipFade = TweenValue(e, &e.tooltipAlpha, 1, float32(e.cfg.TooltipFade), ease.OutQuad)
		return
	}
	if e.hovered == id {
		e.hovered = ""
		e.tooltipAlpha = 0
		e.tooltipFade = nil
	}
}

// Commit returns the current pose in the backend's wire form.
func (e *PoseEditor) Commit() JointMap {
	return MapPoseToBackendJoints(e.pose)
}

// Update processes one frame of input and advances the tooltip fade.
func (e *PoseEditor) Update() error {
	if e.disposed {
		return nil
	}
	e.stage.Update()
	e.tooltipFade.Update(frameDelta())
	return nil
}

// highlighted reports whether a bone touches the hovered or dragged joint.
func (e *PoseEditor) highlighted(b Bone) bool {
	if e.hovered != "" && b.Touches(e.hovered) {
		return true
	}
	for _, id := range [2]JointID{b.From, b.To} {
		if dp, ok := e.points[id]; ok && dp.Active() {
			return true
		}
	}
	return false
}

// Draw renders the editor onto dst. Nothing is drawn until Ready.
func (e *PoseEditor) Draw(dst *ebiten.Image) {
	if e.disposed || !e.Ready() {
		return
	}
	start := time.Now()
	vp := e.viewport

	fillRect(dst, Rect{Width: e.canvasW, Height: e.canvasH}, e.cfg.BackgroundColor)

	if e.image != nil {
		var op ebiten.DrawImageOptions
		op.GeoM = geoM(vp.Matrix())
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(e.image, &op)
	}
	if e.overlay != nil {
		var op ebiten.DrawImageOptions
		op.GeoM = geoM(vp.Matrix())
		op.ColorScale.ScaleAlpha(float32(e.cfg.OverlayAlpha))
		dst.DrawImage(e.overlay, &op)
	}

	// Bones: outline beneath core. A dangling bone is skipped alone.
	idx := e.pose.Index()
	drawn, skipped := 0, 0
	for _, b := range e.pose.Bones {
		seg, err := resolveSegment(idx, b)
		if debugCheckSegment(err) {
			skipped++
			Logger().Warn("skipping bone", "from", b.From, "to", b.To, "err", err)
			continue
		}
		from, to := vp.ToDisplay(seg.From), vp.ToDisplay(seg.To)
		strokeSegment(dst, from, to, e.cfg.BoneOutlineWidth, e.cfg.BoneOutlineColor)
		core := e.cfg.BoneColor
		if e.highlighted(b) {
			core = e.cfg.BoneHighlightColor
		}
		strokeSegment(dst, from, to, e.cfg.BoneCoreWidth, core)
		drawn++
	}

	for _, j := range e.pose.Joints {
		dp, ok := e.points[j.ID]
		if !ok {
			continue
		}
		c := e.cfg.JointColor
		if dp.Active() || dp.Hovered() {
			c = e.cfg.JointActiveColor
		}
		center := vp.ToDisplay(dp.Position())
		fillCircle(dst, center, e.cfg.JointRadius, c)
		strokeCircle(dst, center, e.cfg.JointRadius, 1.5, e.cfg.BoneOutlineColor)
	}

	e.drawTooltip(dst)

	debugLog(debugStats{
		widget:   "pose",
		drawTime: time.Since(start),
		bones:    drawn,
		skipped:  skipped,
		joints:   len(e.pose.Joints),
	})
}

func (e *PoseEditor) drawTooltip(dst *ebiten.Image) {
	if e.hovered == "" || e.tooltipAlpha <= 0 {
		return
	}
	dp, ok := e.points[e.hovered]
	if !ok {
		return
	}
	if e.tooltip == nil {
		font, err := DefaultFont(e.cfg.FontSize)
		if err != nil {
			Logger().Warn("tooltip font unavailable", "err", err)
			return
		}
		e.tooltip = NewLabel(font, ColorWhite, Color{0, 0, 0, 0.7})
	}
	e.tooltip.SetText(JointDisplayName(e.hovered))

	p := e.viewport.ToDisplay(dp.Position())
	_, h := e.tooltip.Size()
	e.tooltip.Draw(dst, p.X+e.cfg.JointRadius+2, p.Y-e.cfg.JointRadius-h, e.tooltipAlpha)
}

// Dispose releases captured pointers, drops all drag points and silences
// setPose. Calling it mid-drag emits nothing further.
func (e *PoseEditor) Dispose() {
	if e.disposed {
		return
	}
	for id, dp := range e.points {
		dp.Dispose()
		delete(e.points, id)
	}
	e.stage.Dispose()
	if e.tooltip != nil {
		e.tooltip.Dispose()
		e.tooltip = nil
	}
	e.setPose = nil
	e.hovered = ""
	e.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (e *PoseEditor) IsDisposed() bool {
	return e.disposed
}

func (e *PoseEditor) String() string {
	return fmt.Sprintf("PoseEditor(%d joints, %d bones)", len(e.pose.Joints), len(e.pose.Bones))
}
