// Package posekit provides interactive editing widgets for [Ebitengine]:
// a skeleton pose editor, a freehand mask painter and a bounding-box
// adjuster, all drawn over a background image fitted to the window.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop hosting one widget:
//
//	cfg := posekit.DefaultConfig()
//	editor := posekit.NewPoseEditor(cfg.Pose, func(p posekit.Pose) {
//		// hand the snapshot to your application state
//	})
//	editor.SetImage(img)
//	editor.SetJoints(joints)
//	posekit.Run(editor, posekit.RunConfig{
//		Title: "Pose", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call the widget's
// Update, Draw and SetCanvasSize directly.
//
// # Coordinates
//
// Every widget fits its image into the canvas with [ComputeFitRatio]: the
// image is never upscaled, and is centered on both axes. Joints and strokes
// are stored in image space (source pixels); bounding boxes are stored in
// display space and converted with [BoxAdjuster.SourceRect]. A [Viewport]
// holds the ratio and centering offset.
//
// # Input
//
// Each widget owns a [Stage] that turns mouse, touch and injected input into
// one [PointerEvent] shape, hit tests its [Target]s topmost-first, tracks
// hover and routes moves to a captured target while a mouse or pen button
// is held. Touch has no capture; moves keep going to the press target.
// [DragPoint] is the reusable draggable control point.
//
// # Geometry arriving late
//
// Widgets can be constructed before their image or backend geometry is
// available. Until both image and canvas sizes are known a widget is not
// Ready and draws nothing.
//
// # Callbacks and teardown
//
// Widgets never reach into shared state. They report through the callback
// given at construction (setPose, setLines, setBox) and stop calling it once
// disposed, even mid-drag.
//
// # Debugging and tests
//
// [SetDebugMode] turns malformed input, such as a bone whose joint is
// missing, into panics and prints per-frame draw timings. [SetLogger]
// enables structured logging via log/slog. [Stage.InjectDrag] and
// [LoadTestScript] drive widgets from tests without a window.
//
// [Ebitengine]: https://ebitengine.org
package posekit
