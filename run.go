package posekit

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Widget is an editor that can be hosted by Game: PoseEditor, MaskPainter
// and BoxAdjuster all implement it.
type Widget interface {
	Update() error
	Draw(dst *ebiten.Image)
	SetCanvasSize(w, h float64)
	Stage() *Stage
	Dispose()
}

// undoer is implemented by widgets with an undo history.
type undoer interface {
	Undo() bool
	Reset() bool
}

// ErrQuit is returned from Game.Update when the user closes the editor
// with Escape.
var ErrQuit = errors.New("posekit: quit")

// RunConfig configures the window hosting a widget.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// OnQuit runs once when the window closes normally, before the widget
	// is disposed. Use it to commit the widget's document.
	OnQuit func()
}

// Game adapts a Widget to ebiten.Game. Key bindings: Ctrl+Z undo,
// Ctrl+Backspace reset, F2 screenshot, Escape quit.
type Game struct {
	widget Widget
	cfg    RunConfig
	fps    *fpsOverlay
	w, h   int
}

// NewGame wraps widget for ebiten.RunGame.
func NewGame(widget Widget, cfg RunConfig) *Game {
	g := &Game{widget: widget, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if u, ok := g.widget.(undoer); ok && ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyZ):
			u.Undo()
		case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
			u.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.widget.Stage().Screenshot("capture")
	}
	if g.fps != nil {
		g.fps.update(float64(frameDelta()))
	}
	return g.widget.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.widget.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.widget.Stage().FlushScreenshots(screen)
}

// Layout implements ebiten.Game. The canvas follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.widget.SetCanvasSize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window hosting widget and blocks until it closes. The widget
// is disposed on return.
func Run(widget Widget, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: window size %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidDimension)
	}
	defer widget.Dispose()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(NewGame(widget, cfg))
	if err != nil && !errors.Is(err, ErrQuit) {
		return err
	}
	if cfg.OnQuit != nil {
		cfg.OnQuit()
	}
	return nil
}

// fpsOverlay displays the current FPS and TPS, refreshed every ~0.5s.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
