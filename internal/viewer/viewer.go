// Package viewer opens a desktop window that shows the scene and lets the
// user orbit it with the mouse.
package viewer

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"surface-renderer/internal/camera"
	"surface-renderer/internal/logging"
	"surface-renderer/internal/scene"
	"surface-renderer/internal/session"
)

// Options configures the window.
type Options struct {
	Title       string
	Width       int
	Height      int
	Supersample int
	Damping     bool
	HUD         bool
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(sc *scene.Scene, cam camera.Perspective, opts Options) error {
	g := &game{
		s:   session.New(sc, cam, opts.Width, opts.Height, opts.Supersample, opts.Damping),
		hud: opts.HUD,
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	s   *session.Session
	hud bool

	img *ebiten.Image

	dragging bool
	lastX    int
	lastY    int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.s.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}

	x, y := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right {
		if g.dragging {
			mode := session.Rotate
			if right {
				mode = session.Pan
			}
			g.s.Drag(mode, float64(x-g.lastX), float64(y-g.lastY))
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.s.Zoom(wy)
	}

	g.s.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.s.Frame()
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		logging.Logger().Debug("viewport resized", "width", w, "height", h)
	}

	// every pixel is opaque, so NRGBA bytes are already premultiplied
	g.img.WritePixels(frame.Pix)
	screen.DrawImage(g.img, nil)

	if g.hud {
		cam := g.s.Camera()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"%.0f FPS  drag: orbit  right-drag: pan  wheel: zoom  R: reset  H: hud\ncamera (%.2f, %.2f, %.2f)",
			ebiten.ActualFPS(), cam.Position[0], cam.Position[1], cam.Position[2]))
	}
}

// Layout tracks the window size so the render target and camera aspect
// follow resizes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.s.Resize(outsideWidth, outsideHeight)
	return g.s.Size()
}
