package gui

import (
	"context"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/keyheat/internal/audio"
	"github.com/san-kum/keyheat/internal/heat"
	"github.com/san-kum/keyheat/internal/layout"
	"github.com/san-kum/keyheat/internal/session"
)

// Theme Colors (dark board, warm home row)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColKey     = rl.NewColor(90, 170, 90, 255)   // Key outline green
	ColHome    = rl.NewColor(255, 140, 0, 255)   // Home row orange
	ColText    = rl.NewColor(200, 200, 200, 255) // Key labels
	ColTextDim = rl.NewColor(90, 90, 90, 255)    // Secondary labels, hints
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
)

// ErrNoDisplay indicates the window could not be created. There is no
// text-only fallback: a graphical surface is required.
var ErrNoDisplay = errors.New("gui: no graphical display available")

// Control characters as they arrive from a raw terminal. Raw mode disables
// signal generation, so Ctrl-C shows up as a plain byte here.
const (
	charEnter = '\r'
	charCtrlC = 0x03
	charCtrlD = 0x04
)

type Options struct {
	Width  int
	Height int
	FPS    int
	Output string
}

// App owns the display surface and drives the capture session: it pulls
// characters off the input channel, resolves them against the keymap, feeds
// the heat field, and redraws. Single-threaded; the only other
// goroutine is the input producer on the far side of the channel.
type App struct {
	Keymap *layout.Keymap
	Field  *heat.Field
	Cmap   *heat.Colormap
	Rec    *session.Recorder
	Synth  *audio.Synth // nil unless sound is enabled
	Font   rl.Font
	Output string

	// key-unit -> pixel transform
	scale      float64
	offX, offY float64

	maxY    float64 // board height in key units, for click pitch
	closing bool
	closed  bool
}

func initWindow(opts Options) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "keyheat")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if !rl.IsFontValid(font) {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp opens the display window and computes the layout-to-pixel
// transform. Fails with ErrNoDisplay when no graphical environment is
// available.
func NewApp(km *layout.Keymap, field *heat.Field, cmap *heat.Colormap, rec *session.Recorder, synth *audio.Synth, opts Options) (*App, error) {
	initWindow(opts)
	if !rl.IsWindowReady() {
		return nil, ErrNoDisplay
	}

	a := &App{
		Keymap: km,
		Field:  field,
		Cmap:   cmap,
		Rec:    rec,
		Synth:  synth,
		Font:   loadFont(),
		Output: opts.Output,
	}

	// Fit the field (layout plus margin) into the window, centered.
	const pad = 20.0
	ox, oy := field.Origin()
	wUnits := float64(field.Width()) * field.CellSize()
	hUnits := float64(field.Height()) * field.CellSize()

	sx := (float64(opts.Width) - 2*pad) / wUnits
	sy := (float64(opts.Height) - 2*pad) / hUnits
	a.scale = sx
	if sy < sx {
		a.scale = sy
	}
	a.offX = (float64(opts.Width)-wUnits*a.scale)/2 - ox*a.scale
	a.offY = (float64(opts.Height)-hUnits*a.scale)/2 - oy*a.scale

	_, _, _, maxY := km.Bounds()
	a.maxY = maxY

	return a, nil
}

// pixel transform helpers
func (a *App) px(x float64) float64 { return a.offX + x*a.scale }
func (a *App) py(y float64) float64 { return a.offY + y*a.scale }

// Run drives the session until the quit sentinel (Enter), a control
// character, context cancellation, or a window close. Characters are
// processed strictly in arrival order; each frame drains everything pending
// and redraws once.
func (a *App) Run(ctx context.Context, chars <-chan rune) error {
	for !a.closing && !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			a.closing = true
		default:
		}

	drain:
		for !a.closing {
			select {
			case c, ok := <-chars:
				if !ok {
					a.closing = true
				} else if c == charEnter || c == charCtrlC || c == charCtrlD {
					a.closing = true
				} else {
					a.handleChar(c)
				}
			default:
				break drain
			}
		}

		a.Draw()
	}
	return nil
}

// handleChar processes one keystroke: echo, resolve, accumulate, record.
// A lookup miss is a normal branch and is dropped silently.
func (a *App) handleChar(c rune) {
	if c >= 0x20 && c < 0x7f {
		fmt.Fprintf(os.Stdout, "%c", c)
	}

	key, shifted, ok := a.Keymap.Resolve(c)
	if !ok {
		return
	}

	a.Field.Accumulate(key)

	var shiftKey *layout.Key
	if shifted {
		// The shift key worked too; give it its share of heat.
		if shiftKey = a.Keymap.ShiftFor(key); shiftKey != nil {
			a.Field.Accumulate(shiftKey)
		}
	}
	a.Rec.Record(key, shiftKey)

	if a.Synth != nil && a.Synth.Active {
		a.Synth.Trigger(audio.PitchForRow(key.Y, a.maxY))
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawBoard()
	a.drawHeat()
	a.drawHUD()
	rl.EndDrawing()
}

// Close renders a final frame, persists it to the output path, and releases
// the window. Safe to call more than once; later calls are no-ops so it can
// sit in a defer on every exit path.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.Draw()
	img := rl.LoadImageFromScreen()
	ok := rl.ExportImage(*img, a.Output)
	rl.UnloadImage(img)
	rl.CloseWindow()

	if !ok {
		return fmt.Errorf("gui: writing %s failed", a.Output)
	}
	return nil
}
