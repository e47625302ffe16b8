package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Gap between neighboring key caps, in key units.
const keyGap = 0.12

// drawBoard paints the static key outlines and labels. Cheap enough to
// repeat every frame, which keeps the draw path uniform.
func (a *App) drawBoard() {
	for _, k := range a.Keymap.Positions() {
		x := float32(a.px(k.X + keyGap/2))
		y := float32(a.py(k.Y + keyGap/2))
		w := float32((k.Width - keyGap) * a.scale)
		h := float32((1.0 - keyGap) * a.scale)

		edge := ColKey
		if k.Home {
			edge = ColHome
		}
		rl.DrawRectangleLinesEx(rl.NewRectangle(x, y, w, h), 2, edge)

		size := float32(a.scale) * 0.34
		label := k.Lower
		if k.Special() {
			// Special names get a smaller face so they fit the cap.
			size = float32(a.scale) * 0.2
		}
		text := rl.MeasureTextEx(a.Font, label, size, 1)
		cx := float32(a.px(k.CenterX())) - text.X/2
		cy := float32(a.py(k.CenterY())) - text.Y/2
		rl.DrawTextEx(a.Font, label, rl.NewVector2(cx, cy), size, 1, ColText)

		if k.Upper != "" && k.Upper != k.Lower {
			up := float32(a.scale) * 0.22
			rl.DrawTextEx(a.Font, k.Upper, rl.NewVector2(x+3, y+2), up, 1, ColTextDim)
		}
	}
}

// drawHeat paints the accumulated field as a color-mapped overlay atop the
// board. The field is read-only here; the color scale renormalizes against
// the running maximum so early sessions are not washed out.
func (a *App) drawHeat() {
	max := a.Field.Max()
	if max <= 0 {
		return
	}

	cell := a.Field.CellSize()
	ox, oy := a.Field.Origin()
	cw := int32(cell*a.scale) + 1
	ch := cw

	for j := 0; j < a.Field.Height(); j++ {
		for i := 0; i < a.Field.Width(); i++ {
			v := a.Field.Value(i, j)
			t := v / max
			if t < 0.01 {
				continue
			}
			r, g, b := a.Cmap.At(t)
			x := int32(a.px(ox + float64(i)*cell))
			y := int32(a.py(oy + float64(j)*cell))
			rl.DrawRectangle(x, y, cw, ch, rl.Fade(rl.NewColor(r, g, b, 255), 0.7))
		}
	}
}

func (a *App) drawHUD() {
	a.drawText("keyheat", 30, 14, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Keymap.Name), 140, 18, 16, ColTextDim)

	a.drawText(fmt.Sprintf("keystrokes %d", a.Rec.Total()), 30, int(rl.GetScreenHeight()-30), 14, ColTextDim)
	a.drawText(fmt.Sprintf("travel %.1f units", a.Rec.Distance()), 200, int(rl.GetScreenHeight()-30), 14, ColTextDim)
	a.drawText("type in the terminal :: ENTER to finish", int(rl.GetScreenWidth()-340), int(rl.GetScreenHeight()-30), 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int(rl.GetScreenWidth()-80), 18, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
