// Package heat owns the accumulated keystroke intensity grid and the color
// maps used to paint it.
package heat

import (
	"math"

	"github.com/san-kum/keyheat/internal/layout"
)

// Margin of grid cells kept around the layout bounding box, in key units, so
// kernel tails on edge keys are not clipped.
const margin = 1.0

// Field is a dense intensity grid over the keyboard's bounding box. Cell
// values are non-negative and only ever grow; Reset is the single exception
// and runs at construction time.
type Field struct {
	originX, originY float64 // key-unit coordinates of cell (0, 0)
	cellSize         float64 // key units per cell edge
	w, h             int
	sigma            float64 // kernel standard deviation, key units
	cells            []float64
}

// NewField builds an empty field covering the keymap plus a margin.
// cellsPerUnit sets the grid granularity; sigma is the Gaussian kernel
// standard deviation in key units (derived from the home-row pitch by the
// caller, one global value for the whole layout).
func NewField(km *layout.Keymap, cellsPerUnit int, sigma float64) *Field {
	if cellsPerUnit < 1 {
		cellsPerUnit = 1
	}
	x0, y0, x1, y1 := km.Bounds()
	x0 -= margin
	y0 -= margin
	x1 += margin
	y1 += margin

	cellSize := 1.0 / float64(cellsPerUnit)
	w := int(math.Ceil((x1 - x0) / cellSize))
	h := int(math.Ceil((y1 - y0) / cellSize))

	f := &Field{
		originX:  x0,
		originY:  y0,
		cellSize: cellSize,
		w:        w,
		h:        h,
		sigma:    sigma,
		cells:    make([]float64, w*h),
	}
	f.Reset()
	return f
}

// Accumulate adds one keystroke's worth of heat centered on the key's visual
// center. Wide keys heat around their true center; sigma does not scale with
// key width.
func (f *Field) Accumulate(k *layout.Key) {
	f.deposit(k.CenterX(), k.CenterY())
}

// deposit adds a Gaussian blob of unit weight at (cx, cy), touching only
// cells within three standard deviations of the center.
func (f *Field) deposit(cx, cy float64) {
	reach := 3 * f.sigma
	i0 := f.col(cx - reach)
	i1 := f.col(cx + reach)
	j0 := f.row(cy - reach)
	j1 := f.row(cy + reach)

	inv := 1.0 / (2 * f.sigma * f.sigma)
	r2 := reach * reach
	for j := j0; j <= j1; j++ {
		y := f.originY + (float64(j)+0.5)*f.cellSize
		dy := y - cy
		for i := i0; i <= i1; i++ {
			x := f.originX + (float64(i)+0.5)*f.cellSize
			dx := x - cx
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			f.cells[j*f.w+i] += math.Exp(-d2 * inv)
		}
	}
}

// Reset zeroes every cell.
func (f *Field) Reset() {
	for i := range f.cells {
		f.cells[i] = 0
	}
}

func (f *Field) col(x float64) int {
	return clamp(int(math.Floor((x-f.originX)/f.cellSize)), 0, f.w-1)
}

func (f *Field) row(y float64) int {
	return clamp(int(math.Floor((y-f.originY)/f.cellSize)), 0, f.h-1)
}

// Value returns the cell value at column i, row j.
func (f *Field) Value(i, j int) float64 {
	return f.cells[j*f.w+i]
}

// Sample returns the value of the cell containing the key-unit point (x, y).
func (f *Field) Sample(x, y float64) float64 {
	return f.cells[f.row(y)*f.w+f.col(x)]
}

// Width returns the grid width in cells.
func (f *Field) Width() int { return f.w }

// Height returns the grid height in cells.
func (f *Field) Height() int { return f.h }

// CellSize returns the edge length of one cell in key units.
func (f *Field) CellSize() float64 { return f.cellSize }

// Origin returns the key-unit coordinates of the grid's top-left corner.
func (f *Field) Origin() (x, y float64) { return f.originX, f.originY }

// Sigma returns the kernel standard deviation in key units.
func (f *Field) Sigma() float64 { return f.sigma }

// Total returns the summed intensity of every cell.
func (f *Field) Total() float64 {
	sum := 0.0
	for _, v := range f.cells {
		sum += v
	}
	return sum
}

// Max returns the largest cell value, used by the renderer to normalize the
// color scale.
func (f *Field) Max() float64 {
	max := 0.0
	for _, v := range f.cells {
		if v > max {
			max = v
		}
	}
	return max
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
