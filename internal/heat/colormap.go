package heat

import (
	"fmt"
	"sort"
)

// Colormap maps a normalized intensity in [0, 1] to a color by linear
// interpolation through fixed gradient stops.
type Colormap struct {
	Name  string
	stops []stop
}

type stop struct {
	t       float64
	r, g, b uint8
}

// At returns the interpolated color for t, clamped to [0, 1].
func (c *Colormap) At(t float64) (r, g, b uint8) {
	if t <= c.stops[0].t {
		s := c.stops[0]
		return s.r, s.g, s.b
	}
	last := c.stops[len(c.stops)-1]
	if t >= last.t {
		return last.r, last.g, last.b
	}
	for i := 1; i < len(c.stops); i++ {
		if t <= c.stops[i].t {
			a, b2 := c.stops[i-1], c.stops[i]
			f := (t - a.t) / (b2.t - a.t)
			return lerp(a.r, b2.r, f), lerp(a.g, b2.g, f), lerp(a.b, b2.b, f)
		}
	}
	return last.r, last.g, last.b
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + f*(float64(b)-float64(a)))
}

var colormaps = map[string]*Colormap{
	"coolwarm": {Name: "coolwarm", stops: []stop{
		{0.0, 59, 76, 192},
		{0.5, 221, 221, 221},
		{1.0, 180, 4, 38},
	}},
	"hot": {Name: "hot", stops: []stop{
		{0.0, 10, 0, 0},
		{0.4, 230, 0, 0},
		{0.8, 255, 210, 0},
		{1.0, 255, 255, 255},
	}},
	"cool": {Name: "cool", stops: []stop{
		{0.0, 0, 255, 255},
		{1.0, 255, 0, 255},
	}},
	"seismic": {Name: "seismic", stops: []stop{
		{0.0, 0, 0, 76},
		{0.25, 0, 0, 255},
		{0.5, 255, 255, 255},
		{0.75, 255, 0, 0},
		{1.0, 128, 0, 0},
	}},
	"ylgnbu": {Name: "ylgnbu", stops: []stop{
		{0.0, 255, 255, 217},
		{0.35, 65, 182, 196},
		{0.7, 34, 94, 168},
		{1.0, 8, 29, 88},
	}},
}

// ByName returns the named colormap.
func ByName(name string) (*Colormap, error) {
	c, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("heat: unknown colormap %q (available: %v)", name, Names())
	}
	return c, nil
}

// Names lists the available colormaps in sorted order.
func Names() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
