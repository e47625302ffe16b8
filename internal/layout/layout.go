package layout

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key is one physical key of the layout. Immutable after Build.
type Key struct {
	Lower string // unshifted character, or a special key name
	Upper string // shifted character; empty when the key has no shifted form
	Row   string
	X, Y  float64
	Width float64 // in key units, 1.0 for regular keys
	Home  bool
}

// CenterX returns the horizontal center of the key's visual footprint.
func (k *Key) CenterX() float64 { return k.X + k.Width/2 }

// CenterY returns the vertical center of the key's visual footprint.
func (k *Key) CenterY() float64 { return k.Y + 0.5 }

// Special reports whether the key is a named control key rather than a
// character-producing one.
func (k *Key) Special() bool { return IsSpecial(k.Lower) }

// Keymap maps every reachable character (unshifted and shifted forms) to its
// owning key. Built once by Build and read-only afterwards.
type Keymap struct {
	Name string

	keys   []*Key          // declaration order
	byChar map[string]*Key // produced character (or special name) -> key
	home   []*Key

	minX, minY, maxX, maxY float64
}

// Build constructs a Keymap from a parsed description using the default
// shift table.
func Build(doc *Document) (*Keymap, error) {
	return BuildShift(doc, DefaultShift())
}

// BuildShift constructs a Keymap with an explicit unshifted-to-shifted
// defaults table, allowing layouts to override the standard pairs.
func BuildShift(doc *Document, defaults map[string]string) (*Keymap, error) {
	m := &Keymap{
		Name:   doc.Name,
		byChar: make(map[string]*Key),
		minX:   math.Inf(1),
		minY:   math.Inf(1),
		maxX:   math.Inf(-1),
		maxY:   math.Inf(-1),
	}

	for _, row := range doc.Rows {
		homeRow := strings.EqualFold(row.ID, "home")
		for _, ke := range row.Keys {
			key, err := m.buildKey(row.ID, ke, defaults, homeRow)
			if err != nil {
				return nil, err
			}
			m.keys = append(m.keys, key)
			if homeRow {
				m.home = append(m.home, key)
			}
			m.minX = math.Min(m.minX, key.X)
			m.minY = math.Min(m.minY, key.Y)
			m.maxX = math.Max(m.maxX, key.X+key.Width)
			m.maxY = math.Max(m.maxY, key.Y+1)
		}
	}

	if len(m.home) == 0 {
		return nil, &Error{Wrapped: ErrMissingHomeRow}
	}
	return m, nil
}

func (m *Keymap) buildKey(rowID string, ke KeyElem, defaults map[string]string, home bool) (*Key, error) {
	if ke.Lower == "" {
		return nil, &Error{Row: rowID, Wrapped: ErrMissingLower}
	}

	// Special names are matched case-insensitively so "Space" and "sPace"
	// both work.
	lower := ke.Lower
	if IsSpecial(strings.ToLower(lower)) {
		lower = strings.ToLower(lower)
	} else if utf8.RuneCountInString(lower) != 1 {
		return nil, &Error{Row: rowID, Key: ke.Lower, Wrapped: ErrBadCharacter}
	}

	if ke.Pos == nil {
		return nil, &Error{Row: rowID, Key: lower, Wrapped: ErrBadPosition}
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(ke.Pos.X), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ke.Pos.Y), 64)
	if errX != nil || errY != nil {
		return nil, &Error{Row: rowID, Key: lower, Wrapped: ErrBadPosition}
	}

	upper := ke.Upper
	if upper != "" && strings.HasPrefix(lower, "shift") {
		return nil, &Error{Row: rowID, Key: lower, Wrapped: ErrShiftedShift}
	}
	if upper != "" && utf8.RuneCountInString(upper) != 1 {
		return nil, &Error{Row: rowID, Key: lower, Wrapped: ErrBadCharacter}
	}
	if upper == "" && !IsSpecial(lower) {
		if r, _ := utf8.DecodeRuneInString(lower); unicode.IsLetter(r) && unicode.IsLower(r) {
			upper = string(unicode.ToUpper(r))
		} else if def, ok := defaults[lower]; ok {
			upper = def
		}
		// Anything else simply has no shifted form.
	}

	width := ke.Width
	if width <= 0 {
		width = 1.0
	}

	key := &Key{
		Lower: lower,
		Upper: upper,
		Row:   rowID,
		X:     x,
		Y:     y,
		Width: width,
		Home:  home,
	}

	if err := m.register(rowID, lower, key); err != nil {
		return nil, err
	}
	if upper != "" && upper != lower {
		if err := m.register(rowID, upper, key); err != nil {
			return nil, err
		}
	}
	return key, nil
}

func (m *Keymap) register(rowID, ch string, key *Key) error {
	if _, taken := m.byChar[ch]; taken {
		return &Error{Row: rowID, Key: ch, Wrapped: ErrDuplicateKey}
	}
	m.byChar[ch] = key
	return nil
}

// Lookup resolves a produced character (or special key name) to its owning
// key. A false return is a normal miss, not an error.
func (m *Keymap) Lookup(ch string) (*Key, bool) {
	k, ok := m.byChar[ch]
	return k, ok
}

// Control characters delivered by a raw terminal, mapped to the special key
// that produces them.
var controlChars = map[rune]string{
	' ':    "space",
	'\t':   "tab",
	'\r':   "enter",
	'\n':   "enter",
	'\x7f': "backspace",
	'\b':   "backspace",
}

// Resolve maps a typed rune to its key, translating control characters to
// their special key first. shifted reports whether the rune is the key's
// shifted form (so the driver can heat the matching shift key too).
func (m *Keymap) Resolve(r rune) (key *Key, shifted bool, ok bool) {
	ch := string(r)
	if name, isCtrl := controlChars[r]; isCtrl {
		ch = name
	}
	k, ok := m.byChar[ch]
	if !ok {
		return nil, false, false
	}
	return k, ch == k.Upper && k.Upper != k.Lower, true
}

// Positions returns every key in declaration order, for drawing the static
// key outlines.
func (m *Keymap) Positions() []*Key {
	return m.keys
}

// HomeRow returns the keys of the reference row.
func (m *Keymap) HomeRow() []*Key {
	return m.home
}

// Bounds returns the layout bounding box in key units.
func (m *Keymap) Bounds() (x0, y0, x1, y1 float64) {
	return m.minX, m.minY, m.maxX, m.maxY
}

// HomePitch returns the average horizontal spacing between adjacent home-row
// key centers. It anchors kernel sizing so the heat blob stays proportionate
// whatever scale the layout uses. Falls back to 1.0 for a degenerate home
// row.
func (m *Keymap) HomePitch() float64 {
	if len(m.home) < 2 {
		return 1.0
	}
	centers := make([]float64, len(m.home))
	for i, k := range m.home {
		centers[i] = k.CenterX()
	}
	sort.Float64s(centers)
	total := 0.0
	for i := 1; i < len(centers); i++ {
		total += centers[i] - centers[i-1]
	}
	pitch := total / float64(len(centers)-1)
	if pitch <= 0 {
		return 1.0
	}
	return pitch
}

// HomeDistance returns the distance from the key's center to the nearest
// home-row key center.
func (m *Keymap) HomeDistance(k *Key) float64 {
	best := math.Inf(1)
	for _, h := range m.home {
		dx := k.CenterX() - h.CenterX()
		dy := k.CenterY() - h.CenterY()
		if d := math.Hypot(dx, dy); d < best {
			best = d
		}
	}
	return best
}

// ShiftFor returns the shift key a typist would hold to produce a shifted
// character on k: the right shift for keys on the left half of the board and
// vice versa. Returns nil when the layout declares no shift keys.
func (m *Keymap) ShiftFor(k *Key) *Key {
	mid := (m.minX + m.maxX) / 2
	name := "shift_l"
	if k.CenterX() < mid {
		name = "shift_r"
	}
	if s, ok := m.byChar[name]; ok {
		return s
	}
	// Single-shift layouts still get shift heat.
	for _, alt := range []string{"shift_l", "shift_r"} {
		if s, ok := m.byChar[alt]; ok {
			return s
		}
	}
	return nil
}
