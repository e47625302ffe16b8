package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const miniLayout = `
<kbd name="mini">
  <row id="num">
    <key lower="1"><pos><x>0</x><y>0</y></pos></key>
    <key lower="2" upper="@"><pos><x>1</x><y>0</y></pos></key>
  </row>
  <row id="home">
    <key lower="a"><pos><x>0</x><y>1</y></pos></key>
    <key lower="s"><pos><x>1</x><y>1</y></pos></key>
    <key lower="d"><pos><x>2</x><y>1</y></pos></key>
  </row>
  <row id="bottom">
    <key lower="shift_l"><pos><x>0</x><y>2</y></pos></key>
    <key lower="space" width="5"><pos><x>1.5</x><y>2</y></pos></key>
    <key lower="shift_r"><pos><x>7</x><y>2</y></pos></key>
  </row>
</kbd>`

func mustBuild(t *testing.T, src string) *Keymap {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := Build(doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestBuild_ResolvesDeclaredCharacters(t *testing.T) {
	m := mustBuild(t, miniLayout)

	tests := []struct {
		ch    string
		lower string
	}{
		{"a", "a"},
		{"A", "a"}, // default letter shift
		{"s", "s"},
		{"D", "d"},
		{"1", "1"},
		{"!", "1"}, // default punctuation shift
		{"2", "2"},
		{"@", "2"}, // explicit upper
		{"space", "space"},
		{"shift_l", "shift_l"},
	}

	for _, tt := range tests {
		t.Run(tt.ch, func(t *testing.T) {
			k, ok := m.Lookup(tt.ch)
			if !ok {
				t.Fatalf("Lookup(%q) missed", tt.ch)
			}
			if k.Lower != tt.lower {
				t.Errorf("Lookup(%q).Lower = %q, want %q", tt.ch, k.Lower, tt.lower)
			}
		})
	}
}

func TestBuild_MissIsNotAnError(t *testing.T) {
	m := mustBuild(t, miniLayout)

	for _, ch := range []string{"z", "?", "\x01"} {
		if _, ok := m.Lookup(ch); ok {
			t.Errorf("Lookup(%q) = hit, want miss", ch)
		}
	}
}

func TestBuild_MissingHomeRow(t *testing.T) {
	src := `<kbd name="x"><row id="top">
	  <key lower="a"><pos><x>0</x><y>0</y></pos></key>
	</row></kbd>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := Build(doc)
	if !errors.Is(err, ErrMissingHomeRow) {
		t.Fatalf("Build = %v, want ErrMissingHomeRow", err)
	}
	if m != nil {
		t.Error("Build returned a keymap alongside the error")
	}
}

func TestBuild_DuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		rows string
	}{
		{
			"same lower twice",
			`<key lower="a"><pos><x>0</x><y>0</y></pos></key>
			 <key lower="a"><pos><x>1</x><y>0</y></pos></key>`,
		},
		{
			"upper collides with another lower",
			`<key lower="a" upper="b"><pos><x>0</x><y>0</y></pos></key>
			 <key lower="b"><pos><x>1</x><y>0</y></pos></key>`,
		},
		{
			"default shift collides with explicit upper",
			`<key lower="1"><pos><x>0</x><y>0</y></pos></key>
			 <key lower="2" upper="!"><pos><x>1</x><y>0</y></pos></key>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(`<kbd name="x"><row id="home">` + tt.rows + `</row></kbd>`))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := Build(doc); !errors.Is(err, ErrDuplicateKey) {
				t.Errorf("Build = %v, want ErrDuplicateKey", err)
			}
		})
	}
}

func TestBuild_MalformedKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want error
	}{
		{"missing lower", `<key><pos><x>0</x><y>0</y></pos></key>`, ErrMissingLower},
		{"missing pos", `<key lower="a"></key>`, ErrBadPosition},
		{"non-numeric x", `<key lower="a"><pos><x>left</x><y>0</y></pos></key>`, ErrBadPosition},
		{"multi-char lower", `<key lower="abc"><pos><x>0</x><y>0</y></pos></key>`, ErrBadCharacter},
		{"multi-char upper", `<key lower="a" upper="ABC"><pos><x>0</x><y>0</y></pos></key>`, ErrBadCharacter},
		{"shift with upper", `<key lower="shift_l" upper="X"><pos><x>0</x><y>0</y></pos></key>`, ErrShiftedShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(`<kbd name="x"><row id="home">` + tt.key + `</row></kbd>`))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, err := Build(doc); !errors.Is(err, tt.want) {
				t.Errorf("Build = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLookup_Idempotent(t *testing.T) {
	m := mustBuild(t, miniLayout)

	first, ok := m.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) missed")
	}
	for i := 0; i < 10; i++ {
		again, ok := m.Lookup("a")
		if !ok || again != first {
			t.Fatalf("Lookup(a) call %d returned a different key", i)
		}
	}
}

func TestResolve_ControlCharacters(t *testing.T) {
	m := mustBuild(t, miniLayout)

	k, shifted, ok := m.Resolve(' ')
	if !ok || k.Lower != "space" || shifted {
		t.Errorf("Resolve(' ') = (%v, %v, %v), want space key unshifted", k, shifted, ok)
	}

	if _, _, ok := m.Resolve('\r'); ok {
		t.Error("Resolve('\\r') = hit, want miss (layout has no enter key)")
	}

	k, shifted, ok = m.Resolve('A')
	if !ok || k.Lower != "a" || !shifted {
		t.Errorf("Resolve('A') = (%v, %v, %v), want shifted hit on a", k, shifted, ok)
	}
}

func TestPositions_DeclarationOrder(t *testing.T) {
	m := mustBuild(t, miniLayout)

	want := []string{"1", "2", "a", "s", "d", "shift_l", "space", "shift_r"}
	got := m.Positions()
	if len(got) != len(want) {
		t.Fatalf("Positions() returned %d keys, want %d", len(got), len(want))
	}
	for i, k := range got {
		if k.Lower != want[i] {
			t.Errorf("Positions()[%d].Lower = %q, want %q", i, k.Lower, want[i])
		}
	}
}

func TestKeyGeometry(t *testing.T) {
	m := mustBuild(t, miniLayout)

	space, _ := m.Lookup("space")
	if space.Width != 5 {
		t.Errorf("space width = %v, want 5", space.Width)
	}
	if got := space.CenterX(); math.Abs(got-4.0) > 1e-12 {
		t.Errorf("space CenterX = %v, want 4.0", got)
	}

	a, _ := m.Lookup("a")
	if a.Width != 1 {
		t.Errorf("default width = %v, want 1", a.Width)
	}
	if !a.Home {
		t.Error("home-row key not marked Home")
	}
}

func TestHomePitch(t *testing.T) {
	m := mustBuild(t, miniLayout)
	// Home centers at 0.5, 1.5, 2.5 -> pitch 1.0.
	if got := m.HomePitch(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("HomePitch = %v, want 1.0", got)
	}
}

func TestShiftFor_OppositeHand(t *testing.T) {
	m := mustBuild(t, miniLayout)

	left, _ := m.Lookup("a") // left half of the board
	if s := m.ShiftFor(left); s == nil || s.Lower != "shift_r" {
		t.Errorf("ShiftFor(a) = %v, want shift_r", s)
	}

	// Bounds span x 0..8; key "2" sits left of center too.
	num, _ := m.Lookup("2")
	if s := m.ShiftFor(num); s == nil || s.Lower != "shift_r" {
		t.Errorf("ShiftFor(2) = %v, want shift_r", s)
	}
}

func TestHomeDistance(t *testing.T) {
	m := mustBuild(t, miniLayout)

	a, _ := m.Lookup("a")
	if d := m.HomeDistance(a); d != 0 {
		t.Errorf("HomeDistance(home key) = %v, want 0", d)
	}

	one, _ := m.Lookup("1")
	// Center (0.5, 0.5) vs nearest home center (0.5, 1.5).
	if d := m.HomeDistance(one); math.Abs(d-1.0) > 1e-12 {
		t.Errorf("HomeDistance(1) = %v, want 1.0", d)
	}
}
