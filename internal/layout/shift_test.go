package layout

import (
	"strings"
	"testing"
)

func TestDefaultShift_Pairs(t *testing.T) {
	table := DefaultShift()

	tests := []struct {
		lower, upper string
	}{
		{"a", "A"},
		{"z", "Z"},
		{"1", "!"},
		{"9", "("},
		{"/", "?"},
		{";", ":"},
		{"\\", "|"},
	}
	for _, tt := range tests {
		if got := table[tt.lower]; got != tt.upper {
			t.Errorf("DefaultShift[%q] = %q, want %q", tt.lower, got, tt.upper)
		}
	}
}

func TestDefaultShift_ReturnsCopy(t *testing.T) {
	a := DefaultShift()
	a["1"] = "X"
	if b := DefaultShift(); b["1"] != "!" {
		t.Error("editing one DefaultShift copy leaked into the next")
	}
}

func TestBuildShift_Override(t *testing.T) {
	// French-style layout: unshifted "&" produces "1" when shifted.
	table := DefaultShift()
	table["&"] = "1"

	src := `<kbd name="x"><row id="home">
	  <key lower="&amp;"><pos><x>0</x><y>0</y></pos></key>
	</row></kbd>`
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := BuildShift(doc, table)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	k, ok := m.Lookup("1")
	if !ok || k.Lower != "&" {
		t.Errorf("Lookup(1) after override = (%v, %v), want the & key", k, ok)
	}
}

func TestIsSpecial(t *testing.T) {
	for _, name := range []string{"space", "tab", "enter", "backspace", "capslock", "shift_l", "shift_r"} {
		if !IsSpecial(name) {
			t.Errorf("IsSpecial(%q) = false", name)
		}
	}
	if IsSpecial("a") || IsSpecial("meta") {
		t.Error("IsSpecial accepted a non-special name")
	}
}
