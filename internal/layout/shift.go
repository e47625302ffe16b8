package layout

import "unicode"

// Special key names recognized in layout descriptions. They are identified by
// name only and never resolve through the shift table.
var specialKeys = map[string]bool{
	"space":     true,
	"tab":       true,
	"enter":     true,
	"backspace": true,
	"capslock":  true,
	"shift_l":   true,
	"shift_r":   true,
}

// IsSpecial reports whether name (already lowercased) is a recognized
// special key.
func IsSpecial(name string) bool {
	return specialKeys[name]
}

// Punctuation shift pairs of the standard US layout. Keys that declare a
// 'lower' from this table and omit 'upper' fall back to these.
var punctuationShift = map[string]string{
	"`": "~",
	"1": "!",
	"2": "@",
	"3": "#",
	"4": "$",
	"5": "%",
	"6": "^",
	"7": "&",
	"8": "*",
	"9": "(",
	"0": ")",
	"-": "_",
	"=": "+",
	"[": "{",
	"]": "}",
	"\\": "|",
	";": ":",
	"'": "\"",
	",": "<",
	".": ">",
	"/": "?",
}

// DefaultShift returns a fresh copy of the default unshifted-to-shifted
// table: every lowercase letter maps to its uppercase form, punctuation
// follows the standard pairs. Callers may edit the copy before passing it to
// BuildShift to override defaults per layout.
func DefaultShift() map[string]string {
	table := make(map[string]string, len(punctuationShift)+26)
	for c := 'a'; c <= 'z'; c++ {
		table[string(c)] = string(unicode.ToUpper(c))
	}
	for lower, upper := range punctuationShift {
		table[lower] = upper
	}
	return table
}
