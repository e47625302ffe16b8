// Package session records typing activity during a capture run: per-key
// press counts, inter-keystroke intervals, and finger travel distance.
package session

import (
	"time"

	"github.com/san-kum/keyheat/internal/layout"
)

// Recorder accumulates per-session typing statistics. Owned by the single
// driver goroutine; no locking.
type Recorder struct {
	km        *layout.Keymap
	counts    map[string]int
	intervals []float64
	last      time.Time
	total     int
	distance  float64

	now func() time.Time
}

// NewRecorder returns an empty recorder for the given keymap.
func NewRecorder(km *layout.Keymap) *Recorder {
	return &Recorder{
		km:     km,
		counts: make(map[string]int),
		now:    time.Now,
	}
}

// Record registers one resolved keystroke. shift is the shift key held for a
// shifted character, or nil.
func (r *Recorder) Record(k *layout.Key, shift *layout.Key) {
	r.counts[k.Lower]++
	if shift != nil {
		r.counts[shift.Lower]++
	}
	r.total++
	r.distance += r.km.HomeDistance(k)

	t := r.now()
	if !r.last.IsZero() {
		r.intervals = append(r.intervals, t.Sub(r.last).Seconds())
	}
	r.last = t
}

// Counts returns presses per key, keyed by the key's unshifted character.
func (r *Recorder) Counts() map[string]int { return r.counts }

// Intervals returns the seconds elapsed between successive keystrokes.
func (r *Recorder) Intervals() []float64 { return r.intervals }

// Total returns the number of recorded keystrokes (shift presses excluded).
func (r *Recorder) Total() int { return r.total }

// Distance returns the cumulative finger travel distance in key units,
// measured from each struck key to the nearest home-row key.
func (r *Recorder) Distance() float64 { return r.distance }
