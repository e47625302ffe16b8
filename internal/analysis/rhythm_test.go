package analysis

import (
	"math"
	"testing"
)

func TestCadenceSpectrum_PeriodicSeries(t *testing.T) {
	// Intervals oscillating with a period of 8 keystrokes.
	intervals := make([]float64, 64)
	for i := range intervals {
		intervals[i] = 0.25 + 0.1*math.Sin(2*math.Pi*float64(i)/8)
	}

	ps := CadenceSpectrum(intervals)
	if len(ps) != 32 {
		t.Fatalf("spectrum length = %d, want 32", len(ps))
	}

	cycle := DominantCycle(ps)
	if math.Abs(cycle-8) > 0.5 {
		t.Errorf("DominantCycle = %v, want ~8", cycle)
	}
}

func TestCadenceSpectrum_TooShort(t *testing.T) {
	if ps := CadenceSpectrum([]float64{0.2}); ps != nil {
		t.Errorf("spectrum of one interval = %v, want nil", ps)
	}
	if ps := CadenceSpectrum(nil); ps != nil {
		t.Errorf("spectrum of nil = %v, want nil", ps)
	}
}

func TestMeanInterval(t *testing.T) {
	tests := []struct {
		name      string
		intervals []float64
		want      float64
	}{
		{"empty", nil, 0},
		{"single", []float64{0.5}, 0.5},
		{"steady", []float64{0.2, 0.2, 0.2}, 0.2},
		{"mixed", []float64{0.1, 0.3}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeanInterval(tt.intervals); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MeanInterval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordsPerMinute(t *testing.T) {
	// 0.2s per keystroke = 5 chars/sec = 60 wpm.
	if got := WordsPerMinute([]float64{0.2, 0.2, 0.2}); math.Abs(got-60) > 1e-9 {
		t.Errorf("WordsPerMinute = %v, want 60", got)
	}
	if got := WordsPerMinute(nil); got != 0 {
		t.Errorf("WordsPerMinute(empty) = %v, want 0", got)
	}
}

func TestStdDevInterval(t *testing.T) {
	// Mean subtraction leaves a rounding residual, so compare with a
	// tolerance rather than exact zero.
	if got := StdDevInterval([]float64{0.2, 0.2, 0.2}); got > 1e-12 {
		t.Errorf("StdDev of steady series = %v, want ~0", got)
	}
	if got := StdDevInterval([]float64{0.1}); got != 0 {
		t.Errorf("StdDev of single interval = %v, want 0", got)
	}
	got := StdDevInterval([]float64{0.1, 0.3})
	want := math.Sqrt(0.02) // sample std dev of {0.1, 0.3}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", got, want)
	}
}
