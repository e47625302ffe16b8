// Package analysis computes typing-rhythm statistics from the
// inter-keystroke interval series of a recorded session.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// CadenceSpectrum returns the power spectrum of the inter-keystroke interval
// series. The mean is removed first so the DC bin does not swamp the
// periodic structure, and the series is zero-padded to a power of two. The
// spectrum's x axis is in cycles per keystroke.
func CadenceSpectrum(intervals []float64) []float64 {
	if len(intervals) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range intervals {
		mean += v
	}
	mean /= float64(len(intervals))

	n := 1
	for n < len(intervals) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range intervals {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantCycle returns the strongest periodicity in the interval series as
// a keystroke count (e.g. 8 means the typing cadence swells every ~8
// keystrokes). Returns 0 when no periodicity stands out.
func DominantCycle(ps []float64) float64 {
	if len(ps) < 2 {
		return 0
	}
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	// Bin i corresponds to i cycles over 2*len(ps) samples.
	return float64(2*len(ps)) / float64(maxIdx)
}

// MeanInterval returns the average seconds between keystrokes, or 0 for an
// empty series.
func MeanInterval(intervals []float64) float64 {
	if len(intervals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range intervals {
		sum += v
	}
	return sum / float64(len(intervals))
}

// WordsPerMinute estimates typing speed from the mean interval, using the
// conventional five characters per word.
func WordsPerMinute(intervals []float64) float64 {
	mean := MeanInterval(intervals)
	if mean <= 0 {
		return 0
	}
	return 60.0 / mean / 5.0
}

// StdDevInterval returns the standard deviation of the interval series,
// a rough steadiness measure.
func StdDevInterval(intervals []float64) float64 {
	if len(intervals) < 2 {
		return 0
	}
	mean := MeanInterval(intervals)
	sum := 0.0
	for _, v := range intervals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(intervals)-1))
}
