// Package audio synthesizes an optional per-keystroke click, pitched by
// keyboard row, over the default output device.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 256

	// Envelope decay per sample; roughly a 60 ms click tail.
	decay = 0.9985
)

// Synth is a tiny monophonic click generator: a triangle oscillator with an
// exponential decay envelope, softened by a one-pole low pass filter.
type Synth struct {
	stream *portaudio.Stream

	mu   sync.Mutex
	freq float64
	env  float64

	phase       float64
	filterState float64

	Active bool
}

func NewSynth() *Synth {
	return &Synth{freq: 440}
}

func (s *Synth) Start() error {
	portaudio.Initialize()

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		return fmt.Errorf("audio: opening output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: starting stream: %w", err)
	}

	s.stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// Trigger retunes the oscillator and restarts the envelope. Called from the
// driver goroutine; the audio callback picks the values up under the lock.
func (s *Synth) Trigger(freq float64) {
	s.mu.Lock()
	s.freq = freq
	s.env = 1.0
	s.mu.Unlock()
}

// Triangle wave: smooth, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) process(out [][]float32) {
	s.mu.Lock()
	freq := s.freq
	env := s.env
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	const vol = 0.3

	for i := 0; i < len(out[0]); i++ {
		env *= decay
		sample := triangle(s.phase) * env

		var filtered float64
		filtered, s.filterState = lpf(sample, 2500, dt, s.filterState)

		v := float32(filtered * vol)
		out[0][i] = v
		out[1][i] = v

		s.phase += freq * dt
	}

	s.mu.Lock()
	s.env = env
	s.mu.Unlock()
}

// PitchForRow maps a key's vertical position to a click frequency: lower
// rows click lower. rows are counted from the top of the board.
func PitchForRow(y, maxY float64) float64 {
	if maxY <= 0 {
		return 440
	}
	// One octave span across the board, top row at 660 Hz.
	return 660 * math.Pow(2, -y/maxY)
}
