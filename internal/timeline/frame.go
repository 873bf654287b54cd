package timeline

import (
	"errors"

	"github.com/san-kum/qcviz/internal/ease"
)

var (
	// ErrFrameRate indicates a frame rate below one frame per transition.
	ErrFrameRate = errors.New("timeline: frame rate must be at least 1")

	// ErrTooFewQubits indicates a two-qubit view over a smaller circuit.
	ErrTooFewQubits = errors.New("timeline: view requires at least 2 qubits")
)

// DefaultPalette is cycled by source step index.
var DefaultPalette = []string{"green", "blue", "red", "purple", "orange"}

const DefaultFrameRate = 20

// Frame is one resolved point of the output timeline.
type Frame[P any] struct {
	Index int
	// Step is the index of the step the frame transitions away from; hold
	// frames carry the final step's index.
	Step        int
	Payload     P
	Description string
	Color       string
	Hold        bool
}

// Config paces the timeline.
type Config struct {
	// FrameRate is both the frames per transition and the playback rate.
	FrameRate int
	Palette   []string
	// Easing reshapes the sample times of every transition. Nil is linear.
	Easing ease.Func
}

func DefaultConfig() Config {
	return Config{
		FrameRate: DefaultFrameRate,
		Palette:   DefaultPalette,
		Easing:    ease.Linear,
	}
}

// HoldFrames is the length of the trailing pause on the final step.
func (c Config) HoldFrames() int { return c.FrameRate / 2 }

// Len returns the number of frames Assemble produces for steps steps.
func (c Config) Len(steps int) int {
	if steps <= 0 || c.FrameRate < 1 {
		return 0
	}
	return (steps-1)*c.FrameRate + c.HoldFrames()
}

// Duration returns the playback length in seconds of n frames.
func (c Config) Duration(n int) float64 {
	if c.FrameRate < 1 {
		return 0
	}
	return float64(n) / float64(c.FrameRate)
}

func (c Config) color(i int) string {
	palette := c.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[i%len(palette)]
}
