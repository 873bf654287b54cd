package timeline

import (
	"fmt"

	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/ease"
)

// Projector extracts a view payload from a step and interpolates between
// two payloads at the given sample times.
type Projector[P any] interface {
	Project(s circuit.Step) (P, error)
	Interpolate(from, to P, ts []float64) []P
}

// Assemble builds the frame sequence for steps.
//
// Every step is projected before any frame is produced, so a projection
// failure is reported once and never leaves a partial timeline.
func Assemble[P any](steps []circuit.Step, cfg Config, proj Projector[P]) ([]Frame[P], error) {
	if cfg.FrameRate < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrFrameRate, cfg.FrameRate)
	}
	if len(steps) == 0 {
		return []Frame[P]{}, nil
	}

	payloads := make([]P, len(steps))
	for i, s := range steps {
		p, err := proj.Project(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		payloads[i] = p
	}

	ts := ease.Samples(cfg.FrameRate, cfg.Easing)
	frames := make([]Frame[P], 0, cfg.Len(len(steps)))

	for i := 0; i+1 < len(steps); i++ {
		color := cfg.color(i)
		desc := steps[i+1].Description
		for _, p := range proj.Interpolate(payloads[i], payloads[i+1], ts) {
			frames = append(frames, Frame[P]{
				Index:       len(frames),
				Step:        i,
				Payload:     p,
				Description: desc,
				Color:       color,
			})
		}
	}

	last := len(steps) - 1
	holdColor := cfg.color(0)
	if last > 0 {
		holdColor = cfg.color(last - 1)
	}
	for i := 0; i < cfg.HoldFrames(); i++ {
		frames = append(frames, Frame[P]{
			Index:       len(frames),
			Step:        last,
			Payload:     payloads[last],
			Description: steps[last].Description,
			Color:       holdColor,
			Hold:        true,
		})
	}

	return frames, nil
}

// Static projects a single step for one-off images.
func Static[P any](s circuit.Step, proj Projector[P]) (P, error) {
	return proj.Project(s)
}

// Payloads strips the metadata from frames.
func Payloads[P any](frames []Frame[P]) []P {
	out := make([]P, len(frames))
	for i, f := range frames {
		out[i] = f.Payload
	}
	return out
}
