package metrics

import "github.com/san-kum/qcviz/internal/timeline"

// Frame is the unit every metric observes.
type Frame = timeline.Frame[timeline.Snapshot]

type Metric interface {
	Name() string
	Observe(f Frame, t float64)
	Value() float64
	Reset()
}

// Standard returns the metrics reported for every rendered timeline.
func Standard() []Metric {
	return []Metric{
		NewArcLength(),
		NewNormDeviation(),
		NewDrift(),
		NewPeakEntanglement(),
		NewMeanEntanglement(),
	}
}

// Collect resets ms, feeds every frame at the given rate and returns the
// final values by name.
func Collect(frames []Frame, fps int, ms ...Metric) map[string]float64 {
	dt := 0.0
	if fps > 0 {
		dt = 1 / float64(fps)
	}
	for _, m := range ms {
		m.Reset()
	}
	for i, f := range frames {
		for _, m := range ms {
			m.Observe(f, float64(i)*dt)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
