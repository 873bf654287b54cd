package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/timeline"
)

func frame(v bloch.Vec3, d dist.Distribution, ent float64) Frame {
	return Frame{Payload: timeline.Snapshot{
		Vector:       v,
		Distribution: d,
		Pair:         &timeline.PairState{Entanglement: ent},
	}}
}

func TestArcLength(t *testing.T) {
	vs := bloch.Interpolate(bloch.North, bloch.PlusX, 11)
	frames := make([]Frame, len(vs))
	for i, v := range vs {
		frames[i] = Frame{Payload: timeline.Snapshot{Vector: v}}
	}

	got := Collect(frames, 10, NewArcLength(), NewNormDeviation())
	if math.Abs(got["arc_length"]-math.Pi/2) > 1e-9 {
		t.Errorf("expected arc length π/2, got %f", got["arc_length"])
	}
	if got["norm_deviation"] > 1e-12 {
		t.Errorf("expected vectors on the sphere, got deviation %g", got["norm_deviation"])
	}
}

func TestNormDeviationThroughOrigin(t *testing.T) {
	m := NewNormDeviation()
	for _, v := range bloch.Interpolate(bloch.North, bloch.South, 3) {
		m.Observe(Frame{Payload: timeline.Snapshot{Vector: v}}, 0)
	}
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected deviation 1 at the origin, got %f", m.Value())
	}
}

func TestEntanglementMetrics(t *testing.T) {
	frames := []Frame{
		frame(bloch.North, nil, 0),
		frame(bloch.North, nil, 0.5),
		frame(bloch.North, nil, 1),
		frame(bloch.North, nil, 0.5),
	}
	peak := NewPeakEntanglement()
	got := Collect(frames, 2, peak, NewMeanEntanglement())

	if got["peak_entanglement"] != 1 {
		t.Errorf("expected peak 1, got %f", got["peak_entanglement"])
	}
	if peak.At() != 1 {
		t.Errorf("expected peak at 1s, got %f", peak.At())
	}
	if got["mean_entanglement"] != 0.5 {
		t.Errorf("expected mean 0.5, got %f", got["mean_entanglement"])
	}
}

func TestDrift(t *testing.T) {
	frames := []Frame{
		frame(bloch.North, dist.Distribution{"0": 1}, 0),
		frame(bloch.North, dist.Distribution{"0": 0.5, "1": 0.5}, 0),
		frame(bloch.North, dist.Distribution{"1": 1}, 0),
	}
	got := Collect(frames, 1, NewDrift())
	if math.Abs(got["distribution_drift"]-1) > 1e-12 {
		t.Errorf("expected drift 1, got %f", got["distribution_drift"])
	}
}

func TestReset(t *testing.T) {
	for _, m := range Standard() {
		m.Observe(frame(bloch.PlusX, dist.Distribution{"0": 1}, 0.7), 0)
		m.Observe(frame(bloch.South, dist.Distribution{"1": 1}, 0.2), 1)
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s: expected zero after reset, got %f", m.Name(), m.Value())
		}
	}
}

func TestSingleQubitFramesSkipEntanglement(t *testing.T) {
	frames := []Frame{{Payload: timeline.Snapshot{Vector: bloch.North}}}
	got := Collect(frames, 20, NewPeakEntanglement(), NewMeanEntanglement())
	if got["peak_entanglement"] != 0 || got["mean_entanglement"] != 0 {
		t.Errorf("expected no entanglement, got %v", got)
	}
}
