package metrics

import (
	"math"

	"github.com/san-kum/qcviz/internal/dist"
)

// Drift accumulates the total variation distance between consecutive
// distributions.
type Drift struct {
	name  string
	prev  dist.Distribution
	total float64
}

func NewDrift() *Drift {
	return &Drift{name: "distribution_drift"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(f Frame, t float64) {
	cur := f.Payload.Distribution
	if d.prev != nil && cur != nil {
		d.total += dist.TotalVariation(d.prev, cur)
	}
	d.prev = cur
}

func (d *Drift) Value() float64 { return d.total }

func (d *Drift) Reset() {
	d.prev = nil
	d.total = 0
}

type PeakEntanglement struct {
	name string
	peak float64
	at   float64
}

func NewPeakEntanglement() *PeakEntanglement {
	return &PeakEntanglement{name: "peak_entanglement"}
}

func (p *PeakEntanglement) Name() string { return p.name }

func (p *PeakEntanglement) Observe(f Frame, t float64) {
	if f.Payload.Pair == nil {
		return
	}
	if e := f.Payload.Pair.Entanglement; e > p.peak {
		p.peak = e
		p.at = t
	}
}

func (p *PeakEntanglement) Value() float64 { return p.peak }

// At returns the time in seconds of the first frame at the peak.
func (p *PeakEntanglement) At() float64 { return p.at }

func (p *PeakEntanglement) Reset() {
	p.peak = 0
	p.at = 0
}

type MeanEntanglement struct {
	name    string
	sum     float64
	samples int
}

func NewMeanEntanglement() *MeanEntanglement {
	return &MeanEntanglement{name: "mean_entanglement"}
}

func (m *MeanEntanglement) Name() string { return m.name }

func (m *MeanEntanglement) Observe(f Frame, t float64) {
	if f.Payload.Pair == nil {
		return
	}
	m.sum += math.Max(0, f.Payload.Pair.Entanglement)
	m.samples++
}

func (m *MeanEntanglement) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanEntanglement) Reset() {
	m.sum = 0
	m.samples = 0
}
