package metrics

import (
	"math"

	"github.com/san-kum/qcviz/internal/bloch"
)

// ArcLength is the total angle in radians swept by the Bloch vector.
type ArcLength struct {
	name  string
	prev  bloch.Vec3
	seen  bool
	total float64
}

func NewArcLength() *ArcLength {
	return &ArcLength{name: "arc_length"}
}

func (a *ArcLength) Name() string { return a.name }

func (a *ArcLength) Observe(f Frame, t float64) {
	v := f.Payload.Vector
	if a.seen {
		a.total += a.prev.Angle(v)
	}
	a.prev = v
	a.seen = true
}

func (a *ArcLength) Value() float64 { return a.total }

func (a *ArcLength) Reset() {
	a.prev = bloch.Vec3{}
	a.seen = false
	a.total = 0
}

// NormDeviation is the largest distance of any vector from the unit sphere.
// It stays near zero except across degenerate linear transitions.
type NormDeviation struct {
	name string
	max  float64
}

func NewNormDeviation() *NormDeviation {
	return &NormDeviation{name: "norm_deviation"}
}

func (n *NormDeviation) Name() string { return n.name }

func (n *NormDeviation) Observe(f Frame, t float64) {
	n.max = math.Max(n.max, math.Abs(f.Payload.Vector.Norm()-1))
}

func (n *NormDeviation) Value() float64 { return n.max }

func (n *NormDeviation) Reset() { n.max = 0 }
