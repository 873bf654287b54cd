// Package dist holds categorical probability distributions over basis-state
// labels and interpolates between them.
package dist

import (
	"fmt"
	"sort"

	"github.com/san-kum/qcviz/internal/ease"
)

// Distribution maps a basis-state label such as "01" to its probability.
// Missing labels have probability zero.
type Distribution map[string]float64

func (d Distribution) Get(label string) float64 { return d[label] }

func (d Distribution) Clone() Distribution {
	c := make(Distribution, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// Keys returns the labels of d in sorted order.
func (d Distribution) Keys() []string { return Union(d) }

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, k := range d.Keys() {
		sum += d[k]
	}
	return sum
}

// Filled returns a copy of d restricted to labels, zero-filling any label
// d does not carry.
func (d Distribution) Filled(labels []string) Distribution {
	out := make(Distribution, len(labels))
	for _, l := range labels {
		out[l] = d[l]
	}
	return out
}

// Values returns the probabilities of labels in order.
func (d Distribution) Values(labels []string) []float64 {
	out := make([]float64, len(labels))
	for i, l := range labels {
		out[i] = d[l]
	}
	return out
}

// Union returns the sorted union of labels across ds.
func Union(ds ...Distribution) []string {
	seen := make(map[string]struct{})
	for _, d := range ds {
		for k := range d {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BasisLabels enumerates all 2^n fixed-width bit strings, most significant
// qubit first.
func BasisLabels(qubits int) []string {
	if qubits <= 0 {
		return []string{}
	}
	n := 1 << qubits
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = fmt.Sprintf("%0*b", qubits, i)
	}
	return labels
}

// Interpolate returns n distributions moving linearly from d1 to d2 with
// endpoints included.
func Interpolate(d1, d2 Distribution, n int) []Distribution {
	return At(d1, d2, ease.Linspace(n))
}

// At evaluates the linear blend of d1 and d2 at each t in ts over the union
// of their labels.
func At(d1, d2 Distribution, ts []float64) []Distribution {
	keys := Union(d1, d2)
	out := make([]Distribution, len(ts))
	for i, t := range ts {
		frame := make(Distribution, len(keys))
		for _, k := range keys {
			frame[k] = d1[k]*(1-t) + d2[k]*t
		}
		out[i] = frame
	}
	return out
}

// TotalVariation returns half the L1 distance between d1 and d2.
func TotalVariation(d1, d2 Distribution) float64 {
	sum := 0.0
	for _, k := range Union(d1, d2) {
		diff := d1[k] - d2[k]
		if diff < 0 {
			diff = -diff
		}
		sum += diff
	}
	return sum / 2
}
