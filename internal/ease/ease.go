package ease

import (
	"fmt"
	"math"
	"sort"
)

// Func maps normalized time in [0, 1] onto normalized progress in [0, 1].
// Implementations must satisfy f(0) = 0 and f(1) = 1.
type Func func(t float64) float64

func Linear(t float64) float64 { return t }

// SmoothStep is the cubic Hermite curve 3t² - 2t³.
func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }

// Sine eases in and out along a half cosine.
func Sine(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

var byName = map[string]Func{
	"linear":     Linear,
	"smoothstep": SmoothStep,
	"sine":       Sine,
}

// ByName looks up an easing curve registered under name.
func ByName(name string) (Func, error) {
	if name == "" {
		return Linear, nil
	}
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing: %s (available: %v)", name, Names())
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Linspace returns n evenly spaced values from 0 to 1 inclusive.
// A single sample is 0; non-positive n yields an empty slice.
func Linspace(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	ts := make([]float64, n)
	if n == 1 {
		return ts
	}
	last := float64(n - 1)
	for i := range ts {
		ts[i] = float64(i) / last
	}
	return ts
}

// Samples returns Linspace(n) passed through f. A nil f is linear.
func Samples(n int, f Func) []float64 {
	ts := Linspace(n)
	if f == nil {
		return ts
	}
	for i, t := range ts {
		ts[i] = f(t)
	}
	return ts
}
