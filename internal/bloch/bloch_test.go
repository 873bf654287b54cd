package bloch

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestFromProbability_Exact(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want Vec3
	}{
		{"ground", 0.0, Vec3{0, 0, 1}},
		{"excited", 1.0, Vec3{0, 0, -1}},
		{"equator", 0.5, Vec3{1, 0, 0}},
		{"near equator", 0.5 + 5e-7, Vec3{1, 0, 0}},
		{"near equator below", 0.5 - 5e-7, Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromProbability(tt.p); got != tt.want {
				t.Errorf("FromProbability(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestFromProbability_UnitNorm(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		v := FromProbability(p)
		if math.Abs(v.Norm()-1) > tol {
			t.Errorf("|FromProbability(%v)| = %v", p, v.Norm())
		}
		if v.Y != 0 {
			t.Errorf("FromProbability(%v) left the x-z plane: %v", p, v)
		}
	}
}

func TestFromProbability_General(t *testing.T) {
	// P(|1⟩) = 0.25 gives θ = π/3.
	v := FromProbability(0.25)
	want := Vec3{math.Sin(math.Pi / 3), 0, math.Cos(math.Pi / 3)}
	if !near(v, want, 1e-12) {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestFromProbability_MarginallyOutOfRange(t *testing.T) {
	for _, p := range []float64{-1e-12, 1 + 1e-12} {
		v := FromProbability(p)
		if !v.IsValid() {
			t.Errorf("FromProbability(%v) produced %v", p, v)
		}
	}
}

func TestProbability_RoundTrip(t *testing.T) {
	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		if got := Probability(FromProbability(p)); math.Abs(got-p) > 1e-9 {
			t.Errorf("Probability(FromProbability(%v)) = %v", p, got)
		}
	}
}

func TestInterpolate_SameVector(t *testing.T) {
	for _, p := range []float64{0, 0.3, 0.5, 1} {
		v := FromProbability(p)
		out := Interpolate(v, v, 7)
		if len(out) != 7 {
			t.Fatalf("expected 7 vectors, got %d", len(out))
		}
		for i, got := range out {
			if !near(got, v, tol) {
				t.Errorf("p=%v frame %d: got %v, want %v", p, i, got, v)
			}
		}
	}
}

func TestInterpolate_Endpoints(t *testing.T) {
	pairs := [][2]float64{{0, 0.5}, {0.5, 1}, {0.1, 0.8}, {0.25, 0.75}}
	for _, pr := range pairs {
		v1, v2 := FromProbability(pr[0]), FromProbability(pr[1])
		for _, n := range []int{2, 3, 20} {
			out := Interpolate(v1, v2, n)
			if !near(out[0], v1, 1e-12) {
				t.Errorf("%v n=%d: first = %v, want %v", pr, n, out[0], v1)
			}
			if !near(out[n-1], v2, 1e-12) {
				t.Errorf("%v n=%d: last = %v, want %v", pr, n, out[n-1], v2)
			}
		}
	}
}

func TestInterpolate_ConstantAngularVelocity(t *testing.T) {
	out := Interpolate(North, PlusX, 5)
	step := math.Pi / 8
	for i := 1; i < len(out); i++ {
		if got := out[i-1].Angle(out[i]); math.Abs(got-step) > 1e-9 {
			t.Errorf("segment %d spans %v rad, want %v", i, got, step)
		}
		if math.Abs(out[i].Norm()-1) > tol {
			t.Errorf("frame %d left the sphere: %v", i, out[i].Norm())
		}
	}
}

func TestInterpolate_Single(t *testing.T) {
	out := Interpolate(North, PlusX, 1)
	if len(out) != 1 || out[0] != North {
		t.Errorf("single frame should be v1, got %v", out)
	}
}

func TestInterpolate_Antiparallel(t *testing.T) {
	out := Interpolate(North, South, 5)
	for i, v := range out {
		if !v.IsValid() {
			t.Fatalf("frame %d is not finite: %v", i, v)
		}
		if v.Norm() > 1+tol {
			t.Errorf("frame %d outside the sphere: %v", i, v)
		}
	}
	if out[0] != North || out[4] != South {
		t.Errorf("endpoints changed: %v .. %v", out[0], out[4])
	}
	if !near(out[2], Vec3{}, tol) {
		t.Errorf("linear fallback midpoint should be the origin, got %v", out[2])
	}
}

func TestInterpolate_NormalizesInputs(t *testing.T) {
	out := Interpolate(Vec3{0, 0, 3}, Vec3{2, 0, 0}, 3)
	if !near(out[0], North, tol) || !near(out[2], PlusX, tol) {
		t.Errorf("inputs were not normalized: %v", out)
	}
}

func TestVec3_Normalize_Zero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
}
