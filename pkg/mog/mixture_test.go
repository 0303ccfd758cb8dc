package mog

import(
	"errors"
	"math"
	"testing"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
)

func TestDensitySingleGaussian(t *testing.T) {
	m := NewMixture(1)
	m.Add(2.0, emath.Vec2{1, -1}, emath.Diag2(4, 1))

	p, err := m.Density(emath.Vec2{1, -1})
	if err != nil {
		t.Fatal(err)
	}
	if expected := 2.0 / (2 * math.Pi * 2); math.Abs(p-expected) > 1e-15 {
		t.Errorf("at the mean: expected %g, got %g", expected, p)
	}

	p, _ = m.Density(emath.Vec2{3, 0})
	if expected := 2.0 / (2 * math.Pi * 2) * math.Exp(-0.5*(4.0/4+1)); math.Abs(p-expected) > 1e-15 {
		t.Errorf("off the mean: expected %g, got %g", expected, p)
	}
}

func TestEvalGridMatchesDensity(t *testing.T) {
	m := NewMixture(2)
	m.Add(0.3, emath.Vec2{0, 0}, emath.Mat2{1, 0.3, 0.3, 2})
	m.Add(0.7, emath.Vec2{1, 2}, emath.Mat2{3, -1, -1, 1})

	pts := []emath.Vec2{{0, 0}, {1, 1}, {-2, 3}, {5, 5}}
	out := []float64{9, 9, 9, 9}
	if err := m.EvalGrid(pts, out); err != nil {
		t.Fatal(err)
	}
	for i, x := range pts {
		p, _ := m.Density(x)
		if math.Abs(out[i]-p) > 1e-15 {
			t.Errorf("point %v: grid %g, density %g", x, out[i], p)
		}
		if out[i] < 0 {
			t.Errorf("negative density %g", out[i])
		}
	}

	if err := m.EvalGrid(pts, out[:2]); err == nil {
		t.Errorf("expected an error for a short output slice")
	}
}

func TestValidate(t *testing.T) {
	m := NewMixture(1)
	m.Add(1, emath.Vec2{}, emath.Diag2(1, 0))
	if err := m.Validate(); !errors.Is(err, ErrBadCovariance) {
		t.Errorf("expected ErrBadCovariance, got %v", err)
	}
	if _, err := m.Density(emath.Vec2{}); !errors.Is(err, ErrBadCovariance) {
		t.Errorf("expected ErrBadCovariance from Density, got %v", err)
	}

	ragged := Mixture{Weights: []float64{1, 2}, Means: []emath.Vec2{{}}, Covars: []emath.Mat2{emath.Identity2()}}
	if err := ragged.Validate(); err == nil {
		t.Errorf("expected an error for mismatched slices")
	}
}
