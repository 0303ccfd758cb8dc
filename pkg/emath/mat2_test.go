package emath

import(
	"math"
	"testing"
)

func TestMat2Mult(t *testing.T) {
	a := Mat2{1, 2, 3, 4}
	b := Mat2{5, 6, 7, 8}
	if got := a.Mult(b); got != (Mat2{19, 22, 43, 50}) {
		t.Errorf("expected [19 22 43 50], got %v", got)
	}
	if got := a.Mult(Identity2()); got != a {
		t.Errorf("a*I = %v", got)
	}
	if got := a.Transpose(); got != (Mat2{1, 3, 2, 4}) {
		t.Errorf("transpose: %v", got)
	}
	if got := a.Gram(); got != (Mat2{5, 11, 11, 25}) {
		t.Errorf("gram: %v", got)
	}
	if got := a.Apply(Vec2{1, -1}); got != (Vec2{-1, -1}) {
		t.Errorf("apply: %v", got)
	}
	if a.Det() != -2 {
		t.Errorf("det: %g", a.Det())
	}
}

func TestMat2Inverse(t *testing.T) {
	for _, m := range []Mat2{{1, 2, 3, 4}, {2e-6, 1e-7, -3e-7, 5e-6}, {0.3, -5, 7, 0.01}} {
		inv, err := m.Inverse()
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		if got := m.Mult(inv); !got.ApproxEqual(Identity2(), 1e-9) {
			t.Errorf("m * inv(m) =\n%s", got)
		}
		if fast := m.InverseFast(); !fast.ApproxEqual(inv, 1e-9*math.Abs(inv[0])+1e-12) {
			t.Errorf("InverseFast disagrees:\n%s vs\n%s", fast, inv)
		}
	}
}

func TestMat2InverseSingular(t *testing.T) {
	for _, m := range []Mat2{{0, 0, 0, 0}, {1, 2, 2, 4}, {0.5, 0, -0.2, 0}} {
		if _, err := m.Inverse(); err == nil {
			t.Errorf("%v: expected an error for a singular matrix", m)
		}
	}
}

func TestMat2IsPosDef(t *testing.T) {
	if !(Mat2{2, 1, 1, 2}).IsPosDef() {
		t.Errorf("[2 1; 1 2] is positive definite")
	}
	for _, m := range []Mat2{{1, 2, 2, 1}, {-1, 0, 0, -1}, {0, 0, 0, 1}} {
		if m.IsPosDef() {
			t.Errorf("%v is not positive definite", m)
		}
	}
}

func TestSigmoidLogit(t *testing.T) {
	if Sigmoid(0) != 0.5 {
		t.Errorf("Sigmoid(0) = %g", Sigmoid(0))
	}
	for _, x := range []float64{-10, -1, 0.3, 4} {
		if got := Logit(Sigmoid(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("Logit(Sigmoid(%g)) = %g", x, got)
		}
	}
}
