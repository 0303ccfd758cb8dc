package galaxy

import(
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
)

func TestTransformationInverse(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i:=0; i<200; i++ {
		sigma := 0.01 + 20*r.Float64()
		rho := 0.01 + 0.98*r.Float64()
		phi := 0.01 + (math.Pi-0.02)*r.Float64()

		T, Tinv, err := Transformation(sigma, rho, phi)
		if err != nil {
			t.Fatalf("sigma=%g rho=%g phi=%g: %v", sigma, rho, phi, err)
		}
		if got := T.Mult(Tinv); !got.ApproxEqual(emath.Identity2(), 1e-9) {
			t.Errorf("sigma=%g rho=%g phi=%g: T*Tinv =\n%s", sigma, rho, phi, got)
		}
		if got := Tinv.Mult(T); !got.ApproxEqual(emath.Identity2(), 1e-9) {
			t.Errorf("sigma=%g rho=%g phi=%g: Tinv*T =\n%s", sigma, rho, phi, got)
		}
	}
}

func TestTransformationRoundGalaxy(t *testing.T) {
	// phi=0, rho=1: a circle of radius sigma arcsec, i.e. sigma/0.396 pixels
	sigma := 2.0
	_, Tinv, err := Transformation(sigma, 1.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	rpix := sigma / PixelScale
	if W := Tinv.Gram(); !W.ApproxEqual(emath.Diag2(rpix*rpix, rpix*rpix), 1e-9) {
		t.Errorf("expected covariance diag(%g), got\n%s", rpix*rpix, W)
	}
}

func TestTransformationMatchesClosedForm(t *testing.T) {
	// Tinv = inv(cd) * G, which we can write down directly
	sigma, rho, phi := 2.0, 0.5, 0.3
	_, Tinv, err := Transformation(sigma, rho, phi)
	if err != nil {
		t.Fatal(err)
	}
	s := sigma / PixelScale
	cp, sp := math.Cos(phi), math.Sin(phi)
	expected := emath.Mat2{s*cp, s*sp*rho, -s*sp, s*cp*rho}
	if !Tinv.ApproxEqual(expected, 1e-9) {
		t.Errorf("expected\n%s got\n%s", expected, Tinv)
	}
}

func TestTransformationRadiusFloor(t *testing.T) {
	_, floored, err := Transformation(0, 0.5, 1.0)
	if err != nil {
		t.Fatalf("sigma=0 should be clamped, got %v", err)
	}
	_, atFloor, _ := Transformation(MinRadiusArcsec, 0.5, 1.0)
	if !floored.ApproxEqual(atFloor, 1e-12) {
		t.Errorf("sigma=0 gave\n%s expected\n%s", floored, atFloor)
	}
}

func TestTransformationSingular(t *testing.T) {
	if _, _, err := Transformation(1.0, 0.0, 0.3); !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("rho=0: expected ErrSingularTransform, got %v", err)
	}
}
