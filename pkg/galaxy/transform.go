package galaxy

import(
	"fmt"
	"math"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
)

// Transformation converts an effective radius sigma (arcsec), axis
// ratio rho and position angle phi (radians, E of N) into T, which
// takes pixel offsets to offsets in units of the effective radius, and
// its inverse Tinv.
func Transformation(sigma, rho, phi float64) (T, Tinv emath.Mat2, err error) {
	reDeg := math.Max(MinRadiusArcsec, sigma) / 3600.0
	cp, sp := math.Cos(phi), math.Sin(phi)

	// Squish, rotate, and scale into degrees. G takes unit vectors (in
	// r_e) to degrees (~intermediate world coords)
	G := emath.Mat2{
		 cp, sp * rho,
		-sp, cp * rho,
	}.Scale(reDeg)

	// cd takes pixels to degrees
	cd := emath.Diag2(PixelScale/3600.0, PixelScale/3600.0)

	Ginv, err := G.Inverse()
	if err != nil {
		return T, Tinv, fmt.Errorf("sigma=%g rho=%g phi=%g: %v: %w", sigma, rho, phi, err, ErrSingularTransform)
	}
	T = Ginv.Mult(cd)

	if Tinv, err = T.Inverse(); err != nil {
		return T, Tinv, fmt.Errorf("sigma=%g rho=%g phi=%g: %v: %w", sigma, rho, phi, err, ErrSingularTransform)
	}
	return T, Tinv, nil
}
