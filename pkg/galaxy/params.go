package galaxy

import(
	"fmt"
	"math"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

// Positions in the flat parameter vector
const(
	IdxTheta = iota
	IdxSigma
	IdxPhi
	IdxRho
	IdxLocX
	IdxLocY
	IdxFlux   // first of survey.NumBands fluxes

	NumParams = IdxFlux + survey.NumBands
)

// Shape is the constrained view of the shape parameters; each lives in
// its natural domain.
type Shape struct {
	Theta float64  // exp/dev mixing weight, (0,1)
	Sigma float64  // effective radius in arcsec, (0,inf)
	Phi   float64  // position angle in radians, (0,pi)
	Rho   float64  // axis ratio, (0,1)
}

// UnconstrainedShape is the same four parameters mapped onto the whole
// real line, for use by optimizers.
type UnconstrainedShape struct {
	LogitTheta float64
	LogSigma   float64
	LogitPhi   float64
	LogitRho   float64
}

func (s Shape)String() string {
	return fmt.Sprintf("theta=%.6g sigma=%.6g phi=%.6g rho=%.6g", s.Theta, s.Sigma, s.Phi, s.Rho)
}

// InDomain is false if any parameter is outside (or on the edge of) its open interval.
func (s Shape)InDomain() bool {
	return s.Theta > 0 && s.Theta < 1 &&
		s.Sigma > 0 &&
		s.Phi > 0 && s.Phi < math.Pi &&
		s.Rho > 0 && s.Rho < 1
}

func (s Shape)Unconstrain() UnconstrainedShape {
	return UnconstrainedShape{
		LogitTheta: emath.Logit(s.Theta),
		LogSigma:   math.Log(s.Sigma),
		LogitPhi:   math.Log(s.Phi / (math.Pi - s.Phi)),
		LogitRho:   emath.Logit(s.Rho),
	}
}

func (u UnconstrainedShape)Constrain() Shape {
	return Shape{
		Theta: emath.Sigmoid(u.LogitTheta),
		Sigma: math.Exp(u.LogSigma),
		Phi:   math.Pi * emath.Sigmoid(u.LogitPhi),
		Rho:   emath.Sigmoid(u.LogitRho),
	}
}

// Transform returns the matrix R taking unit effective-radius vectors
// to pixel offsets; R*R^T is the shape's covariance in pixels^2.
func (s Shape)Transform() (emath.Mat2, error) {
	_, tinv, err := Transformation(s.Sigma, s.Rho, s.Phi)
	return tinv, err
}

// Params is everything we know about one galaxy source.
type Params struct {
	Shape
	Location emath.Vec2
	Fluxes   survey.Fluxes
}

func (p Params)String() string {
	return fmt.Sprintf("%s u=%s fluxes=%s", p.Shape, p.Location, p.Fluxes)
}

// ParamsFromVector unpacks a flat parameter vector.
func ParamsFromVector(th []float64) (Params, error) {
	if len(th) != NumParams {
		return Params{}, fmt.Errorf("parameter vector has %d entries, want %d: %w", len(th), NumParams, ErrShapeMismatch)
	}
	p := Params{
		Shape: Shape{
			Theta: th[IdxTheta],
			Sigma: th[IdxSigma],
			Phi:   th[IdxPhi],
			Rho:   th[IdxRho],
		},
		Location: emath.Vec2{th[IdxLocX], th[IdxLocY]},
	}
	copy(p.Fluxes[:], th[IdxFlux:])
	return p, nil
}

// Vector packs the parameters into a new flat vector.
func (p Params)Vector() []float64 {
	th := make([]float64, NumParams)
	th[IdxTheta] = p.Theta
	th[IdxSigma] = p.Sigma
	th[IdxPhi]   = p.Phi
	th[IdxRho]   = p.Rho
	th[IdxLocX]  = p.Location[0]
	th[IdxLocY]  = p.Location[1]
	copy(th[IdxFlux:], p.Fluxes[:])
	return th
}

// ParamNames labels each slot of the flat vector, for reporting.
func ParamNames() []string {
	names := []string{"theta", "sigma", "phi", "rho", "u0", "u1"}
	for _, b := range survey.Bands {
		names = append(names, "flux_"+string(b))
	}
	return names
}
