package galaxy

import(
	"fmt"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

// The parameters that enter through the shape transform and the
// mixture evaluation; we differentiate these numerically.
var numericalParams = []int{IdxSigma, IdxPhi, IdxRho, IdxLocX, IdxLocY}

// LogLikeGrad is the gradient of LogLike, using DefaultFDStep.
func LogLikeGrad(th []float64, observed []emath.FloatGrid, images []*survey.Image) ([]float64, error) {
	return logLikeGrad(th, observed, images, DefaultFDStep)
}

// logLikeGrad works out theta and the fluxes exactly (the density is
// linear in theta, and lam is linear in each flux), and the other five
// parameters by central differences of LogLike with step eps.
func logLikeGrad(th []float64, observed []emath.FloatGrid, images []*survey.Image, eps float64) ([]float64, error) {
	p, err := ParamsFromVector(th)
	if err != nil {
		return nil, err
	}
	if err := checkData(observed, images); err != nil {
		return nil, err
	}
	R, err := p.Transform()
	if err != nil {
		return nil, err
	}

	grad := make([]float64, NumParams)
	for n, img := range images {
		fExp, fDev, err := profileImages(p, R, img)
		if err != nil {
			return nil, fmt.Errorf("image '%s': %w", img.Name, err)
		}
		f := fExp.Mix(p.Theta, &fDev)

		b := img.Band.Index()
		flux := p.Fluxes[b]
		countsPerNmgy := img.CountsPerNanomaggie()
		imageFlux := flux * countsPerNmgy

		obs := observed[n].Values()
		fe, fdv, fv := fExp.Values(), fDev.Values(), f.Values()
		for i := range fv {
			grad[IdxTheta] += (obs[i]/fv[i] - imageFlux) * (fe[i] - fdv[i])
		}
		grad[IdxFlux+b] += observed[n].Sum()/flux - countsPerNmgy*f.Sum()
	}

	// for parameters in the R matrix (and the location), just numerically differentiate
	settings := &fd.Settings{Formula: fd.Central, Step: eps}
	x := append([]float64{}, th...)
	for _, i := range numericalParams {
		var llErr error
		ll := func(v float64) float64 {
			x[i] = v
			val, err := LogLike(x, observed, images)
			if err != nil {
				llErr = err
			}
			return val
		}
		grad[i] = fd.Derivative(ll, th[i], settings)
		x[i] = th[i]
		if llErr != nil {
			return nil, fmt.Errorf("d/d%s: %w", ParamNames()[i], llErr)
		}
	}

	return grad, nil
}
