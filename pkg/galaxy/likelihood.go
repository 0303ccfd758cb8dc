package galaxy

import(
	"fmt"
	"math"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/profile"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

// profileImages renders the exp and dev profiles for one image.
func profileImages(p Params, R emath.Mat2, img *survey.Image) (fExp, fDev emath.FloatGrid, err error) {
	if fExp, err = ProfilePSFImage(profile.Exp, R, p.Location, img); err != nil {
		return
	}
	fDev, err = ProfilePSFImage(profile.Dev, R, p.Location, img)
	return
}

// ModelImage is the galaxy's flux density over the image's pixels: the
// theta-weighted mix of the exp and dev profile images.
func ModelImage(th []float64, img *survey.Image) (emath.FloatGrid, error) {
	p, err := ParamsFromVector(th)
	if err != nil {
		return emath.FloatGrid{}, err
	}
	R, err := p.Transform()
	if err != nil {
		return emath.FloatGrid{}, err
	}
	fExp, fDev, err := profileImages(p, R, img)
	if err != nil {
		return emath.FloatGrid{}, err
	}
	return fExp.Mix(p.Theta, &fDev), nil
}

// ExpectedCounts is the model image converted into photon counts.
func ExpectedCounts(th []float64, img *survey.Image) (emath.FloatGrid, error) {
	f, err := ModelImage(th, img)
	if err != nil {
		return f, err
	}
	p, _ := ParamsFromVector(th)
	f.Scale(p.Fluxes.Get(img.Band) * img.CountsPerNanomaggie())
	return f, nil
}

func checkData(observed []emath.FloatGrid, images []*survey.Image) error {
	if len(observed) != len(images) {
		return fmt.Errorf("%d count arrays for %d images: %w", len(observed), len(images), ErrShapeMismatch)
	}
	for n, img := range images {
		if observed[n].Dx() != img.Dx() || observed[n].Dy() != img.Dy() {
			return fmt.Errorf("image %d '%s' is %dx%d, counts are %dx%d: %w", n, img.Name,
				img.Dx(), img.Dy(), observed[n].Dx(), observed[n].Dy(), ErrShapeMismatch)
		}
	}
	return nil
}

// LogLike is the Poisson log-likelihood of the observed counts, summed
// over all the images, up to a constant that doesn't depend on th.
// Nothing is clipped: a non-positive flux or density gives NaN or -Inf.
func LogLike(th []float64, observed []emath.FloatGrid, images []*survey.Image) (float64, error) {
	p, err := ParamsFromVector(th)
	if err != nil {
		return 0, err
	}
	if err := checkData(observed, images); err != nil {
		return 0, err
	}
	R, err := p.Transform()
	if err != nil {
		return 0, err
	}

	ll := 0.0
	for n, img := range images {
		fExp, fDev, err := profileImages(p, R, img)
		if err != nil {
			return 0, fmt.Errorf("image '%s': %w", img.Name, err)
		}
		f := fExp.Mix(p.Theta, &fDev)

		// convert source flux (nanomaggies) to image photon counts
		imageFlux := p.Fluxes.Get(img.Band) * img.CountsPerNanomaggie()
		obs := observed[n].Values()
		for i, fi := range f.Values() {
			lam := imageFlux * fi
			ll += obs[i]*math.Log(lam) - lam
		}
	}
	return ll, nil
}
