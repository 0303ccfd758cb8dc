package galaxy

import(
	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/mog"
	"github.com/abworrall/celeste-galaxy/pkg/profile"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

// ConvolvedMixture convolves the named galaxy profile, shaped by R and
// centered at u, with the image's PSF. Gaussians convolve to gaussians
// with summed covariances, so every (psf, profile) component pair
// gives one output component.
func ConvolvedMixture(profType string, R emath.Mat2, u emath.Vec2, img *survey.Image) (mog.Mixture, error) {
	prof, err := profile.Lookup(profType)
	if err != nil {
		return mog.Mixture{}, err
	}

	W := R.Gram()
	psf := img.PSF
	mix := mog.NewMixture(psf.Len() * prof.NumComponents())
	for k:=0; k<psf.Len(); k++ {
		for j:=0; j<prof.NumComponents(); j++ {
			mix.Add(psf.Weights[k] * prof.Amp[j],
				u.Add(psf.Means[k]),
				psf.Covars[k].Add(W.Scale(prof.Var[j])))
		}
	}
	return mix, nil
}

// ProfilePSFImage renders the PSF-convolved profile as a flux density
// over the image's pixels.
func ProfilePSFImage(profType string, R emath.Mat2, u emath.Vec2, img *survey.Image) (emath.FloatGrid, error) {
	mix, err := ConvolvedMixture(profType, R, u, img)
	if err != nil {
		return emath.FloatGrid{}, err
	}

	grid := img.NewGrid()
	if err := mix.EvalGrid(img.PixelGrid(), grid.Values()); err != nil {
		return emath.FloatGrid{}, err
	}
	return grid, nil
}
