package galaxy

import(
	"image"
	"math"

	"golang.org/x/exp/rand"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/mog"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

func truthParams() Params {
	return Params{
		Shape:    Shape{Theta: 0.7, Sigma: 1.5, Phi: 0.8, Rho: 0.6},
		Location: emath.Vec2{0.3, -0.2},
		Fluxes:   survey.Fluxes{12, 20, 25, 30, 18},
	}
}

func newPSF(w1, s1, s2 float64) mog.Mixture {
	psf := mog.NewMixture(2)
	psf.Add(w1, emath.Vec2{0.05, -0.03}, emath.Mat2{s1, 0.1, 0.1, s1*1.2})
	psf.Add(1-w1, emath.Vec2{-0.1, 0.08}, emath.Mat2{s2, -0.2, -0.2, s2})
	return psf
}

// testImages are stamps around the origin, in three of the bands, with
// calibrations that don't cancel out.
func testImages() []*survey.Image {
	return []*survey.Image{
		{Name: "r-1", Band: survey.BandR, Calib: 0.005, Kappa: 4.7, Bounds: image.Rect(-8, -8, 9, 9), PSF: newPSF(0.8, 1.1, 3.0)},
		{Name: "g-1", Band: survey.BandG, Calib: 0.008, Kappa: 3.9, Bounds: image.Rect(-7, -9, 8, 8), PSF: newPSF(0.7, 1.4, 4.0)},
		{Name: "r-2", Band: survey.BandR, Calib: 0.006, Kappa: 4.2, Bounds: image.Rect(-9, -7, 7, 9), PSF: newPSF(0.9, 0.9, 2.5)},
		{Name: "i-1", Band: survey.BandI, Calib: 0.010, Kappa: 5.0, Bounds: image.Rect(-8, -8, 8, 8), PSF: newPSF(0.75, 1.2, 3.5)},
	}
}

// testObserved is the rounded expected counts of the truth, so the
// data is deterministic.
func testObserved(images []*survey.Image) []emath.FloatGrid {
	th := truthParams().Vector()
	obs := []emath.FloatGrid{}
	for _, img := range images {
		lam, err := ExpectedCounts(th, img)
		if err != nil {
			panic(err)
		}
		vals := lam.Values()
		for i := range vals {
			vals[i] = math.Floor(vals[i] + 0.5)
		}
		obs = append(obs, lam)
	}
	return obs
}

// randomParams draws in-domain parameters that are well away from the
// truth, so no gradient component is close to zero.
func randomParams(r *rand.Rand) []float64 {
	p := Params{
		Shape: Shape{
			Theta: 0.15 + 0.25*r.Float64(),
			Sigma: 0.6 + 0.5*r.Float64(),
			Phi:   1.3 + 1.0*r.Float64(),
			Rho:   0.25 + 0.2*r.Float64(),
		},
		Location: emath.Vec2{-0.8 + 0.4*r.Float64(), 0.4 + 0.4*r.Float64()},
	}
	for b := range p.Fluxes {
		p.Fluxes[b] = 4 + 4*r.Float64()
	}
	return p.Vector()
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
