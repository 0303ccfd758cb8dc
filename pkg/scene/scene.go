package scene

// A Scene is a YAML description of some images, a galaxy, and what to
// do with them. It is what the galaxy-like command runs on.

import(
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"sort"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/galaxy"
	"github.com/abworrall/celeste-galaxy/pkg/mog"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

/* Example scene file ...

verbosity: 1
fdstep: 1e-5
seed: 42

truth:
  theta: 0.7
  sigma: 1.5
  phi: 0.8
  rho: 0.6
  location: [0.3, -0.2]
  fluxes: {u: 5, g: 12, r: 20, i: 25, z: 15}

params:
  theta: 0.4
  sigma: 1.0
  phi: 1.2
  rho: 0.4
  location: [0.0, 0.0]
  fluxes: {u: 5, g: 10, r: 10, i: 10, z: 10}

images:
  - name: r-1
    band: r
    calib: 0.005
    kappa: 4.7
    bounds:
      min: {x: -10, y: -10}
      max: {x: 11, y: 11}
    psf:
      - {weight: 0.8, mean: [0, 0], covar: [1.1, 0.1, 0.1, 1.3]}
      - {weight: 0.2, mean: [0, 0], covar: [3.0, 0, 0, 3.0]}

outputs:
  modelpng: model-%s.png

*/

type PSFComponent struct {
	Weight float64
	Mean   []float64   // [x, y]
	Covar  []float64   // [xx, xy, yx, yy]
}

type ImageConfig struct {
	Name   string
	Band   string
	Calib  float64
	Kappa  float64
	Bounds image.Rectangle
	PSF    []PSFComponent
}

type SourceConfig struct {
	Theta    float64
	Sigma    float64
	Phi      float64
	Rho      float64
	Location []float64
	Fluxes   map[string]float64
}

// Filenames for dumping each image's model; a %s gets the image name.
type OutputOptions struct {
	ModelPNG  string
	ModelTIFF string
	ModelHDR  string
}

type Scene struct {
	Verbosity int
	FDStep    float64
	Seed      uint64

	Truth     *SourceConfig  // Used to simulate the observed counts
	Params    *SourceConfig  // Where to evaluate; defaults to Truth
	Images    []ImageConfig
	Outputs   OutputOptions

	// Values we derive/compute
	images    []*survey.Image
}

func NewScene() Scene {
	return Scene{
		FDStep: galaxy.DefaultFDStep,
		Seed:   1,
	}
}

func newSceneFromYaml(b []byte) (Scene, error) {
	s := NewScene()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, s.FinalizeScene()
}

func LoadScene(filename string) (Scene, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return NewScene(), fmt.Errorf("read '%s': %v", filename, err)
	}
	s, err := newSceneFromYaml(contents)
	if err != nil {
		return s, fmt.Errorf("parse '%s': %w", filename, err)
	}
	return s, nil
}

func (s Scene)AsYaml() string {
	b, err := yaml.Marshal(s)
	if err != nil {
		log.Fatalf("Can't marshal scene yaml: %v\n", err)
	}
	return string(b)
}

// FinalizeScene does sanity checks, fills in defaults, and builds the images.
func (s *Scene)FinalizeScene() error {
	if s.FDStep <= 0 {
		s.FDStep = galaxy.DefaultFDStep
	}
	if s.Truth == nil {
		return fmt.Errorf("scene has no truth source")
	}
	if s.Params == nil {
		p := *s.Truth
		s.Params = &p
	}
	if _, err := s.Truth.ToParams(); err != nil {
		return fmt.Errorf("truth: %v", err)
	}
	if _, err := s.Params.ToParams(); err != nil {
		return fmt.Errorf("params: %v", err)
	}
	if len(s.Images) == 0 {
		return fmt.Errorf("scene has no images")
	}

	s.images = nil
	for i, ic := range s.Images {
		img, err := ic.ToImage()
		if err != nil {
			return fmt.Errorf("image %d: %v", i, err)
		}
		s.images = append(s.images, img)

		for _, sc := range []*SourceConfig{s.Truth, s.Params} {
			if p, _ := sc.ToParams(); p.Fluxes.Get(img.Band) <= 0 {
				return fmt.Errorf("image '%s' is in band %s, but the source has no flux there", img.Name, img.Band)
			}
		}
	}
	return nil
}

func (s Scene)BuiltImages() []*survey.Image { return s.images }

func (ic ImageConfig)ToImage() (*survey.Image, error) {
	band, err := survey.ParseBand(ic.Band)
	if err != nil {
		return nil, err
	}
	psf := mog.NewMixture(len(ic.PSF))
	for k, c := range ic.PSF {
		if len(c.Mean) != 2 || len(c.Covar) != 4 {
			return nil, fmt.Errorf("psf component %d: want 2 means and 4 covars, got %d and %d", k, len(c.Mean), len(c.Covar))
		}
		psf.Add(c.Weight, emath.Vec2{c.Mean[0], c.Mean[1]}, emath.Mat2{c.Covar[0], c.Covar[1], c.Covar[2], c.Covar[3]})
	}
	img := &survey.Image{
		Name:   ic.Name,
		Band:   band,
		Calib:  ic.Calib,
		Kappa:  ic.Kappa,
		Bounds: ic.Bounds,
		PSF:    psf,
	}
	return img, img.Validate()
}

func (sc SourceConfig)ToParams() (galaxy.Params, error) {
	p := galaxy.Params{
		Shape: galaxy.Shape{Theta: sc.Theta, Sigma: sc.Sigma, Phi: sc.Phi, Rho: sc.Rho},
	}
	if !p.Shape.InDomain() {
		return p, fmt.Errorf("shape %s out of domain", p.Shape)
	}
	if len(sc.Location) != 2 {
		return p, fmt.Errorf("location wants 2 values, got %d", len(sc.Location))
	}
	p.Location = emath.Vec2{sc.Location[0], sc.Location[1]}

	bands := []string{}
	for b := range sc.Fluxes {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	for _, name := range bands {
		b, err := survey.ParseBand(name)
		if err != nil {
			return p, err
		}
		if sc.Fluxes[name] <= 0 {
			return p, fmt.Errorf("flux in band %s must be positive, got %g", b, sc.Fluxes[name])
		}
		p.Fluxes.Set(b, sc.Fluxes[name])
	}
	return p, nil
}

// TruthParams and EvalParams can't fail after FinalizeScene.
func (s Scene)TruthParams() galaxy.Params { p, _ := s.Truth.ToParams(); return p }
func (s Scene)EvalParams() galaxy.Params  { p, _ := s.Params.ToParams(); return p }

// Simulate draws observed counts for every image from the truth galaxy.
func (s Scene)Simulate() ([]emath.FloatGrid, error) {
	src := rand.NewSource(s.Seed)
	th := s.TruthParams().Vector()

	observed := []emath.FloatGrid{}
	for _, img := range s.images {
		lam, err := galaxy.ExpectedCounts(th, img)
		if err != nil {
			return nil, fmt.Errorf("simulate '%s': %w", img.Name, err)
		}
		observed = append(observed, survey.SimulateCounts(&lam, src))
	}
	return observed, nil
}

// Evaluator simulates the data and wraps it up for evaluation.
func (s Scene)Evaluator() (*galaxy.Evaluator, error) {
	observed, err := s.Simulate()
	if err != nil {
		return nil, err
	}
	e, err := galaxy.NewEvaluator(s.images, observed)
	if err != nil {
		return nil, err
	}
	e.FDStep = s.FDStep
	return e, nil
}
