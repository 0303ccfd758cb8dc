package galaxy

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/survey"
)

// An Evaluator ties the likelihood to one fixed set of images and
// observed counts, which are checked once up front.
type Evaluator struct {
	Images   []*survey.Image
	Observed []emath.FloatGrid
	FDStep   float64  // step for the numerical partials; fixed, never adapted
}

func NewEvaluator(images []*survey.Image, observed []emath.FloatGrid) (*Evaluator, error) {
	if err := checkData(observed, images); err != nil {
		return nil, err
	}
	for n, img := range images {
		if err := img.Validate(); err != nil {
			return nil, err
		}
		if err := img.ValidateCounts(&observed[n]); err != nil {
			return nil, err
		}
	}
	return &Evaluator{
		Images:   images,
		Observed: observed,
		FDStep:   DefaultFDStep,
	}, nil
}

func (e *Evaluator)String() string {
	str := fmt.Sprintf("Evaluator (fd step %g) [\n", e.FDStep)
	for n, img := range e.Images {
		str += fmt.Sprintf("  %s, %g counts\n", img, e.Observed[n].Sum())
	}
	return str + "]\n"
}

func (e *Evaluator)LogLike(th []float64) (float64, error) {
	return LogLike(th, e.Observed, e.Images)
}

func (e *Evaluator)Grad(th []float64) ([]float64, error) {
	step := e.FDStep
	if step <= 0 {
		step = DefaultFDStep
	}
	return logLikeGrad(th, e.Observed, e.Images, step)
}

// LogPosterior adds the constrained shape prior to the likelihood.
func (e *Evaluator)LogPosterior(th []float64) (float64, error) {
	p, err := ParamsFromVector(th)
	if err != nil {
		return 0, err
	}
	lp := p.Shape.LogPrior()
	if math.IsInf(lp, -1) {
		return lp, nil
	}
	ll, err := e.LogLike(th)
	return ll + lp, err
}

// Func and GradFunc adapt the evaluator to the function shapes that
// gonum's optimize.Problem wants. Errors come back as NaNs.
func (e *Evaluator)Func() func([]float64) float64 {
	return func(th []float64) float64 {
		ll, err := e.LogLike(th)
		if err != nil {
			return math.NaN()
		}
		return ll
	}
}

func (e *Evaluator)GradFunc() func(grad, th []float64) {
	return func(grad, th []float64) {
		g, err := e.Grad(th)
		if err != nil {
			for i := range grad {
				grad[i] = math.NaN()
			}
			return
		}
		copy(grad, g)
	}
}

// CheckGrad compares the evaluator's gradient at th, component by
// component, with central differences of LogLike taken with `step`.
// It returns the gradient, the numerical gradient, and their relative
// differences.
func (e *Evaluator)CheckGrad(th []float64, step float64) (grad, numerical, relErr []float64, err error) {
	if grad, err = e.Grad(th); err != nil {
		return
	}
	numerical = fd.Gradient(nil, e.Func(), th, &fd.Settings{Formula: fd.Central, Step: step})
	relErr = make([]float64, len(grad))
	for i := range grad {
		relErr[i] = RelErr(grad[i], numerical[i])
	}
	return
}

// RelErr is |a-b| relative to the bigger of the two, or absolute when
// both are tiny.
func RelErr(a, b float64) float64 {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1e-8 {
		return math.Abs(a - b)
	}
	return math.Abs(a-b) / scale
}
