package mog

// A Mixture is a weighted sum of 2D gaussian densities. Image PSFs are
// described this way, and so is a galaxy profile once it has been
// convolved with a PSF.

import(
	"errors"
	"fmt"
	"math"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
)

var ErrBadCovariance = errors.New("covariance is not positive definite")

type Mixture struct {
	Weights []float64
	Means   []emath.Vec2
	Covars  []emath.Mat2
}

func NewMixture(n int) Mixture {
	return Mixture{
		Weights: make([]float64, 0, n),
		Means:   make([]emath.Vec2, 0, n),
		Covars:  make([]emath.Mat2, 0, n),
	}
}

func (m Mixture)Len() int { return len(m.Weights) }

func (m *Mixture)Add(w float64, mu emath.Vec2, cov emath.Mat2) {
	m.Weights = append(m.Weights, w)
	m.Means   = append(m.Means, mu)
	m.Covars  = append(m.Covars, cov)
}

func (m Mixture)String() string {
	str := fmt.Sprintf("Mixture (%d components) [\n", m.Len())
	for i:=0; i<m.Len(); i++ {
		str += fmt.Sprintf("  w=%10.6g mu=%s cov=%v\n", m.Weights[i], m.Means[i], [4]float64(m.Covars[i]))
	}
	return str + "]\n"
}

// Validate checks the three slices line up and that every covariance
// is usable as a gaussian covariance.
func (m Mixture)Validate() error {
	if len(m.Means) != len(m.Weights) || len(m.Covars) != len(m.Weights) {
		return fmt.Errorf("mixture has %d weights, %d means, %d covars",
			len(m.Weights), len(m.Means), len(m.Covars))
	}
	for i, c := range m.Covars {
		if !c.IsPosDef() {
			return fmt.Errorf("component %d %v: %w", i, [4]float64(c), ErrBadCovariance)
		}
	}
	return nil
}

// component holds what we need to evaluate one gaussian many times
type component struct {
	norm   float64     // w / (2 pi sqrt(det))
	mu     emath.Vec2
	prec   emath.Mat2  // inverse covariance
}

func (m Mixture)components() ([]component, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	comps := make([]component, m.Len())
	for i:=0; i<m.Len(); i++ {
		c := m.Covars[i]
		comps[i] = component{
			norm: m.Weights[i] / (2.0 * math.Pi * math.Sqrt(c.Det())),
			mu:   m.Means[i],
			prec: c.InverseFast(),
		}
	}
	return comps, nil
}

func (c component)eval(x emath.Vec2) float64 {
	d := x.Sub(c.mu)
	return c.norm * math.Exp(-0.5 * d.Dot(c.prec.Apply(d)))
}

// Density evaluates the mixture at a single point.
func (m Mixture)Density(x emath.Vec2) (float64, error) {
	comps, err := m.components()
	if err != nil {
		return 0, err
	}
	p := 0.0
	for _, c := range comps {
		p += c.eval(x)
	}
	return p, nil
}

// EvalGrid evaluates the mixture at every point, writing into out
// (which must be as long as points). Any previous contents of out are
// overwritten.
func (m Mixture)EvalGrid(points []emath.Vec2, out []float64) error {
	if len(out) != len(points) {
		return fmt.Errorf("EvalGrid: %d points but %d outputs", len(points), len(out))
	}
	comps, err := m.components()
	if err != nil {
		return err
	}
	for i := range out {
		out[i] = 0
	}
	for _, c := range comps {
		for i, x := range points {
			out[i] += c.eval(x)
		}
	}
	return nil
}
