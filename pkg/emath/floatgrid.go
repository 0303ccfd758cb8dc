package emath

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, with some operations. Values are
// stored row by row, so index stride*y + x is pixel (x, y).
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFrom wraps `vals` (not copied), which must hold w*h values
// in row order.
func NewFloatGridFrom(w, h int, vals []float64) (FloatGrid, error) {
	if w < 0 || h < 0 || len(vals) != w*h {
		return FloatGrid{}, fmt.Errorf("NewFloatGridFrom: %d values can't fill %dx%d", len(vals), w, h)
	}
	return FloatGrid{stride: w, values: vals}, nil
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Len() int                { return len(fg.values) }
func (fg *FloatGrid)Values() []float64       { return fg.values }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

func (g1 *FloatGrid)SameShape(g2 *FloatGrid) bool {
	return g1.Dx() == g2.Dx() && g1.Dy() == g2.Dy()
}

func (fg *FloatGrid)Sum() float64            { return floats.Sum(fg.values) }
func (fg *FloatGrid)Scale(s float64)         { floats.Scale(s, fg.values) }

// AddScaled performs g1 += alpha * g2. The grids must be the same shape.
func (g1 *FloatGrid)AddScaled(alpha float64, g2 *FloatGrid) {
	floats.AddScaled(g1.values, alpha, g2.values)
}

// Mix returns alpha*g1 + (1-alpha)*g2, as a new grid.
func (g1 *FloatGrid)Mix(alpha float64, g2 *FloatGrid) FloatGrid {
	out := g1.NewFromThis()
	floats.AddScaledTo(out.values, out.values, alpha, g1.values)
	floats.AddScaled(out.values, 1.0-alpha, g2.values)
	return out
}

func (fg *FloatGrid)MinMax() (float64, float64) {
	if len(fg.values) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(fg.values), floats.Max(fg.values)
}

func (fg *FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%g,%g}, sum %g]", fg.Dx(), fg.Dy(), min, max, fg.Sum())
}
