package emath

// 2x2 linear algebra, used for galaxy shape transforms and the
// covariances of 2D gaussian mixtures.

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point
	"gonum.org/v1/gonum/mat"
)

// Use local types so we can hang methods off them
type Vec2 f64.Vec2

func (a Vec2)Add(b Vec2) Vec2           { return Vec2{a[0]+b[0], a[1]+b[1]} }
func (a Vec2)Sub(b Vec2) Vec2           { return Vec2{a[0]-b[0], a[1]-b[1]} }
func (a Vec2)Scale(s float64) Vec2      { return Vec2{s*a[0], s*a[1]} }
func (a Vec2)Dot(b Vec2) float64        { return a[0]*b[0] + a[1]*b[1] }
func (a Vec2)String() string            { return fmt.Sprintf("[%12.10f, %12.10f]", a[0], a[1]) }

// Mat2 is a row-major 2x2 matrix: {m00, m01, m10, m11}
type Mat2 [4]float64

func Identity2() Mat2 {
	return Mat2{1, 0,   0, 1}
}

func Diag2(a, b float64) Mat2 {
	return Mat2{a, 0,   0, b}
}

func (m Mat2)At(r, c int) float64 { return m[2*r+c] }

func (a Mat2)Mult(b Mat2) Mat2 {
	return Mat2{
		a[0]*b[0] + a[1]*b[2],   a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],   a[2]*b[1] + a[3]*b[3],
	}
}

func (a Mat2)Add(b Mat2) Mat2 {
	return Mat2{a[0]+b[0], a[1]+b[1],   a[2]+b[2], a[3]+b[3]}
}

func (m Mat2)Scale(s float64) Mat2 {
	return Mat2{s*m[0], s*m[1],   s*m[2], s*m[3]}
}

func (m Mat2)Transpose() Mat2 {
	return Mat2{m[0], m[2],   m[1], m[3]}
}

func (m Mat2)Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

func (m Mat2)Apply(v Vec2) Vec2 {
	return Vec2{
		m[0]*v[0] + m[1]*v[1],
		m[2]*v[0] + m[3]*v[1],
	}
}

// Gram returns M * M^T, e.g. turning a "square root" of a covariance
// into the covariance itself.
func (m Mat2)Gram() Mat2 {
	return m.Mult(m.Transpose())
}

// InverseFast uses the closed form. It does not check for
// singularity; the caller must know det != 0.
func (m Mat2)InverseFast() Mat2 {
	d := m.Det()
	return Mat2{m[3]/d, -m[1]/d,   -m[2]/d, m[0]/d}
}

// Inverse goes via gonum's LU, so that singular (or hopelessly
// ill-conditioned) matrices come back as an error instead of Infs.
func (m Mat2)Inverse() (Mat2, error) {
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(2, 2, m[:])); err != nil {
		return Mat2{}, fmt.Errorf("invert %v: %w", [4]float64(m), err)
	}
	return Mat2{inv.At(0,0), inv.At(0,1), inv.At(1,0), inv.At(1,1)}, nil
}

// IsPosDef checks the leading minors. Symmetry is assumed, not checked.
func (m Mat2)IsPosDef() bool {
	return m[0] > 0 && m.Det() > 0
}

func (a Mat2)ApproxEqual(b Mat2, tol float64) bool {
	for i:=0; i<4; i++ {
		if math.Abs(a[i]-b[i]) > tol { return false }
	}
	return true
}

func (m Mat2)String() string {
	str := fmt.Sprintf("[%12.10g, %12.10g]\n", m[0], m[1])
	str += fmt.Sprintf("[%12.10g, %12.10g]\n", m[2], m[3])
	return str
}
