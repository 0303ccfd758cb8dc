package galaxy

import(
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Drop-in prior log densities. They are not part of LogLike; add them
// on yourself for MAP estimation.

const unconstrainedPriorScale = 50.0

// LogPrior is a broad isotropic gaussian-ish penalty in unconstrained space.
func (u UnconstrainedShape)LogPrior() float64 {
	return -(1.0/unconstrainedPriorScale) * (u.LogitTheta*u.LogitTheta +
		u.LogSigma*u.LogSigma +
		u.LogitPhi*u.LogitPhi +
		u.LogitRho*u.LogitRho)
}

// LogPrior is -Inf outside the shape domain; inside, it is an
// inverse-gamma(1,1) density on sigma^2.
func (s Shape)LogPrior() float64 {
	if !s.InDomain() {
		return math.Inf(-1)
	}
	return invGammaLogProb(s.Sigma*s.Sigma, 1.0, 1.0)
}

// invGammaLogProb is the log density of InvGamma(a,b) at x, via the
// gamma density of 1/x and the jacobian 1/x^2.
func invGammaLogProb(x, a, b float64) float64 {
	g := distuv.Gamma{Alpha: a, Beta: b}
	return g.LogProb(1.0/x) - 2.0*math.Log(x)
}
