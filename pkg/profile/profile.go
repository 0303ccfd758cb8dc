package profile

// The two canonical galaxy light profiles, each approximated as a
// mixture of circularly symmetric gaussians (in units of the effective
// radius). Fits are the Hogg & Lang (2013) mixtures, as used by the
// tractor; amplitudes are normalised to sum to one.

import(
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var ErrUnknownProfileType = errors.New("unknown galaxy profile type")

const(
	Exp = "exp"   // exponential disk
	Dev = "dev"   // de Vaucouleurs
)

// A Profile is a radially symmetric mixture: component i has amplitude
// Amp[i] and covariance Var[i] * I.
type Profile struct {
	Name string
	Amp  []float64
	Var  []float64
}

func (p Profile)NumComponents() int { return len(p.Amp) }

func (p Profile)String() string {
	return fmt.Sprintf("profile %s: %d components, amp %v, var %v", p.Name, len(p.Amp), p.Amp, p.Var)
}

var registry = map[string]Profile{
	Exp: newProfile(Exp,
		[]float64{2.34853813e-03, 3.07995260e-02, 2.23364214e-01,
			1.17949102e+00, 4.33873750e+00, 5.99820770e+00},
		[]float64{1.20078965e-03, 8.84526493e-03, 3.91463084e-02,
			1.39976817e-01, 4.60962500e-01, 1.50159566e+00}),

	Dev: newProfile(Dev,
		[]float64{4.26347652e-02, 2.40127183e-01, 6.85907632e-01, 1.51937350e+00,
			2.83627243e+00, 4.46467501e+00, 5.72440830e+00, 5.60989349e+00},
		[]float64{2.23759216e-04, 1.00220099e-03, 4.18731126e-03, 1.69432589e-02,
			6.84850479e-02, 2.87207080e-01, 1.33320254e+00, 8.40215071e+00}),
}

func newProfile(name string, amp, vars []float64) Profile {
	amp = append([]float64{}, amp...)
	floats.Scale(1.0/floats.Sum(amp), amp)
	return Profile{Name: name, Amp: amp, Var: vars}
}

// Lookup returns a copy of the named profile, so callers can't scribble
// on the shared table.
func Lookup(name string) (Profile, error) {
	p, exists := registry[name]
	if !exists {
		return Profile{}, fmt.Errorf("profile '%s': %w", name, ErrUnknownProfileType)
	}
	return Profile{
		Name: p.Name,
		Amp:  append([]float64{}, p.Amp...),
		Var:  append([]float64{}, p.Var...),
	}, nil
}

func Names() []string {
	names := []string{}
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
