package survey

import(
	"fmt"
	"strings"
)

// A Band is one of the five SDSS filters.
type Band string

const(
	BandU Band = "u"
	BandG Band = "g"
	BandR Band = "r"
	BandI Band = "i"
	BandZ Band = "z"
)

// Bands is the fixed band order, used to pack fluxes into parameter vectors.
var Bands = []Band{BandU, BandG, BandR, BandI, BandZ}

const NumBands = 5

// Index returns the band's position in Bands, or -1.
func (b Band)Index() int {
	for i, bb := range Bands {
		if bb == b { return i }
	}
	return -1
}

func (b Band)Valid() bool { return b.Index() >= 0 }

func ParseBand(s string) (Band, error) {
	b := Band(strings.ToLower(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", fmt.Errorf("no band named '%s' (want one of %v)", s, Bands)
	}
	return b, nil
}

// Fluxes holds one flux per band, in nanomaggies, in Bands order.
type Fluxes [NumBands]float64

func (f Fluxes)Get(b Band) float64     { return f[b.Index()] }
func (f *Fluxes)Set(b Band, v float64) { f[b.Index()] = v }

func (f Fluxes)String() string {
	str := "{"
	for i, b := range Bands {
		if i > 0 { str += ", " }
		str += fmt.Sprintf("%s:%g", b, f[i])
	}
	return str + "}"
}
