package survey

import(
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
)

// SimulateCounts draws a Poisson photon count for every pixel of an
// expected-count image. Pixels with no expected light get zero counts.
func SimulateCounts(lam *emath.FloatGrid, src rand.Source) emath.FloatGrid {
	counts := lam.NewFromThis()
	for x:=0; x<lam.Dx(); x++ {
		for y:=0; y<lam.Dy(); y++ {
			l := lam.Get(x,y)
			if !(l > 0) {
				continue
			}
			counts.Set(x, y, distuv.Poisson{Lambda: l, Src: src}.Rand())
		}
	}
	return counts
}
