package survey

import(
	"fmt"
	"image"
	"math"

	"github.com/abworrall/celeste-galaxy/pkg/emath"
	"github.com/abworrall/celeste-galaxy/pkg/mog"
)

// An Image is the metadata the likelihood needs for one calibrated
// exposure in one band. It is never modified once built; many
// evaluations can share it.
type Image struct {
	Name   string
	Band   Band
	Calib  float64          // nanomaggies per count
	Kappa  float64          // gain
	Bounds image.Rectangle  // The pixels we model; pixel (x,y) has its center at (x,y)
	PSF    mog.Mixture      // In the same coordinate frame as the pixel grid
}

func (img Image)String() string {
	return fmt.Sprintf("%s: band %s, calib %g, kappa %g, pixels %s, psf %d comps",
		img.Name, img.Band, img.Calib, img.Kappa, img.Bounds, img.PSF.Len())
}

func (img Image)Dx() int { return img.Bounds.Dx() }
func (img Image)Dy() int { return img.Bounds.Dy() }

// NewGrid returns a zeroed FloatGrid the same shape as the image.
func (img Image)NewGrid() emath.FloatGrid {
	return emath.NewFloatGrid(img.Dx(), img.Dy())
}

// PixelGrid returns the coordinates of every pixel, in the same order
// as FloatGrid stores values (row by row).
func (img Image)PixelGrid() []emath.Vec2 {
	pts := make([]emath.Vec2, 0, img.Dx()*img.Dy())
	for y:=img.Bounds.Min.Y; y<img.Bounds.Max.Y; y++ {
		for x:=img.Bounds.Min.X; x<img.Bounds.Max.X; x++ {
			pts = append(pts, emath.Vec2{float64(x), float64(y)})
		}
	}
	return pts
}

// CountsPerNanomaggie converts source flux into expected photon counts.
func (img Image)CountsPerNanomaggie() float64 {
	return img.Kappa / img.Calib
}

// Validate checks the image is something the likelihood can work with.
func (img Image)Validate() error {
	if !img.Band.Valid() {
		return fmt.Errorf("image '%s': bad band '%s'", img.Name, img.Band)
	}
	if img.Calib <= 0 || img.Kappa <= 0 {
		return fmt.Errorf("image '%s': calib (%g) and kappa (%g) must be positive", img.Name, img.Calib, img.Kappa)
	}
	if img.Bounds.Empty() {
		return fmt.Errorf("image '%s': no pixels in %s", img.Name, img.Bounds)
	}
	if img.PSF.Len() == 0 {
		return fmt.Errorf("image '%s': empty PSF", img.Name)
	}
	if err := img.PSF.Validate(); err != nil {
		return fmt.Errorf("image '%s' psf: %w", img.Name, err)
	}
	return nil
}

// ValidateCounts checks an observed-count grid fits this image.
func (img Image)ValidateCounts(counts *emath.FloatGrid) error {
	if counts.Dx() != img.Dx() || counts.Dy() != img.Dy() {
		return fmt.Errorf("image '%s' is %dx%d, counts are %dx%d", img.Name, img.Dx(), img.Dy(), counts.Dx(), counts.Dy())
	}
	for i, v := range counts.Values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("image '%s': bad count %g at index %d", img.Name, v, i)
		}
	}
	return nil
}
