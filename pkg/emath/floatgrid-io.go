package emath

// Dumping FloatGrids out as images, for eyeballing model images.

import(
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"
)

// normalized maps the grid's values into [0,1], based on the range of
// values in the grid.
func (fg *FloatGrid)normalized(x, y int, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (fg.Get(x,y) - min) / (max - min)
}

// ToImg saves a simple grayscale PNG, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.MinMax()

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := GammaExpand_F64(fg.normalized(x, y, min, max))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 5, 15)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("FloatGrid.ToImg '%s': %v", filename, err)
	}
	return nil
}

// WriteTIFF saves a linear 16bit grayscale TIFF, scaled to the range
// of values in the grid.
func (fg *FloatGrid)WriteTIFF(filename string) error {
	min, max := fg.MinMax()

	img := image.NewGray16(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			img.SetGray16(x, y, color.Gray16{uint16(fg.normalized(x, y, min, max) * 65535.0)})
		}
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("FloatGrid.WriteTIFF, open+w '%s': %v", filename, err)
	}
	defer writer.Close()
	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
}

// hdrGrid presents a FloatGrid as a gray hdr.Image, so the raw float
// values survive the trip to disk.
type hdrGrid struct {
	fg *FloatGrid
}

// Implement image.Image
func (h hdrGrid)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (h hdrGrid)Bounds() image.Rectangle       { return image.Rect(0, 0, h.fg.Dx(), h.fg.Dy()) }
func (h hdrGrid)At(x, y int) color.Color       { return h.HDRAt(x,y) }

// Implement hdr.Image
func (h hdrGrid)HDRAt(x, y int) hdrcolor.Color { v := h.fg.Get(x,y); return hdrcolor.RGB{R:v, G:v, B:v} }
func (h hdrGrid)Size() int                     { return h.fg.Len() }

// WriteHDR outputs a Radiance HDR image of the unscaled values.
func (fg *FloatGrid)WriteHDR(filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("FloatGrid.WriteHDR, open+w '%s': %v", filename, err)
	}
	defer writer.Close()
	if err := rgbe.Encode(writer, hdrGrid{fg}); err != nil {
		return fmt.Errorf("FloatGrid.WriteHDR, encoding RGBE file: %v", err)
	}
	return nil
}
