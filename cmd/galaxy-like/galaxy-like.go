package main

// galaxy-like evaluates the single galaxy log-likelihood, and its
// gradient, on the images described by a scene file. The observed
// counts are simulated from the scene's truth galaxy.
//
//   $ galaxy-like -checkgrad pkg/scene/testdata/scene.yaml

import(
	"flag"
	"fmt"
	"log"
	"os"
	"math"
	"strings"

	"github.com/skypies/util/histogram"

	"github.com/abworrall/celeste-galaxy/pkg/galaxy"
	"github.com/abworrall/celeste-galaxy/pkg/scene"
)

var(
	Log *log.Logger

	fVerbosity int
	fFDStep float64
	fSeed uint64
	fCheckGrad bool
	fCheckStep float64
	fModelPNG string
	fModelTIFF string
	fModelHDR string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.Float64Var(&fFDStep, "fdstep", 0, "finite difference step for the shape/location partials (0 = use scene)")
	flag.Uint64Var(&fSeed, "seed", 0, "random seed for simulating counts (0 = use scene)")
	flag.BoolVar(&fCheckGrad, "checkgrad", false, "compare the gradient with central differences of the loglike")
	flag.Float64Var(&fCheckStep, "checkstep", 1e-6, "step for -checkgrad")
	flag.StringVar(&fModelPNG, "png", "", "write each image's model as a PNG; %s gets the image name")
	flag.StringVar(&fModelTIFF, "tiff", "", "write each image's model as a 16bit TIFF; %s gets the image name")
	flag.StringVar(&fModelHDR, "hdr", "", "write each image's model as a Radiance HDR file; %s gets the image name")
	flag.Parse()

	Log = log.New(os.Stdout, "", log.Ldate|log.Ltime)
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: galaxy-like [flags] scene.yaml\n")
	}

	s, err := scene.LoadScene(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	// Override the scene file with command line args, if relevant
	if fVerbosity > 0 { s.Verbosity = fVerbosity }
	if fFDStep > 0 { s.FDStep = fFDStep }
	if fSeed > 0 { s.Seed = fSeed }
	if fModelPNG != "" { s.Outputs.ModelPNG = fModelPNG }
	if fModelTIFF != "" { s.Outputs.ModelTIFF = fModelTIFF }
	if fModelHDR != "" { s.Outputs.ModelHDR = fModelHDR }

	if s.Verbosity > 0 {
		Log.Printf("Final scene:-\n\n%s\n", s.AsYaml())
	}

	e, err := s.Evaluator()
	if err != nil {
		log.Fatalf("building evaluator: %v\n", err)
	}
	if s.Verbosity > 0 {
		Log.Printf("%s", e)
	}

	p := s.EvalParams()
	th := p.Vector()

	ll, err := e.LogLike(th)
	if err != nil {
		log.Fatalf("loglike: %v\n", err)
	}
	grad, err := e.Grad(th)
	if err != nil {
		log.Fatalf("grad: %v\n", err)
	}
	llTruth, _ := e.LogLike(s.TruthParams().Vector())

	Log.Printf("params    : %s\n", p)
	Log.Printf("loglike   : %.10g (truth: %.10g)\n", ll, llTruth)
	Log.Printf("log prior : constrained %.6g, unconstrained %.6g\n", p.Shape.LogPrior(), p.Shape.Unconstrain().LogPrior())
	Log.Printf("gradient  :\n%s", formatVector(grad))

	if fCheckGrad {
		_, numerical, relErr, err := e.CheckGrad(th, fCheckStep)
		if err != nil {
			log.Fatalf("checkgrad: %v\n", err)
		}
		str := ""
		for i, name := range galaxy.ParamNames() {
			str += fmt.Sprintf("  %-8s %16.8g %16.8g  rel err %.3g\n", name, grad[i], numerical[i], relErr[i])
		}
		Log.Printf("checkgrad (step %g):\n%s", fCheckStep, str)
	}

	if s.Verbosity > 1 {
		if err := logResiduals(e, th); err != nil {
			log.Fatal(err)
		}
	}

	if err := writeModels(s, th); err != nil {
		log.Fatal(err)
	}
}

func formatVector(v []float64) string {
	str := ""
	for i, name := range galaxy.ParamNames() {
		str += fmt.Sprintf("  %-8s %16.8g\n", name, v[i])
	}
	return str
}

// logResiduals histograms the Pearson residuals, (obs-lam)/sqrt(lam),
// for each image, in tenths.
func logResiduals(e *galaxy.Evaluator, th []float64) error {
	for n, img := range e.Images {
		lam, err := galaxy.ExpectedCounts(th, img)
		if err != nil {
			return err
		}
		h := histogram.Histogram{NumBuckets:20, ValMin:-50, ValMax:50}
		obs := e.Observed[n].Values()
		for i, l := range lam.Values() {
			if l <= 0 { continue }
			h.Add(histogram.ScalarVal(int(10 * (obs[i]-l) / math.Sqrt(l))))
		}
		Log.Printf("%s: residuals (x10)\n%v\n", img.Name, h)
	}
	return nil
}

func outputName(pattern, imgName string) string {
	if strings.Contains(pattern, "%s") {
		return fmt.Sprintf(pattern, imgName)
	}
	return imgName + "-" + pattern
}

// writeModels dumps the expected counts for each image, in whichever
// formats the scene asked for.
func writeModels(s scene.Scene, th []float64) error {
	for _, img := range s.BuiltImages() {
		lam, err := galaxy.ExpectedCounts(th, img)
		if err != nil {
			return err
		}
		if s.Verbosity > 0 {
			Log.Printf("%s: expected counts %s\n", img.Name, lam.Stats())
		}

		if s.Outputs.ModelPNG != "" {
			fn := outputName(s.Outputs.ModelPNG, img.Name)
			if err := lam.ToImg(img.Name, fn); err != nil {
				return err
			}
			Log.Printf("model written '%s'\n", fn)
		}
		if s.Outputs.ModelTIFF != "" {
			fn := outputName(s.Outputs.ModelTIFF, img.Name)
			if err := lam.WriteTIFF(fn); err != nil {
				return err
			}
			Log.Printf("model written '%s'\n", fn)
		}
		if s.Outputs.ModelHDR != "" {
			fn := outputName(s.Outputs.ModelHDR, img.Name)
			if err := lam.WriteHDR(fn); err != nil {
				return err
			}
			Log.Printf("model written '%s'\n", fn)
		}
	}
	return nil
}
