// Package plotting renders the training diagrams: the dataset with the
// reference line, and the model's fitted line against train and test data.
package plotting

import (
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/fx-xf/bfte/pkg/errors"
)

var (
	trainColor     = color.RGBA{R: 31, G: 119, B: 180, A: 160}
	testColor      = color.RGBA{R: 255, G: 127, B: 14, A: 160}
	referenceColor = color.RGBA{G: 128, A: 255}
	predictedColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Reference is the line the dataset diagram is compared against.
func Reference(x float64) float64 {
	return 5*x + 6
}

// Options controls sampling and image size.
type Options struct {
	// MaxPoints caps the scatter points drawn per series.
	MaxPoints int
	// Seed drives the sub-sampling.
	Seed   uint64
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches the training defaults.
func DefaultOptions() Options {
	return Options{MaxPoints: 1000, Seed: 42, Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// Series holds the train and test points, x being the first feature.
type Series struct {
	Train plotter.XYs
	Test  plotter.XYs
}

// NewSeries builds a Series from the first column of each design matrix,
// sub-sampled to opts.MaxPoints.
func NewSeries(xTrain mat.Matrix, yTrain mat.Vector, xTest mat.Matrix, yTest mat.Vector, opts Options) Series {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	return Series{
		Train: Sample(Points(xTrain, yTrain), opts.MaxPoints, rng),
		Test:  Sample(Points(xTest, yTest), opts.MaxPoints, rng),
	}
}

// Points pairs the first column of X with y.
func Points(X mat.Matrix, y mat.Vector) plotter.XYs {
	xys := make(plotter.XYs, y.Len())
	for i := range xys {
		xys[i].X = X.At(i, 0)
		xys[i].Y = y.AtVec(i)
	}
	return xys
}

// Sample returns at most limit points chosen without replacement. A
// non-positive limit keeps every point.
func Sample(xys plotter.XYs, limit int, rng *rand.Rand) plotter.XYs {
	if limit <= 0 || len(xys) <= limit {
		return xys
	}
	out := make(plotter.XYs, limit)
	for i, idx := range rng.Perm(len(xys))[:limit] {
		out[i] = xys[idx]
	}
	return out
}

func (s Series) xRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, xys := range []plotter.XYs{s.Train, s.Test} {
		for _, p := range xys {
			lo = math.Min(lo, p.X)
			hi = math.Max(hi, p.X)
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// DatasetDiagram draws train and test scatters with the reference line and
// writes a PNG to path.
func DatasetDiagram(s Series, opts Options, path string) error {
	p, err := newPlot("Password Entropy Dataset", "length", "entropy", s, true, true)
	if err != nil {
		return err
	}
	if err := addLine(p, s, "reference", Reference, referenceColor); err != nil {
		return err
	}

	img := vgimg.New(opts.Width, opts.Height)
	p.Draw(draw.New(img))
	return savePNG(img, path)
}

// PredictionDiagram draws three stacked panels (train and test, train only,
// test only), each with the reference line and predict as the fitted line.
func PredictionDiagram(s Series, predict func(float64) float64, opts Options, path string) error {
	panels := []struct {
		title       string
		train, test bool
	}{
		{"train test", true, true},
		{"train", true, false},
		{"test", false, true},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		p, err := newPlot(panel.title, "feature", "target", s, panel.train, panel.test)
		if err != nil {
			return err
		}
		if err := addLine(p, s, "reference", Reference, referenceColor); err != nil {
			return err
		}
		if err := addLine(p, s, "predicted", predict, predictedColor); err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}
	shareY(plots)

	img := vgimg.New(opts.Width, 3*opts.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return savePNG(img, path)
}

func newPlot(title, xLabel, yLabel string, s Series, train, test bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)

	add := func(name string, xys plotter.XYs, c color.Color) error {
		if len(xys) == 0 {
			return nil
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrapf(err, "scatter %s", name)
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(name, sc)
		return nil
	}
	if train {
		if err := add("train", s.Train, trainColor); err != nil {
			return nil, err
		}
	}
	if test {
		if err := add("test", s.Test, testColor); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func addLine(p *plot.Plot, s Series, name string, fn func(float64) float64, c color.Color) error {
	if fn == nil {
		return errors.NewValueError("plotting", name+" line function is nil")
	}
	lo, hi := s.xRange()
	f := plotter.NewFunction(fn)
	f.XMin, f.XMax = lo, hi
	f.Samples = 100
	f.Color = c
	f.Width = vg.Points(1.5)
	p.Add(f)
	p.Legend.Add(name, f)
	return nil
}

// shareY gives every plot the union of their Y ranges.
func shareY(plots [][]*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range plots {
		for _, p := range row {
			lo = math.Min(lo, p.Y.Min)
			hi = math.Max(hi, p.Y.Max)
		}
	}
	for _, row := range plots {
		for _, p := range row {
			p.Y.Min, p.Y.Max = lo, hi
		}
	}
}

func savePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create diagram")
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrap(f.Close(), "close diagram")
}
