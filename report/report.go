// Package report renders training progress as a table or as error curves.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/neurlang/mushroom/trainer"
)

// ErrNoReports is returned when there is nothing to draw.
var ErrNoReports = errors.New("report: no epochs")

// Table writes one progress line per epoch.
func Table(w io.Writer, reports []trainer.EpochReport) error {
	for _, r := range reports {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// ErrorCurves plots train and test percent error per epoch and saves the plot
// to path. The image format follows the file extension (png, svg, pdf, ...).
func ErrorCurves(path string, reports []trainer.EpochReport) error {
	p, err := errorPlot(reports)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func errorPlot(reports []trainer.EpochReport) (*plot.Plot, error) {
	if len(reports) == 0 {
		return nil, ErrNoReports
	}
	p := plot.New()
	p.Title.Text = "Mushroom classifier"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Error %"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	train := make(plotter.XYs, len(reports))
	test := make(plotter.XYs, len(reports))
	for i, r := range reports {
		train[i] = plotter.XY{X: float64(r.Epoch), Y: r.TrainError}
		test[i] = plotter.XY{X: float64(r.Epoch), Y: r.TestError}
	}

	for _, c := range []struct {
		name string
		xys  plotter.XYs
		col  color.RGBA
	}{
		{"train", train, color.RGBA{B: 255, A: 255}},
		{"test", test, color.RGBA{R: 255, A: 255}},
	} {
		l, err := plotter.NewLine(c.xys)
		if err != nil {
			return nil, err
		}
		l.Color = c.col
		l.LineStyle.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add(c.name, l)
	}
	p.Legend.Top = true
	return p, nil
}
