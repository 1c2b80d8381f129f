// Package plotting renders spike trains and binned trains with gonum/plot.
//
// The output format follows the file extension (.png, .svg, .pdf, .eps,
// .jpg, .tif).
package plotting

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var supportedFormats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "eps": true,
	"jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// Option configures a figure.
type Option func(*figure)

type figure struct {
	title  string
	width  vg.Length
	height vg.Length
}

func newFigure(opts []Option) figure {
	f := figure{width: 6 * vg.Inch, height: 4 * vg.Inch}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(f *figure) {
		f.title = title
	}
}

// WithSize sets the figure size.
func WithSize(width, height vg.Length) Option {
	return func(f *figure) {
		f.width = width
		f.height = height
	}
}

// tickGlyph draws a short vertical line, the usual raster mark.
type tickGlyph struct{}

func (tickGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.StrokeLine2(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)},
		pt.X, pt.Y-sty.Radius, pt.X, pt.Y+sty.Radius)
}

// Raster builds a raster plot: spike times of train i are drawn on row i.
func Raster(spikeTimes [][]float64, opts ...Option) (*plot.Plot, error) {
	if len(spikeTimes) == 0 {
		return nil, errors.NewModelError("plotting.Raster", "no trains", errors.ErrEmptyData)
	}
	f := newFigure(opts)

	var pts plotter.XYs
	for i, train := range spikeTimes {
		for _, t := range train {
			pts = append(pts, plotter.XY{X: t, Y: float64(i)})
		}
	}
	if len(pts) == 0 {
		return nil, errors.NewModelError("plotting.Raster", "no spikes", errors.ErrEmptyData)
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "plotting.Raster")
	}
	s.GlyphStyle.Shape = tickGlyph{}
	s.GlyphStyle.Radius = vg.Points(4)

	p := plot.New()
	p.Title.Text = f.title
	p.X.Label.Text = "time"
	p.Y.Label.Text = "train"
	p.Y.Min = -1
	p.Y.Max = float64(len(spikeTimes))
	p.Add(s)
	return p, nil
}

// BinnedTrain builds a bar chart of one binarized train.
func BinnedTrain(counts []float64, binSize float64, opts ...Option) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, errors.NewModelError("plotting.BinnedTrain", "no bins", errors.ErrEmptyData)
	}
	if binSize <= 0 {
		return nil, errors.NewValidationError("binSize", "must be positive", binSize)
	}
	f := newFigure(opts)

	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(4))
	if err != nil {
		return nil, errors.Wrap(err, "plotting.BinnedTrain")
	}
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = f.title
	p.X.Label.Text = fmt.Sprintf("bin (%g per bin)", binSize)
	p.Y.Label.Text = "spikes"
	p.Add(bars)
	return p, nil
}

// Save writes p to path using the figure size from opts.
func Save(p *plot.Plot, path string, opts ...Option) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supportedFormats[format] {
		return errors.NewValidationError("path", "unsupported image format", filepath.Ext(path))
	}
	f := newFigure(opts)
	if err := p.Save(f.width, f.height, path); err != nil {
		return errors.Wrapf(err, "plotting: save %s", path)
	}
	return nil
}

// SaveRaster renders spikeTimes as a raster plot and writes it to path.
func SaveRaster(spikeTimes [][]float64, path string, opts ...Option) error {
	p, err := Raster(spikeTimes, opts...)
	if err != nil {
		return err
	}
	return Save(p, path, opts...)
}

// SaveBinnedTrain renders one binarized train and writes it to path.
func SaveBinnedTrain(counts []float64, binSize float64, path string, opts ...Option) error {
	p, err := BinnedTrain(counts, binSize, opts...)
	if err != nil {
		return err
	}
	return Save(p, path, opts...)
}
