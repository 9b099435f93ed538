// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws line charts of benchmark families.
//
// Curves plots a numeric field of each selected family against its
// parameter. Relative plots the same field divided, run by run, by a
// baseline family. Families are selected with benchname patterns.
package benchchart

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/benchplot/benchplot/benchcsv"
	"github.com/benchplot/benchplot/benchname"
)

var (
	// ErrNoBaseline is returned by Relative when the baseline
	// family is not in the data.
	ErrNoBaseline = errors.New("baseline family not found")

	// ErrLength is returned when a family and its baseline have a
	// different number of runs.
	ErrLength = errors.New("series lengths differ")
)

// DefaultField is the field plotted when Options.Field is empty.
const DefaultField = "cpu_time"

// Options controls what a chart shows and how large it is.
type Options struct {
	// Field is the numeric field to plot. Default DefaultField.
	Field string

	// Title is the chart title. Relative charts default to
	// "Comparison with <baseline>".
	Title string

	// LogX and LogY select logarithmic axes. Points that are not
	// positive are left out of a logarithmic axis.
	LogX, LogY bool

	// X is the index in the parameter tuple used as the x
	// coordinate.
	X int

	// Width and Height are the size of the rendered image.
	// Defaults 8 and 5 inches.
	Width, Height vg.Length
}

func (o Options) field() string {
	if o.Field == "" {
		return DefaultField
	}
	return o.Field
}

// A Series is one plotted family.
type Series struct {
	Family string
	Points plotter.XYs
}

// GeoMean returns the geometric mean of s's y values. For a relative
// chart this is the typical ratio to the baseline.
func (s Series) GeoMean() float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return stats.GeoMean(ys)
}

// A Chart is a rendered-on-demand plot of a set of families.
type Chart struct {
	Plot   *plot.Plot
	Series []Series

	width, height vg.Length
}

// Curves returns a chart of opts.Field against the parameter for
// every family of b that matches one of patterns. A chart with no
// matching family is empty, not an error.
func Curves(b benchcsv.Bench, patterns []string, opts Options) (*Chart, error) {
	field := opts.field()
	c := newChart(opts)
	names := benchname.MatchAll(patterns, b.Names())
	c.Plot.Y.Label.Text = field
	if unit := timeUnit(b, names); unit != "" && (field == "real_time" || field == "cpu_time") {
		c.Plot.Y.Label.Text = field + " (" + unit + ")"
	}
	for _, name := range names {
		f := b[name]
		ys, err := values(f, field)
		if err != nil {
			return nil, err
		}
		if err := c.addSeries(f, ys, opts); err != nil {
			return nil, err
		}
	}
	c.finish(opts)
	return c, nil
}

// Relative returns a chart of opts.Field divided by the same field of
// family baseline, for every family of b that matches one of
// patterns. Each family must have as many runs as the baseline; run i
// of a family is divided by run i of the baseline.
func Relative(b benchcsv.Bench, patterns []string, baseline string, opts Options) (*Chart, error) {
	field := opts.field()
	base, ok := b[baseline]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoBaseline, baseline)
	}
	baseYs, err := values(base, field)
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "Comparison with " + baseline
	}

	c := newChart(opts)
	c.Plot.Y.Label.Text = field + " / " + baseline
	for _, name := range benchname.MatchAll(patterns, b.Names()) {
		f := b[name]
		ys, err := values(f, field)
		if err != nil {
			return nil, err
		}
		ratios, err := Ratios(ys, baseYs)
		if err != nil {
			return nil, fmt.Errorf("%s vs %s: %w", name, baseline, err)
		}
		if err := c.addSeries(f, ratios, opts); err != nil {
			return nil, err
		}
	}
	if !opts.LogY {
		var all []float64
		for _, s := range c.Series {
			for _, p := range s.Points {
				all = append(all, p.Y)
			}
		}
		if len(all) > 0 {
			c.Plot.Y.Tick.Marker = ratioTicks(all)
			// Keep the unit ratio on the chart.
			if c.Plot.Y.Min > 1 {
				c.Plot.Y.Min = 1
			}
			if c.Plot.Y.Max < 1 {
				c.Plot.Y.Max = 1
			}
		}
	}
	c.finish(opts)
	return c, nil
}

// Ratios returns values[i]/base[i] for each i.
func Ratios(values, base []float64) ([]float64, error) {
	if len(values) != len(base) {
		return nil, fmt.Errorf("%w: %d and %d", ErrLength, len(values), len(base))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base[i]
	}
	return out, nil
}

// timeUnit returns the time_unit shared by every run of the named
// families, or "" if they disagree or do not record one.
func timeUnit(b benchcsv.Bench, names []string) string {
	unit := ""
	for _, name := range names {
		units, ok := b[name].Text("time_unit")
		if !ok {
			return ""
		}
		for _, u := range units {
			if u == "" || (unit != "" && u != unit) {
				return ""
			}
			unit = u
		}
	}
	return unit
}

func values(f *benchcsv.Family, field string) ([]float64, error) {
	ys, ok := f.Float(field)
	if !ok {
		return nil, fmt.Errorf("family %s has no numeric field %s", f.Name, field)
	}
	return ys, nil
}

func newChart(opts Options) *Chart {
	p := plot.New()
	p.Title.Text = opts.Title
	if opts.X == 0 {
		p.X.Label.Text = "parameter"
	} else {
		p.X.Label.Text = fmt.Sprintf("parameter %d", opts.X+1)
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	c := &Chart{Plot: p, width: opts.Width, height: opts.Height}
	if c.width == 0 {
		c.width = 8 * vg.Inch
	}
	if c.height == 0 {
		c.height = 5 * vg.Inch
	}
	return c
}

// addSeries plots ys against the parameters of f.
func (c *Chart) addSeries(f *benchcsv.Family, ys []float64, opts Options) error {
	pts := make(plotter.XYs, 0, len(ys))
	for i, y := range ys {
		params := f.Params[i]
		if opts.X < 0 || opts.X >= len(params) {
			return fmt.Errorf("family %s: run %v has no parameter %d", f.Name, params, opts.X+1)
		}
		x := float64(params[opts.X])
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if (opts.LogX && x <= 0) || (opts.LogY && y <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}

	i := len(c.Series)
	c.Series = append(c.Series, Series{Family: f.Name, Points: pts})
	if len(pts) == 0 {
		return nil
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("family %s: %w", f.Name, err)
	}
	line.Color = plotutil.Color(i)
	line.LineStyle.Width = vg.Points(1.5)
	points.Shape = plotutil.Shape(i)
	points.Color = line.Color
	points.Radius = vg.Points(2)
	c.Plot.Add(line, points)
	c.Plot.Legend.Add(f.Name, line, points)
	return nil
}

// finish applies log scales once the data range is known. An axis
// with no points stays linear, since a logarithmic axis needs a
// positive range.
func (c *Chart) finish(opts Options) {
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	if n == 0 {
		return
	}
	if opts.LogX {
		c.Plot.X.Scale = plot.LogScale{}
		c.Plot.X.Tick.Marker = plot.LogTicks{}
	}
	if opts.LogY {
		c.Plot.Y.Scale = plot.LogScale{}
		c.Plot.Y.Tick.Marker = plot.LogTicks{}
	}
}
