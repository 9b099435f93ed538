// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/benchplot/benchplot/benchcsv"
)

const testCSV = `name,iterations,real_time,cpu_time,time_unit
BM_Copy_MatrixXd/16,100,20,20,ns
BM_Copy_MatrixXd/8,100,10,10,ns
BM_Add_MatrixXd/8,100,5,5,ns
BM_Add_MatrixXd/16,100,10,10,ns
BM_Mult_MatrixXd/8,100,40,40,ns
BM_Mult_MatrixXd/16,100,160,160,ns
BM_Short/8,100,1,1,ns
`

func loadTest(t *testing.T) benchcsv.Bench {
	t.Helper()
	b, err := benchcsv.Read(strings.NewReader(testCSV), "test.csv")
	require.NoError(t, err)
	return b
}

func families(c *Chart) []string {
	var names []string
	for _, s := range c.Series {
		names = append(names, s.Family)
	}
	return names
}

func ys(s Series) []float64 {
	var out []float64
	for _, p := range s.Points {
		out = append(out, p.Y)
	}
	return out
}

func TestRatios(t *testing.T) {
	got, err := Ratios([]float64{5, 10}, []float64{10, 20})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, got)

	_, err = Ratios([]float64{1, 2, 3}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrLength), "got %v, want ErrLength", err)
}

func TestCurves(t *testing.T) {
	b := loadTest(t)
	c, err := Curves(b, []string{"*MatrixXd"}, Options{Title: "timing"})
	require.NoError(t, err)

	assert.Equal(t, []string{"BM_Add_MatrixXd", "BM_Copy_MatrixXd", "BM_Mult_MatrixXd"}, families(c))
	assert.Equal(t, "timing", c.Plot.Title.Text)
	assert.Equal(t, "cpu_time (ns)", c.Plot.Y.Label.Text)

	copySeries := c.Series[1]
	assert.Equal(t, []float64{8, 16}, []float64{copySeries.Points[0].X, copySeries.Points[1].X})
	assert.Equal(t, []float64{10, 20}, ys(copySeries))
}

func TestCurvesUnit(t *testing.T) {
	b, err := benchcsv.Read(strings.NewReader("name,cpu_time,iterations,time_unit\nA/1,1,10,ns\nB/1,1,10,us\n"), "in")
	require.NoError(t, err)

	c, err := Curves(b, []string{"A"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "cpu_time (ns)", c.Plot.Y.Label.Text)

	c, err = Curves(b, []string{"*"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "cpu_time", c.Plot.Y.Label.Text)

	c, err = Curves(b, []string{"A"}, Options{Field: "iterations"})
	require.NoError(t, err)
	assert.Equal(t, "iterations", c.Plot.Y.Label.Text)
}

func TestCurvesNoMatch(t *testing.T) {
	b := loadTest(t)
	c, err := Curves(b, []string{"*Decomposition*"}, Options{LogY: true})
	require.NoError(t, err)
	assert.Empty(t, c.Series)

	// An empty chart still renders.
	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf, "png"))
	assert.NotZero(t, buf.Len())
}

func TestCurvesMissingField(t *testing.T) {
	b := loadTest(t)
	_, err := Curves(b, []string{"BM_Copy*"}, Options{Field: "time_unit"})
	assert.ErrorContains(t, err, "no numeric field time_unit")
}

func TestCurvesParamIndex(t *testing.T) {
	b := loadTest(t)
	_, err := Curves(b, []string{"BM_Copy*"}, Options{X: 1})
	assert.ErrorContains(t, err, "has no parameter 2")
}

func TestRelative(t *testing.T) {
	b := loadTest(t)
	c, err := Relative(b, []string{"BM_Add*", "BM_Mult*"}, "BM_Copy_MatrixXd", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Comparison with BM_Copy_MatrixXd", c.Plot.Title.Text)
	assert.Equal(t, []string{"BM_Add_MatrixXd", "BM_Mult_MatrixXd"}, families(c))
	assert.Equal(t, []float64{0.5, 0.5}, ys(c.Series[0]))
	assert.Equal(t, []float64{4, 8}, ys(c.Series[1]))
	assert.InDelta(t, 0.5, c.Series[0].GeoMean(), 1e-9)
	assert.InDelta(t, math.Sqrt(32), c.Series[1].GeoMean(), 1e-9)

	_, ok := c.Plot.Y.Tick.Marker.(ratioLines)
	assert.True(t, ok, "Y marker is %T, want ratioLines", c.Plot.Y.Tick.Marker)
	assert.LessOrEqual(t, c.Plot.Y.Min, 1.0)
}

func TestRelativeTitle(t *testing.T) {
	b := loadTest(t)
	c, err := Relative(b, []string{"BM_Add*"}, "BM_Copy_MatrixXd", Options{Title: "Add vs copy", LogY: true})
	require.NoError(t, err)
	assert.Equal(t, "Add vs copy", c.Plot.Title.Text)
	assert.IsType(t, plot.LogScale{}, c.Plot.Y.Scale)
}

func TestRelativeErrors(t *testing.T) {
	b := loadTest(t)

	_, err := Relative(b, []string{"*"}, "BM_Missing", Options{})
	assert.True(t, errors.Is(err, ErrNoBaseline), "got %v, want ErrNoBaseline", err)

	_, err = Relative(b, []string{"BM_Short"}, "BM_Copy_MatrixXd", Options{})
	assert.True(t, errors.Is(err, ErrLength), "got %v, want ErrLength", err)
}

func TestLogSkipsNonPositive(t *testing.T) {
	b, err := benchcsv.Read(strings.NewReader("name,cpu_time\nA/0,1\nA/1,0\nA/2,4\n"), "in")
	require.NoError(t, err)

	c, err := Curves(b, []string{"A"}, Options{LogX: true, LogY: true})
	require.NoError(t, err)
	require.Len(t, c.Series, 1)
	assert.Equal(t, []float64{4}, ys(c.Series[0]))

	c, err = Curves(b, []string{"A"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 4}, ys(c.Series[0]))
}

func TestSave(t *testing.T) {
	b := loadTest(t)
	c, err := Curves(b, []string{"*Copy*"}, Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	file, err := c.Save(filepath.Join(dir, "out", "copy"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "copy.png"), file)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "not a PNG file")

	file, err = c.Save(filepath.Join(dir, "copy"), "svg")
	require.NoError(t, err)
	data, err = os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = c.Save(filepath.Join(dir, "copy"), "bmp")
	assert.Error(t, err)
}

func TestFormatHTML(t *testing.T) {
	var buf bytes.Buffer
	err := FormatHTML(&buf, "Benchmarks <all>", []IndexEntry{
		{Title: "Copy timing", File: "basic_copy.png", Families: []string{"BM_Copy_MatrixXd", "BM_Copy_VectorXd"}},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `src="basic_copy.png"`)
	assert.Contains(t, out, "BM_Copy_MatrixXd, BM_Copy_VectorXd")
	assert.Contains(t, out, "Benchmarks &lt;all&gt;")
}
