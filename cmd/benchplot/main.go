// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot draws line charts of Google Benchmark CSV results.
//
// Usage:
//
//	benchplot [flags] results.csv
//	benchplot [flags] --config charts.jsonc
//
// Benchmark names of the form Family/p1/p2/... are grouped into
// families and each selected family is drawn as one line over its
// first parameter (or the parameter chosen with -x). Families are
// selected with -n patterns, in which "*" matches any text; the
// default selects every family.
//
// With --baseline, every family is divided run by run by the baseline
// family, which must have the same parameters.
//
// Without -o, the chart is written to standard output. With --config,
// benchplot instead draws every chart of a job file; see package
// chartconfig for its format.
//
// Example:
//
//	benchplot -n '*Copy*' --logy -o out/basic_copy out/BasicEigen.csv
//	benchplot -n '*Copy*' --baseline BM_Copy_MatrixXd -o out/basic_copy_vsCopy out/BasicEigen.csv
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/natefinch/atomic"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/benchplot/benchplot/benchchart"
	"github.com/benchplot/benchplot/benchcsv"
	"github.com/benchplot/benchplot/internal/chartconfig"
)

var errUsage = errors.New("usage")

type options struct {
	names    []string
	baseline string
	field    string
	title    string
	logX     bool
	logY     bool
	x        int
	output   string
	format   string
	config   string
	html     string
	numeric  []string
	summary  bool
	dump     bool
	verbose  bool
}

func main() {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetOutput(os.Stderr)

	err := run(os.Args[1:], os.Stdout, logger)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	} else if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newFlagSet(o *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: benchplot [flags] results.csv
       benchplot [flags] --config charts.jsonc

Flags:
`)
		fs.PrintDefaults()
	}
	fs.StringArrayVarP(&o.names, "names", "n", []string{"*"}, "select families matching `pattern` (repeatable)")
	fs.StringVar(&o.baseline, "baseline", "", "draw families relative to `family`")
	fs.StringVar(&o.field, "field", benchchart.DefaultField, "numeric `field` to plot")
	fs.StringVar(&o.title, "title", "", "chart `title`")
	fs.BoolVar(&o.logX, "logx", false, "use a logarithmic x axis")
	fs.BoolVar(&o.logY, "logy", false, "use a logarithmic y axis")
	fs.IntVarP(&o.x, "param", "x", 0, "`index` of the parameter used as x coordinate")
	fs.StringVarP(&o.output, "output", "o", "", "write the chart to `path`.format instead of standard output")
	fs.StringVar(&o.format, "format", benchchart.DefaultFormat, "image `format`: "+strings.Join(benchchart.Formats, ", "))
	fs.StringVar(&o.config, "config", "", "draw the charts of job `file`")
	fs.StringVar(&o.html, "html", "", "write an HTML index of the charts to `file`")
	fs.StringSliceVar(&o.numeric, "numeric", nil, "extra `fields` to load as numbers")
	fs.BoolVar(&o.summary, "summary", false, "print the geometric mean of each plotted family")
	fs.BoolVar(&o.dump, "dump", false, "print the loaded families as tables")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log more detail")
	return fs
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	var o options
	fs := newFlagSet(&o, logger.Out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if o.config != "" {
		if fs.NArg() != 0 {
			fs.Usage()
			return errUsage
		}
		return runConfig(&o, stdout, logger)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	if o.html != "" && o.output == "" {
		logger.Error("--html requires --output")
		fs.Usage()
		return errUsage
	}
	return runSingle(&o, fs.Arg(0), stdout, logger)
}

// runSingle draws one chart of one file.
func runSingle(o *options, path string, stdout io.Writer, logger *log.Logger) error {
	bench, err := load(path, o.numeric, logger)
	if err != nil {
		return err
	}
	if o.dump {
		if err := benchcsv.Fprint(stdout, bench); err != nil {
			return err
		}
		if o.output == "" && !o.summary {
			return nil
		}
	}

	opts := benchchart.Options{
		Field: o.field,
		Title: o.title,
		LogX:  o.logX,
		LogY:  o.logY,
		X:     o.x,
	}
	chart, err := draw(bench, o.names, o.baseline, opts)
	if err != nil {
		return err
	}
	if o.summary {
		if err := printSummary(stdout, chart); err != nil {
			return err
		}
	}

	if o.output == "" {
		if o.summary {
			// Keep the summary readable.
			return nil
		}
		return chart.WriteTo(stdout, o.format)
	}
	file, err := chart.Save(o.output, o.format)
	if err != nil {
		return err
	}
	logChart(logger, file, chart)
	if o.html != "" {
		entry := indexEntry(file, filepath.Dir(o.html), chart.Plot.Title.Text, chart)
		return writeIndex(o.html, "benchplot", []benchchart.IndexEntry{entry}, logger)
	}
	return nil
}

// runConfig draws every chart of a job file.
func runConfig(o *options, stdout io.Writer, logger *log.Logger) error {
	cfg, err := chartconfig.Load(o.config)
	if err != nil {
		return err
	}
	benches := make(map[string]benchcsv.Bench)
	for _, name := range cfg.InputNames() {
		numeric := append(append([]string(nil), cfg.Numeric...), o.numeric...)
		b, err := load(cfg.Inputs[name], numeric, logger)
		if err != nil {
			return err
		}
		benches[name] = b
	}

	indexPath := o.html
	if indexPath == "" && cfg.Index != "" {
		indexPath = filepath.Join(cfg.OutDir, cfg.Index)
	}

	var entries []benchchart.IndexEntry
	for i := range cfg.Charts {
		c := &cfg.Charts[i]
		chart, err := draw(benches[c.Input], c.Names, c.Baseline, c.Options())
		if err != nil {
			return fmt.Errorf("chart %s: %w", c.File, err)
		}
		file, err := chart.Save(cfg.Path(c), cfg.Format)
		if err != nil {
			return err
		}
		logChart(logger, file, chart)
		if o.summary && c.Relative() {
			fmt.Fprintf(stdout, "%s\n", chart.Plot.Title.Text)
			if err := printSummary(stdout, chart); err != nil {
				return err
			}
			fmt.Fprintln(stdout)
		}
		entries = append(entries, indexEntry(file, filepath.Dir(indexPath), chart.Plot.Title.Text, chart))
	}

	if indexPath != "" {
		title := cfg.Title
		if title == "" {
			title = "benchplot"
		}
		return writeIndex(indexPath, title, entries, logger)
	}
	return nil
}

func load(path string, numeric []string, logger *log.Logger) (benchcsv.Bench, error) {
	l := &benchcsv.Loader{Numeric: numeric}
	b, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	runs := 0
	for _, f := range b {
		runs += f.Len()
	}
	logger.WithFields(log.Fields{
		"file":     path,
		"families": len(b),
		"runs":     runs,
	}).Debug("loaded benchmarks")
	return b, nil
}

func draw(b benchcsv.Bench, names []string, baseline string, opts benchchart.Options) (*benchchart.Chart, error) {
	if baseline != "" {
		return benchchart.Relative(b, names, baseline, opts)
	}
	return benchchart.Curves(b, names, opts)
}

// printSummary prints one row per family of chart with its number of
// points and the geometric mean of its values.
func printSummary(w io.Writer, chart *benchchart.Chart) error {
	if len(chart.Series) == 0 {
		return nil
	}
	var fams []string
	var points []int
	var geomeans []float64
	for _, s := range chart.Series {
		fams = append(fams, s.Family)
		points = append(points, len(s.Points))
		geomeans = append(geomeans, s.GeoMean())
	}
	t := new(table.Builder).
		Add("family", fams).
		Add("points", points).
		Add("geomean", geomeans).
		Done()
	return table.Fprint(w, t, "%s", "%d", "%.4g")
}

func logChart(logger *log.Logger, file string, chart *benchchart.Chart) {
	entry := logger.WithField("file", file)
	entry = entry.WithField("families", len(chart.Series))
	if len(chart.Series) == 0 {
		entry.Warn("no families matched")
		return
	}
	entry.Info("wrote chart")
}

func indexEntry(file, indexDir, title string, chart *benchchart.Chart) benchchart.IndexEntry {
	rel, err := filepath.Rel(indexDir, file)
	if err != nil {
		rel = file
	}
	e := benchchart.IndexEntry{Title: title, File: filepath.ToSlash(rel)}
	for _, s := range chart.Series {
		e.Families = append(e.Families, s.Family)
	}
	return e
}

func writeIndex(path, title string, entries []benchchart.IndexEntry, logger *log.Logger) error {
	var buf strings.Builder
	if err := benchchart.FormatHTML(&buf, title, entries); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(buf.String())); err != nil {
		return err
	}
	logger.WithField("file", path).Info("wrote index")
	return nil
}
