// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chartconfig reads chart job files.
//
// A job file is JSON with comments and trailing commas allowed. It
// names the benchmark CSV files to load and lists the charts to draw
// from them:
//
//	{
//		"outDir": "out",
//		"inputs": {"basic": "out/BasicEigen.csv"},
//		"charts": [
//			// Absolute timings.
//			{"input": "basic", "names": "*Copy*", "logy": true, "file": "basic_copy"},
//			// Relative to a baseline family.
//			{"input": "basic", "names": ["*Copy*"], "baseline": "BM_Copy_MatrixXd", "file": "basic_copy_vsCopy"},
//		],
//	}
package chartconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tailscale/hujson"

	"github.com/benchplot/benchplot/benchchart"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid chart file")

// File is a parsed job file.
type File struct {
	// OutDir is prepended to each chart's File.
	OutDir string `json:"outDir"`

	// Format is the image format of every chart. Default png.
	Format string `json:"format"`

	// Field is the default field of charts that do not set one.
	Field string `json:"field"`

	// Numeric lists extra fields to load as numbers.
	Numeric []string `json:"numeric"`

	// Index, if set, is the name of an HTML page written to OutDir
	// that shows every chart.
	Index string `json:"index"`

	// Title is the title of the index page.
	Title string `json:"title"`

	// Inputs maps input names to CSV file paths.
	Inputs map[string]string `json:"inputs"`

	Charts []Chart `json:"charts"`
}

// Chart describes one chart of a job file.
type Chart struct {
	Input    string   `json:"input"`
	Names    Patterns `json:"names"`
	Baseline string   `json:"baseline"`
	Field    string   `json:"field"`
	Title    string   `json:"title"`
	LogX     bool     `json:"logx"`
	LogY     bool     `json:"logy"`
	X        int      `json:"x"`
	File     string   `json:"file"`
}

// Relative reports whether c is drawn relative to a baseline.
func (c *Chart) Relative() bool {
	return c.Baseline != ""
}

// Options returns the chart options of c.
func (c *Chart) Options() benchchart.Options {
	return benchchart.Options{
		Field: c.Field,
		Title: c.Title,
		LogX:  c.LogX,
		LogY:  c.LogY,
		X:     c.X,
	}
}

// Patterns is a list of family name patterns. In JSON it is either a
// single string or an array of strings.
type Patterns []string

func (p *Patterns) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Patterns{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return err
	}
	*p = ss
	return nil
}

// Load reads and validates the job file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates a job file, filling in defaults.
func Parse(data []byte) (*File, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	f := new(File)
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if f.Format == "" {
		f.Format = benchchart.DefaultFormat
	}
	if f.Field == "" {
		f.Field = benchchart.DefaultField
	}
	for i := range f.Charts {
		if f.Charts[i].Field == "" {
			f.Charts[i].Field = f.Field
		}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	if !benchchart.IsFormat(f.Format) {
		return fmt.Errorf("%w: unsupported format %q", ErrInvalid, f.Format)
	}
	if len(f.Charts) == 0 {
		return fmt.Errorf("%w: no charts", ErrInvalid)
	}
	files := make(map[string]int)
	for i, c := range f.Charts {
		if _, ok := f.Inputs[c.Input]; !ok {
			return fmt.Errorf("%w: chart %d: unknown input %q", ErrInvalid, i, c.Input)
		}
		if len(c.Names) == 0 {
			return fmt.Errorf("%w: chart %d: no names", ErrInvalid, i)
		}
		if c.File == "" {
			return fmt.Errorf("%w: chart %d: no file", ErrInvalid, i)
		}
		if c.X < 0 {
			return fmt.Errorf("%w: chart %d: negative x", ErrInvalid, i)
		}
		if j, ok := files[c.File]; ok {
			return fmt.Errorf("%w: charts %d and %d both write %q", ErrInvalid, j, i, c.File)
		}
		files[c.File] = i
	}
	return nil
}

// Path returns the output path of c, without extension.
func (f *File) Path(c *Chart) string {
	return filepath.Join(f.OutDir, c.File)
}

// InputNames returns the names of f's inputs used by at least one
// chart, sorted.
func (f *File) InputNames() []string {
	used := make(map[string]bool)
	for _, c := range f.Charts {
		used[c.Input] = true
	}
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
