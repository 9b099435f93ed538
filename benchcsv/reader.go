// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv loads benchmark results in the CSV format written
// by Google Benchmark (--benchmark_format=csv).
//
// Each row is one run. Its "name" field has the form
// "Family/p1/p2/...", where the integers p1, p2, ... are the run's
// parameter tuple. Loading groups the rows of a file into a Family per
// family name and sorts every family by parameter tuple, so a family
// can be plotted directly as a curve over its parameter.
package benchcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
)

// A SyntaxError reports a malformed line of a benchmark CSV file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Loader reads benchmark CSV files.
//
// The zero Loader converts only DefaultNumericFields to numbers.
type Loader struct {
	// Numeric lists fields to convert to float64 in addition to
	// DefaultNumericFields.
	Numeric []string
}

// ReadFile loads the benchmark CSV file at path using the zero Loader.
func ReadFile(path string) (Bench, error) {
	return new(Loader).ReadFile(path)
}

// Read loads benchmark CSV data from r using the zero Loader.
// fileName is used in error messages.
func Read(r io.Reader, fileName string) (Bench, error) {
	return new(Loader).Read(r, fileName)
}

// ReadFile loads the benchmark CSV file at path.
func (l *Loader) ReadFile(path string) (Bench, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Read(f, path)
}

// row is one CSV row, before grouping.
type row struct {
	line   int
	family string
	params Params
	vals   map[string]string
}

// Read loads benchmark CSV data from r. fileName is used in error
// messages.
//
// Lines before the first line with more than one comma-separated
// field are ignored; that line is the header. Empty values are
// treated as absent. Any malformed row fails the whole load.
func (l *Loader) Read(r io.Reader, fileName string) (Bench, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}

	// Skip the preamble.
	br := bufio.NewReader(r)
	lineNo := 0
	var header string
	for {
		s, err := br.ReadString('\n')
		if len(s) > 0 {
			lineNo++
			if strings.Contains(s, ",") {
				header = s
				break
			}
		}
		if err == io.EOF {
			return nil, &SyntaxError{fileName, lineNo, "no CSV header found"}
		} else if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fileName, lineNo, err)
		}
	}
	skip := lineNo - 1

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil {
		return nil, csvError(fileName, skip, err)
	}
	nameCol := -1
	for i, f := range fields {
		if f == "name" {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil, &SyntaxError{fileName, lineNo, `header has no "name" field`}
	}

	var order []string
	byName := make(map[string]*row)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(fileName, skip, err)
		}
		line, _ := cr.FieldPos(0)
		line += skip

		if len(rec) > len(fields) {
			return nil, &SyntaxError{fileName, line, fmt.Sprintf("row has %d fields, header has %d", len(rec), len(fields))}
		}
		var name string
		if nameCol < len(rec) {
			name = rec[nameCol]
		}
		if name == "" {
			return nil, &SyntaxError{fileName, line, "row has no name"}
		}
		family, params, err := ParseName(name)
		if err != nil {
			return nil, &SyntaxError{fileName, line, err.Error()}
		}
		vals := make(map[string]string, len(rec))
		for i, v := range rec {
			if i == nameCol || v == "" {
				continue
			}
			vals[fields[i]] = v
		}

		// A repeated name replaces the earlier row but keeps its
		// position.
		rw := &row{line, family, params, vals}
		if old, ok := byName[name]; ok {
			*old = *rw
			continue
		}
		byName[name] = rw
		order = append(order, name)
	}

	var families []string
	groups := make(map[string][]*row)
	for _, name := range order {
		rw := byName[name]
		if _, ok := groups[rw.family]; !ok {
			families = append(families, rw.family)
		}
		groups[rw.family] = append(groups[rw.family], rw)
	}

	numeric := make(map[string]bool)
	for _, f := range DefaultNumericFields {
		numeric[f] = true
	}
	for _, f := range l.Numeric {
		numeric[f] = true
	}

	bench := make(Bench, len(families))
	for _, family := range families {
		f, err := newFamily(fileName, family, groups[family], fields, nameCol, numeric)
		if err != nil {
			return nil, err
		}
		bench[family] = f
	}
	return bench, nil
}

// newFamily builds the sorted Family from its rows in file order.
func newFamily(fileName, name string, rows []*row, fields []string, nameCol int, numeric map[string]bool) (*Family, error) {
	n := len(rows)
	params := make([]Params, n)
	lines := make([]int, n)
	for i, rw := range rows {
		params[i], lines[i] = rw.params, rw.line
	}

	// perm[i] is the file-order index of the i'th run in sorted
	// order.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return params[perm[i]].Compare(params[perm[j]]) < 0
	})

	f := &Family{
		Name:   name,
		Params: slice.Select(params, perm).([]Params),
		floats: make(map[string][]float64),
		texts:  make(map[string][]string),
	}
	lines = slice.Select(lines, perm).([]int)

	seen := make(map[string]bool)
	for i, field := range fields {
		if i == nameCol || seen[field] {
			continue
		}
		seen[field] = true

		col := make([]string, n)
		present := false
		for j, rw := range rows {
			if v, ok := rw.vals[field]; ok {
				col[j] = v
				present = true
			}
		}
		if !present {
			continue
		}
		col = slice.Select(col, perm).([]string)
		f.fields = append(f.fields, field)

		if !numeric[field] {
			f.texts[field] = col
			continue
		}
		vs := make([]float64, n)
		for j, v := range col {
			if v == "" {
				vs[j] = math.NaN()
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, &SyntaxError{fileName, lines[j], fmt.Sprintf("field %s: %q is not a number", field, v)}
			}
			vs[j] = x
		}
		f.floats[field] = vs
	}
	return f, nil
}

// csvError converts an encoding/csv error into a SyntaxError with a
// line number in the original file.
func csvError(fileName string, skip int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &SyntaxError{fileName, pe.Line + skip, pe.Err.Error()}
	}
	return fmt.Errorf("%s: %w", fileName, err)
}
