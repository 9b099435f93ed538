// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"io"
	"sort"

	"github.com/aclements/go-gg/table"
)

// DefaultNumericFields are the fields converted to float64 when a
// file is loaded. All other fields are kept as strings.
var DefaultNumericFields = []string{"real_time", "cpu_time", "iterations"}

// A Family is the series of runs of one parameterized benchmark,
// sorted by parameter tuple.
//
// Params and every field sequence have length Len, and index i of
// each of them refers to the same row of the input file.
type Family struct {
	Name   string
	Params []Params

	fields []string
	floats map[string][]float64
	texts  map[string][]string
}

// Len returns the number of runs in f.
func (f *Family) Len() int {
	return len(f.Params)
}

// Fields returns the names of f's fields other than the parameter
// tuple, in the order of the CSV header.
func (f *Family) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Float returns the values of numeric field name. The slice is shared
// with f and must not be modified.
func (f *Family) Float(name string) ([]float64, bool) {
	vs, ok := f.floats[name]
	return vs, ok
}

// Text returns the values of non-numeric field name. The slice is
// shared with f and must not be modified.
func (f *Family) Text(name string) ([]string, bool) {
	vs, ok := f.texts[name]
	return vs, ok
}

// Table returns f as a table with a "param" column followed by one
// column per field.
func (f *Family) Table() *table.Table {
	b := table.NewBuilder(nil)
	b.Add("param", f.Params)
	for _, name := range f.fields {
		if vs, ok := f.floats[name]; ok {
			b.Add(name, vs)
		} else {
			b.Add(name, f.texts[name])
		}
	}
	return b.Done()
}

// Bench maps family names to families. It is the result of loading
// one benchmark file.
type Bench map[string]*Family

// Names returns the family names of b in sorted order.
func (b Bench) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fprint writes every family of b to w as a table, in name order.
func Fprint(w io.Writer, b Bench) error {
	for i, name := range b.Names() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", name)
		if err := table.Fprint(w, b[name].Table()); err != nil {
			return err
		}
	}
	return nil
}
