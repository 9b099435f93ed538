// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"
	"testing"

	"gonum.org/v1/plot"
)

func TestRoundish(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
		k    int
	}{
		{3.7, 3, 0},
		{0.7, 0.5, 1},
		{0.3, 0.25, 2},
		{0.22, 0.2, 1},
		{0.15, 0.1, 1},
		{0.07, 0.05, 2},
	}
	for _, tt := range tests {
		got, k := roundish(tt.x)
		if math.Abs(got-tt.want) > 1e-12 || k != tt.k {
			t.Errorf("roundish(%v) = %v, %d; want %v, %d", tt.x, got, k, tt.want, tt.k)
		}
	}
}

func TestRatioTicks(t *testing.T) {
	labels := func(m plot.Ticker) []string {
		var out []string
		for _, tk := range m.Ticks(0, 0) {
			out = append(out, tk.Label)
		}
		return out
	}
	check := func(values []float64, want ...string) {
		t.Helper()
		m := ratioTicks(values)
		if _, ok := m.(ratioLines); !ok {
			t.Fatalf("ratioTicks(%v) = %T, want ratioLines", values, m)
		}
		got := labels(m)
		if len(got) != len(want) {
			t.Errorf("ratioTicks(%v) = %v, want %v", values, got, want)
			return
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("ratioTicks(%v) = %v, want %v", values, got, want)
				return
			}
		}
	}
	check([]float64{1, 1}, "1")
	check([]float64{1, 1.5}, "1", "1.5")
	check([]float64{0.5, 1}, "0.5", "1")
	check([]float64{0.5, 1.5}, "0.5", "1", "1.5")
	check([]float64{1, 14}, "1", "14")

	if _, ok := ratioTicks([]float64{math.NaN()}).(plot.DefaultTicks); !ok {
		t.Errorf("ratioTicks(NaN) is not the default marker")
	}
}
