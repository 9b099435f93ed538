// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
)

// maxRatioTicks bounds the grid of a ratio axis. Past it the axis
// falls back to the default tick marker.
const maxRatioTicks = 40

// ratioLines is a tick marker for an axis of ratios. Its ticks are
// evenly spaced around 1.0 at a round step.
type ratioLines struct {
	ticks []plot.Tick
}

func (r ratioLines) Ticks(min, max float64) []plot.Tick {
	return r.ticks
}

// ratioTicks returns a tick marker for an axis showing values.
// The step is chosen from the bulk of the values, ignoring the most
// extreme 1/25 at either end.
func ratioTicks(values []float64) plot.Ticker {
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return plot.DefaultTicks{}
	}
	sort.Float64s(vs)
	const nth = 25
	n := len(vs)
	trim := (n + nth/2) / nth
	low, high := vs[trim], vs[n-trim-1]
	ticks := ratioLines{ticks: ratioTickList(low, high, vs[0], vs[n-1])}
	if len(ticks.ticks) > maxRatioTicks {
		return plot.DefaultTicks{}
	}
	return ticks
}

// ratioTickList places ticks from 1.0 outwards, covering [min, max]
// with a step that suits [low, high].
func ratioTickList(low, high, min, max float64) []plot.Tick {
	if high <= 1 {
		if low == 1 {
			return []plot.Tick{tick(1, 1)}
		}
		step, k := roundish(1 - low)
		var ticks []plot.Tick
		for t := 1.0; t > min-step && len(ticks) <= maxRatioTicks; t -= step {
			ticks = append(ticks, tick(t, k))
		}
		return reverseTicks(ticks)
	}
	if low >= 1 {
		step, k := roundish(high - 1)
		k++ // for 1.frac
		var ticks []plot.Tick
		for t := 1.0; t < max+step && len(ticks) <= maxRatioTicks; t += step {
			ticks = append(ticks, tick(t, k))
		}
		return ticks
	}

	step, kmin := roundish(1 - low)
	rmax, k := roundish(high - 1)
	if rmax > step {
		step = rmax
	} else {
		k = kmin
	}
	k++
	var ticks []plot.Tick
	for t := 1.0; t > min-step && len(ticks) <= maxRatioTicks; t -= step {
		ticks = append(ticks, tick(t, k))
	}
	ticks = reverseTicks(ticks)
	for t := 1.0 + step; t < max+step && len(ticks) <= maxRatioTicks; t += step {
		ticks = append(ticks, tick(t, k))
	}
	return ticks
}

// roundish finds a round fraction no larger than x, and the number
// of significant digits needed to format multiples of it.
func roundish(x float64) (float64, int) {
	if !(x > 0) { // catch NaN also.
		panic(fmt.Sprintf("roundish(%.9g <= 0)", x))
	}
	if x >= 1 {
		return math.Trunc(x), 0
	}
	if x >= 0.5 {
		return 0.5, 1
	}
	if x >= 0.25 {
		return 0.25, 2
	}
	if x >= 0.2 {
		return 0.2, 1
	}
	if x >= 0.1 {
		return 0.1, 1
	}
	x, n := roundish(x * 10)
	return x / 10, n + 1
}

func reverseTicks(ticks []plot.Tick) []plot.Tick {
	for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
		ticks[i], ticks[j] = ticks[j], ticks[i]
	}
	return ticks
}

func tick(x float64, k int) plot.Tick {
	if ax := math.Abs(x); ax >= 10 {
		k += int(math.Log10(ax))
	}
	if k < 1 {
		k = 1
	}
	return plot.Tick{Value: x, Label: fmt.Sprintf("%.[2]*[1]g", x, k)}
}
