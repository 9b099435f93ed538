// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strconv"
	"strings"
)

// Params is the parameter tuple of one benchmark run, taken from the
// "/"-separated components of its name after the family.
type Params []int

// Compare returns -1, 0, or 1 depending on whether p sorts before,
// equal to, or after q. Tuples compare element by element; when one
// tuple is a prefix of the other, the shorter one sorts first.
func (p Params) Compare(q Params) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		if p[i] < q[i] {
			return -1
		} else if p[i] > q[i] {
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// String formats p the way it appears in a benchmark name, without
// the family, for example "8/64".
func (p Params) String() string {
	var buf strings.Builder
	for i, x := range p {
		if i > 0 {
			buf.WriteByte('/')
		}
		buf.WriteString(strconv.Itoa(x))
	}
	return buf.String()
}

// ParseName splits a benchmark name of the form "Family/p1/p2/..."
// into its family and parameter tuple. Every component after the
// family must be a base-10 integer. A name without "/" has an empty
// tuple.
func ParseName(name string) (family string, params Params, err error) {
	parts := strings.Split(name, "/")
	family = parts[0]
	params = make(Params, 0, len(parts)-1)
	for _, part := range parts[1:] {
		x, err := strconv.Atoi(part)
		if err != nil {
			return "", nil, fmt.Errorf("benchmark %q: parameter %q is not an integer", name, part)
		}
		params = append(params, x)
	}
	return family, params, nil
}
