// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchname selects benchmark families by wildcard pattern.
//
// A pattern is a literal string in which each "*" matches any
// sequence of characters, including the empty one. There are no other
// metacharacters: "?", "[" and "\" are literal. Matching is
// case-sensitive.
package benchname

import (
	"sort"
	"strings"
)

// Match reports whether name matches pattern.
//
// A pattern without "*" matches only itself, "*" matches every name,
// and the empty name matches only patterns consisting entirely of "*"
// (including the empty pattern). Segments are not backtracked, so
// "*Copy" does not match "BM_Copy_Copy".
func Match(pattern, name string) bool {
	segs := strings.Split(pattern, "*")
	if !strings.HasPrefix(name, segs[0]) {
		return false
	}
	if len(segs) == 1 {
		return len(name) == len(pattern)
	}
	// Each later segment is taken at its first occurrence after the
	// previous one. A trailing literal must end the name there.
	pos := len(segs[0])
	for _, seg := range segs[1:] {
		i := strings.Index(name[pos:], seg)
		if i < 0 {
			return false
		}
		pos += i + len(seg)
	}
	return pos == len(name) || segs[len(segs)-1] == ""
}

// MatchNames returns the elements of names that match pattern, in
// their original order.
func MatchNames(pattern string, names []string) []string {
	var out []string
	for _, name := range names {
		if Match(pattern, name) {
			out = append(out, name)
		}
	}
	return out
}

// MatchAll returns the elements of names that match at least one of
// patterns. The result has no duplicates and is sorted.
func MatchAll(patterns, names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		for _, name := range MatchNames(pattern, names) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
