// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"strings"
)

// interval is one bracketed, possibly unbounded, Maven version interval,
// e.g. "[1.0,2.0)" or "[1.5]" or "(,2.0]".
type interval struct {
	lowInclusive  bool
	low           Version
	hasLow        bool
	high          Version
	hasHigh       bool
	highInclusive bool
}

func (iv interval) matches(v Version) bool {
	if iv.hasLow {
		c := v.Compare(iv.low)
		if c < 0 || (c == 0 && !iv.lowInclusive) {
			return false
		}
	}
	if iv.hasHigh {
		c := v.Compare(iv.high)
		if c > 0 || (c == 0 && !iv.highInclusive) {
			return false
		}
	}
	return true
}

// Range is a Maven-style version range: a union of bracketed intervals,
// e.g. "[1.0,2.0),[3.0,)".
type Range struct {
	raw       string
	intervals []interval
}

// ParseRange parses a Maven version range expression. A singleton like
// "1.0" (no brackets) is treated as a soft requirement rather than a
// range; ParseRange rejects it since callers should use Parse for that
// case, matching Maven's own distinction between a recommended version
// and a hard range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '[' && s[0] != '(') {
		return Range{}, fmt.Errorf("version: not a range: %q", s)
	}
	r := Range{raw: s}
	for _, part := range splitUnion(s) {
		iv, err := parseInterval(part)
		if err != nil {
			return Range{}, err
		}
		r.intervals = append(r.intervals, iv)
	}
	return r, nil
}

// splitUnion splits a comma-separated union of bracketed intervals,
// respecting bracket nesting so the comma inside "[1.0,2.0)" isn't treated
// as a union separator.
func splitUnion(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case ',':
			if depth == 0 {
				start = i + 1
			}
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth == 0 {
				parts = append(parts, s[start:i+1])
				start = i + 1
			}
		}
	}
	return parts
}

func parseInterval(s string) (interval, error) {
	if len(s) < 2 {
		return interval{}, fmt.Errorf("version: invalid range segment %q", s)
	}
	var iv interval
	switch s[0] {
	case '[':
		iv.lowInclusive = true
	case '(':
		iv.lowInclusive = false
	default:
		return interval{}, fmt.Errorf("version: invalid range segment %q", s)
	}
	switch s[len(s)-1] {
	case ']':
		iv.highInclusive = true
	case ')':
		iv.highInclusive = false
	default:
		return interval{}, fmt.Errorf("version: invalid range segment %q", s)
	}
	body := s[1 : len(s)-1]
	if !strings.Contains(body, ",") {
		// Singleton: [1.0]
		if !iv.lowInclusive || !iv.highInclusive {
			return interval{}, fmt.Errorf("version: singleton range must be closed: %q", s)
		}
		v := Parse(body)
		iv.low, iv.hasLow = v, true
		iv.high, iv.hasHigh = v, true
		return iv, nil
	}
	low, high, _ := strings.Cut(body, ",")
	if low != "" {
		iv.low, iv.hasLow = Parse(low), true
	}
	if high != "" {
		iv.high, iv.hasHigh = Parse(high), true
	}
	return iv, nil
}

// Matches reports whether v falls within the range.
func (r Range) Matches(v Version) bool {
	for _, iv := range r.intervals {
		if iv.matches(v) {
			return true
		}
	}
	return false
}

// String returns the range's original expression.
func (r Range) String() string { return r.raw }

// BestMatch returns the highest version among candidates that falls within
// the range. It returns (Version{}, false) if no candidate matches.
func (r Range) BestMatch(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, c := range candidates {
		if !r.Matches(c) {
			continue
		}
		if !found || best.LessThan(c) {
			best = c
			found = true
		}
	}
	return best, found
}
