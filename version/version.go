// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package version parses, compares and manipulates Maven-style version
// identifiers, per the reduced grammar described for this tool: an optional
// structured number (major.minor.revision.patch) followed by an optional
// free-form qualifier, falling back to an opaque generic string when that
// grammar doesn't match.
package version

import (
	"strconv"
	"strings"
)

// Version is an immutable, parsed Maven-style version identifier.
type Version struct {
	str       string
	generic   bool // true if this is an opaque, unstructured version
	nums      [4]int64
	numSegs   int // how many of nums were explicitly present, e.g. 2 for "1.0"
	qualifier string // lower-cased; "" means unqualified
}

// Unknown is the distinguished sentinel that compares below any real
// version.
var Unknown = Version{str: "", generic: true, qualifier: ""}

// IsUnknown reports whether v is the Unknown sentinel.
func (v Version) IsUnknown() bool { return v == Unknown }

// String returns the original version string.
func (v Version) String() string { return v.str }

// Qualifier returns v's lower-cased qualifier, or "" if v is unqualified or
// generic.
func (v Version) Qualifier() string { return v.qualifier }

// Parse parses s into a Version. Strings that don't match the structured
// number grammar become generic versions; Parse never fails, matching
// spec.md's "unparseable strings become generic versions" rule.
func Parse(s string) Version {
	if s == "" {
		return Unknown
	}
	nums, numSegs, qualifier, ok := parseNumber(s)
	if !ok {
		return Version{str: s, generic: true}
	}
	return Version{str: s, nums: nums, numSegs: numSegs, qualifier: strings.ToLower(qualifier)}
}

// parseNumber attempts the structured grammar:
// digit+ ('.' digit+){0,3} ('-' qualifier)?
func parseNumber(s string) (nums [4]int64, numSegs int, qualifier string, ok bool) {
	body := s
	if i := strings.IndexByte(s, '-'); i >= 0 {
		body, qualifier = s[:i], s[i+1:]
	}
	if body == "" {
		return nums, 0, "", false
	}
	segs := strings.Split(body, ".")
	if len(segs) > 4 {
		return nums, 0, "", false
	}
	for i, seg := range segs {
		if seg == "" {
			return nums, 0, "", false
		}
		n, err := strconv.ParseInt(seg, 10, 64)
		if err != nil || n < 0 {
			return nums, 0, "", false
		}
		nums[i] = n
	}
	return nums, len(segs), qualifier, true
}

// qualifierRank orders known qualifiers relative to the unqualified
// version: every known qualifier except "sp" ranks below it. Lower ranks
// sort first. Unrecognized qualifiers rank above the unqualified version,
// in the same rank as "sp", and sort against each other and against "sp"
// lexicographically.
var qualifierRank = map[string]int{
	"alpha":    -6,
	"beta":     -5,
	"milestone": -4,
	"rc":       -3,
	"cr":       -3, // sic, matches Maven's historical quirk.
	"snapshot": -2,
	"sp":       1,
}

const unqualifiedRank = 0

// Compare returns -1, 0 or 1 as v is less than, equal to, or greater than w.
func (v Version) Compare(w Version) int {
	if v.IsUnknown() && w.IsUnknown() {
		return 0
	}
	if v.IsUnknown() {
		return -1
	}
	if w.IsUnknown() {
		return 1
	}
	if v.generic && w.generic {
		return strings.Compare(v.str, w.str)
	}
	if v.generic != w.generic {
		// Generic versions sort below any structured version.
		if v.generic {
			return -1
		}
		return 1
	}
	for i := 0; i < 4; i++ {
		if v.nums[i] != w.nums[i] {
			if v.nums[i] < w.nums[i] {
				return -1
			}
			return 1
		}
	}
	return compareQualifier(v.qualifier, w.qualifier)
}

// rankOf returns q's position in qualifierRank, routing the unqualified
// ("") case through unqualifiedRank like any other rank rather than
// special-casing it, so a known rank placed above unqualifiedRank (e.g.
// "sp") actually sorts above it.
func rankOf(q string) (rank int, known bool) {
	if q == "" {
		return unqualifiedRank, true
	}
	name, _ := splitTrailingDigits(q)
	if r, ok := qualifierRank[name]; ok {
		return r, true
	}
	return unqualifiedRank + 1, false
}

// compareQualifier compares two (lower-cased) qualifiers under spec.md
// §4.1's rules: a known ranking applies (with "" ranked as unqualifiedRank)
// and trailing digits break ties within the same rank, falling back to
// lexicographic order for unknown qualifiers or a known/unknown collision.
func compareQualifier(a, b string) int {
	if a == b {
		return 0
	}
	aRank, aKnown := rankOf(a)
	bRank, bKnown := rankOf(b)
	if aRank != bRank {
		if aRank < bRank {
			return -1
		}
		return 1
	}
	if aKnown && bKnown {
		// Same rank bucket (e.g. "rc" and "cr" share a rank by Maven's
		// historical quirk); trailing digits break ties.
		_, aNum := splitTrailingDigits(a)
		_, bNum := splitTrailingDigits(b)
		if aNum != bNum {
			if aNum < bNum {
				return -1
			}
			return 1
		}
		return 0
	}
	// Both unknown, or a known/unknown rank collision: lexicographic order
	// on the full qualifier string.
	return strings.Compare(a, b)
}

// splitTrailingDigits splits a qualifier like "rc1" into ("rc", 1). If there
// are no trailing digits, num is 0.
func splitTrailingDigits(s string) (name string, num int64) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	name = s[:i]
	if i < len(s) {
		num, _ = strconv.ParseInt(s[i:], 10, 64)
	}
	return name, num
}

// LessThan reports whether v orders strictly before w.
func (v Version) LessThan(w Version) bool { return v.Compare(w) < 0 }

// WithQualifier returns a copy of v with its qualifier replaced. Only
// meaningful for structured versions; generic versions are returned
// unchanged since they have no separable qualifier.
func (v Version) WithQualifier(q string) Version {
	if v.generic {
		return v
	}
	nv := v
	nv.qualifier = strings.ToLower(q)
	if nv.qualifier == "" {
		nv.str = baseString(v.nums, v.numSegs)
	} else {
		nv.str = baseString(v.nums, v.numSegs) + "-" + q
	}
	return nv
}

// BaseVersion strips the qualifier, returning the unqualified version.
func (v Version) BaseVersion() Version {
	if v.generic {
		return v
	}
	return Version{str: baseString(v.nums, v.numSegs), nums: v.nums, numSegs: v.numSegs}
}

func baseString(nums [4]int64, numSegs int) string {
	n := numSegs
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatInt(nums[i], 10)
	}
	return strings.Join(parts, ".")
}

// isTimestampBuild matches a qualifier of the shape
// "20230901.120000-3" (a Maven timestamped snapshot build).
func isTimestampBuild(q string) bool {
	// yyyyMMdd.HHmmss-N
	dot := strings.IndexByte(q, '.')
	dash := strings.LastIndexByte(q, '-')
	if dot < 0 || dash < dot {
		return false
	}
	datePart, timePart, buildPart := q[:dot], q[dot+1:dash], q[dash+1:]
	if len(datePart) != 8 || len(timePart) != 6 {
		return false
	}
	if !allDigits(datePart) || !allDigits(timePart) || !allDigits(buildPart) || buildPart == "" {
		return false
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsSnapshot reports whether v is a SNAPSHOT version: its qualifier equals
// "SNAPSHOT" case-insensitively, or matches a timestamp-build pattern.
func (v Version) IsSnapshot() bool {
	if v.generic {
		return strings.Contains(strings.ToLower(v.str), "snapshot")
	}
	return v.qualifier == "snapshot" || isTimestampBuild(v.qualifier)
}
