// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeMembership(t *testing.T) {
	cases := []struct {
		rng    string
		in     []string
		notIn  []string
	}{
		{"[1.0,2.0]", []string{"1.0", "1.5", "2.0"}, []string{"0.9", "2.1"}},
		{"(1.0,2.0)", []string{"1.5"}, []string{"1.0", "2.0"}},
		{"[1.0,2.0)", []string{"1.0", "1.9"}, []string{"2.0"}},
		{"[1.5]", []string{"1.5"}, []string{"1.4", "1.6"}},
		{"[1.0,)", []string{"1.0", "99.0"}, []string{"0.9"}},
		{"(,2.0]", []string{"0.1", "2.0"}, []string{"2.1"}},
	}
	for _, c := range cases {
		r, err := ParseRange(c.rng)
		require.NoError(t, err, c.rng)
		for _, v := range c.in {
			assert.Truef(t, r.Matches(Parse(v)), "%s should match %s", c.rng, v)
		}
		for _, v := range c.notIn {
			assert.Falsef(t, r.Matches(Parse(v)), "%s should not match %s", c.rng, v)
		}
	}
}

func TestRangeUnion(t *testing.T) {
	r, err := ParseRange("[1.0,1.5),[2.0,)")
	require.NoError(t, err)
	assert.True(t, r.Matches(Parse("1.2")))
	assert.False(t, r.Matches(Parse("1.5")))
	assert.True(t, r.Matches(Parse("3.0")))
}

func TestRangeBestMatch(t *testing.T) {
	r, err := ParseRange("[1.0,2.0]")
	require.NoError(t, err)
	candidates := []Version{Parse("0.5"), Parse("1.2"), Parse("1.9"), Parse("2.1")}
	best, ok := r.BestMatch(candidates)
	require.True(t, ok)
	assert.Equal(t, "1.9", best.String())
}

func TestRangeBestMatchNoneMatch(t *testing.T) {
	r, err := ParseRange("[5.0,6.0]")
	require.NoError(t, err)
	_, ok := r.BestMatch([]Version{Parse("1.0")})
	assert.False(t, ok)
}

func TestParseRangeRejectsSoftVersion(t *testing.T) {
	_, err := ParseRange("1.0")
	assert.Error(t, err)
}
