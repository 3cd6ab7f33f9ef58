// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyKeyIgnoresVersion(t *testing.T) {
	a := Dependency{GroupID: "g", ArtifactID: "a", Version: "1.0"}
	b := Dependency{GroupID: "g", ArtifactID: "a", Version: "2.0"}
	assert.Equal(t, a.Key(), b.Key())
}

func TestDependencyKeyDefaultsTypeToJar(t *testing.T) {
	d := Dependency{GroupID: "g", ArtifactID: "a"}
	assert.Equal(t, String("jar"), d.Key().Type)
}

func TestEffectiveScopeDefaultsToCompile(t *testing.T) {
	d := Dependency{GroupID: "g", ArtifactID: "a"}
	assert.Equal(t, ScopeCompile, d.EffectiveScope())
}

func TestExclusionSetWildcards(t *testing.T) {
	s := NewExclusionSet([]Exclusion{{GroupID: "*", ArtifactID: "*"}})
	assert.True(t, s.Matches("anything", "goes"))

	s = NewExclusionSet([]Exclusion{{GroupID: "g", ArtifactID: "*"}})
	assert.True(t, s.Matches("g", "a"))
	assert.False(t, s.Matches("other", "a"))

	s = NewExclusionSet([]Exclusion{{GroupID: "g", ArtifactID: "a"}})
	assert.True(t, s.Matches("g", "a"))
	assert.False(t, s.Matches("g", "b"))
}

func TestExclusionSetMerge(t *testing.T) {
	a := NewExclusionSet([]Exclusion{{GroupID: "g1", ArtifactID: "a1"}})
	b := NewExclusionSet([]Exclusion{{GroupID: "g2", ArtifactID: "a2"}})
	merged := a.Merge(b)
	assert.True(t, merged.Matches("g1", "a1"))
	assert.True(t, merged.Matches("g2", "a2"))
	assert.False(t, merged.Matches("g3", "a3"))
}

func TestExclusionsStringSkipsPipeContainingFields(t *testing.T) {
	d := Dependency{Exclusions: []Exclusion{
		{GroupID: "g1", ArtifactID: "a1"},
		{GroupID: "g|2", ArtifactID: "a2"},
	}}
	assert.Equal(t, "g1:a1", d.ExclusionsString())
}
