// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiln-build/kiln/maven"
)

func TestDependencyScopesDedupesIgnoringVersion(t *testing.T) {
	s := NewDependencyScopes()
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "a", Version: "1.0", Scope: "compile"})
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "a", Version: "2.0", Scope: "compile"})
	deps := s.Dependencies(maven.ScopeCompile)
	assert.Len(t, deps, 1)
	assert.Equal(t, maven.String("1.0"), deps[0].Version)
}

func TestDependencyScopesPreservesInsertionOrder(t *testing.T) {
	s := NewDependencyScopes()
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "c", Scope: "compile"})
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "a", Scope: "compile"})
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "b", Scope: "compile"})
	deps := s.Dependencies(maven.ScopeCompile)
	var names []string
	for _, d := range deps {
		names = append(names, string(d.ArtifactID))
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestDependencyScopesScopesInFirstSeenOrder(t *testing.T) {
	s := NewDependencyScopes()
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "t", Scope: "test"})
	s.Add(maven.Dependency{GroupID: "g", ArtifactID: "c", Scope: "compile"})
	assert.Equal(t, []maven.Scope{maven.ScopeTest, maven.ScopeCompile}, s.Scopes())
}
