// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import "github.com/kiln-build/kiln/maven"

// DependencyScopes groups a project's direct dependency declarations by
// scope, preserving insertion order and deduplicating by (groupId,
// artifactId, type, classifier) regardless of version, per spec.md §3.
type DependencyScopes struct {
	order   []maven.Scope
	byScope map[maven.Scope][]maven.Dependency
	seen    map[maven.Scope]map[maven.DependencyKey]bool
}

// NewDependencyScopes returns an empty DependencyScopes.
func NewDependencyScopes() *DependencyScopes {
	return &DependencyScopes{
		byScope: make(map[maven.Scope][]maven.Dependency),
		seen:    make(map[maven.Scope]map[maven.DependencyKey]bool),
	}
}

// Add records dep under its effective scope. A later Add for the same
// (groupId, artifactId, type, classifier) within the same scope is ignored.
func (s *DependencyScopes) Add(dep maven.Dependency) {
	scope := dep.EffectiveScope()
	if s.seen[scope] == nil {
		s.seen[scope] = make(map[maven.DependencyKey]bool)
		s.order = append(s.order, scope)
	}
	key := dep.Key()
	if s.seen[scope][key] {
		return
	}
	s.seen[scope][key] = true
	s.byScope[scope] = append(s.byScope[scope], dep)
}

// Scopes returns the scopes that have at least one dependency, in the
// order they were first populated.
func (s *DependencyScopes) Scopes() []maven.Scope {
	return append([]maven.Scope(nil), s.order...)
}

// Dependencies returns scope's dependencies in insertion order.
func (s *DependencyScopes) Dependencies(scope maven.Scope) []maven.Dependency {
	return append([]maven.Dependency(nil), s.byScope[scope]...)
}

// All returns every dependency across every scope, scope-major, in
// insertion order.
func (s *DependencyScopes) All() []maven.Dependency {
	var out []maven.Dependency
	for _, scope := range s.order {
		out = append(out, s.byScope[scope]...)
	}
	return out
}
