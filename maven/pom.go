// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/kiln-build/kiln/kerr"
)

// ParsePom decodes a pom.xml document into a Project. Struct-tag driven
// unmarshalling already performs spec.md §4.5's "phase one": every
// <properties> entry is collected regardless of where else in the document
// it's referenced, since Go's encoding/xml walks the whole tree in a single
// pass. What the spec calls phase two — synchronous parent resolution and
// BOM-import merging — happens afterward, driven by the resolver: see
// MergeParent, MergeProfiles and ProcessDependencies.
func ParsePom(r io.Reader) (Project, error) {
	var p Project
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return Project{}, fmt.Errorf("maven: parsing pom: %w", err)
	}
	return p, nil
}

// MaxImports bounds how many <dependencyManagement> BOM imports
// ProcessDependencies will follow, guarding against a project importing
// itself transitively.
const MaxImports = 300

// MaxParents bounds how many ancestor POMs a parent chain may be walked
// through before it is declared cyclic.
const MaxParents = 100

// Pom is the fully assembled result of parsing a POM: interpolated
// properties, a resolved dependency-management table, and the direct
// dependency set, after parent inheritance and BOM imports have been
// folded in. It corresponds to spec.md §3's Pom data model.
type Pom struct {
	Project    Project
	Properties map[string]string
}

// ProcessDependencies dedupes p's dependencies and dependency-management
// entries, follows any <dependencyManagement> BOM imports (dependencies
// declared with scope "import" and type "pom") via getDependencyManagement,
// and overlays management fields onto the direct dependency set. It is
// adapted from the teacher's BOM-import resolution and should run after
// Interpolate, so that the dependencies it processes already carry
// concrete values.
func (p *Project) ProcessDependencies(getDependencyManagement func(groupID, artifactID, version String) (DependencyManagement, error)) {
	addDepManagement := func(deps []Dependency, m map[DependencyKey]Dependency) (keys []DependencyKey, imports []Dependency) {
		for _, dep := range deps {
			if dep.EffectiveScope() == ScopeImport {
				imports = append(imports, dep)
				continue
			}
			dk := dep.Key()
			if _, ok := m[dk]; !ok {
				m[dk] = dep
				keys = append(keys, dk)
			}
		}
		return
	}

	deps := make(map[DependencyKey]Dependency, len(p.Dependencies))
	depKeys := make([]DependencyKey, 0, len(p.Dependencies))
	for _, dep := range p.Dependencies {
		dk := dep.Key()
		if _, ok := deps[dk]; !ok {
			deps[dk] = dep
			depKeys = append(depKeys, dk)
		}
	}

	managed := make(map[DependencyKey]Dependency, len(p.DependencyManagement.Dependencies))
	managedKeys, pendingImports := addDepManagement(p.DependencyManagement.Dependencies, managed)

	imported := make(map[DependencyKey]bool)
	for n := 0; n < MaxImports && len(pendingImports) > 0; n++ {
		dep := pendingImports[0]
		pendingImports = pendingImports[1:]
		dk := dep.Key()
		if imported[dk] {
			continue
		}
		imported[dk] = true
		if dep.Type != "" && dep.Type != "pom" {
			continue
		}
		dm, err := getDependencyManagement(dep.GroupID, dep.ArtifactID, dep.Version)
		if err != nil {
			continue
		}
		addedKeys, nested := addDepManagement(dm.Dependencies, managed)
		managedKeys = append(managedKeys, addedKeys...)
		pendingImports = append(nested, pendingImports...)
	}

	p.Dependencies = p.Dependencies[:0]
	for _, dk := range depKeys {
		dep := deps[dk]
		if dm, ok := managed[dk]; ok {
			if dep.Version == "" {
				dep.Version = dm.Version
			}
			if dep.Scope == "" {
				dep.Scope = dm.Scope
			}
			if len(dep.Exclusions) == 0 {
				dep.Exclusions = dm.Exclusions
			}
		}
		p.Dependencies = append(p.Dependencies, dep)
	}

	p.DependencyManagement.Dependencies = p.DependencyManagement.Dependencies[:0]
	for _, dk := range managedKeys {
		p.DependencyManagement.Dependencies = append(p.DependencyManagement.Dependencies, managed[dk])
	}
}

// EffectiveDependencies returns p's direct dependencies filtered to the
// requested scopes, per spec.md §4.5's "effective dependency set": optional
// dependencies are dropped, dependencies whose resolved type is non-empty
// and not "jar" are dropped, and the result preserves first-declared order.
func (p *Project) EffectiveDependencies(wanted map[Scope]bool) []Dependency {
	var out []Dependency
	for _, dep := range p.Dependencies {
		if dep.Optional.Boolean() {
			continue
		}
		if dep.Type != "" && dep.Type != "jar" {
			continue
		}
		if !wanted[dep.EffectiveScope()] {
			continue
		}
		out = append(out, dep)
	}
	return out
}

// RequireCoordinates validates that a Dependency carries the minimum
// fields needed to resolve it, returning a kerr.MalformedPom error naming
// the incomplete coordinate otherwise.
func RequireCoordinates(d Dependency) error {
	if d.GroupID == "" || d.ArtifactID == "" {
		return kerr.New(kerr.MalformedPom, d.Name())
	}
	if d.Version == "" || d.Version.ContainsProperty() {
		return kerr.New(kerr.UnresolvedProperty, d.Name())
	}
	return nil
}
