// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiln-build/kiln/kerr"
	"github.com/kiln-build/kiln/maven"
)

// scopeCompositionT1 is Table T1 from spec.md §4.7: parent traversal scope
// × child declared scope → effective scope. A missing entry drops the edge.
var scopeCompositionT1 = map[maven.Scope]map[maven.Scope]maven.Scope{
	maven.ScopeCompile: {
		maven.ScopeCompile: maven.ScopeCompile,
		maven.ScopeRuntime: maven.ScopeRuntime,
		maven.ScopeSystem:  maven.ScopeSystem,
	},
	maven.ScopeRuntime: {
		maven.ScopeCompile: maven.ScopeRuntime,
		maven.ScopeRuntime: maven.ScopeRuntime,
		maven.ScopeSystem:  maven.ScopeSystem,
	},
	maven.ScopeProvided: {
		maven.ScopeCompile: maven.ScopeProvided,
		maven.ScopeRuntime: maven.ScopeProvided,
		maven.ScopeSystem:  maven.ScopeSystem,
	},
	maven.ScopeTest: {
		maven.ScopeCompile: maven.ScopeTest,
		maven.ScopeRuntime: maven.ScopeTest,
		maven.ScopeSystem:  maven.ScopeSystem,
	},
}

// effectiveResultScope applies Table T1, returning ok=false when the edge
// should be dropped (e.g. a provided or test child dependency, or any
// combination T1 leaves blank).
func effectiveResultScope(parentScope, childScope maven.Scope) (maven.Scope, bool) {
	row, ok := scopeCompositionT1[parentScope]
	if !ok {
		return "", false
	}
	scope, ok := row[childScope]
	return scope, ok
}

// node is one entry in the BFS queue.
type node struct {
	scope      maven.Scope
	dep        maven.Dependency
	depth      int
	exclusions maven.ExclusionSet
}

// resolvedKey identifies a node for the visited map: (groupId, artifactId,
// classifier), per spec.md I2.
type resolvedKey struct {
	groupID, artifactID, classifier string
}

func keyOf(dep maven.Dependency) resolvedKey {
	return resolvedKey{string(dep.GroupID), string(dep.ArtifactID), string(dep.Classifier)}
}

// TransitiveResolver walks the direct-dependency graph rooted at a set of
// declared (scope, coordinate) pairs to its scoped transitive closure, per
// spec.md §4.7.
type TransitiveResolver struct {
	Resolver *DependencyResolver
	// ActiveScopes is the set of scopes whose closure is wanted, e.g.
	// {compile, provided} for a compile-time closure.
	ActiveScopes map[maven.Scope]bool
	// RootManagement overrides the chosen version for any dependency it
	// names, taking priority over whatever version the graph would
	// otherwise have picked, per spec.md §4.7 step 3.
	RootManagement maven.DependencyManagement
}

// Closure is the result of a transitive resolution: a DependencyScopes
// tree plus the concrete version picked for every coordinate.
type Closure struct {
	Scopes *DependencyScopes
}

// Resolve computes the scoped transitive closure of direct, per spec.md
// §4.7's BFS/nearest-wins/Table-T1 algorithm.
func (tr *TransitiveResolver) Resolve(ctx context.Context, direct []struct {
	Scope maven.Scope
	Dep   maven.Dependency
}) (*Closure, error) {
	runID := uuid.NewString()
	log.Debugf("[%s] resolving transitive closure for %d direct dependencies", runID, len(direct))

	rootManaged := make(map[maven.DependencyKey]maven.Dependency, len(tr.RootManagement.Dependencies))
	for _, d := range tr.RootManagement.Dependencies {
		rootManaged[d.Key()] = d
	}

	queue := make([]node, 0, len(direct))
	for _, d := range direct {
		queue = append(queue, node{scope: d.Scope, dep: d.Dep, depth: 0, exclusions: maven.NewExclusionSet(d.Dep.Exclusions)})
	}

	visited := make(map[resolvedKey]int) // key -> depth of the winning entry
	scopes := NewDependencyScopes()

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		rk := keyOf(n.dep)
		if prevDepth, ok := visited[rk]; ok && prevDepth <= n.depth {
			continue
		}

		dep := n.dep
		if managed, ok := rootManaged[dep.Key()]; ok && managed.Version != "" {
			dep.Version = managed.Version
		}
		visited[rk] = n.depth
		scopes.Add(withScope(dep, n.scope))

		if err := RequireCoordinates(dep); err != nil {
			return nil, err
		}

		// The directory and the POM filename both use the declared
		// version string verbatim; a prior single-coordinate resolution
		// step is responsible for turning a range or LATEST/RELEASE
		// selector into this concrete (possibly SNAPSHOT) string.
		project, err := tr.Resolver.GetMavenPom(ctx, string(dep.GroupID), string(dep.ArtifactID), string(dep.Version), string(dep.Version))
		if err != nil {
			return nil, fmt.Errorf("resolving %s:%s:%s: %w", dep.GroupID, dep.ArtifactID, dep.Version, err)
		}

		if err := tr.processPom(ctx, &project, 0); err != nil {
			return nil, fmt.Errorf("processing %s:%s:%s: %w", dep.GroupID, dep.ArtifactID, dep.Version, err)
		}
		children := project.EffectiveDependencies(tr.ActiveScopes)

		for _, child := range children {
			if n.exclusions.Matches(string(child.GroupID), string(child.ArtifactID)) {
				continue
			}
			childScope, ok := effectiveResultScope(n.scope, child.EffectiveScope())
			if !ok {
				continue
			}
			mergedExclusions := n.exclusions.Merge(maven.NewExclusionSet(child.Exclusions))
			queue = append(queue, node{
				scope:      childScope,
				dep:        child,
				depth:      n.depth + 1,
				exclusions: mergedExclusions,
			})
		}
	}

	log.Debugf("[%s] closure resolved: %d dependencies across %d scopes", runID, len(scopes.All()), len(scopes.Scopes()))
	return &Closure{Scopes: scopes}, nil
}

// processPom applies spec.md §4.5's full pipeline to project: parent
// inheritance, profile merging, property interpolation, and
// dependencyManagement/BOM-import overlay. §4.7 step 3 fetches every node's
// POM through §4.5, so this runs for every POM the BFS visits, not just the
// root (whose pipeline the caller of Resolve already ran, handing its
// resulting DependencyManagement in via RootManagement).
func (tr *TransitiveResolver) processPom(ctx context.Context, project *maven.Project, depth int) error {
	if depth > maven.MaxParents {
		return kerr.New(kerr.CyclicParent, project.Name())
	}
	if project.Parent.GroupID != "" || project.Parent.ArtifactID != "" {
		parent, err := tr.Resolver.GetMavenPom(ctx, string(project.Parent.GroupID), string(project.Parent.ArtifactID), string(project.Parent.Version), string(project.Parent.Version))
		if err != nil {
			return fmt.Errorf("resolving parent %s:%s:%s: %w", project.Parent.GroupID, project.Parent.ArtifactID, project.Parent.Version, err)
		}
		if err := tr.processPom(ctx, &parent, depth+1); err != nil {
			return err
		}
		project.MergeParent(parent)
	}

	project.MergeProfiles()
	if err := project.Interpolate(); err != nil {
		return err
	}
	project.ProcessDependencies(func(groupID, artifactID, version maven.String) (maven.DependencyManagement, error) {
		bom, err := tr.Resolver.GetMavenPom(ctx, string(groupID), string(artifactID), string(version), string(version))
		if err != nil {
			return maven.DependencyManagement{}, err
		}
		if err := tr.processPom(ctx, &bom, depth+1); err != nil {
			return maven.DependencyManagement{}, err
		}
		return bom.DependencyManagement, nil
	})
	return nil
}

func withScope(dep maven.Dependency, scope maven.Scope) maven.Dependency {
	dep.Scope = maven.String(scope)
	return dep
}

// RequireCoordinates re-exports maven.RequireCoordinates for callers in
// this package that only import resolve.
var RequireCoordinates = maven.RequireCoordinates
