// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-build/kiln/maven"
)

func directOf(scope maven.Scope, dep maven.Dependency) struct {
	Scope maven.Scope
	Dep   maven.Dependency
} {
	return struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{scope, dep}
}

func compileActiveScopes() map[maven.Scope]bool {
	return map[maven.Scope]bool{maven.ScopeCompile: true, maven.ScopeProvided: true}
}

// TestNearestWinsConflict covers S4: Root -> A (compile) -> B v1.0, and
// Root -> B v2.0 directly. B v2.0 sits at depth 1, B v1.0 at depth 2, so
// the closure keeps v2.0.
func TestNearestWinsConflict(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "a", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
    <dependencies>
      <dependency><groupId>g</groupId><artifactId>b</artifactId><version>1.0</version></dependency>
    </dependencies>
  </project>`)
	r.put(s.POMURL("g", "b", "1.0", "1.0"), `<project><groupId>g</groupId><artifactId>b</artifactId><version>1.0</version></project>`)
	r.put(s.POMURL("g", "b", "2.0", "2.0"), `<project><groupId>g</groupId><artifactId>b</artifactId><version>2.0</version></project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	tr := &TransitiveResolver{Resolver: dr, ActiveScopes: compileActiveScopes()}

	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{
		directOf(maven.ScopeCompile, maven.Dependency{GroupID: "g", ArtifactID: "a", Version: "1.0"}),
		directOf(maven.ScopeCompile, maven.Dependency{GroupID: "g", ArtifactID: "b", Version: "2.0"}),
	}
	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)

	var bVersion maven.String
	for _, d := range closure.Scopes.All() {
		if string(d.ArtifactID) == "b" {
			bVersion = d.Version
		}
	}
	assert.Equal(t, maven.String("2.0"), bVersion)
}

// TestScopeComposition covers S5: Root declares X (test); X transitively
// declares Y (compile). The effective closure for activeScope={test}
// contains Y in scope test.
func TestScopeComposition(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "x", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>x</artifactId><version>1.0</version>
    <dependencies>
      <dependency><groupId>g</groupId><artifactId>y</artifactId><version>1.0</version></dependency>
    </dependencies>
  </project>`)
	r.put(s.POMURL("g", "y", "1.0", "1.0"), `<project><groupId>g</groupId><artifactId>y</artifactId><version>1.0</version></project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	tr := &TransitiveResolver{
		Resolver:     dr,
		ActiveScopes: map[maven.Scope]bool{maven.ScopeCompile: true, maven.ScopeRuntime: true, maven.ScopeTest: true},
	}
	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{directOf(maven.ScopeTest, maven.Dependency{GroupID: "g", ArtifactID: "x", Version: "1.0"})}

	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)

	deps := closure.Scopes.Dependencies(maven.ScopeTest)
	require.Len(t, deps, 2)
	assert.Equal(t, maven.String("y"), deps[1].ArtifactID)
}

// TestExclusionPropagation covers S6: Root declares A with exclusion
// org.*:*. A transitively pulls org.foo:bar, which must be dropped.
func TestExclusionPropagation(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "a", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
    <dependencies>
      <dependency><groupId>org.foo</groupId><artifactId>bar</artifactId><version>1.0</version></dependency>
    </dependencies>
  </project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	tr := &TransitiveResolver{Resolver: dr, ActiveScopes: compileActiveScopes()}
	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{
		directOf(maven.ScopeCompile, maven.Dependency{
			GroupID: "g", ArtifactID: "a", Version: "1.0",
			Exclusions: []maven.Exclusion{{GroupID: "org.*", ArtifactID: "*"}},
		}),
	}
	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)

	for _, d := range closure.Scopes.All() {
		assert.NotEqual(t, "bar", string(d.ArtifactID))
	}
}

// TestBOMImportSuppliesVersion covers S7: dependencyManagement imports
// g:bom:1.0:pom; a direct dependency g:x with no version picks up its
// version from the imported BOM.
func TestBOMImportSuppliesVersion(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "x", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>x</artifactId><version>1.0</version>
  </project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	root := maven.Project{
		ProjectKey: maven.ProjectKey{GroupID: "g", ArtifactID: "root", Version: "1.0"},
		Dependencies: []maven.Dependency{
			{GroupID: "g", ArtifactID: "x"},
		},
		DependencyManagement: maven.DependencyManagement{
			Dependencies: []maven.Dependency{
				{GroupID: "g", ArtifactID: "bom", Version: "1.0", Type: "pom", Scope: "import"},
			},
		},
	}
	root.ProcessDependencies(func(groupID, artifactID, version maven.String) (maven.DependencyManagement, error) {
		return maven.DependencyManagement{Dependencies: []maven.Dependency{
			{GroupID: "g", ArtifactID: "x", Version: "1.0", Type: "jar"},
		}}, nil
	})

	tr := &TransitiveResolver{
		Resolver:       dr,
		ActiveScopes:   compileActiveScopes(),
		RootManagement: root.DependencyManagement,
	}
	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{directOf(maven.ScopeCompile, root.Dependencies[0])}

	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)
	deps := closure.Scopes.All()
	require.Len(t, deps, 1)
	assert.Equal(t, maven.String("1.0"), deps[0].Version)
}

// TestNonRootBOMImportSuppliesVersion covers S7 one hop down: Root -> A
// (compile), where A's own dependencyManagement imports g:bom:1.0:pom and A
// declares a dependency on g:y with no version. The version must come from
// the BOM overlay applied while Resolve walks A's POM, not from any
// out-of-band pre-processing of A before the BFS starts.
func TestNonRootBOMImportSuppliesVersion(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "a", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
    <dependencyManagement>
      <dependencies>
        <dependency><groupId>g</groupId><artifactId>bom</artifactId><version>1.0</version><type>pom</type><scope>import</scope></dependency>
      </dependencies>
    </dependencyManagement>
    <dependencies>
      <dependency><groupId>g</groupId><artifactId>y</artifactId></dependency>
    </dependencies>
  </project>`)
	r.put(s.POMURL("g", "bom", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>bom</artifactId><version>1.0</version>
    <packaging>pom</packaging>
    <dependencyManagement>
      <dependencies>
        <dependency><groupId>g</groupId><artifactId>y</artifactId><version>3.0</version></dependency>
      </dependencies>
    </dependencyManagement>
  </project>`)
	r.put(s.POMURL("g", "y", "3.0", "3.0"), `<project><groupId>g</groupId><artifactId>y</artifactId><version>3.0</version></project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	tr := &TransitiveResolver{Resolver: dr, ActiveScopes: compileActiveScopes()}
	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{directOf(maven.ScopeCompile, maven.Dependency{GroupID: "g", ArtifactID: "a", Version: "1.0"})}

	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)

	var yVersion maven.String
	for _, d := range closure.Scopes.All() {
		if string(d.ArtifactID) == "y" {
			yVersion = d.Version
		}
	}
	assert.Equal(t, maven.String("3.0"), yVersion)
}

// TestNonRootParentSuppliesProperty covers the property-inheritance half of
// spec.md §4.5: A's parent POM declares a property that A's own dependency
// version references. The property must be visible by the time Resolve
// interpolates A's POM, which only happens if MergeParent runs before
// Interpolate for every node the BFS visits, not just the root.
func TestNonRootParentSuppliesProperty(t *testing.T) {
	r := newFakeRetriever()
	s := maven.Source{Name: "one", BaseURL: "https://repo"}
	r.put(s.POMURL("g", "a", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>a</artifactId><version>1.0</version>
    <parent><groupId>g</groupId><artifactId>parent</artifactId><version>1.0</version></parent>
    <dependencies>
      <dependency><groupId>g</groupId><artifactId>y</artifactId><version>${y.version}</version></dependency>
    </dependencies>
  </project>`)
	r.put(s.POMURL("g", "parent", "1.0", "1.0"), `<project>
    <groupId>g</groupId><artifactId>parent</artifactId><version>1.0</version>
    <properties><y.version>4.0</y.version></properties>
  </project>`)
	r.put(s.POMURL("g", "y", "4.0", "4.0"), `<project><groupId>g</groupId><artifactId>y</artifactId><version>4.0</version></project>`)

	dr := NewDependencyResolver([]maven.Source{s}, r)
	tr := &TransitiveResolver{Resolver: dr, ActiveScopes: compileActiveScopes()}
	direct := []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}{directOf(maven.ScopeCompile, maven.Dependency{GroupID: "g", ArtifactID: "a", Version: "1.0"})}

	closure, err := tr.Resolve(context.Background(), direct)
	require.NoError(t, err)

	var yVersion maven.String
	for _, d := range closure.Scopes.All() {
		if string(d.ArtifactID) == "y" {
			yVersion = d.Version
		}
	}
	assert.Equal(t, maven.String("4.0"), yVersion)
}
