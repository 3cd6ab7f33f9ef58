// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"fmt"
	"path"
	"strings"
)

// Scope classifies the role a dependency plays in a build, per spec.md §3.
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeProvided Scope = "provided"
	ScopeRuntime  Scope = "runtime"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeImport   Scope = "import"
)

// Dependency is a single <dependency> entry from a POM: a coordinate plus
// the fields that only make sense attached to a declaration (scope,
// optional, exclusions).
type Dependency struct {
	GroupID    String      `xml:"groupId,omitempty"`
	ArtifactID String      `xml:"artifactId,omitempty"`
	Version    String      `xml:"version,omitempty"`
	Type       String      `xml:"type,omitempty"`
	Classifier String      `xml:"classifier,omitempty"`
	Scope      String      `xml:"scope,omitempty"`
	Exclusions []Exclusion `xml:"exclusions>exclusion,omitempty"`
	Optional   DefaultFalseBool `xml:"optional,omitempty"`
}

// Exclusion is a wildcard-capable (groupId, artifactId) pattern; "*"
// matches any value in that position.
type Exclusion struct {
	GroupID    String `xml:"groupId,omitempty"`
	ArtifactID String `xml:"artifactId,omitempty"`
}

// Name returns the "groupId:artifactId" form used in logs and error
// messages.
func (d *Dependency) Name() string {
	return fmt.Sprintf("%s:%s", d.GroupID, d.ArtifactID)
}

// EffectiveScope returns the dependency's declared scope, defaulting to
// compile when absent, per spec.md §4.5.
func (d *Dependency) EffectiveScope() Scope {
	if d.Scope == "" {
		return ScopeCompile
	}
	return Scope(d.Scope)
}

// DependencyKey uniquely identifies a dependency for management and
// deduplication purposes: version is deliberately excluded, matching
// spec.md §3's "equality ignores version when used as a management key".
type DependencyKey struct {
	GroupID    String
	ArtifactID String
	Type       String
	Classifier String
}

// Key returns d's management key, defaulting an absent type to "jar".
func (d *Dependency) Key() DependencyKey {
	typ := d.Type
	if typ == "" {
		typ = "jar"
	}
	return DependencyKey{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Type:       typ,
		Classifier: d.Classifier,
	}
}

func (d *Dependency) interpolate(properties map[string]string) bool {
	ok := d.GroupID.interpolate(properties)
	ok = d.ArtifactID.interpolate(properties) && ok
	ok = d.Version.interpolate(properties) && ok
	ok = d.Scope.interpolate(properties) && ok
	ok = d.Type.interpolate(properties) && ok
	ok = d.Classifier.interpolate(properties) && ok
	ok = d.Optional.interpolate(properties) && ok
	return ok
}

// ExclusionSet is a set of wildcard-capable (groupId, artifactId)
// exclusion patterns, merged from every dependency on the path from the
// root to the current node during transitive resolution.
type ExclusionSet map[string]bool

// NewExclusionSet builds an ExclusionSet from a list of POM exclusions.
func NewExclusionSet(exclusions []Exclusion) ExclusionSet {
	if len(exclusions) == 0 {
		return nil
	}
	s := make(ExclusionSet, len(exclusions))
	for _, e := range exclusions {
		s[string(e.GroupID)+":"+string(e.ArtifactID)] = true
	}
	return s
}

// Matches reports whether (groupID, artifactID) is excluded by s. Each
// field of a pattern is matched with path.Match, so "*" matches any value
// and partial wildcards such as "org.*" match a prefix ("*:*", "group:*",
// "*:artifact", "org.*:*").
func (s ExclusionSet) Matches(groupID, artifactID string) bool {
	for pattern := range s {
		g, a, _ := strings.Cut(pattern, ":")
		gOK, _ := path.Match(g, groupID)
		aOK, _ := path.Match(a, artifactID)
		if gOK && aOK {
			return true
		}
	}
	return false
}

// Merge returns the union of s and other, without mutating either.
func (s ExclusionSet) Merge(other ExclusionSet) ExclusionSet {
	if len(s) == 0 {
		return other
	}
	if len(other) == 0 {
		return s
	}
	merged := make(ExclusionSet, len(s)+len(other))
	for k := range s {
		merged[k] = true
	}
	for k := range other {
		merged[k] = true
	}
	return merged
}

// ExclusionsString renders d's exclusions as a "|"-separated list of
// "groupId:artifactId" patterns, skipping any exclusion whose fields
// themselves contain the separator.
func (d *Dependency) ExclusionsString() string {
	var b strings.Builder
	first := true
	for _, ex := range d.Exclusions {
		if strings.Contains(string(ex.GroupID), "|") || strings.Contains(string(ex.ArtifactID), "|") {
			continue
		}
		if !first {
			b.WriteString("|")
		}
		b.WriteString(string(ex.GroupID) + ":" + string(ex.ArtifactID))
		first = false
	}
	return b.String()
}

// DependencyManagement holds the <dependencyManagement><dependencies> list
// of a POM, before import resolution.
type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency,omitempty"`
}

func (dm *DependencyManagement) merge(parent DependencyManagement) {
	dm.Dependencies = append(dm.Dependencies, parent.Dependencies...)
}
