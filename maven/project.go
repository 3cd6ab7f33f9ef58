// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/kiln-build/kiln/kerr"
)

// ProjectKey is the (groupId, artifactId, version) coordinate that
// identifies a Maven project.
type ProjectKey struct {
	GroupID    String `xml:"groupId,omitempty"`
	ArtifactID String `xml:"artifactId,omitempty"`
	Version    String `xml:"version,omitempty"`
}

// Name returns the "groupId:artifactId" form, without the version.
func (k ProjectKey) Name() string {
	return fmt.Sprintf("%s:%s", k.GroupID, k.ArtifactID)
}

func (k ProjectKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.GroupID, k.ArtifactID, k.Version)
}

// MakeProjectKey splits a "groupId:artifactId" name and attaches version.
func MakeProjectKey(name, version string) (ProjectKey, error) {
	group, artifact, ok := strings.Cut(name, ":")
	if !ok || group == "" || artifact == "" {
		return ProjectKey{}, errors.New("maven: malformed coordinate, want groupId:artifactId")
	}
	return ProjectKey{
		GroupID:    String(group),
		ArtifactID: String(artifact),
		Version:    String(version),
	}, nil
}

// Parent references the POM a project inherits from, per spec.md §4.5.
type Parent struct {
	ProjectKey
	RelativePath String `xml:"relativePath,omitempty"`
}

// Project is the parsed content of a pom.xml, after phase one of the
// two-phase streaming parse described in spec.md §4.5 and §9 but before
// parent inheritance, BOM imports or property interpolation have been
// applied.
type Project struct {
	ProjectKey

	Parent        Parent `xml:"parent,omitempty"`
	Packaging     String `xml:"packaging,omitempty"`
	Name          String `xml:"name,omitempty"`
	Description   String `xml:"description,omitempty"`
	URL           String `xml:"url,omitempty"`
	InceptionYear String `xml:"inceptionYear,omitempty"`

	Properties Properties `xml:"properties,omitempty"`

	Licenses               []License              `xml:"licenses>license,omitempty"`
	Developers             []Developer            `xml:"developers>developer,omitempty"`
	SCM                    SCM                    `xml:"scm,omitempty"`
	IssueManagement        IssueManagement        `xml:"issueManagement,omitempty"`
	DistributionManagement DistributionManagement `xml:"distributionManagement,omitempty"`
	DependencyManagement   DependencyManagement   `xml:"dependencyManagement,omitempty"`
	Dependencies           []Dependency           `xml:"dependencies>dependency,omitempty"`
	Repositories           []Repository           `xml:"repositories>repository,omitempty"`
	Profiles               []Profile              `xml:"profiles>profile,omitempty"`
	Build                  Build                  `xml:"build,omitempty"`
}

// Build holds the subset of <build> that feeds dependency management: plugin
// dependencies can themselves carry a dependencyManagement-like effect on
// transitive resolution for some ecosystems layered on Maven, so kiln tracks
// them through inheritance even though it never executes a plugin.
type Build struct {
	PluginManagement PluginManagement `xml:"pluginManagement,omitempty"`
}

func (b *Build) interpolate(properties map[string]string) bool {
	return b.PluginManagement.interpolate(properties)
}

func (b *Build) merge(parent Build) {
	b.PluginManagement.merge(parent.PluginManagement)
}

type PluginManagement struct {
	Plugins []Plugin `xml:"plugins>plugin,omitempty"`
}

func (pm *PluginManagement) interpolate(properties map[string]string) bool {
	var plugins []Plugin
	for _, plugin := range pm.Plugins {
		if plugin.interpolate(properties) {
			plugins = append(plugins, plugin)
		}
	}
	pm.Plugins = plugins
	return true
}

func (pm *PluginManagement) merge(parent PluginManagement) {
	pm.Plugins = append(pm.Plugins, parent.Plugins...)
}

type Plugin struct {
	ProjectKey
	Inherited    DefaultTrueBool `xml:"inherited,omitempty"`
	Dependencies []Dependency    `xml:"dependencies>dependency,omitempty"`
}

func (p *Plugin) interpolate(properties map[string]string) bool {
	var deps []Dependency
	for _, dep := range p.Dependencies {
		if dep.interpolate(properties) {
			deps = append(deps, dep)
		}
	}
	p.Dependencies = deps
	return p.GroupID.interpolate(properties) && p.ArtifactID.interpolate(properties) &&
		p.Version.interpolate(properties) && p.Inherited.interpolate(properties)
}

type License struct {
	Name String `xml:"name,omitempty"`
}

func (l *License) interpolate(properties map[string]string) bool {
	return l.Name.interpolate(properties)
}

type Developer struct {
	Name  String `xml:"name,omitempty"`
	Email String `xml:"email,omitempty"`
}

func (d *Developer) interpolate(properties map[string]string) bool {
	ok1 := d.Name.interpolate(properties)
	ok2 := d.Email.interpolate(properties)
	return ok1 && ok2
}

type SCM struct {
	Tag String `xml:"tag,omitempty"`
	URL String `xml:"url,omitempty"`
}

func (s *SCM) merge(parent SCM) {
	if s.Tag == "" && s.URL == "" {
		*s = parent
	}
}

func (s *SCM) interpolate(properties map[string]string) bool {
	ok1 := s.Tag.interpolate(properties)
	ok2 := s.URL.interpolate(properties)
	return ok1 && ok2
}

type IssueManagement struct {
	System String `xml:"system,omitempty"`
	URL    String `xml:"url,omitempty"`
}

func (im *IssueManagement) merge(parent IssueManagement) {
	if im.System == "" && im.URL == "" {
		*im = parent
	}
}

func (im *IssueManagement) interpolate(properties map[string]string) bool {
	ok1 := im.System.interpolate(properties)
	ok2 := im.URL.interpolate(properties)
	return ok1 && ok2
}

// DistributionManagement carries the <relocation> a project uses to point
// resolvers at its successor coordinate, per spec.md's supplemented
// relocation feature.
type DistributionManagement struct {
	Relocation Relocation `xml:"relocation,omitempty"`
}

func (dm *DistributionManagement) interpolate(properties map[string]string) bool {
	return dm.Relocation.interpolate(properties)
}

// Relocation is non-zero when a project has moved to a new coordinate;
// resolvers should re-resolve against it rather than the original artifact.
type Relocation struct {
	GroupID    String `xml:"groupId,omitempty"`
	ArtifactID String `xml:"artifactId,omitempty"`
	Version    String `xml:"version,omitempty"`
}

// IsZero reports whether no relocation was declared.
func (r Relocation) IsZero() bool {
	return r.GroupID == "" && r.ArtifactID == "" && r.Version == ""
}

func (r *Relocation) interpolate(properties map[string]string) bool {
	ok1 := r.GroupID.interpolate(properties)
	ok2 := r.ArtifactID.interpolate(properties)
	ok3 := r.Version.interpolate(properties)
	return ok1 && ok2 && ok3
}

// Repository is a <repository> declared inside a pom.xml, distinct from the
// resolver-configured repository list in spec.md §4.2.
type Repository struct {
	ID        String           `xml:"id,omitempty"`
	URL       String           `xml:"url,omitempty"`
	Layout    String           `xml:"layout,omitempty"`
	Releases  RepositoryPolicy `xml:"releases,omitempty"`
	Snapshots RepositoryPolicy `xml:"snapshots,omitempty"`
}

func (r *Repository) interpolate(properties map[string]string) bool {
	ok1 := r.ID.interpolate(properties)
	ok2 := r.URL.interpolate(properties)
	ok3 := r.Layout.interpolate(properties)
	ok4 := r.Releases.interpolate(properties)
	ok5 := r.Snapshots.interpolate(properties)
	return ok1 && ok2 && ok3 && ok4 && ok5
}

type RepositoryPolicy struct {
	Enabled DefaultTrueBool `xml:"enabled"`
}

func (rp *RepositoryPolicy) interpolate(properties map[string]string) bool {
	return rp.Enabled.interpolate(properties)
}

// MergeParent overlays parent's inheritable fields underneath p's own,
// child-wins, per
// https://maven.apache.org/guides/introduction/introduction-to-the-pom.html#Project_Inheritance
func (p *Project) MergeParent(parent Project) {
	p.GroupID.merge(parent.GroupID)
	p.Version.merge(parent.Version)
	p.Description.merge(parent.Description)
	p.URL.merge(parent.URL)
	p.InceptionYear.merge(parent.InceptionYear)
	if len(p.Licenses) == 0 {
		p.Licenses = parent.Licenses
	}
	if len(p.Developers) == 0 {
		p.Developers = parent.Developers
	}
	p.SCM.merge(parent.SCM)
	p.IssueManagement.merge(parent.IssueManagement)
	p.Properties.merge(parent.Properties)
	p.DependencyManagement.merge(parent.DependencyManagement)
	p.Build.merge(parent.Build)
	p.Dependencies = append(p.Dependencies, parent.Dependencies...)
	p.Repositories = append(p.Repositories, parent.Repositories...)
}

// Interpolate resolves every ${...} placeholder reachable from p's own
// property map. Licenses, developers and repositories that fail to resolve
// are dropped, since nothing downstream depends on their coordinates. A
// dependency (direct or managed) that still carries a ${...} placeholder
// after the cycle-guarded expansion in interpolating is kept intact rather
// than dropped, per spec.md §7: an unresolved property is reported, not
// silently discarded. Interpolate returns a non-nil *multierror.Error
// wrapping a kerr.UnresolvedProperty per unresolved dependency so callers
// that only want the best-effort project can ignore it, while
// RequireCoordinates still catches any unresolved dependency that slips
// through downstream.
func (p *Project) Interpolate() error {
	properties := p.propertyMap()

	p.Packaging.interpolate(properties)
	p.SCM.interpolate(properties)
	p.IssueManagement.interpolate(properties)
	p.DistributionManagement.interpolate(properties)
	p.Build.interpolate(properties)

	var licenses []License
	for _, l := range p.Licenses {
		if l.interpolate(properties) {
			licenses = append(licenses, l)
		}
	}
	p.Licenses = licenses

	var developers []Developer
	for _, d := range p.Developers {
		if d.interpolate(properties) {
			developers = append(developers, d)
		}
	}
	p.Developers = developers

	var errs *multierror.Error

	var deps []Dependency
	for _, dep := range p.Dependencies {
		if dep.GroupID == "" || dep.ArtifactID == "" {
			continue
		}
		if !dep.interpolate(properties) {
			errs = multierror.Append(errs, kerr.New(kerr.UnresolvedProperty, dep.Name()))
		}
		deps = append(deps, dep)
	}
	p.Dependencies = deps

	var managed []Dependency
	for _, dm := range p.DependencyManagement.Dependencies {
		if dm.GroupID == "" || dm.ArtifactID == "" {
			continue
		}
		if !dm.interpolate(properties) {
			errs = multierror.Append(errs, kerr.New(kerr.UnresolvedProperty, dm.Name()))
		}
		managed = append(managed, dm)
	}
	p.DependencyManagement = DependencyManagement{Dependencies: managed}

	var repos []Repository
	for _, r := range p.Repositories {
		if r.interpolate(properties) {
			repos = append(repos, r)
		}
	}
	p.Repositories = repos

	return errs.ErrorOrNil()
}
