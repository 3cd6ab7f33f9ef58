// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

// Profile is a <profile> block from a pom.xml. Kiln only ever merges
// profiles that declare activeByDefault, per the supplemented-features
// decision recorded in DESIGN.md: JDK/OS/property activation require
// environment facts a pure dependency resolver has no business collecting,
// so those activation kinds parse but never activate.
type Profile struct {
	ID                   String               `xml:"id,omitempty"`
	Activation           Activation           `xml:"activation,omitempty"`
	Properties           Properties           `xml:"properties,omitempty"`
	DependencyManagement DependencyManagement `xml:"dependencyManagement,omitempty"`
	Dependencies         []Dependency         `xml:"dependencies>dependency,omitempty"`
	Repositories         []Repository         `xml:"repositories>repository,omitempty"`
}

// Activation describes the conditions under which a profile would normally
// activate. Only ActiveByDefault is honored; the rest is parsed so it
// doesn't trip the streaming decoder on POMs that declare it.
type Activation struct {
	ActiveByDefault DefaultFalseBool   `xml:"activeByDefault,omitempty"`
	JDK             String             `xml:"jdk,omitempty"`
	OS              ActivationOS       `xml:"os,omitempty"`
	Property        ActivationProperty `xml:"property,omitempty"`
	File            ActivationFile     `xml:"file,omitempty"`
}

type ActivationOS struct {
	Name    String `xml:"name,omitempty"`
	Family  String `xml:"family,omitempty"`
	Arch    String `xml:"arch,omitempty"`
	Version String `xml:"version,omitempty"`
}

type ActivationProperty struct {
	Name  String `xml:"name,omitempty"`
	Value String `xml:"value,omitempty"`
}

type ActivationFile struct {
	Missing String `xml:"missing,omitempty"`
	Exists  String `xml:"exists,omitempty"`
}

// MergeProfiles folds every activeByDefault profile's properties,
// dependencyManagement, dependencies and repositories into p, in
// declaration order, profile-then-project for the property overlay (a
// profile property shadows a project property of the same name).
func (p *Project) MergeProfiles() {
	for _, prof := range p.Profiles {
		if !prof.Activation.ActiveByDefault.Boolean() {
			continue
		}
		prof.Properties.merge(p.Properties)
		p.Properties = prof.Properties

		p.DependencyManagement.merge(prof.DependencyManagement)
		p.Dependencies = append(p.Dependencies, prof.Dependencies...)
		p.Repositories = append(p.Repositories, prof.Repositories...)
	}
}
