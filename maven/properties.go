// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"encoding/xml"
	"strings"
)

// Properties holds the <properties> pairs defined in a POM, in document
// order.
type Properties struct {
	Entries []Property
}

// Property is one name/value pair from a POM's <properties> block.
type Property struct {
	Name  string
	Value string
}

// UnmarshalXML collects every child element of <properties> as a Property,
// since the set of property names is arbitrary and can't be declared as
// Go struct fields ahead of time.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		t, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := t.(type) {
		case xml.StartElement:
			var s string
			if err := d.DecodeElement(&s, &tok); err != nil {
				return err
			}
			p.Entries = append(p.Entries, Property{
				Name:  tok.Name.Local,
				Value: strings.TrimSpace(s),
			})
		case xml.EndElement:
			return nil
		}
	}
}

// merge overlays parent's properties underneath p's, child-wins.
func (p *Properties) merge(parent Properties) {
	p.Entries = append(append([]Property(nil), parent.Entries...), p.Entries...)
}

// propertyMap builds the interpolation dictionary for a Project: its own
// <properties>, overlaid with auto-populated project.* coordinates per
// spec.md §4.5 (these take priority and cannot be shadowed by an explicit
// property of the same prefixed name).
func (p *Project) propertyMap() map[string]string {
	m := make(map[string]string, len(p.Properties.Entries))
	for _, prop := range p.Properties.Entries {
		m[prop.Name] = prop.Value
	}
	set := func(k string, v String) {
		if v == "" {
			return
		}
		if _, ok := m[k]; !ok {
			m[k] = string(v)
		}
		m["project."+k] = string(v)
	}
	set("groupId", p.GroupID)
	set("artifactId", p.ArtifactID)
	set("version", p.Version)
	set("name", p.Name)
	set("description", p.Description)
	set("packaging", p.Packaging)
	set("url", p.URL)
	set("inceptionYear", p.InceptionYear)
	set("parent.groupId", p.Parent.GroupID)
	set("parent.artifactId", p.Parent.ArtifactID)
	set("parent.version", p.Parent.Version)
	return m
}
