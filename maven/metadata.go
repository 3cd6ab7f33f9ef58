// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kiln-build/kiln/version"
)

// Metadata is the parsed content of a repository's maven-metadata.xml, per
// spec.md §4.4 and
// https://maven.apache.org/ref/3.9.3/maven-repository-metadata/repository-metadata.html
type Metadata struct {
	GroupID    String
	ArtifactID String
	Latest     String
	Release    String
	Versions   []String

	// Snapshot is the version.withQualifier(timestamp-buildNumber) (or
	// plain "SNAPSHOT" if no timestamped build was published) computed
	// from the first version in Versions, only set when the XML carried
	// a <versioning><snapshot> marker.
	Snapshot String
}

var stableLatestQualifier = regexp.MustCompile(`(?i)^(rc|cr)|^(m\d*|b\d*|a\d*)$|milestone|beta|alpha`)

// ParseMetadata streams a maven-metadata.xml document from r.
func ParseMetadata(r io.Reader) (Metadata, error) {
	d := xml.NewDecoder(r)

	var m Metadata
	var inVersioning, inVersions, inSnapshot bool
	var sawSnapshotMarker bool
	var timestamp, buildNumber string
	seen := make(map[string]bool)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Metadata{}, fmt.Errorf("maven: parsing metadata: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "versioning":
				inVersioning = true
			case t.Name.Local == "versions" && inVersioning:
				inVersions = true
			case t.Name.Local == "snapshot" && inVersioning && !inVersions:
				inSnapshot = true
				sawSnapshotMarker = true
			case t.Name.Local == "version" && inVersions:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				s = strings.TrimSpace(s)
				if s != "" && !seen[s] {
					seen[s] = true
					m.Versions = append(m.Versions, String(s))
				}
			case t.Name.Local == "timestamp" && inSnapshot:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				timestamp = strings.TrimSpace(s)
			case t.Name.Local == "buildNumber" && inSnapshot:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				buildNumber = strings.TrimSpace(s)
			case t.Name.Local == "latest" && inVersioning:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				m.Latest = String(strings.TrimSpace(s))
			case t.Name.Local == "release" && inVersioning:
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				m.Release = String(strings.TrimSpace(s))
			case t.Name.Local == "groupId":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				m.GroupID = String(strings.TrimSpace(s))
			case t.Name.Local == "artifactId":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return Metadata{}, err
				}
				m.ArtifactID = String(strings.TrimSpace(s))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "versioning":
				inVersioning = false
			case "versions":
				inVersions = false
			case "snapshot":
				inSnapshot = false
			}
		}
	}

	if sawSnapshotMarker && len(m.Versions) > 0 {
		qualifier := "SNAPSHOT"
		if timestamp != "" && buildNumber != "" {
			qualifier = timestamp + "-" + buildNumber
		}
		m.Snapshot = String(version.Parse(string(m.Versions[0])).WithQualifier(qualifier).String())
	}

	m.Latest = computeStableLatest(m.Versions, m.Latest)
	return m, nil
}

// computeStableLatest implements spec.md §4.4 step 2: prefer the maximum
// non-prerelease version over whatever <latest> literally said.
func computeStableLatest(versions []String, declared String) String {
	var stable []version.Version
	for _, v := range versions {
		parsed := version.Parse(string(v))
		if isPrereleaseQualifier(parsed.Qualifier()) {
			continue
		}
		stable = append(stable, parsed)
	}
	if len(stable) == 0 {
		return declared
	}
	best := stable[0]
	for _, v := range stable[1:] {
		if best.LessThan(v) {
			best = v
		}
	}
	return String(best.String())
}

// IsPrereleaseQualifier reports whether q marks a pre-release build under
// spec.md §4.4's stable-latest filter (rc/cr/milestone/beta/alpha and the
// abbreviated m#/b#/a# forms).
func IsPrereleaseQualifier(q string) bool {
	return isPrereleaseQualifier(q)
}

func isPrereleaseQualifier(q string) bool {
	if q == "" {
		return false
	}
	return stableLatestQualifier.MatchString(q)
}
