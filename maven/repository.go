// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"strings"
)

// Credentials carries optional basic-auth credentials for a repository.
type Credentials struct {
	Username string
	Password string
}

// Source is a configured artifact source: a name, a base URL (http(s),
// file:, or a bare filesystem path) and optional credentials. It derives
// the conventional Maven layout paths described in spec.md §4.2.
type Source struct {
	Name        string
	BaseURL     string
	Credentials *Credentials
}

func groupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}

func (s Source) join(parts ...string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	return base + "/" + strings.Join(parts, "/")
}

// MetadataURL returns the maven-metadata.xml URL for a groupId:artifactId.
func (s Source) MetadataURL(groupID, artifactID string) string {
	return s.join(groupPath(groupID), artifactID, "maven-metadata.xml")
}

// ArtifactDirectoryURL returns the directory a version's artifacts live
// under, keyed by the version's base form (for a SNAPSHOT, the
// "-SNAPSHOT" string rather than a timestamped build).
func (s Source) ArtifactDirectoryURL(groupID, artifactID string, baseVersion string) string {
	return s.join(groupPath(groupID), artifactID, baseVersion)
}

// ArtifactFilename returns "artifactId-version[-classifier].type". When
// resolvedVersion is a timestamped snapshot build (e.g.
// "1.0-20230901.120000-3"), it is substituted for the plain
// "baseVersion-SNAPSHOT" form, per spec.md §4.2.
func ArtifactFilename(artifactID, resolvedVersion, classifier, typ string) string {
	if typ == "" {
		typ = "jar"
	}
	name := artifactID + "-" + resolvedVersion
	if classifier != "" {
		name += "-" + classifier
	}
	return name + "." + typ
}

// ArtifactURL composes the full URL for one artifact file. resolvedVersion
// is the version to embed in the filename (which, for a SNAPSHOT, may be
// the timestamped build rather than baseVersion), while baseVersion always
// selects the directory.
func (s Source) ArtifactURL(groupID, artifactID, baseVersion, resolvedVersion, classifier, typ string) string {
	dir := s.ArtifactDirectoryURL(groupID, artifactID, baseVersion)
	return dir + "/" + ArtifactFilename(artifactID, resolvedVersion, classifier, typ)
}

// POMURL is a convenience for ArtifactURL with type "pom" and no
// classifier, used when fetching a project's descriptor.
func (s Source) POMURL(groupID, artifactID, baseVersion, resolvedVersion string) string {
	return s.ArtifactURL(groupID, artifactID, baseVersion, resolvedVersion, "", "pom")
}
