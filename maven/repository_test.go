// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceMetadataURL(t *testing.T) {
	s := Source{Name: "central", BaseURL: "https://repo1.maven.org/maven2"}
	assert.Equal(t, "https://repo1.maven.org/maven2/com/google/guava/guava/maven-metadata.xml",
		s.MetadataURL("com.google.guava", "guava"))
}

func TestSourceArtifactURL(t *testing.T) {
	s := Source{Name: "central", BaseURL: "https://repo1.maven.org/maven2/"}
	got := s.ArtifactURL("com.google.guava", "guava", "31.1-jre", "31.1-jre", "", "jar")
	assert.Equal(t, "https://repo1.maven.org/maven2/com/google/guava/guava/31.1-jre/guava-31.1-jre.jar", got)
}

func TestSourceArtifactURLWithClassifier(t *testing.T) {
	s := Source{BaseURL: "https://repo1.maven.org/maven2"}
	got := s.ArtifactURL("g", "a", "1.0", "1.0", "sources", "jar")
	assert.Equal(t, "https://repo1.maven.org/maven2/g/a/1.0/a-1.0-sources.jar", got)
}

func TestSourceArtifactURLSubstitutesSnapshotTimestamp(t *testing.T) {
	s := Source{BaseURL: "https://repo"}
	got := s.ArtifactURL("g", "a", "1.0-SNAPSHOT", "1.0-20230901.120000-3", "", "jar")
	assert.Equal(t, "https://repo/g/a/1.0-SNAPSHOT/a-1.0-20230901.120000-3.jar", got)
}

func TestSourcePOMURL(t *testing.T) {
	s := Source{BaseURL: "https://repo"}
	assert.Equal(t, "https://repo/g/a/1.0/a-1.0.pom", s.POMURL("g", "a", "1.0", "1.0"))
}
