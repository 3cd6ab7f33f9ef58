// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve implements Maven dependency resolution: selecting
// concrete versions for a single coordinate, and walking the transitive
// graph of (scope, coordinate) pairs to a deduplicated closure.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/kiln-build/kiln/internal/httpx"
	"github.com/kiln-build/kiln/internal/logging"
	"github.com/kiln-build/kiln/kerr"
	"github.com/kiln-build/kiln/maven"
	"github.com/kiln-build/kiln/version"
)

var log = logging.MustGet("resolve")

// Selector chooses among a coordinate's available versions, per spec.md
// §4.6's resolveVersion.
type Selector struct {
	// Exact, when non-empty, pins a single version string.
	Exact string
	// Range, when non-nil, resolves to the best match among the
	// candidate versions available from the repositories.
	Range *version.Range
	// Latest and Release map to the repository metadata's latest/release
	// fields, matching Maven's LATEST/RELEASE magic version strings.
	Latest  bool
	Release bool
}

// DependencyResolver resolves a single Maven coordinate against an ordered
// list of repositories, per spec.md §4.6.
type DependencyResolver struct {
	Sources   []maven.Source
	Retriever maven.ArtifactRetriever
	Creds     map[string]*httpx.Credentials // keyed by Source.Name

	metadataCache map[string]maven.Metadata
}

// NewDependencyResolver builds a resolver over sources, using retriever for
// all network/filesystem access.
func NewDependencyResolver(sources []maven.Source, retriever maven.ArtifactRetriever) *DependencyResolver {
	return &DependencyResolver{
		Sources:       sources,
		Retriever:     retriever,
		metadataCache: make(map[string]maven.Metadata),
	}
}

func (r *DependencyResolver) credsFor(s maven.Source) *httpx.Credentials {
	if r.Creds == nil {
		return nil
	}
	return r.Creds[s.Name]
}

// firstMetadata fetches and parses maven-metadata.xml for (groupID,
// artifactID) from the first source that has it, caching by URL for the
// lifetime of the resolver.
func (r *DependencyResolver) firstMetadata(ctx context.Context, groupID, artifactID string) (maven.Metadata, error) {
	var lastErr error
	for _, src := range r.Sources {
		url := src.MetadataURL(groupID, artifactID)
		if cached, ok := r.metadataCache[url]; ok {
			return cached, nil
		}
		body, err := r.Retriever.Fetch(ctx, url, r.credsFor(src))
		if err != nil {
			if isNotFound(err) {
				lastErr = err
				continue
			}
			return maven.Metadata{}, err
		}
		m, err := maven.ParseMetadata(strings.NewReader(string(body)))
		if err != nil {
			return maven.Metadata{}, kerr.Wrap(kerr.MalformedMetadata, url, err)
		}
		r.metadataCache[url] = m
		return m, nil
	}
	if lastErr == nil {
		lastErr = kerr.New(kerr.ArtifactNotFound, groupID+":"+artifactID)
	}
	return maven.Metadata{}, lastErr
}

func isNotFound(err error) bool {
	e, ok := err.(*kerr.Error)
	return ok && e.Kind == kerr.ArtifactNotFound
}

// ListVersions returns the union of versions known to every configured
// source, in first-seen order with duplicates removed.
func (r *DependencyResolver) ListVersions(ctx context.Context, groupID, artifactID string) ([]version.Version, error) {
	seen := make(map[string]bool)
	var out []version.Version
	var lastErr error
	found := false
	for _, src := range r.Sources {
		m, err := r.fetchMetadataFromOne(ctx, src, groupID, artifactID)
		if err != nil {
			if isNotFound(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		found = true
		for _, v := range m.Versions {
			if !seen[string(v)] {
				seen[string(v)] = true
				out = append(out, version.Parse(string(v)))
			}
		}
	}
	if !found {
		if lastErr == nil {
			lastErr = kerr.New(kerr.ArtifactNotFound, groupID+":"+artifactID)
		}
		return nil, lastErr
	}
	return out, nil
}

func (r *DependencyResolver) fetchMetadataFromOne(ctx context.Context, src maven.Source, groupID, artifactID string) (maven.Metadata, error) {
	url := src.MetadataURL(groupID, artifactID)
	if cached, ok := r.metadataCache[url]; ok {
		return cached, nil
	}
	body, err := r.Retriever.Fetch(ctx, url, r.credsFor(src))
	if err != nil {
		return maven.Metadata{}, err
	}
	m, err := maven.ParseMetadata(strings.NewReader(string(body)))
	if err != nil {
		return maven.Metadata{}, kerr.Wrap(kerr.MalformedMetadata, url, err)
	}
	r.metadataCache[url] = m
	return m, nil
}

// LatestVersion returns the maximum "stable" version from ListVersions
// under version.Compare ordering, applying the same pre-release filter as
// the maven-metadata.xml parser (spec.md §4.4) so a published release
// candidate never shadows a genuine release. It falls back to the
// repository's declared release/latest fields when no version list is
// available, and to the unfiltered maximum when every listed version looks
// like a pre-release.
func (r *DependencyResolver) LatestVersion(ctx context.Context, groupID, artifactID string) (version.Version, error) {
	versions, err := r.ListVersions(ctx, groupID, artifactID)
	if err != nil {
		return version.Unknown, err
	}
	if len(versions) > 0 {
		var stable []version.Version
		for _, v := range versions {
			if !maven.IsPrereleaseQualifier(v.Qualifier()) {
				stable = append(stable, v)
			}
		}
		if len(stable) == 0 {
			stable = versions
		}
		best := stable[0]
		for _, v := range stable[1:] {
			if best.LessThan(v) {
				best = v
			}
		}
		return best, nil
	}
	m, err := r.firstMetadata(ctx, groupID, artifactID)
	if err != nil {
		return version.Unknown, err
	}
	if m.Release != "" {
		return version.Parse(string(m.Release)), nil
	}
	if m.Latest != "" {
		return version.Parse(string(m.Latest)), nil
	}
	return version.Unknown, kerr.New(kerr.ArtifactNotFound, groupID+":"+artifactID)
}

// ResolveVersion picks a concrete version for (groupID, artifactID)
// according to sel, per spec.md §4.6.
func (r *DependencyResolver) ResolveVersion(ctx context.Context, groupID, artifactID string, sel Selector) (version.Version, error) {
	switch {
	case sel.Range != nil:
		versions, err := r.ListVersions(ctx, groupID, artifactID)
		if err != nil {
			return version.Unknown, err
		}
		best, ok := sel.Range.BestMatch(versions)
		if !ok {
			return version.Unknown, kerr.New(kerr.ArtifactNotFound, fmt.Sprintf("%s:%s%s", groupID, artifactID, sel.Range.String()))
		}
		return best, nil
	case sel.Latest:
		m, err := r.firstMetadata(ctx, groupID, artifactID)
		if err != nil {
			return version.Unknown, err
		}
		return version.Parse(string(m.Latest)), nil
	case sel.Release:
		m, err := r.firstMetadata(ctx, groupID, artifactID)
		if err != nil {
			return version.Unknown, err
		}
		return version.Parse(string(m.Release)), nil
	default:
		return version.Parse(sel.Exact), nil
	}
}

// GetMavenPom locates and parses the POM for (groupID, artifactID,
// baseVersion), trying each source in order and stopping at the first hit.
func (r *DependencyResolver) GetMavenPom(ctx context.Context, groupID, artifactID, baseVersion, resolvedVersion string) (maven.Project, error) {
	var lastErr error
	for _, src := range r.Sources {
		url := src.POMURL(groupID, artifactID, baseVersion, resolvedVersion)
		body, err := r.Retriever.Fetch(ctx, url, r.credsFor(src))
		if err != nil {
			if isNotFound(err) {
				lastErr = err
				continue
			}
			return maven.Project{}, err
		}
		p, err := maven.ParsePom(strings.NewReader(string(body)))
		if err != nil {
			return maven.Project{}, kerr.Wrap(kerr.MalformedPom, url, err)
		}
		return p, nil
	}
	if lastErr == nil {
		lastErr = kerr.New(kerr.ArtifactNotFound, fmt.Sprintf("%s:%s:%s (pom)", groupID, artifactID, baseVersion))
	}
	return maven.Project{}, lastErr
}

// DownloadIntoDirectory downloads the artifact for (groupID, artifactID)
// into dir/filename, substituting a timestamped snapshot filename when
// resolvedVersion differs from baseVersion.
func (r *DependencyResolver) DownloadIntoDirectory(ctx context.Context, groupID, artifactID, baseVersion, resolvedVersion, classifier, typ, dir string, write func(filename string, body []byte) error) error {
	var lastErr error
	for _, src := range r.Sources {
		url := src.ArtifactURL(groupID, artifactID, baseVersion, resolvedVersion, classifier, typ)
		body, err := r.Retriever.Fetch(ctx, url, r.credsFor(src))
		if err != nil {
			if isNotFound(err) {
				lastErr = err
				continue
			}
			return err
		}
		filename := maven.ArtifactFilename(artifactID, resolvedVersion, classifier, typ)
		log.Debugf("downloaded %s into %s/%s", url, dir, filename)
		return write(filename, body)
	}
	if lastErr == nil {
		lastErr = kerr.New(kerr.ArtifactNotFound, fmt.Sprintf("%s:%s:%s", groupID, artifactID, resolvedVersion))
	}
	return lastErr
}
