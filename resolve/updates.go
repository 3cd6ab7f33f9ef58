// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/kiln-build/kiln/maven"
	"github.com/kiln-build/kiln/version"
)

// Update is one upgrade candidate: a declared dependency whose repository
// metadata advertises a strictly newer version.
type Update struct {
	Scope      maven.Scope
	GroupID    string
	ArtifactID string
	Declared   version.Version
	Available  version.Version
}

// UpdatesOperation reports upgrade candidates for a DependencyScopes
// declaration, per spec.md §4.8. It performs no transitive analysis: each
// declared coordinate is checked against its own latest published version.
type UpdatesOperation struct {
	Resolver *DependencyResolver
}

// Run checks every declared dependency in scopes and returns the upgrade
// candidates found. A failure to resolve any single coordinate's latest
// version is collected rather than aborting the whole run, so one
// unreachable repository doesn't block every other answer; the returned
// error is a *multierror.Error when one or more coordinates failed, and nil
// when every lookup succeeded.
func (u *UpdatesOperation) Run(ctx context.Context, scopes *DependencyScopes) ([]Update, error) {
	var updates []Update
	var errs *multierror.Error

	for _, scope := range scopes.Scopes() {
		for _, dep := range scopes.Dependencies(scope) {
			latest, err := u.Resolver.LatestVersion(ctx, string(dep.GroupID), string(dep.ArtifactID))
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s:%s: %w", dep.GroupID, dep.ArtifactID, err))
				continue
			}
			declared := version.Parse(string(dep.Version))
			if declared.LessThan(latest) {
				updates = append(updates, Update{
					Scope:      scope,
					GroupID:    string(dep.GroupID),
					ArtifactID: string(dep.ArtifactID),
					Declared:   declared,
					Available:  latest,
				})
			}
		}
	}

	return updates, errs.ErrorOrNil()
}
