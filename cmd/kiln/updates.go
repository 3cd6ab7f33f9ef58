// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiln-build/kiln/maven"
	"github.com/kiln-build/kiln/resolve"
)

var updatesCmd = &cobra.Command{
	Use:   "updates groupId:artifactId:version...",
	Short: "Report available upgrades for a set of declared dependencies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpdates,
}

func runUpdates(cmd *cobra.Command, args []string) error {
	dr, _, err := buildResolver(configFile)
	if err != nil {
		return err
	}

	scopes := resolve.NewDependencyScopes()
	for _, arg := range args {
		coord, err := parseCoordinate(arg)
		if err != nil {
			return err
		}
		scopes.Add(maven.Dependency{
			GroupID:    maven.String(coord.GroupID),
			ArtifactID: maven.String(coord.ArtifactID),
			Version:    maven.String(coord.Version),
			Scope:      maven.String(maven.ScopeCompile),
		})
	}

	op := &resolve.UpdatesOperation{Resolver: dr}
	updates, err := op.Run(context.Background(), scopes)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("some lookups failed: %v", err))
	}
	for _, u := range updates {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%s %s -> %s\n", u.GroupID, u.ArtifactID, u.Declared.String(), u.Available.String())
	}
	return nil
}
