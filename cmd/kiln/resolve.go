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

var resolveScopes []string

var resolveCmd = &cobra.Command{
	Use:   "resolve groupId:artifactId:version...",
	Short: "Resolve the transitive closure of one or more direct dependencies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringSliceVar(&resolveScopes, "scope", []string{"compile", "provided"}, "active scopes to include in the closure")
}

func runResolve(cmd *cobra.Command, args []string) error {
	dr, _, err := buildResolver(configFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var direct []struct {
		Scope maven.Scope
		Dep   maven.Dependency
	}
	for _, arg := range args {
		coord, err := parseCoordinate(arg)
		if err != nil {
			return err
		}
		if coord.Version == "" {
			return fmt.Errorf("%s: version is required for a direct dependency", arg)
		}
		direct = append(direct, struct {
			Scope maven.Scope
			Dep   maven.Dependency
		}{
			Scope: maven.ScopeCompile,
			Dep:   maven.Dependency{GroupID: maven.String(coord.GroupID), ArtifactID: maven.String(coord.ArtifactID), Version: maven.String(coord.Version)},
		})
	}

	active := make(map[maven.Scope]bool, len(resolveScopes))
	for _, s := range resolveScopes {
		active[maven.Scope(s)] = true
	}

	tr := &resolve.TransitiveResolver{Resolver: dr, ActiveScopes: active}
	closure, err := tr.Resolve(ctx, direct)
	if err != nil {
		return err
	}

	for _, scope := range closure.Scopes.Scopes() {
		fmt.Fprintln(cmd.OutOrStdout(), color.CyanString("[%s]", scope))
		for _, dep := range closure.Scopes.Dependencies(scope) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s:%s:%s\n", dep.GroupID, dep.ArtifactID, dep.Version)
		}
	}
	return nil
}
