// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions groupId:artifactId",
	Short: "List known versions and report the latest stable one",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	coord, err := parseCoordinate(args[0])
	if err != nil {
		return err
	}
	dr, _, err := buildResolver(configFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	versions, err := dr.ListVersions(ctx, coord.GroupID, coord.ArtifactID)
	if err != nil {
		return err
	}
	for _, v := range versions {
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}

	latest, err := dr.LatestVersion(ctx, coord.GroupID, coord.ArtifactID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "latest: %s\n", latest.String())
	return nil
}
