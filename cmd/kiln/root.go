// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd is the base command for the thin kiln example CLI. It exercises
// the resolver end to end; the real build dispatcher (compile/jar/publish)
// is an external collaborator represented only by kiln/ops interfaces.
var rootCmd = &cobra.Command{
	Use:   "kiln",
	Short: "Resolve Maven-style dependency graphs",
	Long: `kiln resolves dependency closures against one or more Maven-layout
repositories: listing versions, picking a concrete version for a range or
LATEST/RELEASE selector, walking transitive dependencies to a scoped
closure, and reporting available upgrades.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "kiln.toml", "project config file")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(updatesCmd)
}
