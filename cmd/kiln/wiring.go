// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/kiln-build/kiln/config"
	"github.com/kiln-build/kiln/internal/httpx"
	"github.com/kiln-build/kiln/maven"
	"github.com/kiln-build/kiln/resolve"
)

// coordinate is a parsed "groupId:artifactId[:version]" command-line
// argument.
type coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

func parseCoordinate(s string) (coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return coordinate{}, fmt.Errorf("expected groupId:artifactId[:version], got %q", s)
	}
	c := coordinate{GroupID: parts[0], ArtifactID: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// buildResolver loads the layered config and wires a DependencyResolver
// over its configured repositories.
func buildResolver(configFile string) (*resolve.DependencyResolver, *config.HierarchicalProperties, error) {
	hp, err := config.Load(append([]string{config.GlobalConfigFileName, config.UserConfigFileName}, configFile))
	if err != nil {
		return nil, nil, err
	}
	if len(hp.Repositories) == 0 {
		hp.Repositories = []maven.Source{{Name: "central", BaseURL: "https://repo1.maven.org/maven2"}}
	}

	client := httpx.NewWithOptions(hp.HTTPOptions())
	retriever := maven.NewDefaultRetrieverWithClient(client)

	dr := resolve.NewDependencyResolver(hp.Repositories, retriever)
	dr.Creds = make(map[string]*httpx.Credentials)
	for _, src := range hp.Repositories {
		if src.Credentials != nil {
			dr.Creds[src.Name] = &httpx.Credentials{
				Username: src.Credentials.Username,
				Password: src.Credentials.Password,
			}
		}
	}
	return dr, hp, nil
}
