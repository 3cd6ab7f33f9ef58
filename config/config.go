// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

// Package config implements kiln's layered configuration store: a
// HierarchicalProperties lookup (spec.md §6) backed by TOML files loaded in
// increasing precedence order (global, then user, then project), plus the
// [[repositories]] table and resolver defaults a caller wires into
// kiln/resolve.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kiln-build/kiln/internal/httpx"
	"github.com/kiln-build/kiln/internal/logging"
	"github.com/kiln-build/kiln/maven"
)

var log = logging.MustGet("config")

// GlobalConfigFileName is read first, for machine-wide defaults.
const GlobalConfigFileName = "/etc/kiln/config.toml"

// UserConfigFileName is read second, for defaults across a user's projects.
const UserConfigFileName = "~/.config/kiln/config.toml"

// ProjectConfigFileName is read last and wins over global/user, matching
// the layered precedence of please's plzconfig files.
const ProjectConfigFileName = "kiln.toml"

// RepositoryConfig is one [[repositories]] table entry.
type RepositoryConfig struct {
	Name     string `toml:"name"`
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
}

// ResolverConfig holds the resolver's tunable defaults, overridable by any
// layer.
type ResolverConfig struct {
	ConnectTimeoutSeconds int `toml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int `toml:"read_timeout_seconds"`
	MaxRetries            int `toml:"max_retries"`
}

// fileConfig is the raw TOML document shape; Properties is an arbitrary
// string-to-string table so callers can stash project-specific values
// without kiln needing to know their names ahead of time.
type fileConfig struct {
	Properties   map[string]string  `toml:"properties"`
	Repositories []RepositoryConfig `toml:"repositories"`
	Resolver     ResolverConfig     `toml:"resolver"`
}

// HierarchicalProperties is a string-to-string property store with scoped
// overlays: values from later-loaded files replace earlier ones, but
// properties absent from a later file fall through to the earlier layer.
type HierarchicalProperties struct {
	properties   map[string]string
	Repositories []maven.Source
	Resolver     ResolverConfig
}

// DefaultResolverConfig mirrors internal/httpx's package defaults so a
// config file that omits the [resolver] table still gets sane behavior.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ConnectTimeoutSeconds: 30,
		ReadTimeoutSeconds:    60,
		MaxRetries:            3,
	}
}

// Load reads filenames in order, each layer overriding the properties and
// resolver settings of the ones before it; repositories accumulate across
// layers rather than replacing, since a project typically adds mirrors to
// (not instead of) the ones its user already configured. It is not an
// error for any individual file to be absent.
func Load(filenames []string) (*HierarchicalProperties, error) {
	hp := &HierarchicalProperties{
		properties: map[string]string{},
		Resolver:   DefaultResolverConfig(),
	}
	for _, filename := range filenames {
		if err := hp.mergeFile(expandHome(filename)); err != nil {
			return hp, err
		}
	}
	return hp, nil
}

func (hp *HierarchicalProperties) mergeFile(filename string) error {
	log.Debugf("reading config from %s", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return err
	}

	for k, v := range fc.Properties {
		hp.properties[k] = v
	}
	for _, repo := range fc.Repositories {
		src := maven.Source{Name: repo.Name, BaseURL: repo.BaseURL}
		if repo.Username != "" || repo.Password != "" {
			src.Credentials = &maven.Credentials{Username: repo.Username, Password: repo.Password}
		}
		hp.Repositories = append(hp.Repositories, src)
	}
	if fc.Resolver.ConnectTimeoutSeconds != 0 {
		hp.Resolver.ConnectTimeoutSeconds = fc.Resolver.ConnectTimeoutSeconds
	}
	if fc.Resolver.ReadTimeoutSeconds != 0 {
		hp.Resolver.ReadTimeoutSeconds = fc.Resolver.ReadTimeoutSeconds
	}
	if fc.Resolver.MaxRetries != 0 {
		hp.Resolver.MaxRetries = fc.Resolver.MaxRetries
	}
	return nil
}

// Get returns the value of key and whether it was set by any loaded layer.
func (hp *HierarchicalProperties) Get(key string) (string, bool) {
	v, ok := hp.properties[key]
	return v, ok
}

// GetOr returns the value of key, or def if key was never set.
func (hp *HierarchicalProperties) GetOr(key, def string) string {
	if v, ok := hp.properties[key]; ok {
		return v
	}
	return def
}

// Set overrides key for the lifetime of hp, e.g. for a command-line flag
// that should win over every config layer.
func (hp *HierarchicalProperties) Set(key, value string) {
	hp.properties[key] = value
}

func expandHome(path string) string {
	if path == "~" || len(path) == 0 {
		return path
	}
	if path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if path[1] == filepath.Separator || path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigFiles returns the standard (global, user, project) lookup
// order used by cmd/kiln.
func DefaultConfigFiles() []string {
	return []string{GlobalConfigFileName, UserConfigFileName, ProjectConfigFileName}
}

// HTTPOptions translates the loaded [resolver] table into httpx.Options.
func (hp *HierarchicalProperties) HTTPOptions() httpx.Options {
	return httpx.Options{
		ConnectTimeout: time.Duration(hp.Resolver.ConnectTimeoutSeconds) * time.Second,
		ReadTimeout:    time.Duration(hp.Resolver.ReadTimeoutSeconds) * time.Second,
		MaxRetries:     hp.Resolver.MaxRetries,
	}
}
