// Copyright The Kiln Authors
// SPDX-License-Identifier: Apache-2.0

package maven

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeProjectKey(t *testing.T) {
	k, err := MakeProjectKey("com.example:widget", "1.0")
	require.NoError(t, err)
	assert.Equal(t, String("com.example"), k.GroupID)
	assert.Equal(t, String("widget"), k.ArtifactID)
	assert.Equal(t, String("1.0"), k.Version)
}

func TestMakeProjectKeyRejectsMissingColon(t *testing.T) {
	_, err := MakeProjectKey("com.example-widget", "1.0")
	assert.Error(t, err)
}

func TestProjectKeyName(t *testing.T) {
	k := ProjectKey{GroupID: "g", ArtifactID: "a", Version: "1.0"}
	assert.Equal(t, "g:a", k.Name())
}

func TestRelocationIsZero(t *testing.T) {
	assert.True(t, Relocation{}.IsZero())
	assert.False(t, Relocation{GroupID: "g"}.IsZero())
}

func TestMergeProfilesOnlyMergesActiveByDefault(t *testing.T) {
	p := Project{
		Properties: Properties{Entries: []Property{{Name: "k", Value: "base"}}},
		Profiles: []Profile{
			{
				ID:         "enabled",
				Activation: Activation{ActiveByDefault: "true"},
				Properties: Properties{Entries: []Property{{Name: "k", Value: "from-profile"}}},
			},
			{
				ID:         "disabled",
				Properties: Properties{Entries: []Property{{Name: "k", Value: "should-not-apply"}}},
			},
		},
	}
	p.MergeProfiles()
	m := make(map[string]string)
	for _, e := range p.Properties.Entries {
		m[e.Name] = e.Value
	}
	assert.Equal(t, "from-profile", m["k"])
}
