// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbchat/cli/internal/config"
)

func TestFromConfigDefaults(t *testing.T) {
	m, err := FromConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", m.BaseURL)
	assert.Equal(t, DefaultEndpoints(), m.HTTP)
}

func TestFromConfigOverrides(t *testing.T) {
	c := config.Default()
	c.APIURL = "https://ask.example.com/api/"
	c.Endpoints.Answer = "v2/answer"
	c.Endpoints.Token = " /auth/token "

	m, err := FromConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "https://ask.example.com/api", m.BaseURL)
	assert.Equal(t, "/v2/answer", m.HTTP.Answer)
	assert.Equal(t, "/auth/token", m.HTTP.Token)
	assert.Equal(t, "/providers", m.HTTP.Providers)
}

func TestFromConfigRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://"} {
		t.Run(raw, func(t *testing.T) {
			c := config.Default()
			c.APIURL = raw
			_, err := FromConfig(c)
			assert.Error(t, err)
		})
	}
}
