// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlash(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    slashCommand
		wantErr string
	}{
		{"no args", "/providers", slashCommand{name: "/providers", args: []string{}}, ""},
		{"case folded", "/PROVIDER openai", slashCommand{name: "/provider", args: []string{"openai"}}, ""},
		{"exit alias", "/exit", slashCommand{name: "/quit", args: []string{}}, ""},
		{"extra spaces", "  /newconn   sqlite  local ", slashCommand{name: "/newconn", args: []string{"sqlite", "local"}}, ""},
		{"missing arg", "/model", slashCommand{}, "usage: /model <name>"},
		{"newconn needs two", "/newconn sqlite", slashCommand{}, "usage: /newconn"},
		{"unknown", "/drop", slashCommand{}, "unknown command /drop"},
		{"not a command", "hello", slashCommand{}, "not a command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSlash(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlashArg(t *testing.T) {
	c := slashCommand{name: "/saved", args: []string{"delete"}}
	assert.Equal(t, "delete", c.arg(0))
	assert.Equal(t, "", c.arg(1))
}

func TestParsePage(t *testing.T) {
	n, err := parsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = parsePage("0")
	assert.Error(t, err)
	_, err = parsePage("two")
	assert.Error(t, err)
}

func TestHelpListsEveryCommand(t *testing.T) {
	h := helpText()
	for _, s := range slashSpecs {
		assert.Contains(t, h, s.usage)
	}
}
