// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetProviderClearsModel(t *testing.T) {
	for _, p := range []string{"openai", "", "openai", "anthropic"} {
		var o Options
		o.SetProvider("openai")
		o.SetModel("gpt-4o")
		o.SetProvider(p)
		assert.Equal(t, "", o.Snapshot().Model, "provider %q", p)
		assert.Equal(t, p, o.Snapshot().Provider)
	}
}

func TestSetConnectionSetsInfoTarget(t *testing.T) {
	var o Options
	o.SetDBInfoName("other")
	o.SetConnection("sales")
	assert.Equal(t, "sales", o.Snapshot().Connection)
	assert.Equal(t, "sales", o.Snapshot().DBInfoName)

	o.SetDBInfoName("hr")
	assert.Equal(t, "sales", o.Snapshot().Connection)
	assert.Equal(t, "hr", o.Snapshot().DBInfoName)
}

func TestReadyOrdering(t *testing.T) {
	tests := []struct {
		name                      string
		provider, model, connName string
		want                      string
	}{
		{"nothing", "", "", "", ReasonNoProvider},
		{"provider missing wins", "", "gpt-4o", "sales", ReasonNoProvider},
		{"model missing", "openai", "", "sales", ReasonNoModel},
		{"model before connection", "openai", "", "", ReasonNoModel},
		{"connection missing", "openai", "gpt-4o", "", ReasonNoConnection},
		{"ready", "openai", "gpt-4o", "sales", ""},
		{"whitespace is missing", " ", "gpt-4o", "sales", ReasonNoProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Options
			o.SetProvider(tt.provider)
			o.SetModel(tt.model)
			o.SetConnection(tt.connName)
			assert.Equal(t, tt.want, o.Ready())
			assert.Equal(t, tt.want, o.Snapshot().Ready())
		})
	}
}

func TestFillConnectionKeepsExisting(t *testing.T) {
	var o Options
	o.FillConnection("a")
	assert.Equal(t, "a", o.Snapshot().Connection)
	o.FillConnection("b")
	assert.Equal(t, "a", o.Snapshot().Connection)
	assert.Equal(t, "a", o.Snapshot().DBInfoName)
}

func TestInputBuffers(t *testing.T) {
	var o Options
	o.SetAPIKeyInput("sk-1")
	o.SetDBTypeInput("sqlite")
	o.SetConnNameInput("local")
	v := o.Snapshot()
	assert.Equal(t, "sk-1", v.APIKeyInput)
	assert.Equal(t, "sqlite", v.DBTypeInput)
	assert.Equal(t, "local", v.ConnNameInput)
	assert.True(t, ValidDBType("postgresql"))
	assert.False(t, ValidDBType("oracle"))
}
