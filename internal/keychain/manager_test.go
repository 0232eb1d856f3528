// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManagerWithRing(keyring.NewArrayKeyring(nil))
}

func TestAccessTokenLifecycle(t *testing.T) {
	m := newTestManager()

	_, err := m.LoadAccessToken()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SaveAccessToken("tok-1"))
	got, err := m.LoadAccessToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, m.SaveAccessToken("tok-2"))
	got, err = m.LoadAccessToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, m.ClearAuth())
	_, err = m.LoadAccessToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAccessTokenRejectsEmpty(t *testing.T) {
	assert.Error(t, newTestManager().SaveAccessToken(""))
}

func TestAuthStateMissingIsEmpty(t *testing.T) {
	m := newTestManager()
	data, err := m.LoadAuthState()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, m.SaveAuthState([]byte(`{"logged_in":true}`)))
	data, err = m.LoadAuthState()
	require.NoError(t, err)
	assert.JSONEq(t, `{"logged_in":true}`, string(data))
}

func TestClearAuthOnEmptyRing(t *testing.T) {
	assert.NoError(t, newTestManager().ClearAuth())
}
