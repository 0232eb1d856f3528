// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbchat/cli/internal/backend/backendtest"
	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/keychain"
)

func newTestService(be *backendtest.Fake) (*Service, *Store, *Identity) {
	store := NewStore(keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil)), nil)
	id := &Identity{}
	return NewService(be, store, id), store, id
}

func TestIdentity(t *testing.T) {
	var id Identity
	assert.False(t, id.Present())
	id.Set("abc")
	assert.Equal(t, "abc", id.Token())
	assert.True(t, id.Present())
	id.Clear()
	assert.Equal(t, "", id.Token())
}

func TestLoginPersistsCredential(t *testing.T) {
	svc, store, id := newTestService(&backendtest.Fake{Token: "tok"})

	require.NoError(t, svc.Login(context.Background(), " ana@example.com ", "pw"))
	assert.Equal(t, "tok", id.Token())

	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, State{LoggedIn: true, Account: "ana@example.com"}, st)

	restored := &Identity{}
	ok, err := store.Restore(restored)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", restored.Token())
}

func TestLoginFailureLeavesIdentityEmpty(t *testing.T) {
	svc, store, id := newTestService(&backendtest.Fake{LoginErr: backendtest.Detail(401, "Incorrect username or password")})

	err := svc.Login(context.Background(), "ana", "bad")
	require.Error(t, err)
	assert.False(t, id.Present())

	ok, err := store.Restore(&Identity{})
	require.NoError(t, err)
	assert.False(t, ok)
}

type lockedRing struct{ keyring.Keyring }

func (lockedRing) Set(keyring.Item) error { return errors.New("keychain locked") }

func TestLoginKeychainFailureIsStorageKind(t *testing.T) {
	store := NewStore(keychain.NewManagerWithRing(lockedRing{keyring.NewArrayKeyring(nil)}), nil)
	id := &Identity{}
	svc := NewService(&backendtest.Fake{Token: "tok"}, store, id)

	err := svc.Login(context.Background(), "ana", "pw")
	require.Error(t, err)
	assert.True(t, dberrors.IsKind(err, dberrors.Storage))
	assert.Equal(t, "tok", id.Token())
}

func TestLoginRejectedIsNotStorageKind(t *testing.T) {
	svc, _, id := newTestService(&backendtest.Fake{LoginErr: backendtest.Detail(401, "Incorrect username or password")})
	id.Set("stale")

	err := svc.Login(context.Background(), "ana", "bad")
	require.Error(t, err)
	assert.False(t, dberrors.IsKind(err, dberrors.Storage))
	assert.Equal(t, "stale", id.Token())
}

func TestLogoutClearsEverything(t *testing.T) {
	svc, store, id := newTestService(&backendtest.Fake{Token: "tok"})
	require.NoError(t, svc.Login(context.Background(), "ana", "pw"))

	require.NoError(t, svc.Logout())
	assert.False(t, id.Present())
	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestWhoAmI(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		svc, _, _ := newTestService(&backendtest.Fake{})
		_, ok, err := svc.WhoAmI(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("valid", func(t *testing.T) {
		svc, _, _ := newTestService(&backendtest.Fake{Token: "tok"})
		require.NoError(t, svc.Login(context.Background(), "ana", "pw"))
		account, ok, err := svc.WhoAmI(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ana", account)
	})

	t.Run("expired", func(t *testing.T) {
		be := &backendtest.Fake{Token: "tok"}
		svc, _, id := newTestService(be)
		require.NoError(t, svc.Login(context.Background(), "ana", "pw"))
		be.ConnectionsErr = backendtest.Detail(401, "Could not validate credentials")

		_, ok, err := svc.WhoAmI(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, id.Present())
	})

	t.Run("offline", func(t *testing.T) {
		be := &backendtest.Fake{Token: "tok"}
		svc, _, _ := newTestService(be)
		require.NoError(t, svc.Login(context.Background(), "ana", "pw"))
		be.ConnectionsErr = errors.New("dial tcp: connection refused")

		account, ok, err := svc.WhoAmI(context.Background())
		assert.Error(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ana", account)
	})
}
