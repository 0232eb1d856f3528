// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"strings"

	"dbchat/cli/internal/backend"
	dberrors "dbchat/cli/internal/errors"
)

// Service centralizes authentication-related operations against the backend
// and local secure storage/state.
type Service struct {
	be    backend.API
	store *Store
	id    *Identity
}

// NewService binds the backend, the keychain store and the session identity.
func NewService(be backend.API, store *Store, id *Identity) *Service {
	return &Service{be: be, store: store, id: id}
}

// Login exchanges credentials for a token, sets it on the identity and
// persists it. A keychain failure does not undo the in-memory login; it is
// returned with kind Storage so the caller can warn. Any other error means
// the service refused the login.
func (s *Service) Login(ctx context.Context, username, password string) error {
	token, err := s.be.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return err
	}
	s.id.Set(token)
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(token, State{LoggedIn: true, Account: strings.TrimSpace(username)}); err != nil {
		return dberrors.Wrap(dberrors.Storage, "credential not saved to the keychain", err)
	}
	return nil
}

// Logout clears the in-memory and stored credential. The service has no
// remote logout.
func (s *Service) Logout() error {
	s.id.Clear()
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// WhoAmI returns the account when the stored credential is still accepted.
// The connection listing is the cheapest authenticated call; a 401 resets
// local auth and a transport failure falls back to local state.
func (s *Service) WhoAmI(ctx context.Context) (string, bool, error) {
	if !s.id.Present() {
		return "", false, nil
	}
	var st State
	if s.store != nil {
		var err error
		if st, err = s.store.Load(); err != nil {
			return "", false, err
		}
	}
	account := st.Account
	if account == "" {
		account = "user"
	}

	if _, err := s.be.ListConnections(ctx); err != nil {
		if backend.IsUnauthorized(err) {
			_ = s.Logout()
			return "", false, nil
		}
		return account, true, err
	}
	return account, true, nil
}
