// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"
	"errors"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/keychain"
	"dbchat/cli/internal/logging"
)

// Store persists the credential and auth state in the OS keychain.
type Store struct {
	km  *keychain.Manager
	log *pterm.Logger
}

// NewStore wraps km. A nil logger discards debug output.
func NewStore(km *keychain.Manager, log *pterm.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{km: km, log: log}
}

// Load reads the auth state. Missing state yields the zero value.
func (s *Store) Load() (State, error) {
	var st State
	data, err := s.km.LoadAuthState()
	if err != nil {
		s.log.Debug("load auth state failed", s.log.Args("error", err.Error()))
		return st, err
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Debug("auth state unreadable", s.log.Args("error", err.Error()))
		return State{}, err
	}
	return st, nil
}

// Save stores the credential and the state describing it.
func (s *Store) Save(token string, st State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := s.km.SaveAccessToken(token); err != nil {
		return err
	}
	if err := s.km.SaveAuthState(b); err != nil {
		return err
	}
	s.log.Debug("auth state saved", s.log.Args("account", st.Account))
	return nil
}

// Clear removes the credential and auth state.
func (s *Store) Clear() error {
	return s.km.ClearAuth()
}

// Restore loads a stored credential into id. It reports whether one was found.
func (s *Store) Restore(id *Identity) (bool, error) {
	tok, err := s.km.LoadAccessToken()
	if errors.Is(err, keychain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	id.Set(tok)
	return true, nil
}
