// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "sync"

// Identity holds the bearer credential for one session. The backend reads it
// before every request through the Token method.
type Identity struct {
	mu    sync.RWMutex
	token string
}

// Set replaces the credential.
func (i *Identity) Set(token string) {
	i.mu.Lock()
	i.token = token
	i.mu.Unlock()
}

// Clear drops the credential.
func (i *Identity) Clear() { i.Set("") }

// Token returns the current credential or "".
func (i *Identity) Token() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.token
}

// Present reports whether a credential is held.
func (i *Identity) Present() bool { return i.Token() != "" }
