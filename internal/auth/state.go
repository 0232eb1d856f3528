// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides the session's identity context and its persistence.
// The credential lives in memory in an Identity and is mirrored into the OS
// keychain so that separate invocations of the CLI share one login.
package auth

// State represents persisted authentication state for the current user.
type State struct {
	LoggedIn bool   `json:"logged_in"`
	Account  string `json:"account"`
}
