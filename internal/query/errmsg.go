// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"strings"

	"dbchat/cli/internal/backend"
)

// UnknownError is shown when a failure carries no text at all.
const UnknownError = "Unknown error"

// ErrorMessage turns a collaborator failure into display text: the server's
// detail when present, then the error's own text, then UnknownError.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownError
	}
	if d := strings.TrimSpace(backend.DetailOf(err)); d != "" {
		return d
	}
	if s := strings.TrimSpace(err.Error()); s != "" {
		return s
	}
	return UnknownError
}
