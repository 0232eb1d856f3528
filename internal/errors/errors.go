// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Local failures (missing selections, bad input) carry a Kind so callers can tell
// them apart from service failures without string matching, and every error keeps
// a human message that can be shown to the user as-is.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Readiness indicates that provider, model or connection is not selected.
	Readiness Kind = "readiness"
	// Validation indicates missing or malformed local input.
	Validation Kind = "validation"
	// Transport indicates a failed call to the service.
	Transport Kind = "transport"
	// Auth indicates a missing or rejected credential.
	Auth Kind = "auth"
	// Storage indicates the local keychain could not be read or written.
	Storage Kind = "storage"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// IsKind reports whether any error in err's chain is an *E of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Message returns the human message of the first *E in err's chain, falling
// back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
