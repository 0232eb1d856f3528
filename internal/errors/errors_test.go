// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Choose a model.", New(Readiness, "Choose a model.").Error())
	assert.Equal(t, "save failed: boom", Wrap(Transport, "save failed", stderrors.New("boom")).Error())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(Validation, "Enter a query key to save."))
	assert.True(t, IsKind(err, Validation))
	assert.False(t, IsKind(err, Transport))
	assert.False(t, IsKind(stderrors.New("plain"), Validation))
}

func TestUnwrap(t *testing.T) {
	base := stderrors.New("dial tcp: connection refused")
	err := Wrap(Transport, "list providers", base)
	assert.True(t, stderrors.Is(err, base))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Database timeout", Message(Wrap(Transport, "Database timeout", stderrors.New("500"))))
	assert.Equal(t, "plain", Message(stderrors.New("plain")))
}
