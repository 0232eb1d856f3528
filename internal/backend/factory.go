// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"time"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/manifest"
)

// Options configures the HTTP client.
type Options struct {
	Timeout time.Duration
	Tokens  TokenSource
	Logger  *pterm.Logger
}

// New creates a backend API implementation with manifest endpoints.
func New(m *manifest.Manifest, opts Options) *HTTP {
	return newHTTP(m.BaseURL, m.HTTP, opts)
}
