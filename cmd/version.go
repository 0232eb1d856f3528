// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version is set at build time using -ldflags.
	Version = "0.0.0-dev"
)
