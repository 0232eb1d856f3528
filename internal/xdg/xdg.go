// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves XDG Base Directory paths for dbchat.
// Lookups go through github.com/adrg/xdg, which honours XDG_CONFIG_HOME and
// XDG_STATE_HOME and falls back to the platform defaults. Parent directories
// are created on demand.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "dbchat"

// ConfigFile returns the path of name inside the dbchat config directory,
// e.g. ~/.config/dbchat/config.toml.
func ConfigFile(name string) (string, error) {
	p, err := xdg.ConfigFile(filepath.Join(AppName, name))
	if err != nil {
		return "", err
	}
	return p, restrict(filepath.Dir(p))
}

// StateFile returns the path of name inside the dbchat state directory,
// e.g. ~/.local/state/dbchat/dbchat.log.
func StateFile(name string) (string, error) {
	p, err := xdg.StateFile(filepath.Join(AppName, name))
	if err != nil {
		return "", err
	}
	return p, restrict(filepath.Dir(p))
}

// restrict keeps the app directory private (0700).
func restrict(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.Chmod(dir, 0o700)
}
