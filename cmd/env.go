// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"os"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/app"
	"dbchat/cli/internal/auth"
	"dbchat/cli/internal/backend"
	"dbchat/cli/internal/config"
	"dbchat/cli/internal/httperrors"
	"dbchat/cli/internal/keychain"
	"dbchat/cli/internal/logging"
	"dbchat/cli/internal/manifest"
)

// env is everything a command needs to talk to the service.
type env struct {
	cfg     config.Config
	log     *pterm.Logger
	host    string
	session *app.Session
	closer  io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// serviceError prints guidance for err and returns it for the exit status.
func (e *env) serviceError(err error, context string) error {
	return httperrors.FormatNetworkError(err, context, e.host)
}

// setup loads configuration, opens the keychain and restores a stored
// credential. With logToFile the logger writes JSON into the state dir so
// it does not draw over a full-screen UI.
func setup(logToFile bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	e := &env{cfg: cfg}
	if logToFile {
		lg, c, err := logging.NewFile(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		e.log, e.closer = lg, c
	} else {
		e.log = logging.New(os.Stderr, cfg.LogLevel)
	}

	m, err := manifest.FromConfig(cfg)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.host = httperrors.ExtractHostFromURL(m.BaseURL)

	id := &auth.Identity{}
	be := backend.New(m, backend.Options{Timeout: cfg.Timeout(), Tokens: id, Logger: e.log})

	var store *auth.Store
	if km, err := keychain.NewManager(); err != nil {
		e.log.Warn("secure storage unavailable, login will not persist", e.log.Args("error", err.Error()))
	} else {
		store = auth.NewStore(km, e.log)
		if ok, err := store.Restore(id); err != nil {
			e.log.Warn("could not read stored credential", e.log.Args("error", err.Error()))
		} else {
			e.log.Debug("credential restored", e.log.Args("found", ok))
		}
	}

	e.session = app.New(app.Deps{
		API:      be,
		Identity: id,
		Store:    store,
		PageSize: cfg.PageSize,
		Logger:   e.log,
	})
	e.session.ApplyDefaults(cfg.Defaults)
	return e, nil
}

// requireLogin prints the login hint and reports false when no credential
// is held.
func (e *env) requireLogin() bool {
	if e.session.LoggedIn() {
		return true
	}
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'dbchat login' to get started.")
	return false
}
