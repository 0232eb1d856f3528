// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package app assembles one interactive session: identity, selections,
// catalog, conversation log and the query orchestrator. Every user action of
// the client maps onto one Session method. Methods return a short notice on
// success and a typed error from internal/errors on failure; none of them
// panic or leave partially applied state.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/auth"
	"dbchat/cli/internal/backend"
	"dbchat/cli/internal/config"
	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/logging"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/query"
	"dbchat/cli/internal/session"
)

// Validation messages shown inline.
const (
	MsgNeedAccount    = "Enter name, email and password."
	MsgNeedLogin      = "Enter username and password."
	MsgNeedAPIKey     = "Choose provider and enter API key"
	MsgNeedProvider   = "Choose a provider."
	MsgNeedConnFields = "Select DB type and enter a connection name"
	MsgNeedInfoTarget = "Pick a connection"
	MsgNeedSavedKey   = "Enter a query key."
)

// Deps are the collaborators a Session is built from.
type Deps struct {
	API      backend.API
	Identity *auth.Identity
	// Store persists the credential. Nil keeps the login in memory only.
	Store    *auth.Store
	PageSize int
	Logger   *pterm.Logger
}

// Session is the top-level orchestrating context.
type Session struct {
	be   backend.API
	id   *auth.Identity
	auth *auth.Service
	log  *pterm.Logger

	Options *session.Options
	Catalog *session.Catalog
	Log     *query.Log
	Query   *query.Orchestrator
}

// New builds a Session. The identity must be the TokenSource the backend
// reads so that login takes effect on the next request.
func New(d Deps) *Session {
	lg := d.Logger
	if lg == nil {
		lg = logging.Nop()
	}
	id := d.Identity
	if id == nil {
		id = &auth.Identity{}
	}
	opts := &session.Options{}
	msgs := &query.Log{}
	return &Session{
		be:      d.API,
		id:      id,
		auth:    auth.NewService(d.API, d.Store, id),
		log:     lg,
		Options: opts,
		Catalog: session.NewCatalog(d.API),
		Log:     msgs,
		Query:   query.NewOrchestrator(d.API, opts, msgs, query.Config{PageSize: d.PageSize, Logger: lg}),
	}
}

// LoggedIn reports whether the session holds a credential.
func (s *Session) LoggedIn() bool { return s.id.Present() }

func transport(err error) error {
	return dberrors.Wrap(dberrors.Transport, query.ErrorMessage(err), err)
}

func validation(msg string) error { return dberrors.New(dberrors.Validation, msg) }

// Register creates an account.
func (s *Session) Register(ctx context.Context, acct model.Account) (string, error) {
	acct.Name = strings.TrimSpace(acct.Name)
	acct.Email = strings.TrimSpace(acct.Email)
	if acct.Name == "" || acct.Email == "" || acct.Password == "" {
		return "", validation(MsgNeedAccount)
	}
	if err := s.be.Register(ctx, acct); err != nil {
		return "", transport(err)
	}
	return "Registered. You can log in now.", nil
}

// Login authenticates and then refreshes connections and providers, which
// depend on the identity. Refresh failures do not fail the login; they are
// reported in the notice.
func (s *Session) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", validation(MsgNeedLogin)
	}
	if err := s.auth.Login(ctx, username, password); err != nil {
		if !dberrors.IsKind(err, dberrors.Storage) {
			return "", dberrors.Wrap(dberrors.Auth, query.ErrorMessage(err), err)
		}
		s.log.Warn("credential not persisted", s.log.Args("error", err.Error()))
	}
	notice := "Logged in."
	if err := s.RefreshAfterLogin(ctx); err != nil {
		notice += " " + dberrors.Message(err)
	}
	return notice, nil
}

// RefreshAfterLogin reloads the identity-scoped catalogs.
func (s *Session) RefreshAfterLogin(ctx context.Context) error {
	if err := s.Catalog.RefreshConnections(ctx, s.Options); err != nil {
		return dberrors.Wrap(dberrors.Transport, "Could not load connections: "+query.ErrorMessage(err), err)
	}
	if err := s.Catalog.RefreshProviders(ctx); err != nil {
		return dberrors.Wrap(dberrors.Transport, "Could not load providers: "+query.ErrorMessage(err), err)
	}
	return nil
}

// Logout drops the credential here and in the keychain.
func (s *Session) Logout() error {
	return s.auth.Logout()
}

// WhoAmI reports the logged-in account.
func (s *Session) WhoAmI(ctx context.Context) (string, bool, error) {
	return s.auth.WhoAmI(ctx)
}

// GenerateKey returns opaque key material from the service.
func (s *Session) GenerateKey(ctx context.Context) (string, error) {
	key, err := s.be.GenerateKey(ctx)
	if err != nil {
		return "", transport(err)
	}
	return key, nil
}

// SaveAPIKey stores the staged API key for the selected provider and then
// reloads that provider's models.
func (s *Session) SaveAPIKey(ctx context.Context) (string, error) {
	v := s.Options.Snapshot()
	provider := strings.TrimSpace(v.Provider)
	key := strings.TrimSpace(v.APIKeyInput)
	if provider == "" || key == "" {
		return "", validation(MsgNeedAPIKey)
	}
	if err := s.be.UpsertAPIKey(ctx, provider, key); err != nil {
		return "", transport(err)
	}
	s.Options.SetAPIKeyInput("")
	notice := fmt.Sprintf("API key saved for %s.", provider)
	if err := s.Catalog.RefreshModels(ctx, provider); err != nil {
		notice += " Could not load models: " + query.ErrorMessage(err)
	}
	return notice, nil
}

// DeleteAPIKey removes the stored key for provider, or for the selected
// provider when provider is empty.
func (s *Session) DeleteAPIKey(ctx context.Context, provider string) (string, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		provider = strings.TrimSpace(s.Options.Snapshot().Provider)
	}
	if provider == "" {
		return "", validation(MsgNeedProvider)
	}
	if err := s.be.DeleteAPIKey(ctx, provider); err != nil {
		return "", transport(err)
	}
	return fmt.Sprintf("API key removed for %s.", provider), nil
}

// SaveConnection registers a connection. DBType and Name fall back to the
// staged inputs. The new connection becomes the selection only where none
// exists yet.
func (s *Session) SaveConnection(ctx context.Context, nc model.NewConnection) (string, error) {
	v := s.Options.Snapshot()
	if strings.TrimSpace(nc.DBType) == "" {
		nc.DBType = v.DBTypeInput
	}
	if strings.TrimSpace(nc.Name) == "" {
		nc.Name = v.ConnNameInput
	}
	nc.DBType = strings.ToLower(strings.TrimSpace(nc.DBType))
	nc.Name = strings.TrimSpace(nc.Name)
	if nc.DBType == "" || nc.Name == "" {
		return "", validation(MsgNeedConnFields)
	}
	if !session.ValidDBType(nc.DBType) {
		return "", validation(fmt.Sprintf("Unsupported DB type %q. Use one of: %s", nc.DBType, strings.Join(session.DBTypes, ", ")))
	}

	if err := s.be.CreateConnection(ctx, nc); err != nil {
		return "", transport(err)
	}
	notice := fmt.Sprintf("Connection %q saved.", nc.Name)
	if err := s.Catalog.RefreshConnections(ctx, nil); err != nil {
		notice += " Could not reload connections: " + query.ErrorMessage(err)
	}
	s.Options.FillConnection(nc.Name)
	s.Options.SetConnNameInput("")
	s.Options.SetDBTypeInput("")
	return notice, nil
}

// ConnectionInfo describes name, or the current info target when name is
// empty. A non-empty name becomes the new info target.
func (s *Session) ConnectionInfo(ctx context.Context, name string) (json.RawMessage, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		s.Options.SetDBInfoName(name)
	} else {
		name = strings.TrimSpace(s.Options.Snapshot().DBInfoName)
	}
	if name == "" {
		return nil, validation(MsgNeedInfoTarget)
	}
	info, err := s.be.ConnectionInfo(ctx, name)
	if err != nil {
		return nil, transport(err)
	}
	return info, nil
}

// SelectProvider switches provider, which clears the model, and reloads the
// model list for it.
func (s *Session) SelectProvider(ctx context.Context, provider string) error {
	provider = strings.TrimSpace(provider)
	if known := s.Catalog.Providers(); provider != "" && len(known) > 0 && !slices.Contains(known, provider) {
		return validation(fmt.Sprintf("Unknown provider %q.", provider))
	}
	s.Options.SetProvider(provider)
	if err := s.Catalog.RefreshModels(ctx, provider); err != nil {
		return dberrors.Wrap(dberrors.Transport, "Could not load models: "+query.ErrorMessage(err), err)
	}
	return nil
}

// SelectModel picks a model of the current provider.
func (s *Session) SelectModel(m string) error {
	m = strings.TrimSpace(m)
	models, owner := s.Catalog.Models()
	if m != "" && owner == s.Options.Snapshot().Provider && len(models) > 0 && !slices.Contains(models, m) {
		return validation(fmt.Sprintf("Unknown model %q for %s.", m, owner))
	}
	s.Options.SetModel(m)
	return nil
}

// SelectConnection picks the connection to query and inspect.
func (s *Session) SelectConnection(name string) error {
	name = strings.TrimSpace(name)
	conns := s.Catalog.Connections()
	if name != "" && len(conns) > 0 && !slices.ContainsFunc(conns, func(c model.Connection) bool { return c.Name == name }) {
		return validation(fmt.Sprintf("Unknown connection %q.", name))
	}
	s.Options.SetConnection(name)
	return nil
}

// ApplyDefaults pre-selects configured values. Empty values are skipped.
func (s *Session) ApplyDefaults(d config.Defaults) {
	if d.Provider != "" {
		s.Options.SetProvider(d.Provider)
	}
	if d.Model != "" {
		s.Options.SetModel(d.Model)
	}
	if d.Connection != "" {
		s.Options.SetConnection(d.Connection)
	}
}

func (s *Session) Ask(ctx context.Context, question string) query.Outcome {
	return s.Query.Ask(ctx, question)
}

func (s *Session) GoToPage(ctx context.Context, page int) query.Outcome {
	return s.Query.GoToPage(ctx, page)
}

func (s *Session) NextPage(ctx context.Context) query.Outcome { return s.Query.NextPage(ctx) }
func (s *Session) PrevPage(ctx context.Context) query.Outcome { return s.Query.PrevPage(ctx) }

// SaveCurrent stores the displayed result under key.
func (s *Session) SaveCurrent(ctx context.Context, key string) (string, error) {
	if err := s.Query.SaveCurrent(ctx, key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved as %q.", strings.TrimSpace(key)), nil
}

// ListSaved returns the saved queries.
func (s *Session) ListSaved(ctx context.Context) ([]model.SavedQuery, error) {
	list, err := s.be.ListSavedQueries(ctx)
	if err != nil {
		return nil, transport(err)
	}
	return list, nil
}

// DeleteSaved removes a saved query and returns the service's message.
func (s *Session) DeleteSaved(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", validation(MsgNeedSavedKey)
	}
	msg, err := s.be.DeleteSavedQuery(ctx, key)
	if err != nil {
		return "", transport(err)
	}
	if msg == "" {
		msg = fmt.Sprintf("Deleted %q.", key)
	}
	return msg, nil
}
