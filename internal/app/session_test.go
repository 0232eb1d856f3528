// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbchat/cli/internal/auth"
	"dbchat/cli/internal/backend/backendtest"
	"dbchat/cli/internal/config"
	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/keychain"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/query"
	"dbchat/cli/internal/session"
)

func newFake() *backendtest.Fake {
	return &backendtest.Fake{
		Token:       "tok",
		Key:         "opaque-key",
		Connections: []model.Connection{{ID: "1", Name: "sales", DBType: "postgresql"}, {ID: "1", Name: "sales", DBType: "postgresql"}},
		Providers:   []string{"openai", "anthropic", "openai"},
		Models:      map[string][]string{"openai": {"gpt-4o", "gpt-4o-mini"}, "anthropic": {"claude"}},
		AnswerFunc: func(_ context.Context, req model.AnswerRequest) (*model.QueryResult, error) {
			return &model.QueryResult{Answer: "Revenue is $10,000", SQL: "SELECT 1", Page: req.Page, TotalPages: 3}, nil
		},
	}
}

func newTestSession(be *backendtest.Fake) *Session {
	store := auth.NewStore(keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil)), nil)
	return New(Deps{API: be, Identity: &auth.Identity{}, Store: store, PageSize: 5})
}

func TestLoginRefreshesCatalogs(t *testing.T) {
	be := newFake()
	s := newTestSession(be)

	notice, err := s.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Logged in.", notice)
	assert.True(t, s.LoggedIn())

	assert.Len(t, s.Catalog.Connections(), 1)
	assert.Equal(t, []string{"openai", "anthropic"}, s.Catalog.Providers())
	v := s.Options.Snapshot()
	assert.Equal(t, "sales", v.Connection)
	assert.Equal(t, "sales", v.DBInfoName)
}

func TestLoginFailure(t *testing.T) {
	be := newFake()
	be.LoginErr = backendtest.Detail(401, "Incorrect username or password")
	s := newTestSession(be)

	_, err := s.Login(context.Background(), "ana", "bad")
	require.Error(t, err)
	assert.True(t, dberrors.IsKind(err, dberrors.Auth))
	assert.Equal(t, "Incorrect username or password", dberrors.Message(err))
	assert.False(t, s.LoggedIn())
	assert.Equal(t, 0, be.Calls("ListConnections"))
}

func TestLoginFailureWithRestoredCredential(t *testing.T) {
	be := newFake()
	be.LoginErr = backendtest.Detail(401, "Incorrect username or password")
	id := &auth.Identity{}
	id.Set("token-from-keychain")
	store := auth.NewStore(keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil)), nil)
	s := New(Deps{API: be, Identity: id, Store: store, PageSize: 5})

	notice, err := s.Login(context.Background(), "ana", "wrong")
	require.Error(t, err)
	assert.Empty(t, notice)
	assert.True(t, dberrors.IsKind(err, dberrors.Auth))
	assert.Equal(t, "Incorrect username or password", dberrors.Message(err))
	assert.Equal(t, 0, be.Calls("ListConnections"))
}

type brokenRing struct{ keyring.Keyring }

func (brokenRing) Set(keyring.Item) error { return errors.New("keychain locked") }

func TestLoginKeychainFailureStillLogsIn(t *testing.T) {
	be := newFake()
	store := auth.NewStore(keychain.NewManagerWithRing(brokenRing{keyring.NewArrayKeyring(nil)}), nil)
	s := New(Deps{API: be, Identity: &auth.Identity{}, Store: store, PageSize: 5})

	notice, err := s.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Logged in.", notice)
	assert.True(t, s.LoggedIn())
}

func TestLoginRefreshFailureStillLogsIn(t *testing.T) {
	be := newFake()
	be.ProvidersErr = errors.New("boom")
	s := newTestSession(be)

	notice, err := s.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Logged in. Could not load providers: boom", notice)
	assert.True(t, s.LoggedIn())
}

func TestLoginValidation(t *testing.T) {
	s := newTestSession(newFake())
	_, err := s.Login(context.Background(), " ", "pw")
	assert.True(t, dberrors.IsKind(err, dberrors.Validation))
}

func TestLogout(t *testing.T) {
	s := newTestSession(newFake())
	_, err := s.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	require.NoError(t, s.Logout())
	assert.False(t, s.LoggedIn())
}

func TestSelectProviderReloadsModels(t *testing.T) {
	be := newFake()
	s := newTestSession(be)
	ctx := context.Background()
	_, err := s.Login(ctx, "ana", "pw")
	require.NoError(t, err)

	require.NoError(t, s.SelectProvider(ctx, "openai"))
	require.NoError(t, s.SelectModel("gpt-4o"))
	assert.Equal(t, "gpt-4o", s.Options.Snapshot().Model)

	require.NoError(t, s.SelectProvider(ctx, "anthropic"))
	assert.Equal(t, "", s.Options.Snapshot().Model)
	models, owner := s.Catalog.Models()
	assert.Equal(t, []string{"claude"}, models)
	assert.Equal(t, "anthropic", owner)

	err = s.SelectModel("gpt-4o")
	assert.True(t, dberrors.IsKind(err, dberrors.Validation))

	err = s.SelectProvider(ctx, "mistral")
	assert.True(t, dberrors.IsKind(err, dberrors.Validation))
	assert.Equal(t, "anthropic", s.Options.Snapshot().Provider)
}

func TestSaveAPIKey(t *testing.T) {
	be := newFake()
	s := newTestSession(be)
	ctx := context.Background()

	_, err := s.SaveAPIKey(ctx)
	assert.Equal(t, MsgNeedAPIKey, dberrors.Message(err))
	assert.Equal(t, 0, be.Calls("UpsertAPIKey"))

	s.Options.SetProvider("openai")
	s.Options.SetAPIKeyInput(" sk-123 ")
	notice, err := s.SaveAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "API key saved for openai.", notice)
	assert.Equal(t, "sk-123", be.APIKeys["openai"])
	assert.Equal(t, "", s.Options.Snapshot().APIKeyInput)
	assert.Equal(t, 1, be.Calls("ListModels"))

	notice, err = s.DeleteAPIKey(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "API key removed for openai.", notice)
	assert.NotContains(t, be.APIKeys, "openai")
}

func TestSaveConnection(t *testing.T) {
	be := newFake()
	be.Connections = nil
	s := newTestSession(be)
	ctx := context.Background()

	_, err := s.SaveConnection(ctx, model.NewConnection{})
	assert.Equal(t, MsgNeedConnFields, dberrors.Message(err))

	_, err = s.SaveConnection(ctx, model.NewConnection{DBType: "oracle", Name: "x"})
	assert.True(t, dberrors.IsKind(err, dberrors.Validation))
	assert.Equal(t, 0, be.Calls("CreateConnection"))

	s.Options.SetDBTypeInput("sqlite")
	s.Options.SetConnNameInput("local")
	_, err = s.SaveConnection(ctx, model.NewConnection{})
	require.NoError(t, err)
	assert.Equal(t, []model.NewConnection{{DBType: "sqlite", Name: "local"}}, be.Created)
	v := s.Options.Snapshot()
	assert.Equal(t, "local", v.Connection)
	assert.Equal(t, "local", v.DBInfoName)
	assert.Equal(t, "", v.ConnNameInput)

	_, err = s.SaveConnection(ctx, model.NewConnection{DBType: "PostgreSQL", Name: "prod", Host: "db", Port: 5432})
	require.NoError(t, err)
	assert.Equal(t, "local", s.Options.Snapshot().Connection)
	assert.Len(t, s.Catalog.Connections(), 2)
}

func TestConnectionInfo(t *testing.T) {
	be := newFake()
	be.Info = json.RawMessage(`{"tables":["orders"]}`)
	s := newTestSession(be)
	ctx := context.Background()

	_, err := s.ConnectionInfo(ctx, "")
	assert.Equal(t, MsgNeedInfoTarget, dberrors.Message(err))

	s.Options.SetConnection("sales")
	info, err := s.ConnectionInfo(ctx, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tables":["orders"]}`, string(info))

	_, err = s.ConnectionInfo(ctx, "hr")
	require.NoError(t, err)
	assert.Equal(t, "hr", s.Options.Snapshot().DBInfoName)
	assert.Equal(t, "sales", s.Options.Snapshot().Connection)
}

func TestAskAndPaginateThroughSession(t *testing.T) {
	be := newFake()
	s := newTestSession(be)
	ctx := context.Background()
	s.ApplyDefaults(config.Defaults{Provider: "openai", Model: "gpt-4o", Connection: "sales"})

	out := s.Ask(ctx, "What is total revenue?")
	require.Equal(t, query.StatusAnswered, out.Status)
	assert.Equal(t, query.StatusAnswered, s.NextPage(ctx).Status)
	assert.Equal(t, 2, s.Query.Page())
	assert.Equal(t, query.StatusAnswered, s.PrevPage(ctx).Status)
	assert.Equal(t, query.StatusIgnored, s.GoToPage(ctx, 9).Status)
	assert.Equal(t, 2, s.Log.Len())

	notice, err := s.SaveCurrent(ctx, "rev")
	require.NoError(t, err)
	assert.Equal(t, `Saved as "rev".`, notice)
}

func TestAskNotReady(t *testing.T) {
	s := newTestSession(newFake())
	out := s.Ask(context.Background(), "hi")
	assert.Equal(t, query.StatusNotReady, out.Status)
	assert.Equal(t, session.ReasonNoProvider, out.Message)
}

func TestSavedQueries(t *testing.T) {
	be := newFake()
	be.SavedList = []model.SavedQuery{{Key: "rev", Question: "q"}}
	s := newTestSession(be)
	ctx := context.Background()

	list, err := s.ListSaved(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.DeleteSaved(ctx, "")
	assert.Equal(t, MsgNeedSavedKey, dberrors.Message(err))
	msg, err := s.DeleteSaved(ctx, "rev")
	require.NoError(t, err)
	assert.Equal(t, "Deleted rev", msg)
}

func TestGenerateKeyAndRegister(t *testing.T) {
	be := newFake()
	s := newTestSession(be)
	ctx := context.Background()

	key, err := s.GenerateKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-key", key)

	_, err = s.Register(ctx, model.Account{Name: "Ana"})
	assert.Equal(t, MsgNeedAccount, dberrors.Message(err))
	be.RegisterErr = backendtest.Detail(400, "Email already registered")
	_, err = s.Register(ctx, model.Account{Name: "Ana", Email: "a@x", Password: "pw"})
	assert.True(t, dberrors.IsKind(err, dberrors.Transport))
	assert.Equal(t, "Email already registered", dberrors.Message(err))
}
