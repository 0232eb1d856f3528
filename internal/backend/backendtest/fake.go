// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backendtest provides an in-memory backend.API for tests.
package backendtest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"dbchat/cli/internal/backend"
	"dbchat/cli/internal/model"
)

var _ backend.API = (*Fake)(nil)

// Fake records calls and answers from its exported fields. Hooks, when set,
// take precedence over the canned values.
type Fake struct {
	mu sync.Mutex

	Token       string
	LoginErr    error
	RegisterErr error
	Key         string

	Connections    []model.Connection
	ConnectionsErr error
	Created        []model.NewConnection
	CreateErr      error
	Info           json.RawMessage
	InfoErr        error

	Providers    []string
	ProvidersErr error
	Models       map[string][]string
	ModelsErr    error
	APIKeys      map[string]string
	APIKeyErr    error

	// AnswerFunc produces the reply to an answer request.
	AnswerFunc func(ctx context.Context, req model.AnswerRequest) (*model.QueryResult, error)
	Answers    []model.AnswerRequest

	Saved     []model.SaveRequest
	SaveErr   error
	SavedList []model.SavedQuery
	Deleted   []string

	calls map[string]int
}

// Calls returns how many times the named method ran.
func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *Fake) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *Fake) Register(ctx context.Context, acct model.Account) error {
	f.hit("Register")
	return f.RegisterErr
}

func (f *Fake) Login(ctx context.Context, username, password string) (string, error) {
	f.hit("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	return f.Token, nil
}

func (f *Fake) GenerateKey(ctx context.Context) (string, error) {
	f.hit("GenerateKey")
	if f.Key == "" {
		return "", errors.New("no key")
	}
	return f.Key, nil
}

func (f *Fake) ListConnections(ctx context.Context) ([]model.Connection, error) {
	f.hit("ListConnections")
	if f.ConnectionsErr != nil {
		return nil, f.ConnectionsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Connection(nil), f.Connections...), nil
}

func (f *Fake) CreateConnection(ctx context.Context, conn model.NewConnection) error {
	f.hit("CreateConnection")
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, conn)
	f.Connections = append(f.Connections, model.Connection{Name: conn.Name, DBType: conn.DBType})
	return nil
}

func (f *Fake) ConnectionInfo(ctx context.Context, name string) (json.RawMessage, error) {
	f.hit("ConnectionInfo")
	return f.Info, f.InfoErr
}

func (f *Fake) ListProviders(ctx context.Context) ([]string, error) {
	f.hit("ListProviders")
	if f.ProvidersErr != nil {
		return nil, f.ProvidersErr
	}
	return append([]string(nil), f.Providers...), nil
}

func (f *Fake) ListModels(ctx context.Context, provider string) ([]string, error) {
	f.hit("ListModels")
	if f.ModelsErr != nil {
		return nil, f.ModelsErr
	}
	return append([]string(nil), f.Models[provider]...), nil
}

func (f *Fake) UpsertAPIKey(ctx context.Context, provider, apiKey string) error {
	f.hit("UpsertAPIKey")
	if f.APIKeyErr != nil {
		return f.APIKeyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.APIKeys == nil {
		f.APIKeys = map[string]string{}
	}
	f.APIKeys[provider] = apiKey
	return nil
}

func (f *Fake) DeleteAPIKey(ctx context.Context, provider string) error {
	f.hit("DeleteAPIKey")
	if f.APIKeyErr != nil {
		return f.APIKeyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.APIKeys, provider)
	return nil
}

func (f *Fake) Answer(ctx context.Context, req model.AnswerRequest) (*model.QueryResult, error) {
	f.hit("Answer")
	f.mu.Lock()
	f.Answers = append(f.Answers, req)
	fn := f.AnswerFunc
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no answer configured")
	}
	return fn(ctx, req)
}

func (f *Fake) SaveQuery(ctx context.Context, req model.SaveRequest) error {
	f.hit("SaveQuery")
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saved = append(f.Saved, req)
	return nil
}

func (f *Fake) ListSavedQueries(ctx context.Context) ([]model.SavedQuery, error) {
	f.hit("ListSavedQueries")
	return append([]model.SavedQuery(nil), f.SavedList...), nil
}

func (f *Fake) DeleteSavedQuery(ctx context.Context, key string) (string, error) {
	f.hit("DeleteSavedQuery")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, key)
	return "Deleted " + key, nil
}

// Detail returns a service failure carrying detail, as the HTTP client would.
func Detail(status int, detail string) error {
	return &backend.APIError{StatusCode: status, Detail: detail}
}
