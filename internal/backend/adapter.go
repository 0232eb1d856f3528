// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the interface and HTTP implementation for talking to
// the question-answering service. Every heterogeneous wire shape the service
// produces (optional ids, sql vs last_sql_query, wrapped lists) is normalized
// here into the records of internal/model, so the session core never sees it.
package backend

import (
	"context"
	"encoding/json"

	"dbchat/cli/internal/model"
)

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Register creates a new account.
	Register(ctx context.Context, acct model.Account) error
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// GenerateKey asks the service to create key material. The result is opaque.
	GenerateKey(ctx context.Context) (string, error)

	ListConnections(ctx context.Context) ([]model.Connection, error)
	CreateConnection(ctx context.Context, conn model.NewConnection) error
	// ConnectionInfo returns the service's free-form description of a connection.
	ConnectionInfo(ctx context.Context, name string) (json.RawMessage, error)

	ListProviders(ctx context.Context) ([]string, error)
	ListModels(ctx context.Context, provider string) ([]string, error)
	UpsertAPIKey(ctx context.Context, provider, apiKey string) error
	DeleteAPIKey(ctx context.Context, provider string) error

	Answer(ctx context.Context, req model.AnswerRequest) (*model.QueryResult, error)
	SaveQuery(ctx context.Context, req model.SaveRequest) error
	ListSavedQueries(ctx context.Context) ([]model.SavedQuery, error)
	DeleteSavedQuery(ctx context.Context, key string) (string, error)
}

// TokenSource supplies the bearer credential read before every request.
type TokenSource interface {
	Token() string
}
