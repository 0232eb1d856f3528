// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"dbchat/cli/internal/model"
)

// ListConnections returns the connections registered for the current user.
func (h *HTTP) ListConnections(ctx context.Context) ([]model.Connection, error) {
	data, err := h.send(ctx, request{method: http.MethodGet, path: h.endpoints.ListConnections})
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var items []wireConnection
	if data[0] == '{' {
		var wrapped struct {
			Connections []wireConnection `json:"connections"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		items = wrapped.Connections
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return toConnections(items), nil
}

// CreateConnection registers a new connection. Optional fields are sent only
// when set.
func (h *HTTP) CreateConnection(ctx context.Context, conn model.NewConnection) error {
	body := map[string]any{
		"db_type":         conn.DBType,
		"connection_name": conn.Name,
	}
	if conn.User != "" {
		body["db_user"] = conn.User
	}
	if conn.Password != "" {
		body["db_password"] = conn.Password
	}
	if conn.Host != "" {
		body["db_host"] = conn.Host
	}
	if conn.Port > 0 {
		body["db_port"] = conn.Port
	}
	req, err := jsonRequest(http.MethodPost, h.endpoints.NewConnection, body)
	if err != nil {
		return err
	}
	return h.call(ctx, req, nil)
}

// ConnectionInfo fetches the service's description of a connection.
func (h *HTTP) ConnectionInfo(ctx context.Context, name string) (json.RawMessage, error) {
	data, err := h.send(ctx, request{
		method: http.MethodGet,
		path:   h.endpoints.DBInfo,
		query:  url.Values{"db_name": {name}},
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

// ListProviders returns the provider identifiers the service supports.
func (h *HTTP) ListProviders(ctx context.Context) ([]string, error) {
	data, err := h.send(ctx, request{method: http.MethodGet, path: h.endpoints.Providers})
	if err != nil {
		return nil, err
	}
	return stringList(data, "providers")
}

// ListModels returns the models offered for provider.
func (h *HTTP) ListModels(ctx context.Context, provider string) ([]string, error) {
	data, err := h.send(ctx, request{
		method: http.MethodGet,
		path:   h.endpoints.Models,
		query:  url.Values{"provider": {provider}},
	})
	if err != nil {
		return nil, err
	}
	return stringList(data, "models")
}

// UpsertAPIKey stores the provider API key server-side. The service takes
// both values as query parameters.
func (h *HTTP) UpsertAPIKey(ctx context.Context, provider, apiKey string) error {
	return h.call(ctx, request{
		method: http.MethodPost,
		path:   h.endpoints.APIKeys,
		query:  url.Values{"provider": {provider}, "api_key": {apiKey}},
	}, nil)
}

// DeleteAPIKey removes the stored key for provider.
func (h *HTTP) DeleteAPIKey(ctx context.Context, provider string) error {
	return h.call(ctx, request{
		method: http.MethodDelete,
		path:   h.endpoints.APIKeys,
		query:  url.Values{"provider": {provider}},
	}, nil)
}
