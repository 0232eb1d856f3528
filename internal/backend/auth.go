// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"dbchat/cli/internal/model"
)

// Register posts the account to the registration endpoint.
func (h *HTTP) Register(ctx context.Context, acct model.Account) error {
	req, err := jsonRequest(http.MethodPost, h.endpoints.Register, map[string]string{
		"name":     acct.Name,
		"email":    acct.Email,
		"password": acct.Password,
	})
	if err != nil {
		return err
	}
	return h.call(ctx, req, nil)
}

// Login exchanges username and password for a bearer token. The token
// endpoint is an OAuth2 password form, so the body is form-encoded.
func (h *HTTP) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var header http.Header
	data, err := h.send(ctx, request{
		method:      http.MethodPost,
		path:        h.endpoints.Token,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		header:      &header,
	})
	if err != nil {
		return "", err
	}

	var raw map[string]any
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return "", err
		}
	}
	token := extractAccessToken(raw)
	if token == "" {
		token = parseBearerToken(header.Get("Authorization"))
	}
	if token == "" {
		return "", errors.New("no access_token in response")
	}
	return token, nil
}

// GenerateKey asks the service for fresh key material.
func (h *HTTP) GenerateKey(ctx context.Context) (string, error) {
	var out map[string]any
	if err := h.call(ctx, request{method: http.MethodPost, path: h.endpoints.GenerateKey}, &out); err != nil {
		return "", err
	}
	for _, k := range []string{"fernet_key", "key"} {
		if v, ok := out[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}
	return "", errors.New("no key in response")
}
