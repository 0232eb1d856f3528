// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"dbchat/cli/internal/logging"
	"dbchat/cli/internal/manifest"
)

// HTTP implements API over the service's REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8000")
	baseURL string
	// endpoints contains the URL paths for the service operations
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// tokens supplies the bearer credential; nil means anonymous requests
	tokens TokenSource
	log    *pterm.Logger
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints manifest.HTTPEndpoints, opts Options) *HTTP {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		tokens:    opts.Tokens,
		log:       log,
	}
}

// request describes one call to the service.
type request struct {
	method string
	path   string
	query  url.Values
	// body is sent as-is; contentType must be set with it.
	body        []byte
	contentType string
	// header, when set, receives the reply headers.
	header *http.Header
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: b, contentType: "application/json"}, nil
}

// send performs r and returns the response body of a 2xx reply.
// Non-2xx replies become *APIError.
func (h *HTTP) send(ctx context.Context, r request) ([]byte, error) {
	target := h.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	reqID := req.Header.Get("X-Request-ID")
	started := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("request failed", h.log.Args(
			"id", reqID, "method", r.method, "url", logging.Mask(target), "error", logging.Mask(err.Error()),
		))
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	h.log.Debug("request done", h.log.Args(
		"id", reqID,
		"method", r.method,
		"url", logging.Mask(target),
		"status", resp.StatusCode,
		"duration", time.Since(started).Round(time.Millisecond).String(),
	))

	if r.header != nil {
		*r.header = resp.Header.Clone()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, resp.Status, data)
	}
	return data, nil
}

// call performs r and decodes a JSON reply into out when out is non-nil.
func (h *HTTP) call(ctx context.Context, r request, out any) error {
	data, err := h.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

// setStandardHeaders sets the headers every request carries, including the
// bearer credential when one is present.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dbchat-cli/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if h.tokens != nil {
		if tok := h.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
}
