// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dbchat/cli/internal/model"
)

// Answer submits a question and returns one page of its result.
func (h *HTTP) Answer(ctx context.Context, req model.AnswerRequest) (*model.QueryResult, error) {
	q := url.Values{}
	q.Set("question", req.Question)
	q.Set("provider", req.Provider)
	q.Set("model", req.Model)
	q.Set("connection_name", req.Connection)
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(req.PageSize))
	}

	var w wireAnswer
	if err := h.call(ctx, request{method: http.MethodGet, path: h.endpoints.Answer, query: q}, &w); err != nil {
		return nil, err
	}
	return toResult(req.Question, w)
}

// SaveQuery stores a named snapshot. The service reads every field from the
// query string and expects an empty body.
func (h *HTTP) SaveQuery(ctx context.Context, req model.SaveRequest) error {
	return h.call(ctx, request{
		method: http.MethodPost,
		path:   h.endpoints.SaveQuery,
		query: url.Values{
			"query_key": {req.Key},
			"question":  {req.Question},
			"sql_query": {req.SQL},
			"answer":    {req.Answer},
		},
	}, nil)
}

// ListSavedQueries returns the user's saved snapshots.
func (h *HTTP) ListSavedQueries(ctx context.Context) ([]model.SavedQuery, error) {
	var out struct {
		SavedQueries []json.RawMessage `json:"saved_queries"`
	}
	if err := h.call(ctx, request{method: http.MethodGet, path: h.endpoints.ListSavedQueries}, &out); err != nil {
		return nil, err
	}
	return toSavedQueries(out.SavedQueries), nil
}

// DeleteSavedQuery removes a snapshot and returns the service's message.
func (h *HTTP) DeleteSavedQuery(ctx context.Context, key string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := h.call(ctx, request{
		method: http.MethodDelete,
		path:   h.endpoints.DeleteQuery,
		query:  url.Values{"query_key": {key}},
	}, &out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Message), nil
}
