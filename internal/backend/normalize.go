// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dbchat/cli/internal/model"
)

type wireConnection struct {
	ID     json.RawMessage `json:"id"`
	Name   string          `json:"connection_name"`
	DBType string          `json:"db_type"`
}

type wireAnswer struct {
	Question     *string           `json:"question"`
	Answer       json.RawMessage   `json:"answer"`
	SQL          *string           `json:"sql"`
	LastSQL      *string           `json:"last_sql_query"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalRecords int               `json:"total_records"`
	TotalPages   int               `json:"total_pages"`
	Preview      []json.RawMessage `json:"preview"`
}

// normalizeID renders a numeric or string id as a string. Null and absent
// ids yield "".
func normalizeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func toConnections(items []wireConnection) []model.Connection {
	out := make([]model.Connection, 0, len(items))
	for _, it := range items {
		out = append(out, model.Connection{
			ID:     normalizeID(it.ID),
			Name:   it.Name,
			DBType: it.DBType,
		})
	}
	return out
}

// toResult converts the /answer payload. sql wins over last_sql_query and
// the service's question wins over the one that was asked.
func toResult(question string, w wireAnswer) (*model.QueryResult, error) {
	if w.Question != nil && strings.TrimSpace(*w.Question) != "" {
		question = *w.Question
	}
	res := &model.QueryResult{
		Question:     question,
		Answer:       textOf(w.Answer),
		Page:         w.Page,
		PageSize:     w.PageSize,
		TotalPages:   w.TotalPages,
		TotalRecords: w.TotalRecords,
	}
	switch {
	case w.SQL != nil:
		res.SQL = *w.SQL
	case w.LastSQL != nil:
		res.SQL = *w.LastSQL
	}

	seen := map[string]bool{}
	for _, raw := range w.Preview {
		keys, row, err := decodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("decode preview row: %w", err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				res.Columns = append(res.Columns, k)
			}
		}
		res.Preview = append(res.Preview, row)
	}
	return res, nil
}

// textOf returns a JSON string as-is and anything else as compact JSON.
func textOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// decodeRow decodes one preview object, returning its keys in document order.
// Numbers are kept as json.Number so integers print without exponent.
func decodeRow(raw json.RawMessage) ([]string, model.Row, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, model.Row{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	row := model.Row{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = v
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, nil, err
	}
	return keys, row, nil
}

// toSavedQueries accepts both preformatted sentences and structured records.
func toSavedQueries(items []json.RawMessage) []model.SavedQuery {
	out := make([]model.SavedQuery, 0, len(items))
	for _, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out = append(out, model.SavedQuery{Text: s})
			continue
		}
		var rec struct {
			Key      string          `json:"query_key"`
			Question string          `json:"question"`
			SQL      string          `json:"sql_query"`
			Answer   json.RawMessage `json:"answer"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			out = append(out, model.SavedQuery{Text: textOf(raw)})
			continue
		}
		out = append(out, model.SavedQuery{
			Key:      rec.Key,
			Question: rec.Question,
			SQL:      rec.SQL,
			Answer:   textOf(rec.Answer),
		})
	}
	return out
}

// stringList decodes either a bare array or an object wrapping one under key.
func stringList(data []byte, key string) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var list []string
	if data[0] == '[' {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	inner, ok := wrapped[key]
	if !ok || string(bytes.TrimSpace(inner)) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, err
	}
	return list, nil
}
