// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// APIError is a non-2xx reply from the service.
type APIError struct {
	StatusCode int
	Status     string
	// Detail is the server-supplied human-readable message, if any.
	Detail string
	// Body is the raw reply, trimmed, for diagnostics.
	Body string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body != "" {
		return fmt.Sprintf("request failed with status %s: %s", status, e.Body)
	}
	return fmt.Sprintf("request failed with status %s", status)
}

// DetailOf returns the server-supplied detail message carried by err, or "".
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

const maxBodyInError = 200

func newAPIError(code int, status string, body []byte) *APIError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxBodyInError {
		cut := maxBodyInError
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return &APIError{
		StatusCode: code,
		Status:     status,
		Detail:     extractDetail(body),
		Body:       text,
	}
}

// extractDetail reads the "detail" field of an error reply. The service
// sends either a string or a list of validation issues with "msg" fields.
func extractDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var issues []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &issues); err == nil && len(issues) > 0 {
		parts := make([]string, 0, len(issues))
		for _, is := range issues {
			if is.Msg == "" {
				continue
			}
			if field := lastLoc(is.Loc); field != "" {
				parts = append(parts, field+": "+is.Msg)
			} else {
				parts = append(parts, is.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	if string(payload.Detail) == "null" {
		return ""
	}
	return string(payload.Detail)
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}
