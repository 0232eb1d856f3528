// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the records shared between the service client,
// the session core and the presentation layer. Wire-shape differences are
// resolved in internal/backend before values of these types are built, so
// nothing downstream needs to know about field fallbacks.
package model

// Connection is a named reference to a database registered with the service.
type Connection struct {
	// ID is the service-side identifier. Empty when the service omitted it.
	ID     string
	Name   string
	DBType string
}

// Key returns the identity used for deduplication: ID when present, else Name.
func (c Connection) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// NewConnection carries the fields submitted when registering a connection.
// Only DBType and Name are required; the rest are forwarded when set.
type NewConnection struct {
	DBType   string
	Name     string
	Host     string
	Port     int
	User     string
	Password string
}

// Row is a single preview row keyed by column name.
type Row map[string]any

// QueryResult is the full response to an answered question.
type QueryResult struct {
	Question string
	SQL      string
	Answer   string
	// Columns is the union of preview keys in first-seen order.
	Columns      []string
	Preview      []Row
	Page         int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// PageCount returns TotalPages, treating an absent value as a single page.
func (r *QueryResult) PageCount() int {
	if r == nil || r.TotalPages < 1 {
		return 1
	}
	return r.TotalPages
}

// Role tags a conversation entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role Role
	Text string
}

// AnswerRequest is the question submission sent to the service.
type AnswerRequest struct {
	Question   string
	Provider   string
	Model      string
	Connection string
	Page       int
	PageSize   int
}

// SaveRequest persists a named snapshot of an answered question.
type SaveRequest struct {
	Key      string
	Question string
	SQL      string
	Answer   string
}

// Account is the registration payload.
type Account struct {
	Name     string
	Email    string
	Password string
}

// SavedQuery is one entry of the saved-query listing. The service may return
// either structured records or a preformatted sentence in Text.
type SavedQuery struct {
	Key      string
	Question string
	SQL      string
	Answer   string
	Text     string
}
