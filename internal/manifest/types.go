// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes where the service lives and which path serves
// each operation.
package manifest

// Manifest represents the endpoint configuration for the service.
type Manifest struct {
	BaseURL string
	HTTP    HTTPEndpoints
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Register         string // e.g., "/register"
	Token            string // e.g., "/token"
	GenerateKey      string // e.g., "/generate_fernet_key"
	ListConnections  string // e.g., "/list_connections"
	NewConnection    string // e.g., "/new_connection"
	DBInfo           string // e.g., "/db_info"
	Providers        string // e.g., "/providers"
	Models           string // e.g., "/models"
	Answer           string // e.g., "/answer"
	SaveQuery        string // e.g., "/save_query"
	ListSavedQueries string // e.g., "/list_saved_queries"
	DeleteQuery      string // e.g., "/delete_query"
	APIKeys          string // e.g., "/api_keys"
}

// DefaultEndpoints returns the paths served by the reference service.
func DefaultEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Register:         "/register",
		Token:            "/token",
		GenerateKey:      "/generate_fernet_key",
		ListConnections:  "/list_connections",
		NewConnection:    "/new_connection",
		DBInfo:           "/db_info",
		Providers:        "/providers",
		Models:           "/models",
		Answer:           "/answer",
		SaveQuery:        "/save_query",
		ListSavedQueries: "/list_saved_queries",
		DeleteQuery:      "/delete_query",
		APIKeys:          "/api_keys",
	}
}
