// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"strings"
	"sync"

	"dbchat/cli/internal/backend"
	"dbchat/cli/internal/model"
)

// Catalog caches the connection, provider and model lists. A failed refresh
// leaves the cached list untouched.
type Catalog struct {
	be backend.API

	mu          sync.RWMutex
	connections []model.Connection
	providers   []string
	models      []string
	// modelsFor is the provider the cached models belong to.
	modelsFor string
}

// NewCatalog returns an empty catalog backed by be.
func NewCatalog(be backend.API) *Catalog {
	return &Catalog{be: be}
}

// RefreshConnections replaces the connection list. On the first non-empty
// load the first connection becomes opts' default unless opts already names
// one of the loaded connections.
func (c *Catalog) RefreshConnections(ctx context.Context, opts *Options) error {
	list, err := c.be.ListConnections(ctx)
	if err != nil {
		return err
	}
	unique := DedupeConnections(list)

	c.mu.Lock()
	wasEmpty := len(c.connections) == 0
	c.connections = unique
	c.mu.Unlock()

	if opts != nil && wasEmpty && len(unique) > 0 {
		if cur := opts.Snapshot().Connection; cur == "" || !containsName(unique, cur) {
			opts.SetConnection(unique[0].Name)
		}
	}
	return nil
}

// RefreshProviders replaces the provider list. Safe to call redundantly.
func (c *Catalog) RefreshProviders(ctx context.Context) error {
	list, err := c.be.ListProviders(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.providers = DedupeStrings(list)
	c.mu.Unlock()
	return nil
}

// RefreshModels replaces the model list with provider's models. An empty
// provider is a no-op.
func (c *Catalog) RefreshModels(ctx context.Context, provider string) error {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil
	}
	list, err := c.be.ListModels(ctx, provider)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.models = DedupeStrings(list)
	c.modelsFor = provider
	c.mu.Unlock()
	return nil
}

// Connections returns a copy of the cached connections.
func (c *Catalog) Connections() []model.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Connection(nil), c.connections...)
}

// Providers returns a copy of the cached providers.
func (c *Catalog) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.providers...)
}

// Models returns a copy of the cached models and the provider they belong to.
func (c *Catalog) Models() ([]string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.models...), c.modelsFor
}

// DedupeConnections keeps one entry per identity key. A later duplicate
// replaces the earlier value in the earlier position.
func DedupeConnections(in []model.Connection) []model.Connection {
	idx := make(map[string]int, len(in))
	out := make([]model.Connection, 0, len(in))
	for _, conn := range in {
		k := conn.Key()
		if i, ok := idx[k]; ok {
			out[i] = conn
			continue
		}
		idx[k] = len(out)
		out = append(out, conn)
	}
	return out
}

// DedupeStrings drops repeated values, keeping first-seen order.
func DedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func containsName(list []model.Connection, name string) bool {
	for _, c := range list {
		if c.Name == name {
			return true
		}
	}
	return false
}
