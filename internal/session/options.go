// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the user's current selections and the catalog of
// connections, providers and models those selections are drawn from.
package session

import (
	"slices"
	"strings"
	"sync"
)

// Readiness reasons, checked in this order.
const (
	ReasonNoProvider   = "Choose a provider and save its API key first."
	ReasonNoModel      = "Choose a model."
	ReasonNoConnection = "Choose a connection."
)

// DBTypes are the database kinds a new connection may declare.
var DBTypes = []string{"sqlite", "postgresql", "mysql"}

// Values is a point-in-time copy of Options.
type Values struct {
	Provider   string
	Model      string
	Connection string
	DBInfoName string

	APIKeyInput   string
	DBTypeInput   string
	ConnNameInput string
}

// Options is the user's current selection plus staged form input.
// Setting the provider clears the model; setting the connection also sets
// the info target. Both couplings apply under one lock.
type Options struct {
	mu sync.RWMutex
	v  Values
}

func (o *Options) update(fn func(v *Values)) {
	o.mu.Lock()
	fn(&o.v)
	o.mu.Unlock()
}

// SetProvider selects a provider and clears the model.
func (o *Options) SetProvider(p string) {
	o.update(func(v *Values) {
		v.Provider = p
		v.Model = ""
	})
}

func (o *Options) SetModel(m string) { o.update(func(v *Values) { v.Model = m }) }

// SetConnection selects the connection to query and to inspect.
func (o *Options) SetConnection(c string) {
	o.update(func(v *Values) {
		v.Connection = c
		v.DBInfoName = c
	})
}

// SetDBInfoName points connection info lookups elsewhere without changing
// the query target.
func (o *Options) SetDBInfoName(n string) { o.update(func(v *Values) { v.DBInfoName = n }) }

func (o *Options) SetAPIKeyInput(k string)   { o.update(func(v *Values) { v.APIKeyInput = k }) }
func (o *Options) SetDBTypeInput(t string)   { o.update(func(v *Values) { v.DBTypeInput = t }) }
func (o *Options) SetConnNameInput(n string) { o.update(func(v *Values) { v.ConnNameInput = n }) }

// FillConnection sets connection and info target only where they are empty.
func (o *Options) FillConnection(name string) {
	o.update(func(v *Values) {
		if v.Connection == "" {
			v.Connection = name
		}
		if v.DBInfoName == "" {
			v.DBInfoName = name
		}
	})
}

// Ready returns "" when a question may be submitted, else the first missing
// selection's reason.
func (o *Options) Ready() string { return o.Snapshot().Ready() }

// Ready is Options.Ready evaluated on this copy.
func (v Values) Ready() string {
	switch {
	case strings.TrimSpace(v.Provider) == "":
		return ReasonNoProvider
	case strings.TrimSpace(v.Model) == "":
		return ReasonNoModel
	case strings.TrimSpace(v.Connection) == "":
		return ReasonNoConnection
	}
	return ""
}

// Snapshot returns a copy of the current values.
func (o *Options) Snapshot() Values {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// ValidDBType reports whether t is one of DBTypes.
func ValidDBType(t string) bool { return slices.Contains(DBTypes, t) }
