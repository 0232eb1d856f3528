// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"fmt"
	"net/url"
	"strings"

	"dbchat/cli/internal/config"
)

// FromConfig builds the manifest from configuration, keeping the default
// path for every endpoint the config leaves empty.
func FromConfig(c config.Config) (*Manifest, error) {
	base, err := normalizeBaseURL(c.APIURL)
	if err != nil {
		return nil, err
	}
	ep := DefaultEndpoints()
	o := c.Endpoints
	override(&ep.Register, o.Register)
	override(&ep.Token, o.Token)
	override(&ep.GenerateKey, o.GenerateKey)
	override(&ep.ListConnections, o.ListConnections)
	override(&ep.NewConnection, o.NewConnection)
	override(&ep.DBInfo, o.DBInfo)
	override(&ep.Providers, o.Providers)
	override(&ep.Models, o.Models)
	override(&ep.Answer, o.Answer)
	override(&ep.SaveQuery, o.SaveQuery)
	override(&ep.ListSavedQueries, o.ListSavedQueries)
	override(&ep.DeleteQuery, o.DeleteQuery)
	override(&ep.APIKeys, o.APIKeys)
	return &Manifest{BaseURL: base, HTTP: ep}, nil
}

func override(dst *string, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if !strings.HasPrefix(v, "/") {
		v = "/" + v
	}
	*dst = v
}

// normalizeBaseURL validates the service URL and strips any trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("invalid api_url: empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid api_url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api_url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid api_url %q: missing host", raw)
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/"), nil
}
