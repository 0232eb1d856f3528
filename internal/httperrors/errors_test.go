// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"dbchat/cli/internal/backend"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ClassUnknown},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ClassTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.example"}, ClassDNS},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, ClassRefused},
		{"tls", errors.New("x509: certificate signed by unknown authority"), ClassTLS},
		{"401", &backend.APIError{StatusCode: 401, Detail: "Not authenticated"}, ClassUnauthorized},
		{"400", &backend.APIError{StatusCode: 400, Detail: "Page 9 out of range"}, ClassRejected},
		{"500", &backend.APIError{StatusCode: 500}, ClassServer},
		{"other", errors.New("unexpected EOF"), ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "localhost:8000", ExtractHostFromURL("http://localhost:8000"))
	assert.Equal(t, "server", ExtractHostFromURL("::"))
}
