// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error reporting for failed service calls.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"dbchat/cli/internal/backend"
	"dbchat/cli/internal/logging"
)

// Class is the broad cause of a failed call.
type Class int

const (
	ClassUnknown Class = iota
	ClassTimeout
	ClassDNS
	ClassRefused
	ClassTLS
	ClassUnauthorized
	ClassRejected
	ClassServer
)

// Classify inspects err and returns its class.
func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return ClassUnauthorized
		case apiErr.StatusCode >= 500:
			return ClassServer
		default:
			return ClassRejected
		}
	}

	switch {
	case isTimeoutError(err):
		return ClassTimeout
	case isDNSError(err):
		return ClassDNS
	case isConnectionRefusedError(err):
		return ClassRefused
	case isSSLError(err):
		return ClassTLS
	}
	return ClassUnknown
}

// FormatNetworkError prints guidance for err and returns it wrapped for the
// command's exit status. context reads like "asking a question"; host names
// the service for the messages.
func FormatNetworkError(err error, context, host string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(err, context, host)
	return fmt.Errorf("%s: %w", context, err)
}

func displayErrorMessage(err error, context, host string) {
	switch Classify(err) {
	case ClassTimeout:
		showTimeoutError(context)
	case ClassDNS:
		showDNSError(context, host)
	case ClassRefused:
		showConnectionRefusedError(context, host)
	case ClassTLS:
		showSSLError(context)
	case ClassUnauthorized:
		showUnauthorizedError(context, backend.DetailOf(err))
	case ClassRejected:
		showRejectedError(context, err)
	case ClassServer:
		showServerError(context, err)
	default:
		showGenericError(context, host, err.Error())
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

func showTimeoutError(context string) {
	pterm.Printf("⏱️  Timed out while %s\n", context)
	pterm.Println()
	pterm.Println("Generating and running SQL can take a while. This could mean:")
	pterm.Println("  • The model is slow to respond")
	pterm.Println("  • The query scans a large table")
	pterm.Println("  • The service is under heavy load")
	pterm.Println()
	pterm.Println("Raise timeout_seconds in the config file or try again.")
	pterm.Println()
}

func showDNSError(context, host string) {
	pterm.Printf("🌐 Cannot resolve server address while %s\n", context)
	pterm.Println()
	pterm.Printf("Unable to look up %s. Please check:\n", host)
	pterm.Println("  • api_url in the config file or DBCHAT_API_URL")
	pterm.Println("  • Your network and DNS settings")
	pterm.Println()
}

func showConnectionRefusedError(context, host string) {
	pterm.Printf("🚫 Connection refused while %s\n", context)
	pterm.Println()
	pterm.Printf("Nothing is accepting connections at %s. This could mean:\n", host)
	pterm.Println("  • The service is not running")
	pterm.Println("  • Wrong port in api_url")
	pterm.Println("  • A firewall is blocking the connection")
	pterm.Println()
}

func showSSLError(context string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", context)
	pterm.Println()
	pterm.Println("Cannot establish an HTTPS connection. This could mean:")
	pterm.Println("  • The certificate is invalid or self-signed")
	pterm.Println("  • A proxy is interfering with HTTPS")
	pterm.Println("  • The system clock is incorrect")
	pterm.Println()
}

func showUnauthorizedError(context, detail string) {
	pterm.Printf("🔑 Not authorized while %s\n", context)
	if detail != "" {
		pterm.Printf("   %s\n", detail)
	}
	pterm.Println("   Please run: dbchat login")
	pterm.Println()
}

func showRejectedError(context string, err error) {
	pterm.Printf("❌ The service rejected the request while %s\n", context)
	pterm.Printf("   %s\n", logging.Mask(err.Error()))
	pterm.Println()
}

func showServerError(context string, err error) {
	pterm.Printf("⚠️  Server error while %s\n", context)
	if d := backend.DetailOf(err); d != "" {
		pterm.Printf("   %s\n", logging.Mask(d))
	}
	pterm.Println()
	pterm.Println("The service failed to handle the request. Check its logs, or try")
	pterm.Println("again with a different model or a simpler question.")
	pterm.Println()
}

func showGenericError(context, host, errDetails string) {
	pterm.Printf("❌ Cannot reach the service at %s while %s\n", host, context)
	pterm.Println()

	if errDetails != "" {
		shortErr := logging.Mask(errDetails)
		if len(shortErr) > 100 {
			shortErr = shortErr[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", shortErr)
		pterm.Println()
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
