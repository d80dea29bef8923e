// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP headers and repository URLs.
package http

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpguts"
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	// Length limit to prevent DoS
	if len(name) > 256 {
		return fmt.Errorf("header name exceeds maximum length of 256 bytes")
	}

	// Use httpguts validation (same as Go's HTTP/2 implementation)
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid HTTP header name: contains invalid characters")
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters. The fetcher calls this on every
// header it derives from environment-supplied tokens before attaching it to a request.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	// Length limit to prevent DoS (common HTTP server limit)
	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	// Use httpguts validation
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateRepositoryURL validates a clone or archive URL, or a repository URL
// declared in a skill manifest.
//
// A valid repository URL must:
//   - Use the http or https scheme
//   - Include a host
//   - Not embed credentials (user:pass@host)
//   - Not contain fragments
func ValidateRepositoryURL(repoURL string) error {
	if repoURL == "" {
		return fmt.Errorf("repository URL cannot be empty")
	}

	parsed, err := url.Parse(repoURL)
	if err != nil {
		return fmt.Errorf("invalid repository URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("repository URL must use http or https scheme: %s", repoURL)
	}

	if parsed.Host == "" {
		return fmt.Errorf("repository URL must include a host: %s", repoURL)
	}

	if parsed.User != nil {
		return fmt.Errorf("repository URL must not embed credentials: %s", repoURL)
	}

	if parsed.Fragment != "" {
		return fmt.Errorf("repository URL must not contain fragments (#): %s", repoURL)
	}

	return nil
}
