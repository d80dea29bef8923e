// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides security-focused validation functions for the HTTP
requests the fetcher issues against hosting services.

This package helps prevent HTTP header injection (CRLF injection) and
malformed URL attacks by validating input against RFC specifications before
it reaches the transport.

# Header Validation

Validate HTTP header names and values per RFC 7230, for example before
attaching an Authorization header built from an environment-supplied token:

	if err := http.ValidateHeaderValue("Bearer " + token); err != nil {
		// Handle invalid header value
	}

The validators check for:
  - CRLF injection attempts (\r\n sequences)
  - Control characters
  - RFC 7230 token compliance for header names
  - Length limits to prevent DoS (256 bytes for names, 8192 for values)

# Repository URL Validation

Validate clone and archive URLs after construction, and repository URLs
declared in skill manifests:

	if err := http.ValidateRepositoryURL("https://github.com/acme/demo.git"); err != nil {
		// Handle invalid URL
	}

Repository URLs must use the http or https scheme, include a host, and must
not contain fragment identifiers or embedded credentials.
*/
package http
