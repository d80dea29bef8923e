// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

The fetcher reads its hosting-service auth token through this package, and the
logger reads its output-format toggle the same way.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("GITHUB_TOKEN")

# Testing

The Reader interface allows injecting a fake in tests to avoid relying on
real environment variables:

	reader := env.MapReader{"GITHUB_TOKEN": "test-token"}
	result := myFunc(reader)

# Design

This package follows the interface-based dependency injection pattern used
throughout skillshub-core. Production code accepts an env.Reader, while tests
substitute a MapReader.
*/
package env
