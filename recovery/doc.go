// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package recovery converts panics into errors.
//
// Registration processes many skill directories in one pass, and parsed
// content is untrusted; a panic while handling one directory must not take
// down the whole run. Wrapping each per-skill step in Safely turns a panic
// into an ordinary error that participates in the usual partial-failure
// handling.
//
//	err := recovery.Safely("parse "+dir, func() error {
//	    return parseAndRegister(dir)
//	})
package recovery
