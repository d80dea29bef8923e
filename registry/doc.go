// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry builds and stores skill registration records.
//
// A Record is the canonical, validated unit of registration: identity,
// entry-point metadata, and provenance derived from a parsed manifest plus
// its source directory. Records are immutable once registered;
// re-registering an id replaces the prior record wholesale.
package registry
