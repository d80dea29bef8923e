// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package loader runs the full acquisition pipeline for one source.
//
// Load fetches a working tree, attests to its integrity (content hash and,
// for pinned remote sources, reference verification), discovers every
// manifest-bearing directory, and registers each skill it can. Failures are
// scoped: one bad skill directory is skipped and reported, its siblings
// register normally. Only failures that poison the whole source, like an
// unreachable remote or a tree with no manifests at all, abort the load.
//
// Integrity mismatches are reported as structured results rather than
// errors by default, so callers decide whether to abort or warn; the
// Strict option promotes them to errors.
package loader
