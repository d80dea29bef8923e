// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package fetch materializes remote skill repositories into local working
directories, idempotently.

A source is described by owner, repo, and an optional ref; the target
directory is always <destDir>/<owner>__<repo>__<sanitizedRef> and is
validated for containment before anything is written. Two acquisition
methods are supported:

  - git: a shallow, blobless, tagless clone. When the ref is a full
    40-character commit identifier, an additional depth-1 fetch and detached
    checkout pin HEAD to that exact commit. An existing checkout is updated
    in place (fetch, checkout, pull); when the fast path fails, the
    directory is removed and re-cloned so a partially-updated tree is never
    left behind.

  - archive: the hosting service's archive-by-ref zip is downloaded to a
    temporary file and extracted with per-entry containment checks. When
    extraction yields a single top-level directory, it is flattened away so
    the target directory holds the skill tree directly.

Nothing in a fetched tree is ever executed; this package only moves bytes.
*/
package fetch
