// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package treehash computes a deterministic content hash over a directory tree.

The digest covers relative file paths, file sizes, and per-file content
hashes, combined in a fixed sort order. It is a content+structure
fingerprint, not merely a content checksum: renaming, adding, or removing a
file always changes the digest even when no bytes changed elsewhere.

# Compatibility Contract

Two implementations hashing the same tree with the same exclusion set must
produce an identical digest. For each file, sorted by slash-separated
root-relative path, the running SHA-256 absorbs:

	<relative path> NUL <decimal byte length> NUL <hex sha256 of content> LF

The final digest is rendered in algorithm-prefixed form ("sha256:<hex>")
using the OCI digest format.

# Usage

	d, err := treehash.Compute(dir, treehash.DefaultExcludes)
	res, err := treehash.Verify(dir, "sha256:abc...")
	if !res.OK {
	    // res.Expected and res.Actual carry both digests
	}
*/
package treehash
