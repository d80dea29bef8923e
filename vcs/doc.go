// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package vcs provides version-control operations for the fetcher and the
pinned-reference verifier.

The Client interface is the capability boundary: everything the pipeline
needs from a version-control system is expressed as clone, fetch-ref,
checkout, pull, and the two resolution queries (HEAD commit and exact tag).
GitClient implements it by shelling out to an installed git binary; an
embedded implementation can be substituted without touching the callers.

# Pinned-Reference Verification

VerifyPinnedRef resolves a working tree's current commit and exact tag and
compares them against caller-supplied pinned values:

	res, err := vcs.VerifyPinnedRef(ctx, client, dir, vcs.Expectation{
	    Commit: "deadbeef...",
	})
	if !res.OK {
	    // res.Reason names the first mismatch
	}

An unmet expectation is reported in the result, not as an error; callers
decide whether to treat it as fatal. A checkout with no exact tag never
satisfies a tag expectation.
*/
package vcs
