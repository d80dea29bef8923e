// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package vcs

import (
	"context"
	"fmt"
)

// Expectation holds the pinned values a working tree must match.
// Zero-value fields are not checked.
type Expectation struct {
	// Commit is the expected full 40-character commit identifier.
	Commit string

	// Tag is the expected exact tag on the checked-out commit.
	Tag string
}

// PinnedRefResult reports the outcome of a pinned-reference verification.
// OK is false when any supplied expectation was unmet; the resolved commit
// and tag are always populated for audit logging.
type PinnedRefResult struct {
	OK         bool   `json:"ok"`
	HeadCommit string `json:"headCommit"`
	ExactTag   string `json:"exactTag,omitempty"`
	CommitOK   bool   `json:"pinnedCommitOk"`
	TagOK      bool   `json:"pinnedTagOk"`
	Reason     string `json:"reason,omitempty"`
}

// VerifyPinnedRef resolves the working tree's current commit and exact tag
// and compares them against exp. Comparison is exact and case-sensitive.
// A mismatch is reported in the result, not as an error; the returned error
// is reserved for resolution failures (no version-control metadata, no
// binary, unreadable tree).
func VerifyPinnedRef(ctx context.Context, client Client, dir string, exp Expectation) (PinnedRefResult, error) {
	head, err := client.ResolveHead(ctx, dir)
	if err != nil {
		return PinnedRefResult{}, fmt.Errorf("resolving HEAD in %s: %w", dir, err)
	}
	tag, err := client.ResolveExactTag(ctx, dir)
	if err != nil {
		return PinnedRefResult{}, fmt.Errorf("resolving exact tag in %s: %w", dir, err)
	}

	res := PinnedRefResult{
		OK:         true,
		HeadCommit: head,
		ExactTag:   tag,
		CommitOK:   true,
		TagOK:      true,
	}

	if exp.Commit != "" && head != exp.Commit {
		res.OK = false
		res.CommitOK = false
		res.Reason = fmt.Sprintf("HEAD commit mismatch: expected %s, got %s", exp.Commit, head)
	}
	if exp.Tag != "" && tag != exp.Tag {
		res.OK = false
		res.TagOK = false
		got := tag
		if got == "" {
			got = "(none)"
		}
		res.Reason = fmt.Sprintf("tag mismatch: expected %s, got %s", exp.Tag, got)
	}

	return res, nil
}
