// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package vcs

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks Client

import "context"

// CloneOptions configures a clone operation.
type CloneOptions struct {
	// Ref is the branch or tag to clone. Empty means the remote default branch.
	Ref string

	// Shallow requests a blobless, tagless clone. This is the default for
	// acquisition; full history is never needed to register a skill.
	Shallow bool
}

// Client is the version-control capability used by the fetcher and the
// pinned-reference verifier.
type Client interface {
	// Clone materializes the repository at url into dir.
	Clone(ctx context.Context, url, dir string, opts CloneOptions) error

	// FetchRef fetches a single ref (branch, tag, or commit) at depth 1.
	FetchRef(ctx context.Context, dir, ref string) error

	// Checkout checks out ref. With detach, HEAD is detached at the ref.
	Checkout(ctx context.Context, dir, ref string, detach bool) error

	// Pull fast-forwards the current branch from origin.
	Pull(ctx context.Context, dir, ref string) error

	// ResolveHead returns the full commit identifier of HEAD.
	ResolveHead(ctx context.Context, dir string) (string, error)

	// ResolveExactTag returns the tag pointing exactly at HEAD, or an empty
	// string when HEAD carries no exact tag match.
	ResolveExactTag(ctx context.Context, dir string) (string, error)
}
