// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"os"
	"strings"

	"github.com/skillshub/skillshub-core/logger"
	"github.com/skillshub/skillshub-core/skillerr"
	validhttp "github.com/skillshub/skillshub-core/validation/http"
	validname "github.com/skillshub/skillshub-core/validation/name"
	"github.com/skillshub/skillshub-core/vcs"
)

// fetchGit materializes a source with a shallow clone, updating an existing
// checkout in place when possible.
func (f *Fetcher) fetchGit(ctx context.Context, desc Descriptor, target string) (*WorkingTree, error) {
	cloneURL := f.baseURL + "/" + desc.Owner + "/" + desc.Repo + ".git"
	// Non-HTTP bases (local transports in tests) skip URL validation.
	if strings.HasPrefix(cloneURL, "http") {
		if err := validhttp.ValidateRepositoryURL(cloneURL); err != nil {
			return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "clone URL")
		}
	}

	if _, err := os.Stat(target); err == nil {
		updateErr := f.updateInPlace(ctx, desc, target)
		if updateErr == nil {
			return f.remoteTree(ctx, desc, target)
		}
		// Fast path failed: remove and re-clone so the caller never sees a
		// partially-updated tree.
		logger.Warnw("in-place update failed, re-cloning",
			"target", target, "error", updateErr)
		if err := os.RemoveAll(target); err != nil {
			return nil, skillerr.Wrap(skillerr.KindInternal, err, "removing stale checkout %s", target)
		}
	}

	if err := f.cloneFresh(ctx, desc, cloneURL, target); err != nil {
		// A failed clone must not leave a partial directory behind.
		_ = os.RemoveAll(target)
		return nil, err
	}

	return f.remoteTree(ctx, desc, target)
}

// cloneFresh clones into target. Commit refs get a branch-less clone
// followed by a depth-1 fetch and detached checkout, so HEAD ends up pinned
// even though the clone itself used branch-level shallow semantics.
func (f *Fetcher) cloneFresh(ctx context.Context, desc Descriptor, cloneURL, target string) error {
	isCommit := validname.IsCommitSHA(desc.Ref)

	opts := vcs.CloneOptions{Shallow: true}
	if desc.Ref != "" && !isCommit {
		opts.Ref = desc.Ref
	}
	if err := f.vcs.Clone(ctx, cloneURL, target, opts); err != nil {
		return skillerr.Wrap(skillerr.KindTransportFailure, err, "cloning %s/%s", desc.Owner, desc.Repo)
	}

	if isCommit {
		if err := f.vcs.FetchRef(ctx, target, desc.Ref); err != nil {
			return skillerr.Wrap(skillerr.KindTransportFailure, err, "fetching commit %s", desc.Ref)
		}
		if err := f.vcs.Checkout(ctx, target, desc.Ref, true); err != nil {
			return skillerr.Wrap(skillerr.KindTransportFailure, err, "checking out commit %s", desc.Ref)
		}
	}
	return nil
}

// updateInPlace refreshes an existing checkout: fetch the requested ref,
// check it out, and fast-forward when it is a branch. Any failure aborts
// the fast path; the caller falls back to a full re-clone.
func (f *Fetcher) updateInPlace(ctx context.Context, desc Descriptor, target string) error {
	if desc.Ref == "" {
		return f.vcs.Pull(ctx, target, "")
	}

	if err := f.vcs.FetchRef(ctx, target, desc.Ref); err != nil {
		return err
	}
	isCommit := validname.IsCommitSHA(desc.Ref)
	if err := f.vcs.Checkout(ctx, target, desc.Ref, isCommit); err != nil {
		return err
	}
	if !isCommit {
		return f.vcs.Pull(ctx, target, desc.Ref)
	}
	return nil
}

// remoteTree builds the WorkingTree result, resolving HEAD for audit use.
func (f *Fetcher) remoteTree(ctx context.Context, desc Descriptor, target string) (*WorkingTree, error) {
	commit, err := f.vcs.ResolveHead(ctx, target)
	if err != nil {
		logger.Warnw("could not resolve HEAD of fresh checkout", "target", target, "error", err)
		commit = ""
	}
	return &WorkingTree{
		Root:   target,
		Origin: OriginRemote,
		Commit: commit,
		Ref:    desc.Ref,
		Method: MethodGit,
	}, nil
}
