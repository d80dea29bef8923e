// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/skillshub/skillshub-core/env"
	validhttp "github.com/skillshub/skillshub-core/validation/http"
)

// GitClient implements Client by invoking an installed git binary.
// An auth token read from the environment is attached to HTTP transports
// as a bearer header, never embedded in URLs.
type GitClient struct {
	envReader env.Reader
}

// Compile-time assertion that GitClient implements Client.
var _ Client = (*GitClient)(nil)

// NewGitClient creates a git-CLI client reading auth configuration from envReader.
func NewGitClient(envReader env.Reader) *GitClient {
	if envReader == nil {
		envReader = &env.OSReader{}
	}
	return &GitClient{envReader: envReader}
}

// Clone materializes the repository at url into dir.
func (g *GitClient) Clone(ctx context.Context, url, dir string, opts CloneOptions) error {
	args := []string{"clone"}
	if opts.Shallow {
		args = append(args, "--filter=blob:none", "--no-tags")
	}
	if opts.Ref != "" {
		args = append(args, "--branch", opts.Ref)
	}
	args = append(args, url, dir)
	_, err := g.run(ctx, "", true, args...)
	return err
}

// FetchRef fetches a single ref at depth 1.
func (g *GitClient) FetchRef(ctx context.Context, dir, ref string) error {
	_, err := g.run(ctx, dir, true, "fetch", "--depth", "1", "origin", ref)
	return err
}

// Checkout checks out ref, optionally detaching HEAD.
func (g *GitClient) Checkout(ctx context.Context, dir, ref string, detach bool) error {
	args := []string{"checkout"}
	if detach {
		args = append(args, "--detach")
	}
	args = append(args, ref)
	_, err := g.run(ctx, dir, false, args...)
	return err
}

// Pull fast-forwards the current branch from origin.
func (g *GitClient) Pull(ctx context.Context, dir, ref string) error {
	args := []string{"pull", "--ff-only", "origin"}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := g.run(ctx, dir, true, args...)
	return err
}

// ResolveHead returns the full commit identifier of HEAD.
func (g *GitClient) ResolveHead(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, false, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ResolveExactTag returns the tag pointing exactly at HEAD, or "" when none.
func (g *GitClient) ResolveExactTag(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, false, "describe", "--tags", "--exact-match")
	if err != nil {
		// describe exits non-zero when HEAD has no exact tag; not an error
		// for the caller.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run invokes git with the given args in dir, optionally attaching an auth
// header for remote operations. Combined output is captured so failures
// carry git's own diagnostics.
func (g *GitClient) run(ctx context.Context, dir string, remote bool, args ...string) (string, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if remote {
		if token := strings.TrimSpace(g.envReader.Getenv(env.TokenVar)); token != "" {
			value := "Authorization: Bearer " + token
			if err := validhttp.ValidateHeaderValue(value); err != nil {
				return "", fmt.Errorf("auth token from %s: %w", env.TokenVar, err)
			}
			cmdArgs = append(cmdArgs, "-c", "http.extraheader="+value)
		}
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s failed: %s: %w", args[0], msg, err)
	}
	return string(out), nil
}
