// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillshub/skillshub-core/env"
)

// gitRun runs a raw git command in dir for test fixture setup.
func gitRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	full := append([]string{
		"-c", "user.name=test",
		"-c", "user.email=test@example.com",
		"-c", "init.defaultBranch=main",
	}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// initTestRepo creates a repository with one commit and returns its path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitRun(t, dir, "init")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("---\nname: demo\n---\n"), 0o644))
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-m", "initial")
	return dir
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

var hexCommit = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestGitClient_ResolveHead(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := initTestRepo(t)
	client := NewGitClient(env.MapReader{})

	head, err := client.ResolveHead(context.Background(), dir)
	require.NoError(t, err)
	assert.Regexp(t, hexCommit, head)
}

func TestGitClient_ResolveHead_NotARepo(t *testing.T) {
	t.Parallel()
	requireGit(t)

	client := NewGitClient(env.MapReader{})
	_, err := client.ResolveHead(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestGitClient_ResolveExactTag(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := initTestRepo(t)
	client := NewGitClient(env.MapReader{})

	// No tag yet: empty string, no error.
	tag, err := client.ResolveExactTag(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, tag)

	gitRun(t, dir, "tag", "v1.0.0")
	tag, err = client.ResolveExactTag(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", tag)

	// A new commit moves HEAD off the tag.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("x"), 0o644))
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-m", "second")
	tag, err = client.ResolveExactTag(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, tag, "ancestor tag is not an exact match")
}

func TestGitClient_CloneAndCheckout(t *testing.T) {
	t.Parallel()
	requireGit(t)

	src := initTestRepo(t)
	client := NewGitClient(env.MapReader{})
	ctx := context.Background()

	wantHead, err := client.ResolveHead(ctx, src)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, client.Clone(ctx, src, dst, CloneOptions{}))

	gotHead, err := client.ResolveHead(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, wantHead, gotHead)

	// Detached checkout of an explicit commit pins HEAD.
	require.NoError(t, client.Checkout(ctx, dst, wantHead, true))
	gotHead, err = client.ResolveHead(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, wantHead, gotHead)
}

func TestVerifyPinnedRef_GitIntegration(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := initTestRepo(t)
	gitRun(t, dir, "tag", "v0.1.0")
	client := NewGitClient(env.MapReader{})
	ctx := context.Background()

	head, err := client.ResolveHead(ctx, dir)
	require.NoError(t, err)

	res, err := VerifyPinnedRef(ctx, client, dir, Expectation{Commit: head, Tag: "v0.1.0"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, head, res.HeadCommit)
	assert.Equal(t, "v0.1.0", res.ExactTag)
}
