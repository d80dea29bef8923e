// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/skillshub/skillshub-core/env"
	"github.com/skillshub/skillshub-core/skillerr"
	validname "github.com/skillshub/skillshub-core/validation/name"
	validpath "github.com/skillshub/skillshub-core/validation/path"
	"github.com/skillshub/skillshub-core/vcs"
)

// Method selects an acquisition mechanism.
type Method string

// Supported acquisition methods.
const (
	MethodGit     Method = "git"
	MethodArchive Method = "archive"
)

// Working tree origins.
const (
	OriginRemote = "remote"
	OriginLocal  = "local"
)

// DefaultDestDir is the fixed relative destination used when the caller
// supplies none.
const DefaultDestDir = "external_skills"

// DefaultBaseURL is the hosting service base used to construct clone and
// archive URLs.
const DefaultBaseURL = "https://github.com"

// XDGDestDir returns the destination directory under the XDG data home,
// for service deployments that should not write relative to the working
// directory.
func XDGDestDir() string {
	return filepath.Join(xdg.DataHome, "skillshub", DefaultDestDir)
}

// Descriptor identifies a source to materialize: either a remote
// owner/repo/ref triple or a pre-existing local directory.
type Descriptor struct {
	Owner string `json:"owner,omitempty"`
	Repo  string `json:"repo,omitempty"`
	Ref   string `json:"ref,omitempty"`

	// LocalPath bypasses remote acquisition entirely.
	LocalPath string `json:"localPath,omitempty"`
}

// Options configures a fetch.
type Options struct {
	// Method is the acquisition mechanism. Defaults to MethodGit.
	Method Method

	// Clean removes an existing target directory before fetching.
	Clean bool
}

// WorkingTree describes a materialized source directory.
type WorkingTree struct {
	Root   string `json:"root"`
	Origin string `json:"origin"`
	Commit string `json:"commit,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Method Method `json:"method,omitempty"`
}

// Fetcher materializes sources into working trees. It is the only component
// that writes into a working tree; everything downstream reads only.
type Fetcher struct {
	vcs        vcs.Client
	httpClient *http.Client
	envReader  env.Reader
	baseURL    string
}

// NewFetcher creates a fetcher using the given version-control client.
// A nil envReader falls back to the process environment.
func NewFetcher(client vcs.Client, envReader env.Reader) *Fetcher {
	if envReader == nil {
		envReader = &env.OSReader{}
	}
	return &Fetcher{
		vcs:        client,
		httpClient: http.DefaultClient,
		envReader:  envReader,
		baseURL:    DefaultBaseURL,
	}
}

// WithBaseURL overrides the hosting service base URL. Mainly for tests and
// self-hosted forges.
func (f *Fetcher) WithBaseURL(baseURL string) *Fetcher {
	f.baseURL = strings.TrimRight(baseURL, "/")
	return f
}

// WithHTTPClient overrides the HTTP client used for archive downloads.
func (f *Fetcher) WithHTTPClient(client *http.Client) *Fetcher {
	f.httpClient = client
	return f
}

// Fetch materializes the described source under destDir and returns the
// resulting working tree. An empty destDir means DefaultDestDir.
func (f *Fetcher) Fetch(ctx context.Context, desc Descriptor, destDir string, opts Options) (*WorkingTree, error) {
	if desc.LocalPath != "" {
		return localTree(desc.LocalPath)
	}

	if desc.Owner == "" || desc.Repo == "" {
		return nil, skillerr.New(skillerr.KindInvalidInput, "owner and repo are required")
	}
	if err := validname.ValidateOwner(desc.Owner); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "invalid owner")
	}
	if err := validname.ValidateRepo(desc.Repo); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "invalid repo")
	}
	if err := validname.ValidateRef(desc.Ref); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "invalid ref")
	}

	if destDir == "" {
		destDir = DefaultDestDir
	}
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "resolving destination %s", destDir)
	}
	if err := os.MkdirAll(absDest, 0o755); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInternal, err, "creating destination %s", absDest)
	}

	target := filepath.Join(absDest, TargetName(desc.Owner, desc.Repo, desc.Ref))
	if err := validpath.EnsureContained(absDest, target); err != nil {
		return nil, skillerr.Wrap(skillerr.KindPathEscape, err, "target directory")
	}

	if opts.Clean {
		if err := os.RemoveAll(target); err != nil {
			return nil, skillerr.Wrap(skillerr.KindInternal, err, "cleaning target %s", target)
		}
	}

	method := opts.Method
	if method == "" {
		method = MethodGit
	}

	switch method {
	case MethodGit:
		return f.fetchGit(ctx, desc, target)
	case MethodArchive:
		return f.fetchArchive(ctx, desc, target)
	default:
		return nil, skillerr.New(skillerr.KindInvalidInput, "unknown acquisition method: %s", method)
	}
}

// TargetName derives the target subdirectory name for a descriptor:
// <owner>__<repo>__<sanitizedRef>. The double-underscore separator is part
// of the id-synthesis contract and must not change.
func TargetName(owner, repo, ref string) string {
	return fmt.Sprintf("%s__%s__%s", owner, repo, validpath.SanitizeRef(ref))
}

// localTree wraps a pre-existing directory as a working tree.
func localTree(dir string) (*WorkingTree, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "resolving local path %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "local path %s", abs)
	}
	if !info.IsDir() {
		return nil, skillerr.New(skillerr.KindInvalidInput, "local path is not a directory: %s", abs)
	}
	return &WorkingTree{Root: abs, Origin: OriginLocal}, nil
}
