// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillshub/skillshub-core/env"
	"github.com/skillshub/skillshub-core/skillerr"
)

// buildZip assembles an in-memory zip with the given entries. Entry names
// ending in "/" become directories.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			_, err := w.Create(name)
			require.NoError(t, err)
			continue
		}
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func serveZip(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func archiveFetcher(srv *httptest.Server, envReader env.Reader) *Fetcher {
	return NewFetcher(&fakeVCS{}, envReader).
		WithBaseURL(srv.URL).
		WithHTTPClient(srv.Client())
}

func TestFetchArchiveFlattensSingleTopLevelDir(t *testing.T) {
	t.Parallel()

	payload := buildZip(t, map[string]string{
		"skills-main/":                 "",
		"skills-main/SKILL.md":         "---\nname: demo\n---\n",
		"skills-main/scripts/run.sh":   "#!/bin/sh\n",
		"skills-main/references/a.txt": "ref",
	})
	srv := serveZip(t, payload)

	dest := t.TempDir()
	tree, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, dest,
		Options{Method: MethodArchive})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "acme__skills__main"), tree.Root)
	assert.Equal(t, MethodArchive, tree.Method)
	assert.Equal(t, OriginRemote, tree.Origin)
	assert.Empty(t, tree.Commit)

	// The wrapper directory is gone; content sits directly in the target.
	data, err := os.ReadFile(filepath.Join(tree.Root, "SKILL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: demo")
	assert.FileExists(t, filepath.Join(tree.Root, "scripts", "run.sh"))

	// No staging leftovers.
	_, statErr := os.Stat(tree.Root + ".extract")
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchArchiveKeepsMultipleTopLevelEntries(t *testing.T) {
	t.Parallel()

	payload := buildZip(t, map[string]string{
		"SKILL.md":   "---\nname: flat\n---\n",
		"README.md":  "readme",
		"extra/x.md": "x",
	})
	srv := serveZip(t, payload)

	tree, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tree.Root, "SKILL.md"))
	assert.FileExists(t, filepath.Join(tree.Root, "README.md"))
	assert.FileExists(t, filepath.Join(tree.Root, "extra", "x.md"))
}

func TestFetchArchiveRejectsTraversalEntry(t *testing.T) {
	t.Parallel()

	payload := buildZip(t, map[string]string{
		"skills-main/SKILL.md": "ok",
		"../evil.txt":          "escape",
	})
	srv := serveZip(t, payload)

	dest := t.TempDir()
	_, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, dest,
		Options{Method: MethodArchive})
	require.Error(t, err)
	assert.Equal(t, skillerr.KindPathEscape, skillerr.KindOf(err))

	// Nothing escaped and no partial target remains.
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.txt"))
	_, statErr := os.Stat(filepath.Join(dest, "acme__skills__main"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchArchiveRejectsAbsoluteEntry(t *testing.T) {
	t.Parallel()

	payload := buildZip(t, map[string]string{
		"/etc/passwd": "root",
	})
	srv := serveZip(t, payload)

	_, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.Error(t, err)
	assert.Equal(t, skillerr.KindPathEscape, skillerr.KindOf(err))
}

func TestFetchArchiveRequiresRef(t *testing.T) {
	t.Parallel()

	srv := serveZip(t, buildZip(t, map[string]string{"SKILL.md": "x"}))

	_, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.Error(t, err)
	assert.Equal(t, skillerr.KindInvalidInput, skillerr.KindOf(err))
}

func TestFetchArchiveHTTPErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "gone"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.Error(t, err)
	assert.Equal(t, skillerr.KindTransportFailure, skillerr.KindOf(err))
}

func TestFetchArchiveSendsAuthToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	payload := buildZip(t, map[string]string{"SKILL.md": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	_, err := archiveFetcher(srv, env.MapReader{env.TokenVar: "tok-123"}).Fetch(
		context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestFetchArchiveCorruptPayload(t *testing.T) {
	t.Parallel()

	srv := serveZip(t, []byte("this is not a zip"))

	_, err := archiveFetcher(srv, nil).Fetch(context.Background(),
		Descriptor{Owner: "acme", Repo: "skills", Ref: "main"}, t.TempDir(),
		Options{Method: MethodArchive})
	require.Error(t, err)
	assert.Equal(t, skillerr.KindTransportFailure, skillerr.KindOf(err))
}
