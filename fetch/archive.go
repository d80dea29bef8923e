// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/skillshub/skillshub-core/env"
	"github.com/skillshub/skillshub-core/logger"
	"github.com/skillshub/skillshub-core/skillerr"
	validhttp "github.com/skillshub/skillshub-core/validation/http"
	validpath "github.com/skillshub/skillshub-core/validation/path"
)

// maxArchiveFileSize caps a single extracted file to protect against
// decompression bombs.
const maxArchiveFileSize = 100 * 1024 * 1024 // 100MB

// fetchArchive downloads the hosting service's archive-by-ref zip and
// extracts it into target. Unlike the git method it leaves no repository
// metadata behind, so the result cannot be ref-verified afterwards.
func (f *Fetcher) fetchArchive(ctx context.Context, desc Descriptor, target string) (*WorkingTree, error) {
	if desc.Ref == "" {
		return nil, skillerr.New(skillerr.KindInvalidInput, "archive fetch requires an explicit ref")
	}

	archiveURL := fmt.Sprintf("%s/%s/%s/archive/%s.zip",
		f.baseURL, desc.Owner, desc.Repo, url.PathEscape(desc.Ref))
	if err := validhttp.ValidateRepositoryURL(archiveURL); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "archive URL")
	}

	tmpFile, err := f.downloadArchive(ctx, archiveURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmpFile); err != nil && !os.IsNotExist(err) {
			logger.Warnw("could not remove downloaded archive", "path", tmpFile, "error", err)
		}
	}()

	if err := os.RemoveAll(target); err != nil {
		return nil, skillerr.Wrap(skillerr.KindInternal, err, "clearing target %s", target)
	}
	if err := extractArchive(tmpFile, target); err != nil {
		_ = os.RemoveAll(target)
		return nil, err
	}

	return &WorkingTree{
		Root:   target,
		Origin: OriginRemote,
		Ref:    desc.Ref,
		Method: MethodArchive,
	}, nil
}

// downloadArchive streams the archive to a temporary file and returns its
// path. The caller removes the file when done.
func (f *Fetcher) downloadArchive(ctx context.Context, archiveURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", skillerr.Wrap(skillerr.KindInvalidInput, err, "building archive request")
	}
	if token := f.envReader.Getenv(env.TokenVar); token != "" {
		if err := validhttp.ValidateHeaderValue(token); err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			logger.Warnw("ignoring malformed auth token from environment", "error", err)
		}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", skillerr.Wrap(skillerr.KindTransportFailure, err, "downloading %s", archiveURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", skillerr.New(skillerr.KindTransportFailure,
			"archive download failed: %s returned %s", archiveURL, resp.Status)
	}

	tmp, err := os.CreateTemp("", "skillshub-archive-*.zip")
	if err != nil {
		return "", skillerr.Wrap(skillerr.KindInternal, err, "creating temporary archive file")
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", skillerr.Wrap(skillerr.KindTransportFailure, err, "writing archive to %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", skillerr.Wrap(skillerr.KindInternal, err, "closing archive file %s", tmp.Name())
	}
	return tmp.Name(), nil
}

// extractArchive unpacks the zip at archivePath into target. Extraction
// goes through a sibling staging directory so a failed extraction never
// leaves a half-populated target, and so the single top-level directory
// that forges wrap archives in can be flattened away with one rename.
func extractArchive(archivePath, target string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return skillerr.Wrap(skillerr.KindTransportFailure, err, "opening archive %s", archivePath)
	}
	defer reader.Close()

	staging := target + ".extract"
	if err := os.RemoveAll(staging); err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "clearing staging directory %s", staging)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "creating staging directory %s", staging)
	}
	defer os.RemoveAll(staging)

	for _, entry := range reader.File {
		if err := extractEntry(entry, staging); err != nil {
			return err
		}
	}

	return promoteExtracted(staging, target)
}

// extractEntry writes a single zip entry under staging, rejecting anything
// that would land outside it.
func extractEntry(entry *zip.File, staging string) error {
	if err := validpath.ValidateArchiveEntry(entry.Name); err != nil {
		return skillerr.Wrap(skillerr.KindPathEscape, err, "archive entry %q", entry.Name)
	}
	dest := filepath.Join(staging, filepath.FromSlash(entry.Name))
	if err := validpath.EnsureContained(staging, dest); err != nil {
		return skillerr.Wrap(skillerr.KindPathEscape, err, "archive entry %q", entry.Name)
	}

	mode := entry.Mode()
	switch {
	case mode.IsDir():
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return skillerr.Wrap(skillerr.KindInternal, err, "creating directory %s", dest)
		}
		return nil
	case mode&os.ModeSymlink != 0:
		// Symlinks could point anywhere; skip them rather than fail the
		// whole archive.
		logger.Warnw("skipping symlink in archive", "entry", entry.Name)
		return nil
	case !mode.IsRegular():
		logger.Warnw("skipping irregular archive entry", "entry", entry.Name, "mode", mode.String())
		return nil
	}

	if entry.UncompressedSize64 > maxArchiveFileSize {
		return skillerr.New(skillerr.KindInvalidInput,
			"archive entry %q exceeds size limit (%d bytes)", entry.Name, entry.UncompressedSize64)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "creating directory for %s", dest)
	}

	src, err := entry.Open()
	if err != nil {
		return skillerr.Wrap(skillerr.KindTransportFailure, err, "opening archive entry %q", entry.Name)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode().Perm()|0o200)
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "creating file %s", dest)
	}
	// The declared size is untrusted; enforce the cap on the actual stream.
	written, err := io.Copy(out, io.LimitReader(src, maxArchiveFileSize+1))
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "writing file %s", dest)
	}
	if written > maxArchiveFileSize {
		return skillerr.New(skillerr.KindInvalidInput,
			"archive entry %q exceeds size limit", entry.Name)
	}
	return nil
}

// promoteExtracted moves the extracted content into target. Forge archives
// wrap everything in a single <repo>-<ref> directory; when that is the only
// top-level entry it becomes the target directly.
func promoteExtracted(staging, target string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "reading staging directory %s", staging)
	}

	src := staging
	if len(entries) == 1 && entries[0].IsDir() {
		src = filepath.Join(staging, entries[0].Name())
	}
	if err := os.Rename(src, target); err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "moving extracted tree to %s", target)
	}
	return nil
}
