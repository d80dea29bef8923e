// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package treehash

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/opencontainers/go-digest"
)

// DefaultExcludes is the default exclusion set: version-control metadata,
// dependency caches, bytecode caches, and OS metadata files.
var DefaultExcludes = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	".DS_Store":    {},
}

// Compute walks the tree under root and returns its algorithm-prefixed
// digest. Any path component whose name appears in excludes is skipped,
// directories and files alike. A nil excludes set means DefaultExcludes.
func Compute(root string, excludes map[string]struct{}) (digest.Digest, error) {
	if excludes == nil {
		excludes = DefaultExcludes
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absRoot {
			return nil
		}
		if _, excluded := excludes[d.Name()]; excluded {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("getting relative path for %s: %w", path, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking tree at %s: %w", absRoot, err)
	}

	// Paths are ordered by comparing their components one at a time, so a
	// separator always sorts before any sibling byte. A plain string sort
	// would put "a-b/c" ahead of "a/b" and change the digest.
	sort.Slice(files, func(i, j int) bool {
		return pathLess(files[i], files[j])
	})

	hasher := digest.SHA256.Hash()
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel))) //#nosec G304 -- paths come from the walk above
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", rel, err)
		}
		fileDigest := digest.SHA256.FromBytes(data)

		hasher.Write([]byte(rel))
		hasher.Write([]byte{0})
		hasher.Write([]byte(strconv.Itoa(len(data))))
		hasher.Write([]byte{0})
		hasher.Write([]byte(fileDigest.Encoded()))
		hasher.Write([]byte{'\n'})
	}

	return digest.NewDigest(digest.SHA256, hasher), nil
}

// pathLess compares slash-separated relative paths component by component.
func pathLess(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

// Result reports the outcome of a hash verification, carrying both digests
// so a mismatch is never reported without its evidence.
type Result struct {
	OK       bool   `json:"ok"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Verify recomputes the tree hash under root with the default exclusion set
// and compares it against expected by exact string equality.
func Verify(root string, expected string) (Result, error) {
	actual, err := Compute(root, nil)
	if err != nil {
		return Result{}, err
	}
	return Result{
		OK:       string(actual) == expected,
		Expected: expected,
		Actual:   string(actual),
	}, nil
}
