// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package path

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// EscapeError reports a path that would resolve outside its designated root.
type EscapeError struct {
	Root      string
	Candidate string
}

// Error implements the error interface.
func (e *EscapeError) Error() string {
	return fmt.Sprintf("path escapes root %s: %s", e.Root, e.Candidate)
}

// EnsureContained verifies that candidate resolves to a location inside root.
// It fails when the relative path from root to candidate starts with a
// parent-directory segment or when the relative path cannot be computed at
// all (for example, different volumes on Windows).
func EnsureContained(root, candidate string) error {
	root = filepath.Clean(strings.TrimSpace(root))
	candidate = filepath.Clean(strings.TrimSpace(candidate))
	if root == "" || candidate == "" {
		return fmt.Errorf("empty path")
	}

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return &EscapeError{Root: root, Candidate: candidate}
	}
	rel = filepath.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return &EscapeError{Root: root, Candidate: candidate}
	}
	return nil
}

// ValidateArchiveEntry checks that an archive entry name (slash-separated,
// as stored in the archive) cannot escape the extraction root. Entries with
// absolute paths or remaining parent-directory segments after cleaning are
// rejected.
func ValidateArchiveEntry(name string) error {
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) {
		return fmt.Errorf("absolute path not allowed in archive: %s", name)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path traversal detected in archive: %s", name)
	}
	return nil
}

var unsafeRefChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeRef maps a ref (branch, tag, or commit) to a token safe for use as
// a path component. Any byte outside [A-Za-z0-9._-] becomes an underscore;
// an empty ref maps to "HEAD".
func SanitizeRef(ref string) string {
	if ref == "" {
		return "HEAD"
	}
	return unsafeRefChars.ReplaceAllString(ref, "_")
}
