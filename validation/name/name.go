// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package name

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	validOwnerRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)
	validRepoRegex  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	validRefRegex   = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)
)

// ValidateOwner validates a repository owner (user or organization) name.
// Owners are restricted to alphanumerics and dashes and cannot start with a
// dash, which also rules out anything usable for URL or flag injection.
func ValidateOwner(owner string) error {
	if owner == "" || strings.TrimSpace(owner) == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if len(owner) > 64 {
		return fmt.Errorf("owner exceeds maximum length of 64 bytes")
	}
	if !validOwnerRegex.MatchString(owner) {
		return fmt.Errorf("owner can only contain alphanumeric characters and dashes, and cannot start with a dash: %q", owner)
	}
	return nil
}

// ValidateRepo validates a repository name.
func ValidateRepo(repo string) error {
	if repo == "" || strings.TrimSpace(repo) == "" {
		return fmt.Errorf("repo cannot be empty")
	}
	if len(repo) > 128 {
		return fmt.Errorf("repo exceeds maximum length of 128 bytes")
	}
	if repo == "." || repo == ".." {
		return fmt.Errorf("repo cannot be a dot segment: %q", repo)
	}
	if !validRepoRegex.MatchString(repo) {
		return fmt.Errorf("repo can only contain alphanumeric characters, dots, underscores, and dashes: %q", repo)
	}
	return nil
}

// ValidateRef validates a ref (branch, tag, or commit SHA). Slashes are
// allowed for hierarchical branch names; leading dashes are rejected so a
// ref can never be mistaken for a command-line option.
func ValidateRef(ref string) error {
	if ref == "" {
		return nil // absent ref means the remote default branch
	}
	if len(ref) > 256 {
		return fmt.Errorf("ref exceeds maximum length of 256 bytes")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("ref cannot start with a dash: %q", ref)
	}
	if strings.Contains(ref, "..") {
		return fmt.Errorf("ref cannot contain consecutive dots: %q", ref)
	}
	if !validRefRegex.MatchString(ref) {
		return fmt.Errorf("ref contains invalid characters: %q", ref)
	}
	return nil
}

var commitSHARegex = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsCommitSHA reports whether ref is a full 40-character hexadecimal commit
// identifier.
func IsCommitSHA(ref string) bool {
	return commitSHARegex.MatchString(ref)
}
