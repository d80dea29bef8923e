// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/skillshub/skillshub-core/logger"
	"github.com/skillshub/skillshub-core/skillerr"
)

// pruneDirs are dependency and build artifacts never worth descending into.
var pruneDirs = map[string]struct{}{
	"node_modules": {},
	"__pycache__":  {},
	"venv":         {},
}

// resourceDirs are conventional skill resource directories. They hold
// supporting material, never nested skills, so they are skipped entirely.
var resourceDirs = map[string]struct{}{
	"references": {},
	"assets":     {},
	"examples":   {},
	"tests":      {},
	"docs":       {},
}

// hiddenAllowList is the set of dot-directories that legitimately contain
// skills despite starting with the hidden-file marker.
var hiddenAllowList = map[string]struct{}{
	".claude": {},
}

// Walk traverses root depth-first and returns every directory that yields a
// manifest, in deterministic lexical order. Once a directory yields a
// manifest its subtree is not searched further. Directories that cannot be
// listed are treated as empty.
func Walk(root string) ([]Candidate, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "resolving walk root %s", root)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, skillerr.New(skillerr.KindInvalidInput, "walk root is not a directory: %s", absRoot)
	}

	var found []Candidate
	stack := []string{absRoot}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, skip := resourceDirs[filepath.Base(dir)]; skip && dir != absRoot {
			continue
		}

		if c := Discover(dir); c != nil {
			found = append(found, *c)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Debugw("skipping unreadable directory", "dir", dir, "error", err)
			continue
		}
		// ReadDir sorts entries; push in reverse so the stack pops them in
		// lexical order.
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if _, prune := pruneDirs[name]; prune {
				continue
			}
			if strings.HasPrefix(name, ".") {
				if _, allowed := hiddenAllowList[name]; !allowed {
					continue
				}
			}
			stack = append(stack, filepath.Join(dir, name))
		}
	}
	return found, nil
}
