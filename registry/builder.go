// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"path/filepath"
	"strings"

	"github.com/skillshub/skillshub-core/manifest"
	"github.com/skillshub/skillshub-core/skillerr"
)

// DefaultRuntime is used when the caller does not name one.
const DefaultRuntime = "python"

// BuildOptions configures record construction.
type BuildOptions struct {
	// Runtime selects which entry path the record carries. Defaults to
	// DefaultRuntime.
	Runtime string

	// BaseDir is the acquisition destination directory. When the skill
	// directory sits under a <owner>__<repo>__<ref> checkout inside
	// BaseDir, synthesized ids take the form owner::repo::subpath.
	// Skills outside BaseDir fall back to local::<dirname>.
	BaseDir string
}

// Build derives a registration record from a parsed manifest and the skill
// directory it was discovered in. The manifest's own id wins; otherwise one
// is synthesized deterministically from the directory layout.
func Build(m *manifest.Manifest, c manifest.Candidate, opts BuildOptions) (*Record, error) {
	if m == nil {
		return nil, skillerr.New(skillerr.KindInvalidInput, "manifest is required")
	}

	runtime := opts.Runtime
	if runtime == "" {
		runtime = DefaultRuntime
	}

	absDir, err := filepath.Abs(c.Dir)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "resolving skill directory %s", c.Dir)
	}

	id := m.ID
	if id == "" {
		id = SynthesizeID(absDir, opts.BaseDir)
	}

	exports := m.Entry.Exports
	if exports == nil {
		exports = map[string]any{}
	}

	return &Record{
		ID:          id,
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		Dir:         absDir,
		Entry: EntryPoint{
			Runtime: runtime,
			Path:    entryPath(m, runtime),
			Exports: exports,
		},
		Repository:     m.Repository,
		Integrity:      m.Integrity,
		ManifestSource: c.Source,
	}, nil
}

// entryPath picks the entry file for a runtime, falling back to the
// generic "path" key.
func entryPath(m *manifest.Manifest, runtime string) string {
	if p, ok := m.Entry.Paths[runtime]; ok {
		return p
	}
	return m.Entry.Paths["path"]
}

// SynthesizeID derives a deterministic id for a manifest that declares
// none. When dir sits under a checkout named <owner>__<repo>__<ref>
// directly inside baseDir, the id is owner::repo joined with the
// double-colon path of the skill inside the checkout. Anything else gets
// local::<dirname>.
func SynthesizeID(dir, baseDir string) string {
	if baseDir != "" {
		if absBase, err := filepath.Abs(baseDir); err == nil {
			if id, ok := checkoutID(dir, absBase); ok {
				return id
			}
		}
	}
	return "local::" + filepath.Base(dir)
}

// checkoutID walks up from dir looking for the checkout directory, the
// ancestor whose parent is baseDir and whose name carries the
// owner__repo__ref shape.
func checkoutID(dir, baseDir string) (string, bool) {
	curr := dir
	for {
		parent := filepath.Dir(curr)
		if parent == curr {
			return "", false
		}
		if parent == baseDir && strings.Contains(filepath.Base(curr), "__") {
			break
		}
		curr = parent
	}

	parts := strings.SplitN(filepath.Base(curr), "__", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	owner, repo := parts[0], parts[1]

	rel, err := filepath.Rel(curr, dir)
	if err != nil {
		return "", false
	}
	id := owner + "::" + repo
	if rel != "." {
		for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
			if seg != "" {
				id += "::" + seg
			}
		}
	}
	return id, true
}
