// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillshub/skillshub-core/manifest"
)

func TestBuildUsesManifestID(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := &manifest.Manifest{
		ID:          "acme.writer",
		Name:        "Writer",
		Version:     "1.0.0",
		Description: "Writes.",
		Entry: manifest.Entry{
			Paths:   map[string]string{"python": "main.py", "path": "generic.py"},
			Exports: map[string]any{"draft": "draft.py"},
		},
		Repository: "https://github.com/acme/writer",
		Integrity:  "sha256:abc",
	}

	rec, err := Build(m, manifest.Candidate{Dir: dir, Source: "SKILL.md"}, BuildOptions{Runtime: "python"})
	require.NoError(t, err)

	assert.Equal(t, "acme.writer", rec.ID)
	assert.Equal(t, "Writer", rec.Name)
	assert.Equal(t, "1.0.0", rec.Version)
	assert.Equal(t, dir, rec.Dir)
	assert.Equal(t, "python", rec.Entry.Runtime)
	assert.Equal(t, "main.py", rec.Entry.Path)
	assert.Equal(t, "draft.py", rec.Entry.Exports["draft"])
	assert.Equal(t, "https://github.com/acme/writer", rec.Repository)
	assert.Equal(t, "sha256:abc", rec.Integrity)
	assert.Equal(t, "SKILL.md", rec.ManifestSource)
}

func TestBuildEntryPathSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		paths   map[string]string
		runtime string
		want    string
	}{
		{
			name:    "runtime specific wins",
			paths:   map[string]string{"node": "index.js", "path": "generic.js"},
			runtime: "node",
			want:    "index.js",
		},
		{
			name:    "generic fallback",
			paths:   map[string]string{"path": "run.py"},
			runtime: "python",
			want:    "run.py",
		},
		{
			name:    "no entry at all",
			paths:   nil,
			runtime: "python",
			want:    "",
		},
		{
			name:    "unknown runtime uses generic",
			paths:   map[string]string{"node": "index.js", "path": "generic"},
			runtime: "deno",
			want:    "generic",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &manifest.Manifest{ID: "x.y", Entry: manifest.Entry{Paths: tt.paths}}
			rec, err := Build(m, manifest.Candidate{Dir: t.TempDir(), Source: "skill.json"},
				BuildOptions{Runtime: tt.runtime})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Entry.Path)
		})
	}
}

func TestBuildDefaultRuntime(t *testing.T) {
	t.Parallel()

	rec, err := Build(&manifest.Manifest{ID: "x.y"},
		manifest.Candidate{Dir: t.TempDir(), Source: "skill.json"}, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultRuntime, rec.Entry.Runtime)
	assert.NotNil(t, rec.Entry.Exports)
}

func TestBuildNilManifest(t *testing.T) {
	t.Parallel()

	_, err := Build(nil, manifest.Candidate{Dir: t.TempDir()}, BuildOptions{})
	require.Error(t, err)
}

func TestSynthesizeID(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{
			name: "skill nested in checkout",
			dir:  filepath.Join(base, "acme__skills__main", "skills", "writer"),
			want: "acme::skills::skills::writer",
		},
		{
			name: "checkout root",
			dir:  filepath.Join(base, "acme__skills__main"),
			want: "acme::skills",
		},
		{
			name: "deeply nested",
			dir:  filepath.Join(base, "acme__skills__v1.0", "a", "b", "c"),
			want: "acme::skills::a::b::c",
		},
		{
			name: "directory outside the base",
			dir:  filepath.Join(t.TempDir(), "my-skill"),
			want: "local::my-skill",
		},
		{
			name: "plain directory inside base",
			dir:  filepath.Join(base, "plain"),
			want: "local::plain",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SynthesizeID(tt.dir, base))
		})
	}
}

func TestSynthesizeIDWithoutBaseDir(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "local::writer", SynthesizeID(filepath.Join(t.TempDir(), "writer"), ""))
}
