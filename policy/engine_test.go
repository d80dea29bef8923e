// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillshub/skillshub-core/registry"
	"github.com/skillshub/skillshub-core/treehash"
	"github.com/skillshub/skillshub-core/vcs"
)

func testInput() Input {
	return Input{
		Record: &registry.Record{
			ID:        "acme::skills::writer",
			Name:      "Writer",
			Dir:       "/srv/skills/writer",
			Integrity: "sha256:abc",
			Entry: registry.EntryPoint{
				Runtime: "python",
				Path:    "main.py",
				Exports: map[string]any{},
			},
			ManifestSource: "SKILL.md",
		},
		Integrity: &treehash.Result{OK: true, Expected: "sha256:abc", Actual: "sha256:abc"},
		Ref:       &vcs.PinnedRefResult{OK: true, HeadCommit: "deadbeef"},
	}
}

func TestRuleAllow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{
			name: "integrity prefix check",
			expr: `record.integrity.startsWith("sha256:")`,
			want: true,
		},
		{
			name: "combined integrity and ref",
			expr: `integrity.ok && ref.ok`,
			want: true,
		},
		{
			name: "id namespace check",
			expr: `record.id.startsWith("acme::")`,
			want: true,
		},
		{
			name: "denying rule",
			expr: `record.entry.runtime == "node"`,
			want: false,
		},
		{
			name: "defensive membership test",
			expr: `"version" in record ? record.version != "" : true`,
			want: true,
		},
	}

	eng := NewEngine()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := eng.Compile(tt.expr)
			require.NoError(t, err)

			got, err := rule.Allow(testInput())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleAllowMissingSections(t *testing.T) {
	t.Parallel()

	rule, err := NewEngine().Compile(`!("ok" in ref)`)
	require.NoError(t, err)

	got, err := rule.Allow(Input{Record: &registry.Record{ID: "x"}})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCompileParseError(t *testing.T) {
	t.Parallel()

	_, err := NewEngine().Compile(`record.id == `)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, `record.id == `, parseErr.Source)
	assert.NotEmpty(t, parseErr.Errors)
	assert.Contains(t, parseErr.AsJSON(), "source")
}

func TestCompileCheckError(t *testing.T) {
	t.Parallel()

	_, err := NewEngine().Compile(`undeclared_variable == "x"`)
	require.Error(t, err)

	var checkErr *CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.NotEmpty(t, checkErr.Errors)
}

func TestCompileRejectsNonBoolean(t *testing.T) {
	t.Parallel()

	_, err := NewEngine().Compile(`"just a string"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boolean")

	// A dyn-typed rule compiles but fails at evaluation when it does not
	// produce a bool.
	rule, err := NewEngine().Compile(`record.id`)
	require.NoError(t, err)
	_, err = rule.Allow(testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected bool")
}

func TestCompileLengthLimit(t *testing.T) {
	t.Parallel()

	eng := NewEngine().WithMaxExpressionLength(10)
	_, err := eng.Compile(`record.id == "this expression is too long"`)
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	eng := NewEngine()
	assert.NoError(t, eng.Check(`integrity.ok`))
	assert.Error(t, eng.Check(`integrity.`))
}

func TestCostLimit(t *testing.T) {
	t.Parallel()

	eng := NewEngine().WithCostLimit(1)
	rule, err := eng.Compile(`record.id.startsWith("a") && record.name.startsWith("b")`)
	require.NoError(t, err)

	_, err = rule.Allow(testInput())
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "cost")
}
