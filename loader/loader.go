// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"path/filepath"

	"github.com/skillshub/skillshub-core/fetch"
	"github.com/skillshub/skillshub-core/logger"
	"github.com/skillshub/skillshub-core/manifest"
	"github.com/skillshub/skillshub-core/policy"
	"github.com/skillshub/skillshub-core/recovery"
	"github.com/skillshub/skillshub-core/registry"
	"github.com/skillshub/skillshub-core/skillerr"
	"github.com/skillshub/skillshub-core/treehash"
	"github.com/skillshub/skillshub-core/vcs"
)

// Options configures one load.
type Options struct {
	// DestDir is where remote checkouts are materialized. Empty means
	// fetch.DefaultDestDir.
	DestDir string

	// Method selects the acquisition mechanism for remote sources.
	Method fetch.Method

	// Clean removes an existing checkout before fetching.
	Clean bool

	// Runtime selects the entry path registered for each skill.
	Runtime string

	// Expect enables pinned-reference verification when either field is
	// set. The checkout must carry repository metadata; archive checkouts
	// are rejected.
	Expect vcs.Expectation

	// ExpectedTreeHash enables content-hash verification against the
	// materialized tree.
	ExpectedTreeHash string

	// Strict promotes integrity mismatches from reported results to
	// errors.
	Strict bool

	// Rules are admission expressions every skill must satisfy to be
	// registered.
	Rules []string
}

// Skipped describes one skill directory that did not register.
type Skipped struct {
	Dir    string `json:"dir"`
	Reason string `json:"reason"`
}

// Result is the outcome of loading one source.
type Result struct {
	Tree      *fetch.WorkingTree   `json:"tree"`
	TreeHash  string               `json:"treeHash"`
	Integrity *treehash.Result     `json:"integrity,omitempty"`
	Ref       *vcs.PinnedRefResult `json:"ref,omitempty"`
	Records   []*registry.Record   `json:"records"`
	Skipped   []Skipped            `json:"skipped,omitempty"`
}

// Loader wires the pipeline stages together.
type Loader struct {
	fetcher  *fetch.Fetcher
	vcs      vcs.Client
	registry *registry.Registry
	engine   *policy.Engine
}

// New creates a loader. All three collaborators are required.
func New(fetcher *fetch.Fetcher, client vcs.Client, reg *registry.Registry) *Loader {
	return &Loader{
		fetcher:  fetcher,
		vcs:      client,
		registry: reg,
		engine:   policy.NewEngine(),
	}
}

// Load runs fetch, verify, discover, and register for one source
// descriptor and returns what happened.
func (l *Loader) Load(ctx context.Context, desc fetch.Descriptor, opts Options) (*Result, error) {
	rules, err := l.compileRules(opts.Rules)
	if err != nil {
		return nil, err
	}

	tree, err := l.fetcher.Fetch(ctx, desc, opts.DestDir, fetch.Options{
		Method: opts.Method,
		Clean:  opts.Clean,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Tree: tree}
	if err := l.attest(ctx, tree, opts, result); err != nil {
		return nil, err
	}

	candidates, err := manifest.Walk(tree.Root)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, skillerr.New(skillerr.KindManifestMissing, "no manifest found under %s", tree.Root)
	}

	baseDir := opts.DestDir
	if baseDir == "" {
		baseDir = fetch.DefaultDestDir
	}
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}

	for _, c := range candidates {
		rec, err := l.registerOne(c, opts, baseDir, rules, result)
		if err != nil {
			logger.Warnw("skipping skill directory",
				"dir", c.Dir, "source", c.Source, "error", err)
			result.Skipped = append(result.Skipped, Skipped{Dir: c.Dir, Reason: err.Error()})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// attest computes the tree hash and runs the requested verifications,
// filling in the result. Mismatches become errors only under Strict.
func (l *Loader) attest(ctx context.Context, tree *fetch.WorkingTree, opts Options, result *Result) error {
	hash, err := treehash.Compute(tree.Root, treehash.DefaultExcludes)
	if err != nil {
		return err
	}
	result.TreeHash = hash.String()

	if opts.ExpectedTreeHash != "" {
		integrity := &treehash.Result{
			OK:       hash.String() == opts.ExpectedTreeHash,
			Expected: opts.ExpectedTreeHash,
			Actual:   hash.String(),
		}
		result.Integrity = integrity
		if !integrity.OK && opts.Strict {
			return skillerr.New(skillerr.KindIntegrityMismatch,
				"tree hash mismatch: expected %s, got %s", integrity.Expected, integrity.Actual)
		}
	}

	if opts.Expect.Commit != "" || opts.Expect.Tag != "" {
		// Archive checkouts carry no repository metadata, so an expectation
		// against one can never be checked. Failing here beats dropping it.
		if tree.Method == fetch.MethodArchive {
			return skillerr.New(skillerr.KindInvalidInput,
				"cannot verify pinned ref for archive checkout %s", tree.Root)
		}
		ref, err := vcs.VerifyPinnedRef(ctx, l.vcs, tree.Root, opts.Expect)
		if err != nil {
			return err
		}
		result.Ref = &ref
		if !ref.OK && opts.Strict {
			return skillerr.New(skillerr.KindIntegrityMismatch, "pinned ref mismatch: %s", ref.Reason)
		}
	}

	return nil
}

// registerOne parses, validates, and registers a single discovered skill.
// Panics in any per-skill step are contained here.
func (l *Loader) registerOne(c manifest.Candidate, opts Options, baseDir string, rules []*policy.Rule, result *Result) (*registry.Record, error) {
	var rec *registry.Record
	err := recovery.Safely("register "+c.Dir, func() error {
		m, err := manifest.Parse(c)
		if err != nil {
			return err
		}
		if err := manifest.Validate(m); err != nil {
			return err
		}

		built, err := registry.Build(m, c, registry.BuildOptions{
			Runtime: opts.Runtime,
			BaseDir: baseDir,
		})
		if err != nil {
			return err
		}

		for _, rule := range rules {
			allowed, err := rule.Allow(policy.Input{
				Record:    built,
				Integrity: result.Integrity,
				Ref:       result.Ref,
			})
			if err != nil {
				return err
			}
			if !allowed {
				return skillerr.New(skillerr.KindManifestInvalid,
					"admission rule rejected skill: %s", rule.Source())
			}
		}

		if err := l.registry.Register(built); err != nil {
			return err
		}
		rec = built
		return nil
	})
	return rec, err
}

func (l *Loader) compileRules(exprs []string) ([]*policy.Rule, error) {
	rules := make([]*policy.Rule, 0, len(exprs))
	for _, expr := range exprs {
		rule, err := l.engine.Compile(expr)
		if err != nil {
			return nil, skillerr.Wrap(skillerr.KindInvalidInput, err, "compiling admission rule")
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
