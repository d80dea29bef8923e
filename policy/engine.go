// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/skillshub/skillshub-core/registry"
	"github.com/skillshub/skillshub-core/skillerr"
	"github.com/skillshub/skillshub-core/treehash"
	"github.com/skillshub/skillshub-core/vcs"
)

const (
	// DefaultMaxExpressionLength caps rule source length.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit caps runtime evaluation cost.
	DefaultCostLimit = 1000000
)

// Input is the data an admission rule sees.
type Input struct {
	Record    *registry.Record
	Integrity *treehash.Result
	Ref       *vcs.PinnedRefResult
}

// Engine compiles admission rules. It is safe for concurrent use.
type Engine struct {
	envCache            *envCache
	maxExpressionLength int
	costLimit           uint64
}

// envCache holds a lazily-initialized CEL environment.
type envCache struct {
	once sync.Once
	env  *cel.Env
	err  error
}

// Rule is a compiled admission rule ready for evaluation.
type Rule struct {
	source  string
	program cel.Program
}

// Source returns the original rule expression.
func (r *Rule) Source() string {
	return r.source
}

// NewEngine creates an engine with the record, integrity, and ref variables
// declared.
func NewEngine() *Engine {
	return &Engine{
		envCache:            &envCache{},
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

// WithMaxExpressionLength sets the maximum allowed rule source length.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for rule evaluation.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

// getEnv returns the CEL environment, creating it lazily on first access.
func (e *Engine) getEnv() (*cel.Env, error) {
	e.envCache.once.Do(func() {
		e.envCache.env, e.envCache.err = cel.NewEnv(
			cel.Variable("record", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("integrity", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("ref", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return e.envCache.env, e.envCache.err
}

// Compile parses and type-checks a rule expression. The rule must produce
// a boolean.
func (e *Engine) Compile(expr string) (*Rule, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, skillerr.New(skillerr.KindInvalidInput,
			"rule length %d exceeds maximum of %d", len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInternal, err, "creating rule environment")
	}

	parsedAst, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newParseError(expr, issues)
	}
	checkedAst, issues := env.Check(parsedAst)
	if issues.Err() != nil {
		return nil, newCheckError(expr, issues)
	}
	// Map accesses type as dyn, so only definitely non-boolean rules can
	// be rejected here; Allow enforces the rest at evaluation time.
	out := checkedAst.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, skillerr.New(skillerr.KindInvalidInput,
			"rule %q must produce a boolean, produces %s", expr, out)
	}

	program, err := env.Program(checkedAst, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInternal, err, "creating program for %q", expr)
	}

	return &Rule{source: expr, program: program}, nil
}

// Check verifies a rule expression without building a program. Useful for
// validating configuration at startup.
func (e *Engine) Check(expr string) error {
	_, err := e.Compile(expr)
	return err
}

// Allow evaluates the rule against the input. Missing input sections
// evaluate as empty maps, so rules can be written defensively with the
// `in` operator.
func (r *Rule) Allow(in Input) (bool, error) {
	activation, err := in.activation()
	if err != nil {
		return false, err
	}
	out, _, err := r.program.Eval(activation)
	if err != nil {
		return false, skillerr.Wrap(skillerr.KindInternal, err, "evaluating rule %q", r.source)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, skillerr.New(skillerr.KindInternal,
			"rule %q returned %T, expected bool", r.source, out.Value())
	}
	return allowed, nil
}

// activation converts the input into CEL variable bindings through their
// JSON forms, so the field names rules see match the serialized records.
func (in Input) activation() (map[string]any, error) {
	activation := make(map[string]any, 3)
	for name, value := range map[string]any{
		"record":    in.Record,
		"integrity": in.Integrity,
		"ref":       in.Ref,
	} {
		m, err := toMap(value)
		if err != nil {
			return nil, skillerr.Wrap(skillerr.KindInternal, err, "binding rule variable %s", name)
		}
		activation[name] = m
	}
	return activation, nil
}

func toMap(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", data, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
