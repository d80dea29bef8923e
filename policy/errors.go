// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"encoding/json"
	"fmt"

	"github.com/google/cel-go/cel"
)

// ErrInstance represents one occurrence of an error in a rule expression.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ErrDetails contains structured error information for rule expressions.
type ErrDetails struct {
	Errors []ErrInstance `json:"errors,omitempty"`
	Source string        `json:"source,omitempty"`
}

// AsJSON returns the ErrDetails as a JSON string.
func (ed *ErrDetails) AsJSON() string {
	edBytes, err := json.Marshal(ed)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(edBytes)
}

func errDetailsFromIssues(source string, issues *cel.Issues) ErrDetails {
	ed := ErrDetails{Source: source}
	ed.Errors = make([]ErrInstance, 0, len(issues.Errors()))
	for _, err := range issues.Errors() {
		ed.Errors = append(ed.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return ed
}

// ParseError is a rule syntax error with location information.
type ParseError struct {
	ErrDetails
	original error
}

// Error implements the error interface.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("rule parse error in %q: %s", pe.Source, pe.original)
}

// Unwrap returns the underlying error.
func (pe *ParseError) Unwrap() error {
	return pe.original
}

// CheckError is a rule type-checking error with location information.
type CheckError struct {
	ErrDetails
	original error
}

// Error implements the error interface.
func (ce *CheckError) Error() string {
	return fmt.Sprintf("rule check error in %q: %s", ce.Source, ce.original)
}

// Unwrap returns the underlying error.
func (ce *CheckError) Unwrap() error {
	return ce.original
}

func newParseError(source string, issues *cel.Issues) error {
	return &ParseError{
		ErrDetails: errDetailsFromIssues(source, issues),
		original:   issues.Err(),
	}
}

func newCheckError(source string, issues *cel.Issues) error {
	return &CheckError{
		ErrDetails: errDetailsFromIssues(source, issues),
		original:   issues.Err(),
	}
}
