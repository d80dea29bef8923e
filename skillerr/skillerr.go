// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package skillerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a pipeline error.
type Kind string

// Error kinds surfaced by the acquisition and registration pipeline.
const (
	KindInvalidInput      Kind = "invalid_input"
	KindPathEscape        Kind = "path_escape"
	KindTransportFailure  Kind = "transport_failure"
	KindIntegrityMismatch Kind = "integrity_mismatch"
	KindManifestMissing   Kind = "manifest_missing"
	KindManifestInvalid   Kind = "manifest_invalid"
	KindInternal          Kind = "internal"
)

// httpStatus maps each kind to the status code the service layer should
// return for it.
var httpStatus = map[Kind]int{
	KindInvalidInput:      http.StatusBadRequest,
	KindPathEscape:        http.StatusUnprocessableEntity,
	KindTransportFailure:  http.StatusBadGateway,
	KindIntegrityMismatch: http.StatusConflict,
	KindManifestMissing:   http.StatusNotFound,
	KindManifestInvalid:   http.StatusUnprocessableEntity,
	KindInternal:          http.StatusInternalServerError,
}

// Error is a classified pipeline error with an optional wrapped cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap returns the underlying cause for errors.Is() and errors.As() compatibility.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// HTTPStatus returns the HTTP status code associated with the error's kind.
func (e *Error) HTTPStatus() int {
	if code, ok := httpStatus[e.kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error, preserving it as the cause.
// If err is nil, Wrap returns nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf extracts the kind from an error chain.
// Unclassified non-nil errors report KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.kind
	}
	return KindInternal
}

// Status extracts the HTTP status code from an error chain.
// It returns 200 for nil and 500 for unclassified errors.
func Status(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.HTTPStatus()
	}
	return http.StatusInternalServerError
}
