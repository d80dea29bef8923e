// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"runtime/debug"

	"github.com/skillshub/skillshub-core/logger"
	"github.com/skillshub/skillshub-core/skillerr"
)

// Safely runs fn, converting a panic into an internal error. The panic
// value and stack trace are logged, never returned to the caller verbatim.
func Safely(operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("recovered from panic",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()))
			err = skillerr.New(skillerr.KindInternal, "%s: recovered from panic: %v", operation, r)
		}
	}()
	return fn()
}
