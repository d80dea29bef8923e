// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package skillerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(KindInvalidInput, "owner and repo are required")
	require.Error(t, err)
	assert.Equal(t, "owner and repo are required", err.Error())
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Equal(t, http.StatusBadRequest, Status(err))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(KindTransportFailure, cause, "downloading archive for %s", "acme/demo")

	require.Error(t, err)
	assert.Equal(t, "downloading archive for acme/demo: connection refused", err.Error())
	assert.Equal(t, KindTransportFailure, KindOf(err))
	assert.Equal(t, http.StatusBadGateway, Status(err))
	assert.True(t, errors.Is(err, cause), "wrapped cause should be reachable via errors.Is")
}

func TestWrap_NilError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrap(KindInternal, nil, "ignored"))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	// Classification survives further wrapping with %w.
	inner := New(KindPathEscape, "path escapes root")
	outer := fmt.Errorf("extracting archive: %w", inner)
	assert.Equal(t, KindPathEscape, KindOf(outer))
	assert.Equal(t, http.StatusUnprocessableEntity, Status(outer))
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindPathEscape, http.StatusUnprocessableEntity},
		{KindTransportFailure, http.StatusBadGateway},
		{KindIntegrityMismatch, http.StatusConflict},
		{KindManifestMissing, http.StatusNotFound},
		{KindManifestInvalid, http.StatusUnprocessableEntity},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Status(New(tt.kind, "x")))
		})
	}

	assert.Equal(t, http.StatusOK, Status(nil))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("plain")))
}
