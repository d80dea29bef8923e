// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package skillerr defines the error taxonomy for the acquisition and
registration pipeline.

Every failure surfaced by this module belongs to one of a small set of kinds:

  - InvalidInput: missing or malformed descriptor fields. Fatal, no retry.
  - PathEscape: a containment violation. Fatal, never silently corrected.
  - TransportFailure: network failure or non-success response.
  - IntegrityMismatch: pinned ref or tree hash verification failure.
  - ManifestMissing: a source yielded no manifest-bearing directory.
  - ManifestInvalid: a manifest could not be parsed or failed validation.
  - Internal: everything else.

Each kind carries an HTTP status code so the marketplace service layer that
consumes the registry can map pipeline errors onto API responses without
inspecting error strings:

	if skillerr.KindOf(err) == skillerr.KindIntegrityMismatch {
	    // warn instead of abort
	}
	w.WriteHeader(skillerr.Status(err))

Errors are compatible with errors.Is and errors.As; wrapped causes are
reachable through Unwrap.
*/
package skillerr
