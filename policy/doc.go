// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package policy evaluates admission rules against skill registrations.

Rules are CEL expressions over three variables: "record" (the registration
record being admitted), "integrity" (the working-tree hash verification
result), and "ref" (the pinned-reference verification result). A rule must
evaluate to a boolean; true admits the registration.

	eng := policy.NewEngine()
	rule, err := eng.Compile(`record.integrity.startsWith("sha256:") && integrity.ok`)
	if err != nil {
	    // handle compilation error
	}
	ok, err := rule.Allow(input)

The engine caches its environment lazily and is safe for concurrent use, as
are compiled rules. Expression length and runtime cost are capped so an
untrusted rule cannot stall registration.
*/
package policy
