// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest discovers and parses skill manifests.
//
// A skill directory declares itself through exactly one manifest file,
// resolved by a fixed precedence order: SKILL.md frontmatter first, then
// skill.json, skill.yaml, skill.yml, and finally a package.json carrying a
// top-level "skill" object. Discovery walks a working tree iteratively,
// pruning version-control, dependency, and resource directories, and stops
// descending below any directory that yields a manifest.
//
// Parsing follows a two-step discipline: the file is decoded into a loose
// map first, then immediately normalized into the strict Manifest type
// before any other code touches it. Nothing in this package executes or
// evaluates fetched content.
package manifest
