// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package path provides containment validation for filesystem paths derived
from remote-controlled input.

Every component that writes or reads under a destination directory using a
name influenced by external input (repository names, refs, archive entry
names) must validate the computed path with this package before touching the
filesystem.

# Basic Usage

Check that a candidate path stays inside a root directory:

	target := filepath.Join(destDir, name)
	if err := path.EnsureContained(destDir, target); err != nil {
	    // refuse to write
	}

Archive entry names are validated in their slash-separated wire form before
any target path is derived:

	if err := path.ValidateArchiveEntry(entry.Name); err != nil {
	    // reject the archive
	}

Containment violations are reported as *EscapeError and are always fatal;
callers must never correct the path and continue.
*/
package path
