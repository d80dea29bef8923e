// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

// Package name provides validation functions for repository owner, name,
// and ref strings before they are used to construct clone or archive URLs.
package name
