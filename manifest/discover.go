// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Format identifies how a manifest file is encoded.
type Format string

// Supported manifest formats.
const (
	FormatFrontmatter       Format = "markdown-frontmatter"
	FormatJSON              Format = "json"
	FormatYAML              Format = "yaml"
	FormatPackageDescriptor Format = "package-descriptor"
)

// Candidate is a discovered manifest file awaiting parsing.
type Candidate struct {
	// Dir is the skill directory containing the manifest.
	Dir string `json:"dir"`

	// File is the absolute path of the manifest file.
	File string `json:"file"`

	Format Format `json:"format"`

	// Source is the human-readable manifest origin, e.g. "skill.json" or
	// "package.json#skill".
	Source string `json:"source"`
}

// manifestNames is the discovery precedence order. It is a contract:
// a directory holding both skill.json and a package.json with a skill
// field resolves to skill.json.
var manifestNames = []struct {
	name   string
	format Format
	source string
}{
	{"SKILL.md", FormatFrontmatter, "SKILL.md"},
	{"skill.json", FormatJSON, "skill.json"},
	{"skill.yaml", FormatYAML, "skill.yaml"},
	{"skill.yml", FormatYAML, "skill.yml"},
	{"package.json", FormatPackageDescriptor, "package.json#skill"},
}

// Discover checks dir for a manifest file in precedence order. It returns
// nil when the directory carries no manifest. A package.json counts only
// when it parses as JSON and has a top-level "skill" field.
func Discover(dir string) *Candidate {
	for _, m := range manifestNames {
		file := filepath.Join(dir, m.name)
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			continue
		}
		if m.format == FormatPackageDescriptor && !hasSkillField(file) {
			continue
		}
		return &Candidate{Dir: dir, File: file, Format: m.format, Source: m.source}
	}
	return nil
}

// hasSkillField reports whether the package descriptor at file carries a
// top-level "skill" field. Unreadable or malformed descriptors do not
// count as manifests.
func hasSkillField(file string) bool {
	data, err := os.ReadFile(file)
	if err != nil {
		return false
	}
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false
	}
	skill, ok := pkg["skill"]
	return ok && string(skill) != "null"
}
