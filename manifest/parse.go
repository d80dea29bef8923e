// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillshub/skillshub-core/skillerr"
)

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

// Entry describes how a skill is invoked: one path per runtime, plus
// optional named exports.
type Entry struct {
	// Paths maps a runtime name ("node", "python", or the generic "path"
	// fallback) to an entry file relative to the skill directory.
	Paths map[string]string `json:"paths,omitempty"`

	Exports map[string]any `json:"exports,omitempty"`
}

// Manifest is the normalized form of a parsed manifest. Fields absent in
// the source stay zero valued; nothing is defaulted at parse time.
type Manifest struct {
	SchemaVersion string `json:"schemaVersion,omitempty"`
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	Version       string `json:"version,omitempty"`
	Description   string `json:"description,omitempty"`
	Entry         Entry  `json:"entry,omitempty"`
	Repository    string `json:"repository,omitempty"`
	Integrity     string `json:"integrity,omitempty"`

	// Raw preserves the decoded mapping so validation can distinguish an
	// absent field from an empty one.
	Raw map[string]any `json:"-"`
}

// Parse reads and decodes the candidate's file into a normalized Manifest.
// Decoding goes through a loose map first; the map is mapped into the
// strict type before anything else sees it.
func Parse(c Candidate) (*Manifest, error) {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, skillerr.Wrap(skillerr.KindInternal, err, "reading manifest %s", c.File)
	}

	var raw map[string]any
	switch c.Format {
	case FormatFrontmatter:
		raw, err = parseFrontmatter(data)
	case FormatJSON:
		raw, err = parseJSONMap(data, c.File)
	case FormatYAML:
		raw, err = parseYAMLMap(data, c.File)
	case FormatPackageDescriptor:
		raw, err = parsePackageDescriptor(data, c.File)
	default:
		return nil, skillerr.New(skillerr.KindInternal, "unsupported manifest format: %s", c.Format)
	}
	if err != nil {
		return nil, err
	}

	return normalize(raw), nil
}

// parseFrontmatter extracts the leading delimited YAML block from a
// SKILL.md. A file without a complete frontmatter block yields an empty
// mapping, not an error; such skills are reference documents.
func parseFrontmatter(content []byte) (map[string]any, error) {
	trimmed := bytes.TrimLeft(content, " \t\r\n")
	delimiter := []byte("---")
	if !bytes.HasPrefix(trimmed, delimiter) {
		return map[string]any{}, nil
	}

	rest := bytes.TrimPrefix(trimmed[len(delimiter):], []byte("\r"))
	if !bytes.HasPrefix(rest, []byte("\n")) {
		return map[string]any{}, nil
	}
	rest = rest[1:]

	endIdx := bytes.Index(rest, []byte("\n---"))
	if endIdx == -1 {
		return map[string]any{}, nil
	}
	fmBytes := rest[:endIdx]

	if len(fmBytes) > maxFrontmatterSize {
		return nil, skillerr.New(skillerr.KindManifestInvalid,
			"frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(fmBytes, &raw); err != nil {
		return nil, skillerr.Wrap(skillerr.KindManifestInvalid, err, "parsing frontmatter YAML")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func parseJSONMap(data []byte, file string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, skillerr.Wrap(skillerr.KindManifestInvalid, err, "parsing %s", file)
	}
	return raw, nil
}

func parseYAMLMap(data []byte, file string) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, skillerr.Wrap(skillerr.KindManifestInvalid, err, "parsing %s", file)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// parsePackageDescriptor extracts the "skill" object from a package.json.
func parsePackageDescriptor(data []byte, file string) (map[string]any, error) {
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, skillerr.Wrap(skillerr.KindManifestInvalid, err, "parsing %s", file)
	}
	skill, ok := pkg["skill"]
	if !ok || skill == nil {
		return nil, skillerr.New(skillerr.KindManifestInvalid,
			`%s found but missing top-level "skill" field`, file)
	}
	obj, ok := skill.(map[string]any)
	if !ok {
		return nil, skillerr.New(skillerr.KindManifestInvalid,
			`%s "skill" field must be an object`, file)
	}
	return obj, nil
}

// normalize maps the loose decoded mapping into the strict Manifest type.
func normalize(raw map[string]any) *Manifest {
	m := &Manifest{
		SchemaVersion: stringField(raw, "schemaVersion"),
		ID:            stringField(raw, "id"),
		Name:          stringField(raw, "name"),
		Version:       stringField(raw, "version"),
		Description:   stringField(raw, "description"),
		Integrity:     stringField(raw, "integrity"),
		Repository:    repositoryField(raw),
		Raw:           raw,
	}

	if entry, ok := raw["entry"].(map[string]any); ok {
		for key, value := range entry {
			if key == "exports" {
				if exports, ok := value.(map[string]any); ok {
					m.Entry.Exports = exports
				}
				continue
			}
			if path, ok := value.(string); ok {
				if m.Entry.Paths == nil {
					m.Entry.Paths = make(map[string]string)
				}
				m.Entry.Paths[key] = path
			}
		}
	}
	return m
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// repositoryField accepts both the plain-string and the npm-style object
// form of the repository field.
func repositoryField(raw map[string]any) string {
	switch repo := raw["repository"].(type) {
	case string:
		return repo
	case map[string]any:
		url, _ := repo["url"].(string)
		return url
	}
	return ""
}

// Validate enforces required fields on manifests that declare themselves
// as skill packages. A manifest carrying neither a schema version nor an
// id is a reference document and passes without those fields. All missing
// required fields are reported in one aggregated error.
func Validate(m *Manifest) error {
	_, hasSchemaVersion := m.Raw["schemaVersion"]
	_, hasID := m.Raw["id"]
	if !hasSchemaVersion && !hasID {
		return nil
	}

	var missing []string
	if m.ID == "" {
		missing = append(missing, "id")
	}
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return skillerr.New(skillerr.KindManifestInvalid,
			"manifest missing required fields: %s", strings.Join(missing, ", "))
	}

	return validateSchema(m.Raw)
}
