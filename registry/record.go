// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/skillshub/skillshub-core/skillerr"
)

//go:embed data/registration.schema.json
var embeddedSchemaFS embed.FS

// EntryPoint describes how a registered skill is invoked.
type EntryPoint struct {
	// Runtime the record was built for, e.g. "python" or "node".
	Runtime string `json:"runtime"`

	// Path is the entry file relative to Dir. Empty when the manifest
	// declares no entry for the runtime.
	Path string `json:"path,omitempty"`

	Exports map[string]any `json:"exports"`
}

// Record is a validated skill registration.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	// Dir is the absolute skill directory the record was built from.
	Dir string `json:"dir"`

	Entry      EntryPoint `json:"entry"`
	Repository string     `json:"repository,omitempty"`
	Integrity  string     `json:"integrity,omitempty"`

	// ManifestSource names the manifest file the record came from,
	// e.g. "SKILL.md" or "package.json#skill".
	ManifestSource string `json:"manifestSource"`
}

// Validate validates the record against the registration schema.
func (r *Record) Validate() error {
	data, err := json.Marshal(r)
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "serializing record")
	}
	return validateAgainstSchema(data, "data/registration.schema.json", "record schema validation failed")
}

// validateAgainstSchema validates data against a named embedded schema file.
func validateAgainstSchema(data []byte, schemaFile, errPrefix string) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "reading embedded schema %s", schemaFile)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return skillerr.Wrap(skillerr.KindManifestInvalid, err, "%s", errPrefix)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	if len(msgs) == 1 {
		return skillerr.New(skillerr.KindManifestInvalid, "%s: %s", errPrefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", errPrefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return skillerr.New(skillerr.KindManifestInvalid, "%s", strings.TrimSuffix(b.String(), "\n"))
}
