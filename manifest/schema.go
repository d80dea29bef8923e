// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/skillshub/skillshub-core/skillerr"
)

//go:embed data/skill-manifest.schema.json
var embeddedSchemaFS embed.FS

// validateSchema checks the decoded manifest mapping against the embedded
// manifest schema. It catches type errors the field checks cannot, like a
// numeric name or an entry that is not an object.
func validateSchema(raw map[string]any) error {
	schemaData, err := embeddedSchemaFS.ReadFile("data/skill-manifest.schema.json")
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "reading embedded manifest schema")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return skillerr.Wrap(skillerr.KindInternal, err, "serializing manifest for validation")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return skillerr.Wrap(skillerr.KindManifestInvalid, err, "manifest schema validation failed")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return skillerr.New(skillerr.KindManifestInvalid, "%s",
		formatNumberedErrors("manifest schema validation failed", msgs))
}

// formatNumberedErrors formats a list of messages as a single message with
// a numbered list.
func formatNumberedErrors(prefix string, msgs []string) string {
	if len(msgs) == 1 {
		return fmt.Sprintf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
