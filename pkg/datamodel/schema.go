/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package datamodel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/carverauto/datamodeld/pkg/logger"
)

// DefaultSchemaPath is used when no schema file argument is given.
const DefaultSchemaPath = "datamodels.json"

const maxNameLen = 255

type schemaRecord struct {
	Name  string          `json:"name"`
	Type  *int            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// LoadRegistry reads the schema file at path and builds the registry:
// declared attributes in file order followed by the built-ins in
// declaration order. There is no partial-success mode; the first invalid
// record fails the whole load and the registry is never partially
// populated.
func LoadRegistry(path string, builtins []Attribute, log logger.Logger) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}

	return BuildRegistry(data, builtins, log)
}

// BuildRegistry parses a JSON schema document and merges it with the
// built-in attributes.
func BuildRegistry(data []byte, builtins []Attribute, log logger.Logger) (*Registry, error) {
	declared, err := parseSchema(data)
	if err != nil {
		return nil, err
	}

	attrs := make([]Attribute, 0, len(declared)+len(builtins))
	attrs = append(attrs, declared...)

	names := make(map[string]struct{}, len(declared))
	for i := range declared {
		names[declared[i].Name] = struct{}{}
	}

	for i := range builtins {
		if _, shadowed := names[builtins[i].Name]; shadowed && log != nil {
			// First match wins, so the schema entry takes over get/set for
			// this name and clients lose the computed semantics.
			log.Warn().
				Str("name", builtins[i].Name).
				Msg("Schema declaration shadows a built-in computed attribute")
		}

		attrs = append(attrs, builtins[i])
	}

	return NewRegistry(attrs), nil
}

func parseSchema(data []byte) ([]Attribute, error) {
	var records []schemaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	if len(records) == 0 {
		return nil, errEmptySchema
	}

	attrs := make([]Attribute, 0, len(records))

	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrInvalidDeclaration, i)
		}

		if len(rec.Name) > maxNameLen {
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidDeclaration, i, errNameTooLong)
		}

		if rec.Type == nil || *rec.Type < int(KindString) || *rec.Type > int(KindByte) {
			return nil, fmt.Errorf("%w: record %d (%s) has an invalid type code",
				ErrInvalidDeclaration, i, rec.Name)
		}

		kind := Kind(*rec.Type)

		value, err := ValueFromJSON(kind, rec.Value)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.Name, err)
		}

		attrs = append(attrs, Attribute{
			Name:  rec.Name,
			Kind:  kind,
			Value: value,
		})
	}

	return attrs, nil
}
