// Package openapi derives form definitions from OpenAPI documents: the
// request-body schema of an operation becomes the header field list, and the
// x-quoteflow-rules operation extension carries the gate hints. It keeps the
// kin-openapi dependency out of the public packages.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-quoteflow/pkg/formdef"
)

// RulesExtension is the operation extension key carrying formdef.RuleHints.
const RulesExtension = "x-quoteflow-rules"

// ErrOperationNotFound is returned when the document has no operation with
// the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// ParseDefinition extracts the form definition for one operation. The
// operation's request body must declare an application/json object schema;
// its properties become fields, ordered required-first then alphabetically
// (JSON object member order does not survive parsing).
func ParseDefinition(ctx context.Context, raw []byte, operationID string) (formdef.Definition, error) {
	if len(raw) == 0 {
		return formdef.Definition{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return formdef.Definition{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return formdef.Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return formdef.Definition{}, fmt.Errorf("openapi: operation %q has no object request schema", operationID)
	}

	def := formdef.Definition{
		Entity: operationID,
		Title:  strings.TrimSpace(operation.Summary),
		Fields: buildFields(schema),
	}
	if hints, ok, err := rulesFromExtension(operation.Extensions); err != nil {
		return formdef.Definition{}, err
	} else if ok {
		def.Rules = hints
	}

	if err := formdef.Validate(def); err != nil {
		return formdef.Definition{}, err
	}
	return def, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value
	if !schema.Type.Is(openapi3.TypeObject) || len(schema.Properties) == 0 {
		return nil
	}
	return schema
}

func buildFields(schema *openapi3.Schema) []formdef.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	fields := make([]formdef.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, buildField(name, ref.Value, required[name]))
	}
	return fields
}

func buildField(name string, prop *openapi3.Schema, required bool) formdef.Field {
	field := formdef.Field{
		Name:     name,
		Type:     fieldType(prop),
		Label:    strings.TrimSpace(prop.Title),
		Required: required,
	}
	if len(prop.Enum) > 0 {
		field.Enum = enumStrings(prop.Enum)
		field.Type = formdef.FieldTypeEnum
	}
	if prop.Default != nil {
		field.Default = fmt.Sprint(prop.Default)
	}
	return field
}

func fieldType(prop *openapi3.Schema) formdef.FieldType {
	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		return formdef.FieldTypeBoolean
	case prop.Type.Is(openapi3.TypeInteger):
		return formdef.FieldTypeInteger
	case prop.Type.Is(openapi3.TypeNumber):
		return formdef.FieldTypeNumber
	case prop.Type.Is(openapi3.TypeString) && prop.Format == "date":
		return formdef.FieldTypeDate
	default:
		return formdef.FieldTypeString
	}
}

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func rulesFromExtension(extensions map[string]any) (formdef.RuleHints, bool, error) {
	raw, ok := extensions[RulesExtension]
	if !ok || raw == nil {
		return formdef.RuleHints{}, false, nil
	}
	// Extensions decode as generic JSON values; round-trip into the typed
	// hints struct.
	payload, err := json.Marshal(raw)
	if err != nil {
		return formdef.RuleHints{}, false, fmt.Errorf("openapi: encode %s: %w", RulesExtension, err)
	}
	var hints formdef.RuleHints
	if err := json.Unmarshal(payload, &hints); err != nil {
		return formdef.RuleHints{}, false, fmt.Errorf("openapi: parse %s: %w", RulesExtension, err)
	}
	return hints, true, nil
}
