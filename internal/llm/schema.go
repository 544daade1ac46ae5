package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/screenact/screenact/constants"
)

// BuildPlanJSONSchema returns the JSON-Schema (draft 2020-12 subset) for the
// action-plan wire shape as a generic map. The enum is the closed ActionType
// set; slots are restricted to the fixed vocabulary. Only "type" is required:
// the model may legitimately omit everything else.
func BuildPlanJSONSchema() map[string]any {
	slotProps := map[string]any{
		constants.SlotTitle:    map[string]any{"type": "string"},
		constants.SlotTime:     map[string]any{"type": "string"},
		constants.SlotLocation: map[string]any{"type": "string"},
		constants.SlotContent:  map[string]any{"type": "string"},
	}

	props := map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": constants.AsStringSlice(),
		},
		"slots": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           slotProps,
		},
		"original_text": map[string]any{"type": "string"},
		"confidence":    map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"type"},
	}
}

// ValidateJSONAgainstSchema checks doc against the given schema map.
func ValidateJSONAgainstSchema(schema map[string]any, doc []byte) error {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("schema: encode: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("plan.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("schema: add resource: %w", err)
	}
	sch, err := compiler.Compile("plan.schema.json")
	if err != nil {
		return fmt.Errorf("schema: compile: %w", err)
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("schema: decode doc: %w", err)
	}
	return sch.Validate(v)
}
