package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolHandler executes a tool call with the raw JSON arguments object.
// A non-nil error is a domain failure: the server reports it inside a
// successful protocol response as {success: false, error: ...}.
type ToolHandler func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Tool pairs a declared input schema with the handler that serves it.
// The catalog of tools is fixed once the server is constructed.
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
	Handler     ToolHandler        `json:"-"`
}

// checkArguments validates the raw arguments object against the tool's
// declared schema: required keys must be present, values must match the
// declared primitive type, and enum values must be in the allowed set.
// It covers the object-with-primitive-properties shapes this server
// declares, not the full JSON Schema grammar.
func (t Tool) checkArguments(raw json.RawMessage) error {
	if t.InputSchema == nil {
		return nil
	}

	args := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("arguments must be an object: %w", err)
		}
	}

	for _, name := range t.InputSchema.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required argument %q", name)
		}
	}

	for name, prop := range t.InputSchema.Properties {
		value, ok := args[name]
		if !ok {
			continue
		}
		if value == nil {
			if prop.Type != "" {
				return fmt.Errorf("argument %q must not be null", name)
			}
			continue
		}
		if err := checkType(name, prop.Type, value); err != nil {
			return err
		}
		if len(prop.Enum) > 0 && !enumContains(prop.Enum, value) {
			return fmt.Errorf("argument %q must be one of %v", name, prop.Enum)
		}
	}

	return nil
}

func checkType(name, schemaType string, value interface{}) error {
	switch schemaType {
	case "", "object":
		return nil
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("argument %q must be a string", name)
		}
	case "integer":
		n, ok := value.(float64)
		if !ok || n != math.Trunc(n) {
			return fmt.Errorf("argument %q must be an integer", name)
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("argument %q must be a number", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("argument %q must be a boolean", name)
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return fmt.Errorf("argument %q must be an array", name)
		}
	}
	return nil
}

func enumContains(allowed []interface{}, value interface{}) bool {
	for _, v := range allowed {
		if reflect.DeepEqual(v, value) {
			return true
		}
	}
	return false
}
