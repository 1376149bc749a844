package util

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// CreateSchema creates a JSON schema from a Go struct using reflection.
//
// Supported struct tags besides json: description, minimum, maximum and
// default. Fields carrying a default, an omitempty json option, or a pointer
// type are optional; every other exported field is required.
func CreateSchema(structType any) map[string]any {
	t := reflect.TypeOf(structType)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	properties := make(map[string]any)
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		jsonType := getJSONType(field.Type)
		fieldSchema := map[string]any{
			"type": jsonType,
		}

		if description := field.Tag.Get("description"); description != "" {
			fieldSchema["description"] = description
		}
		if v, ok := parseTagValue(field.Tag.Get("minimum"), jsonType); ok {
			fieldSchema["minimum"] = v
		}
		if v, ok := parseTagValue(field.Tag.Get("maximum"), jsonType); ok {
			fieldSchema["maximum"] = v
		}

		def, hasDefault := parseTagValue(field.Tag.Get("default"), jsonType)
		if hasDefault {
			fieldSchema["default"] = def
		}

		properties[fieldName] = fieldSchema

		if !hasDefault && !hasOmitEmpty(jsonTag) && !isPointer(field.Type) {
			required = append(required, fieldName)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// ApplyDefaults returns a copy of params with every missing property that
// declares a default in schema filled in.
func ApplyDefaults(params map[string]any, schema map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}

	properties, _ := schema["properties"].(map[string]any)
	for name, prop := range properties {
		propMap, ok := prop.(map[string]any)
		if !ok {
			continue
		}
		def, ok := propMap["default"]
		if !ok {
			continue
		}
		if _, exists := out[name]; !exists {
			out[name] = def
		}
	}

	return out
}

// ValidateParameters validates parameters against a JSON schema. The first
// violation is returned as a *ValidationError.
func ValidateParameters(params map[string]any, schema map[string]any) error {
	if params == nil {
		params = map[string]any{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(params))
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	re := result.Errors()[0]
	field := re.Field()
	if re.Type() == "required" {
		if p, ok := re.Details()["property"].(string); ok {
			field = p
		}
	}

	return &ValidationError{
		Field:   field,
		Value:   re.Value(),
		Message: re.Description(),
	}
}

// parseTagValue converts a struct tag literal into a value of the given JSON type.
func parseTagValue(raw, jsonType string) (any, bool) {
	if raw == "" {
		return nil, false
	}

	switch jsonType {
	case "integer":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return v, true
	case "number":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return v, true
	case "boolean":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		return v, true
	default:
		return raw, true
	}
}

// getJSONType returns the JSON schema type for a given Go type.
func getJSONType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return getJSONType(t.Elem())
	default:
		return "string"
	}
}

// hasOmitEmpty checks if a JSON tag has the "omitempty" option.
func hasOmitEmpty(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}
	return false
}

// isPointer checks if a type is a pointer.
func isPointer(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr
}
