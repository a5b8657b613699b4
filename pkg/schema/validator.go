package schema

import (
	"fmt"
	"reflect"
	"sort"
)

// Violation represents a single validation rule violation
type Violation struct {
	Path   string `json:"path"`
	Rule   string `json:"rule"`
	Actual any    `json:"actual"`
}

// ValidationResult represents the result of validating record data. Violations
// are exhaustive: every broken rule is reported, not just the first.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Validator validates record data against a schema
type Validator struct {
	schema Schema
}

// NewValidator creates a new validator for a schema
func NewValidator(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// NewBuildingValidator creates a validator for the canonical building schema
func NewBuildingValidator() *Validator {
	return NewValidator(BuildingSchema)
}

// Validate validates record data against the schema. The input is never
// mutated and identical input always yields identical output.
func (v *Validator) Validate(data map[string]any) ValidationResult {
	violations := validateObject("", data, v.schema.Properties, v.schema.Required)

	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

// validateObject checks required fields and each present field's definition
func validateObject(prefix string, data map[string]any, properties map[string]PropertyDefinition, required []string) []Violation {
	var violations []Violation

	for _, name := range required {
		if _, exists := data[name]; !exists {
			violations = append(violations, Violation{
				Path: joinPath(prefix, name),
				Rule: RuleRequired,
			})
		}
	}

	for name, def := range properties {
		value, exists := data[name]
		if !exists || value == nil {
			// Optional fields are allowed to be absent; templates omit the
			// dependent blocks.
			continue
		}
		violations = append(violations, validateField(joinPath(prefix, name), value, def)...)
	}

	sortViolations(violations)
	return violations
}

// validateField validates a single field value against its definition
func validateField(path string, value any, def PropertyDefinition) []Violation {
	var violations []Violation

	if !isValidType(value, def.Type) {
		violations = append(violations, Violation{
			Path:   path,
			Rule:   RuleType,
			Actual: typeName(value),
		})
		return violations // No point checking further if type is wrong
	}

	if def.Type == "integer" {
		n := asInt(value)
		if def.Positive && n <= 0 {
			violations = append(violations, Violation{Path: path, Rule: RulePositive, Actual: n})
		}
		if def.Min != nil && n < *def.Min || def.Max != nil && n > *def.Max {
			violations = append(violations, Violation{Path: path, Rule: RuleRange, Actual: n})
		}
	}

	if len(def.Enum) > 0 {
		if s, ok := value.(string); ok && !contains(def.Enum, s) {
			violations = append(violations, Violation{Path: path, Rule: RuleEnum, Actual: s})
		}
	}

	if def.Type == "object" && def.Properties != nil {
		if objValue, ok := value.(map[string]any); ok {
			violations = append(violations, validateObject(path, objValue, def.Properties, def.Required)...)
		}
	}

	if def.Type == "array" && def.Items != nil {
		if arrValue, ok := toAnySlice(value); ok {
			for i, item := range arrValue {
				violations = append(violations, validateField(fmt.Sprintf("%s[%d]", path, i), item, *def.Items)...)
			}
		}
	}

	return violations
}

// isValidType checks if a value matches the expected type
func isValidType(value any, expectedType string) bool {
	if value == nil {
		return true
	}

	switch expectedType {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64, int32:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case float64:
			return v == float64(int64(v)) // JSON numbers arrive as float64
		case int, int64, int32:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		rv := reflect.ValueOf(value)
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	default:
		return true
	}
}

// typeName returns the wire type name for a Go value
func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int64, int32:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return "array"
		}
		return fmt.Sprintf("%T", value)
	}
}

func asInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func toAnySlice(value any) ([]any, bool) {
	if arr, ok := value.([]any); ok {
		return arr, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	arr := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		arr[i] = rv.Index(i).Interface()
	}
	return arr, true
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// sortViolations gives violations a stable path ordering so identical input
// yields identical output even though map iteration order varies.
func sortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Path != violations[j].Path {
			return violations[i].Path < violations[j].Path
		}
		return violations[i].Rule < violations[j].Rule
	})
}
