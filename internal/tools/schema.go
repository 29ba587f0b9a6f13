package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"hermes/pkg/errors"
)

// FieldType enumerates the supported argument value kinds.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// Field declares the constraints for one tool argument.
type Field struct {
	Type        FieldType
	Description string
	Required    bool
	Enum        []string    // closed value set, string fields only
	Default     interface{} // applied when the argument is absent
	Minimum     *float64    // numeric lower bound, inclusive
	Maximum     *float64    // numeric upper bound, inclusive
}

// Schema is the declarative input contract of a tool. It is attached to the
// descriptor at registration time; listing renders it without reflection.
type Schema struct {
	Fields map[string]Field
}

// float64Ptr is a helper for bound declarations.
func float64Ptr(v float64) *float64 {
	return &v
}

// Validate checks args against the schema and returns a normalized copy:
// defaults filled in, integer values converted from JSON numbers. Every
// violation is collected; the returned error enumerates all offending fields.
func (s Schema) Validate(args map[string]interface{}) (map[string]interface{}, error) {
	violations := &errors.MultiError{}
	validated := make(map[string]interface{}, len(args))

	// additionalProperties: false
	for key := range args {
		if _, ok := s.Fields[key]; !ok {
			violations.Add(errors.NewValidationError(key, "unknown parameter", args[key]))
		}
	}

	for name, field := range s.Fields {
		value, present := args[name]
		if !present {
			if field.Required {
				violations.Add(errors.NewValidationError(name, "required parameter missing", nil))
				continue
			}
			if field.Default != nil {
				validated[name] = field.Default
			}
			continue
		}

		normalized, err := field.check(name, value)
		if err != nil {
			violations.Add(err)
			continue
		}
		validated[name] = normalized
	}

	if violations.HasErrors() {
		return nil, invalidParams(violations)
	}

	return validated, nil
}

// check validates a single present value and normalizes its type.
func (f Field) check(name string, value interface{}) (interface{}, error) {
	switch f.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return nil, errors.NewValidationError(name, "expected a string", value)
		}
		if len(f.Enum) > 0 && !contains(f.Enum, str) {
			return nil, errors.NewValidationError(name,
				fmt.Sprintf("must be one of %v", f.Enum), value)
		}
		return str, nil

	case TypeInteger:
		num, ok := asFloat(value)
		if !ok || num != math.Trunc(num) {
			return nil, errors.NewValidationError(name, "expected an integer", value)
		}
		if err := f.checkBounds(name, num, value); err != nil {
			return nil, err
		}
		return int(num), nil

	case TypeNumber:
		num, ok := asFloat(value)
		if !ok {
			return nil, errors.NewValidationError(name, "expected a number", value)
		}
		if err := f.checkBounds(name, num, value); err != nil {
			return nil, err
		}
		return num, nil

	case TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, errors.NewValidationError(name, "expected a boolean", value)
		}
		return b, nil

	default:
		return nil, errors.NewValidationError(name, "unsupported field type", value)
	}
}

func (f Field) checkBounds(name string, num float64, raw interface{}) error {
	if f.Minimum != nil && num < *f.Minimum {
		return errors.NewValidationError(name,
			fmt.Sprintf("must be >= %v", *f.Minimum), raw)
	}
	if f.Maximum != nil && num > *f.Maximum {
		return errors.NewValidationError(name,
			fmt.Sprintf("must be <= %v", *f.Maximum), raw)
	}
	return nil
}

// JSONSchema renders the declarative schema as a JSON-Schema object for
// the protocol's tool listing.
func (s Schema) JSONSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Fields))
	required := make([]string, 0)

	for name, field := range s.Fields {
		prop := map[string]interface{}{
			"type": string(field.Type),
		}
		if field.Description != "" {
			prop["description"] = field.Description
		}
		if len(field.Enum) > 0 {
			prop["enum"] = field.Enum
		}
		if field.Default != nil {
			prop["default"] = field.Default
		}
		if field.Minimum != nil {
			prop["minimum"] = *field.Minimum
		}
		if field.Maximum != nil {
			prop["maximum"] = *field.Maximum
		}
		properties[name] = prop

		if field.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// invalidParams flattens all violations into one invalid-input error whose
// message names every offending field.
func invalidParams(violations *errors.MultiError) error {
	msg := "invalid parameters"
	for _, err := range violations.Errors {
		var ve *errors.ValidationError
		if errors.As(err, &ve) {
			msg += fmt.Sprintf("; %s: %s", ve.Field, ve.Message)
		} else {
			msg += "; " + err.Error()
		}
	}
	return errors.Wrap(errors.ErrInvalidInput, msg)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
