// Package wire bridges the engine's Go types to the JSON payload shape
// external callers expect: snake_case keys, independent of how the Go types
// are written. It works by reflection rather than hand-maintained struct
// tags, so a new exported field on any engine type is picked up
// automatically instead of silently falling back to its Go name.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/vehiclex/taxengine/pkg/engine"
	"github.com/vehiclex/taxengine/pkg/engineerr"
)

var (
	acronymBoundary = regexp.MustCompile("([A-Z]+)([A-Z][a-z])")
	wordBoundary    = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// toSnakeCase converts a Go exported identifier (PascalCase, occasionally
// with an acronym run like "CalculationID") to snake_case: "CalculationID"
// -> "calculation_id", "TotalTax" -> "total_tax".
func toSnakeCase(name string) string {
	s := acronymBoundary.ReplaceAllString(name, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// toPascalCase reverses toSnakeCase well enough to address Go struct fields:
// "total_tax" -> "TotalTax", "calculation_id" -> "CalculationId". It does not
// need to be an exact inverse of toSnakeCase (encoding/json's field lookup is
// case-insensitive), only to land on the right field name ignoring case.
func toPascalCase(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// ToWire renders any exported Go value as snake_case JSON. Types implementing
// json.Marshaler (money.Money) are marshaled through that method first, so
// domain-specific rendering rules (Money's cent-rounded numeric form) are
// preserved rather than reflected into. String-based enums (engineerr.Kind,
// the rule enums) do not implement json.Marshaler and pass through as their
// string value.
func ToWire(v any) ([]byte, error) {
	converted, err := convert(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return json.Marshal(converted)
}

func convert(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		return convert(rv.Elem())
	}

	if rv.CanInterface() {
		if marshaler, ok := rv.Interface().(json.Marshaler); ok {
			data, err := marshaler.MarshalJSON()
			if err != nil {
				return nil, err
			}
			var out any
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}
			return out, nil
		}
	}

	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		out := make(map[string]any, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			val, err := convert(rv.Field(i))
			if err != nil {
				return nil, err
			}
			out[toSnakeCase(field.Name)] = val
		}
		return out, nil
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		return convertSeq(rv)
	case reflect.Array:
		return convertSeq(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := convert(iter.Value())
			if err != nil {
				return nil, err
			}
			out[toSnakeCase(fmt.Sprintf("%v", iter.Key().Interface()))] = val
		}
		return out, nil
	default:
		if !rv.CanInterface() {
			return nil, nil
		}
		return rv.Interface(), nil
	}
}

func convertSeq(rv reflect.Value) (any, error) {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		val, err := convert(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// FromWireResult parses a snake_case JSON payload back into a
// TaxCalculationResult. It is strict: malformed JSON and a non-object top
// level both fail rather than returning a partially populated result.
func FromWireResult(data []byte) (*engine.TaxCalculationResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, engineerr.InvalidInput("wire", fmt.Sprintf("malformed JSON: %v", err))
	}
	if _, ok := generic.(map[string]any); !ok {
		return nil, engineerr.InvalidInput("wire", "expected a JSON object at the top level")
	}

	pascalJSON, err := json.Marshal(rebuildKeys(generic))
	if err != nil {
		return nil, err
	}

	var result engine.TaxCalculationResult
	if err := json.Unmarshal(pascalJSON, &result); err != nil {
		return nil, engineerr.InvalidInput("wire", fmt.Sprintf("could not decode result: %v", err))
	}
	return &result, nil
}

func rebuildKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[toPascalCase(k)] = rebuildKeys(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = rebuildKeys(inner)
		}
		return out
	default:
		return val
	}
}
