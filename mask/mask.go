// Package mask provides functionality for masking sensitive fields in structs
// before they are attached to log events or alert details.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// Fields returns an ordered map of struct fields with sensitive values
// replaced. Fields tagged with `mask:"true"` are masked; nested structs are
// flattened with dot-separated names. Field names follow the priority
// json tag > yaml tag > struct field name; fields tagged json:"-" or
// yaml:"-" are omitted.
func Fields(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}
	return walk(reflect.ValueOf(v), "")
}

func walk(val reflect.Value, prefix string) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()

	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return om
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return om
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, masked(field))
		case expandable(field):
			nested := walk(field, name)
			for pair := nested.Oldest(); pair != nil; pair = pair.Next() {
				om.Set(pair.Key, pair.Value)
			}
		default:
			om.Set(name, field.Interface())
		}
	}

	return om
}

func expandable(val reflect.Value) bool {
	kind := val.Kind()
	if kind == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		kind = val.Elem().Kind()
	}
	return kind == reflect.Struct
}

// masked replaces a value with a kind-tagged placeholder. Nil pointers,
// slices and maps stay nil and zero values pass through unmasked so that
// absent data remains visibly absent in logs.
func masked(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds fall through
	case reflect.Pointer:
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			return nil
		}
	}

	if val.IsZero() {
		return val.Interface()
	}

	return fmt.Sprintf("***masked-%s***", kindLabel(val.Kind()))
}

func kindLabel(kind reflect.Kind) string {
	switch kind { //nolint:exhaustive // remaining kinds use their own name
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Array:
		return "slice"
	default:
		return kind.String()
	}
}

// fieldName resolves the output name for a struct field, honoring json and
// yaml tags in that order. The second return value is true when the field
// must be omitted.
func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"json", "yaml"} {
		raw, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if raw == "-" {
			return "", true
		}
		if idx := strings.Index(raw, ","); idx != -1 {
			raw = raw[:idx]
		}
		if raw != "" {
			return raw, false
		}
	}
	return field.Name, false
}
