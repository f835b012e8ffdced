package values

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ToString renders a value the way join and the default sort order see it.
func ToString(v any) string {
	return toString(v, nil)
}

// arrays already being rendered give an empty string
func toString(v any, visiting map[*Array]bool) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case *Object:
		return "[object Object]"
	case *Array:
		if v == nil {
			return "null"
		}
		if visiting[v] {
			return ""
		}
		if visiting == nil {
			visiting = make(map[*Array]bool)
		}
		visiting[v] = true
		defer delete(visiting, v)
		parts := make([]string, len(v.elements))
		for i, elem := range v.elements {
			if elem == nil {
				continue
			}
			parts[i] = toString(elem, visiting)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FromGo converts maps and slices into Objects and Arrays recursively. Map
// keys are sorted. Scalars are kept as is.
func FromGo(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case *Object, *Array:
		return v
	case map[string]any:
		obj := NewObject()
		for _, key := range slices.Sorted(maps.Keys(v)) {
			obj.add(key, &Property{
				Value:        FromGo(v[key]),
				Enumerable:   true,
				Configurable: true,
			})
		}
		return obj
	case []any:
		elems := make([]any, len(v))
		for i, e := range v {
			elems[i] = FromGo(e)
		}
		return NewArray(elems...)
	case []byte:
		return string(v)
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Slice, reflect.Array:
		elems := make([]any, value.Len())
		for i := range value.Len() {
			elems[i] = FromGo(value.Index(i).Interface())
		}
		return NewArray(elems...)

	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return v
		}
		keys := make([]string, 0, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, key := range keys {
			elem := value.MapIndex(reflect.ValueOf(key).Convert(value.Type().Key()))
			obj.add(key, &Property{
				Value:        FromGo(elem.Interface()),
				Enumerable:   true,
				Configurable: true,
			})
		}
		return obj

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return nil
		}

	}

	return v
}

// ToGo converts Objects and Arrays into map[string]any and []any. Accessors are
// read. Cycles are cut at the first revisit with nil.
func ToGo(v any) any {
	return toGo(v, make(map[any]bool))
}

func toGo(v any, visiting map[any]bool) any {
	switch v := v.(type) {
	case *Object:
		if v == nil || visiting[v] {
			return nil
		}
		visiting[v] = true
		defer delete(visiting, v)
		ret := make(map[string]any)
		for _, key := range v.Keys() {
			ret[key] = toGo(v.Get(key), visiting)
		}
		return ret
	case *Array:
		if v == nil || visiting[v] {
			return nil
		}
		visiting[v] = true
		defer delete(visiting, v)
		ret := make([]any, len(v.elements))
		for i, elem := range v.elements {
			ret[i] = toGo(elem, visiting)
		}
		return ret
	}
	return v
}
