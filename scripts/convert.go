package scripts

import (
	"fmt"
	"reflect"

	"github.com/reusee/reacts/values"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlark(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case *values.Object:
		if v == nil {
			return starlark.None
		}
		return objectValue{obj: v}
	case *values.Array:
		if v == nil {
			return starlark.None
		}
		return arrayValue{arr: v}

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)

	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		// plain Go aggregates become host values, so scripts can observe them
		return toStarlark(values.FromGo(v))

	case reflect.Map:
		if value.Type().Key().Kind() == reflect.String {
			return toStarlark(values.FromGo(v))
		}
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlark(iter.Key().Interface()),
				toStarlark(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		obj := values.NewObject()
		typ := value.Type()
		for i := range value.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			_ = obj.Set(field.Name, values.FromGo(value.Field(i).Interface()))
		}
		return objectValue{obj: obj}

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlark(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	return starlark.String(fmt.Sprintf("%v", v))
}

func fromStarlark(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return int(i), nil
		}
		return nil, fmt.Errorf("int out of range: %v: %w", v, values.ErrType)

	case starlark.Float:
		return float64(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Bytes:
		return []byte(v), nil

	case objectValue:
		return v.obj, nil

	case arrayValue:
		return v.arr, nil

	case *starlark.List:
		elems := make([]any, 0, v.Len())
		for i := range v.Len() {
			elem, err := fromStarlark(v.Index(i))
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return values.NewArray(elems...), nil

	case starlark.Tuple:
		elems := make([]any, 0, len(v))
		for _, e := range v {
			elem, err := fromStarlark(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return values.NewArray(elems...), nil

	case *starlark.Dict:
		obj := values.NewObject()
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("object key must be string, got %s: %w", item[0].Type(), values.ErrType)
			}
			value, err := fromStarlark(item[1])
			if err != nil {
				return nil, err
			}
			if err := obj.Set(key, value); err != nil {
				return nil, err
			}
		}
		return obj, nil

	}

	return nil, fmt.Errorf("cannot convert %s: %w", v.Type(), values.ErrType)
}
