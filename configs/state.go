package configs

import (
	"fmt"

	"cuelang.org/go/cue"
	"github.com/reusee/reacts/values"
)

// State decodes the first value at path into a state tree of values.Object
// and values.Array, keeping field order.
func (l Loader) State(path string) (any, error) {
	value, err := l.Lookup(path)
	if err != nil {
		return nil, err
	}
	return DecodeValue(value)
}

func DecodeValue(value cue.Value) (any, error) {
	switch value.IncompleteKind() {

	case cue.StructKind:
		iter, err := value.Fields()
		if err != nil {
			return nil, err
		}
		obj := values.NewObject()
		for iter.Next() {
			v, err := DecodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			if err := obj.Set(iter.Selector().Unquoted(), v); err != nil {
				return nil, err
			}
		}
		return obj, nil

	case cue.ListKind:
		iter, err := value.List()
		if err != nil {
			return nil, err
		}
		var elems []any
		for iter.Next() {
			v, err := DecodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return values.NewArray(elems...), nil

	case cue.NullKind:
		return nil, nil

	case cue.BoolKind:
		return value.Bool()

	case cue.StringKind:
		return value.String()

	case cue.IntKind:
		i, err := value.Int64()
		if err != nil {
			return nil, err
		}
		return int(i), nil

	case cue.FloatKind, cue.NumberKind:
		return value.Float64()

	}
	return nil, fmt.Errorf("unsupported cue value: %v", value)
}
