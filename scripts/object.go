package scripts

import (
	"fmt"
	"slices"

	"github.com/reusee/reacts/values"
	"go.starlark.net/starlark"
)

// objectValue exposes a values.Object to scripts. Fields are reachable both
// as attributes and as string keys, and every access goes through the
// object's properties.
type objectValue struct {
	obj *values.Object
}

var (
	_ starlark.HasAttrs    = objectValue{}
	_ starlark.HasSetField = objectValue{}
	_ starlark.HasSetKey   = objectValue{}
	_ starlark.Iterable    = objectValue{}
	_ starlark.Sequence    = objectValue{}
)

func (o objectValue) String() string {
	return o.obj.String()
}

func (o objectValue) Type() string {
	return "object"
}

func (o objectValue) Freeze() {}

func (o objectValue) Truth() starlark.Bool {
	return starlark.True
}

func (o objectValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: object")
}

func (o objectValue) Attr(name string) (starlark.Value, error) {
	v, ok := o.obj.Lookup(name)
	if !ok {
		return nil, nil
	}
	return toStarlark(v), nil
}

func (o objectValue) AttrNames() []string {
	return slices.Sorted(o.obj.ForIn())
}

func (o objectValue) SetField(name string, value starlark.Value) error {
	v, err := fromStarlark(value)
	if err != nil {
		return err
	}
	return o.obj.Set(name, v)
}

func (o objectValue) Get(key starlark.Value) (starlark.Value, bool, error) {
	name, ok := starlark.AsString(key)
	if !ok {
		return nil, false, fmt.Errorf("object key must be string, got %s", key.Type())
	}
	v, ok := o.obj.Lookup(name)
	if !ok {
		return nil, false, nil
	}
	return toStarlark(v), true, nil
}

func (o objectValue) SetKey(key, value starlark.Value) error {
	name, ok := starlark.AsString(key)
	if !ok {
		return fmt.Errorf("object key must be string, got %s", key.Type())
	}
	return o.SetField(name, value)
}

// Iterate yields keys in for-in order.
func (o objectValue) Iterate() starlark.Iterator {
	var keys []starlark.Value
	for key := range o.obj.ForIn() {
		keys = append(keys, starlark.String(key))
	}
	return &sliceIterator{
		values: keys,
	}
}

func (o objectValue) Len() int {
	n := 0
	for range o.obj.ForIn() {
		n++
	}
	return n
}

type sliceIterator struct {
	values []starlark.Value
	i      int
}

func (s *sliceIterator) Next(p *starlark.Value) bool {
	if s.i >= len(s.values) {
		return false
	}
	*p = s.values[s.i]
	s.i++
	return true
}

func (s *sliceIterator) Done() {}
