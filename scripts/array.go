package scripts

import (
	"fmt"

	"github.com/reusee/reacts/values"
	"go.starlark.net/starlark"
)

// arrayValue exposes a values.Array to scripts. Methods resolve through the
// array's own method table, so an observed array intercepts mutations made
// from scripts too.
type arrayValue struct {
	arr *values.Array
}

var (
	_ starlark.Indexable   = arrayValue{}
	_ starlark.HasSetIndex = arrayValue{}
	_ starlark.Iterable    = arrayValue{}
	_ starlark.HasAttrs    = arrayValue{}
)

func (a arrayValue) String() string {
	return "[" + a.arr.String() + "]"
}

func (a arrayValue) Type() string {
	return "array"
}

func (a arrayValue) Freeze() {}

func (a arrayValue) Truth() starlark.Bool {
	return starlark.True
}

func (a arrayValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: array")
}

func (a arrayValue) Len() int {
	return a.arr.Len()
}

func (a arrayValue) Index(i int) starlark.Value {
	return toStarlark(a.arr.At(i))
}

func (a arrayValue) SetIndex(i int, value starlark.Value) error {
	v, err := fromStarlark(value)
	if err != nil {
		return err
	}
	return a.arr.SetAt(i, v)
}

func (a arrayValue) Iterate() starlark.Iterator {
	elems := a.arr.Elements()
	ret := make([]starlark.Value, len(elems))
	for i, elem := range elems {
		ret[i] = toStarlark(elem)
	}
	return &sliceIterator{
		values: ret,
	}
}

func (a arrayValue) Attr(name string) (starlark.Value, error) {
	if _, ok := a.arr.Proto().Lookup(name); !ok {
		return nil, nil
	}
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", name)
		}
		goArgs := make([]any, 0, len(args))
		for _, arg := range args {
			if fn, ok := arg.(starlark.Callable); ok {
				goArgs = append(goArgs, callback(thread, name, fn))
				continue
			}
			v, err := fromStarlark(arg)
			if err != nil {
				return nil, err
			}
			goArgs = append(goArgs, v)
		}
		ret, err := a.arr.Call(name, goArgs...)
		if err != nil {
			return nil, err
		}
		return toStarlark(ret), nil
	}), nil
}

func (a arrayValue) AttrNames() []string {
	return a.arr.Proto().Names()
}

// callback adapts a script function to the Go callback shape the named array
// method accepts.
func callback(thread *starlark.Thread, method string, fn starlark.Callable) any {
	call := func(args ...any) (starlark.Value, error) {
		if f, ok := fn.(*starlark.Function); ok && f.NumParams() < len(args) && !f.HasVarargs() {
			args = args[:f.NumParams()]
		}
		tuple := make(starlark.Tuple, len(args))
		for i, arg := range args {
			tuple[i] = toStarlark(arg)
		}
		return starlark.Call(thread, fn, tuple, nil)
	}

	switch method {

	case "sort":
		return func(x, y any) (int, error) {
			ret, err := call(x, y)
			if err != nil {
				return 0, err
			}
			var n int
			if err := starlark.AsInt(ret, &n); err != nil {
				return 0, fmt.Errorf("sort: comparator must return int: %w", err)
			}
			return n, nil
		}

	case "forEach":
		return func(elem any, i int) error {
			_, err := call(elem, i)
			return err
		}

	case "map":
		return func(elem any, i int) (any, error) {
			ret, err := call(elem, i)
			if err != nil {
				return nil, err
			}
			return fromStarlark(ret)
		}

	case "filter":
		return func(elem any, i int) (bool, error) {
			ret, err := call(elem, i)
			if err != nil {
				return false, err
			}
			return bool(ret.Truth()), nil
		}

	}
	return fn
}
