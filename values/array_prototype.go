package values

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// ArrayPrototype holds the native array methods.
var ArrayPrototype = &MethodTable{
	Methods: map[string]Method{
		"push":     arrayPush,
		"pop":      arrayPop,
		"shift":    arrayShift,
		"unshift":  arrayUnshift,
		"splice":   arraySplice,
		"sort":     arraySort,
		"reverse":  arrayReverse,
		"slice":    arraySlice,
		"concat":   arrayConcat,
		"indexOf":  arrayIndexOf,
		"includes": arrayIncludes,
		"join":     arrayJoin,
		"forEach":  arrayForEach,
		"map":      arrayMap,
		"filter":   arrayFilter,
	},
}

func arrayPush(arr *Array, args ...any) (any, error) {
	if len(args) > 0 && arr.sealed {
		return nil, fmt.Errorf("push: %w", ErrNotExtensible)
	}
	arr.elements = append(arr.elements, args...)
	return len(arr.elements), nil
}

func arrayPop(arr *Array, args ...any) (any, error) {
	if len(arr.elements) == 0 {
		return nil, nil
	}
	last := len(arr.elements) - 1
	ret := arr.elements[last]
	arr.elements[last] = nil
	arr.elements = arr.elements[:last]
	return ret, nil
}

func arrayShift(arr *Array, args ...any) (any, error) {
	if len(arr.elements) == 0 {
		return nil, nil
	}
	ret := arr.elements[0]
	arr.elements = slices.Delete(arr.elements, 0, 1)
	return ret, nil
}

func arrayUnshift(arr *Array, args ...any) (any, error) {
	if len(args) > 0 && arr.sealed {
		return nil, fmt.Errorf("unshift: %w", ErrNotExtensible)
	}
	arr.elements = slices.Insert(arr.elements, 0, args...)
	return len(arr.elements), nil
}

func arraySplice(arr *Array, args ...any) (any, error) {
	length := len(arr.elements)
	start := 0
	if len(args) > 0 {
		n, err := toInt("splice", args[0])
		if err != nil {
			return nil, err
		}
		start = relativeIndex(n, length)
	}
	deleteCount := 0
	switch {
	case len(args) == 1:
		deleteCount = length - start
	case len(args) > 1:
		n, err := toInt("splice", args[1])
		if err != nil {
			return nil, err
		}
		deleteCount = min(max(n, 0), length-start)
	}
	var items []any
	if len(args) > 2 {
		items = args[2:]
	}
	if arr.sealed && len(items) > deleteCount {
		return nil, fmt.Errorf("splice: %w", ErrNotExtensible)
	}
	removed := slices.Clone(arr.elements[start : start+deleteCount])
	arr.elements = slices.Replace(arr.elements, start, start+deleteCount, items...)
	return NewArray(removed...), nil
}

func arraySort(arr *Array, args ...any) (any, error) {
	compare := defaultCompare
	if len(args) > 0 && args[0] != nil {
		switch fn := args[0].(type) {
		case func(x, y any) int:
			compare = func(x, y any) (int, error) {
				return fn(x, y), nil
			}
		case func(x, y any) (int, error):
			compare = fn
		default:
			return nil, fmt.Errorf("sort: comparator must be a function, got %T: %w", args[0], ErrType)
		}
	}
	sorted := slices.Clone(arr.elements)
	var err error
	slices.SortStableFunc(sorted, func(x, y any) int {
		if err != nil {
			return 0
		}
		// nils always sort last, the comparator never sees them
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return 1
		case y == nil:
			return -1
		}
		var c int
		c, err = compare(x, y)
		return c
	})
	if err != nil {
		return nil, err
	}
	copy(arr.elements, sorted)
	return arr, nil
}

func defaultCompare(x, y any) (int, error) {
	return strings.Compare(ToString(x), ToString(y)), nil
}

func arrayReverse(arr *Array, args ...any) (any, error) {
	slices.Reverse(arr.elements)
	return arr, nil
}

func arraySlice(arr *Array, args ...any) (any, error) {
	length := len(arr.elements)
	start, end := 0, length
	if len(args) > 0 && args[0] != nil {
		n, err := toInt("slice", args[0])
		if err != nil {
			return nil, err
		}
		start = relativeIndex(n, length)
	}
	if len(args) > 1 && args[1] != nil {
		n, err := toInt("slice", args[1])
		if err != nil {
			return nil, err
		}
		end = relativeIndex(n, length)
	}
	if end < start {
		end = start
	}
	return NewArray(slices.Clone(arr.elements[start:end])...), nil
}

func arrayConcat(arr *Array, args ...any) (any, error) {
	ret := slices.Clone(arr.elements)
	for _, arg := range args {
		if other, ok := arg.(*Array); ok && other != nil {
			ret = append(ret, other.elements...)
			continue
		}
		ret = append(ret, arg)
	}
	return NewArray(ret...), nil
}

func arrayIndexOf(arr *Array, args ...any) (any, error) {
	var target any
	if len(args) > 0 {
		target = args[0]
	}
	from := 0
	if len(args) > 1 {
		n, err := toInt("indexOf", args[1])
		if err != nil {
			return nil, err
		}
		from = relativeIndex(n, len(arr.elements))
	}
	for i := from; i < len(arr.elements); i++ {
		if StrictEqual(arr.elements[i], target) {
			return i, nil
		}
	}
	return -1, nil
}

func arrayIncludes(arr *Array, args ...any) (any, error) {
	ret, err := arrayIndexOf(arr, args...)
	if err != nil {
		return nil, err
	}
	return ret.(int) >= 0, nil
}

func arrayJoin(arr *Array, args ...any) (any, error) {
	sep := ","
	if len(args) > 0 && args[0] != nil {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("join: separator must be string, got %T: %w", args[0], ErrType)
		}
		sep = s
	}
	parts := make([]string, len(arr.elements))
	for i, elem := range arr.elements {
		if elem == nil {
			continue
		}
		parts[i] = ToString(elem)
	}
	return strings.Join(parts, sep), nil
}

func arrayForEach(arr *Array, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("forEach: missing callback: %w", ErrType)
	}
	// the callback sees elements present at call time
	elems := slices.Clone(arr.elements)
	switch fn := args[0].(type) {
	case func(any, int):
		for i, elem := range elems {
			fn(elem, i)
		}
	case func(any, int) error:
		for i, elem := range elems {
			if err := fn(elem, i); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("forEach: callback must be a function, got %T: %w", args[0], ErrType)
	}
	return nil, nil
}

func arrayMap(arr *Array, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("map: missing callback: %w", ErrType)
	}
	elems := slices.Clone(arr.elements)
	ret := make([]any, len(elems))
	switch fn := args[0].(type) {
	case func(any, int) any:
		for i, elem := range elems {
			ret[i] = fn(elem, i)
		}
	case func(any, int) (any, error):
		for i, elem := range elems {
			v, err := fn(elem, i)
			if err != nil {
				return nil, err
			}
			ret[i] = v
		}
	default:
		return nil, fmt.Errorf("map: callback must be a function, got %T: %w", args[0], ErrType)
	}
	return NewArray(ret...), nil
}

func arrayFilter(arr *Array, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("filter: missing callback: %w", ErrType)
	}
	elems := slices.Clone(arr.elements)
	var ret []any
	switch fn := args[0].(type) {
	case func(any, int) bool:
		for i, elem := range elems {
			if fn(elem, i) {
				ret = append(ret, elem)
			}
		}
	case func(any, int) (bool, error):
		for i, elem := range elems {
			ok, err := fn(elem, i)
			if err != nil {
				return nil, err
			}
			if ok {
				ret = append(ret, elem)
			}
		}
	default:
		return nil, fmt.Errorf("filter: callback must be a function, got %T: %w", args[0], ErrType)
	}
	return NewArray(ret...), nil
}

// relativeIndex resolves a possibly negative index against length, clamped to [0, length].
func relativeIndex(n, length int) int {
	if n < 0 {
		return max(length+n, 0)
	}
	return min(n, length)
}

func toInt(method string, v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return clampInt(float64(v)), nil
	case uint:
		return clampInt(float64(v)), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return clampInt(float64(v)), nil
	case uint64:
		return clampInt(float64(v)), nil
	case float32:
		return clampInt(float64(v)), nil
	case float64:
		if math.IsNaN(v) {
			return 0, nil
		}
		return clampInt(v), nil
	}
	return 0, fmt.Errorf("%s: expecting integer, got %T: %w", method, v, ErrType)
}

func clampInt(f float64) int {
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// StrictEqual compares by identity for aggregates and by value for comparable scalars.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
