package values

import (
	"fmt"
	"iter"
	"slices"
)

// Array is an ordered aggregate. Method calls resolve through a per-instance
// MethodTable, ArrayPrototype when unset.
type Array struct {
	elements []any
	proto    *MethodTable
	marker   any
	sealed   bool
}

var _ Aggregate = new(Array)

func NewArray(elements ...any) *Array {
	return &Array{
		elements: elements,
	}
}

func (a *Array) Marker() any {
	return a.marker
}

func (a *Array) SetMarker(marker any) error {
	if a.sealed && a.marker == nil {
		return fmt.Errorf("set marker: %w", ErrNotExtensible)
	}
	a.marker = marker
	return nil
}

func (a *Array) PreventExtensions() {
	a.sealed = true
}

func (a *Array) IsExtensible() bool {
	return !a.sealed
}

// Proto returns the table method calls resolve through.
func (a *Array) Proto() *MethodTable {
	if a.proto == nil {
		return ArrayPrototype
	}
	return a.proto
}

// SetProto rebinds method resolution of this instance only. nil restores ArrayPrototype.
func (a *Array) SetProto(table *MethodTable) {
	a.proto = table
}

func (a *Array) Len() int {
	return len(a.elements)
}

func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.elements) {
		return nil
	}
	return a.elements[i]
}

// SetAt writes an element in place. Writes past the end grow the array with nils.
func (a *Array) SetAt(i int, v any) error {
	if i < 0 {
		return fmt.Errorf("index %d: %w", i, ErrType)
	}
	if i >= len(a.elements) {
		if a.sealed {
			return fmt.Errorf("index %d: %w", i, ErrNotExtensible)
		}
		a.elements = append(a.elements, make([]any, i+1-len(a.elements))...)
	}
	a.elements[i] = v
	return nil
}

// Elements returns a copy of the elements.
func (a *Array) Elements() []any {
	return slices.Clone(a.elements)
}

func (a *Array) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range a.elements {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Call invokes a method by name through the instance's method table.
func (a *Array) Call(name string, args ...any) (any, error) {
	method, ok := a.Proto().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoMethod)
	}
	return method(a, args...)
}

func (a *Array) callInt(name string, args ...any) (int, error) {
	ret, err := a.Call(name, args...)
	if err != nil {
		return 0, err
	}
	n, ok := ret.(int)
	if !ok {
		return 0, fmt.Errorf("%s returned %T: %w", name, ret, ErrType)
	}
	return n, nil
}

func (a *Array) callArray(name string, args ...any) (*Array, error) {
	ret, err := a.Call(name, args...)
	if err != nil {
		return nil, err
	}
	arr, ok := ret.(*Array)
	if !ok {
		return nil, fmt.Errorf("%s returned %T: %w", name, ret, ErrType)
	}
	return arr, nil
}

func (a *Array) Push(items ...any) (int, error) {
	return a.callInt("push", items...)
}

func (a *Array) Pop() (any, error) {
	return a.Call("pop")
}

func (a *Array) Shift() (any, error) {
	return a.Call("shift")
}

func (a *Array) Unshift(items ...any) (int, error) {
	return a.callInt("unshift", items...)
}

func (a *Array) Splice(start int, deleteCount int, items ...any) (*Array, error) {
	return a.callArray("splice", append([]any{start, deleteCount}, items...)...)
}

// Sort sorts in place. A nil compare orders by string form with nils last.
func (a *Array) Sort(compare func(x, y any) int) (*Array, error) {
	if compare == nil {
		return a.callArray("sort")
	}
	return a.callArray("sort", compare)
}

func (a *Array) Reverse() (*Array, error) {
	return a.callArray("reverse")
}

func (a *Array) Slice(start, end int) (*Array, error) {
	return a.callArray("slice", start, end)
}

func (a *Array) Concat(others ...any) (*Array, error) {
	return a.callArray("concat", others...)
}

func (a *Array) IndexOf(v any) (int, error) {
	return a.callInt("indexOf", v)
}

func (a *Array) Includes(v any) (bool, error) {
	ret, err := a.Call("includes", v)
	if err != nil {
		return false, err
	}
	b, _ := ret.(bool)
	return b, nil
}

func (a *Array) Join(sep string) (string, error) {
	ret, err := a.Call("join", sep)
	if err != nil {
		return "", err
	}
	s, _ := ret.(string)
	return s, nil
}

func (a *Array) ForEach(fn func(elem any, index int)) error {
	_, err := a.Call("forEach", fn)
	return err
}

func (a *Array) Map(fn func(elem any, index int) any) (*Array, error) {
	return a.callArray("map", fn)
}

func (a *Array) Filter(fn func(elem any, index int) bool) (*Array, error) {
	return a.callArray("filter", fn)
}

func (a *Array) MarshalJSON() ([]byte, error) {
	return marshalJSON(a)
}

func (a *Array) String() string {
	return ToString(a)
}
