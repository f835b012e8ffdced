package observers

import (
	"slices"

	"github.com/reusee/reacts/values"
)

var mutatingMethods = []string{
	"push",
	"pop",
	"unshift",
	"shift",
	"splice",
	"sort",
	"reverse",
}

// MutatingMethods returns the names of the array methods that change contents
// or length in place.
func MutatingMethods() []string {
	return slices.Clone(mutatingMethods)
}

// built once at package initialization, read-only afterwards
var interceptedMethods *values.MethodTable

func init() {
	interceptedMethods = newInterceptedMethods()
}

func newInterceptedMethods() *values.MethodTable {
	table := &values.MethodTable{
		Parent:  values.ArrayPrototype,
		Methods: make(map[string]values.Method, len(mutatingMethods)),
	}
	for _, name := range mutatingMethods {
		native, ok := values.ArrayPrototype.Lookup(name)
		if !ok {
			panic("no native array method " + name)
		}
		table.Methods[name] = func(arr *values.Array, args ...any) (any, error) {
			ret, err := native(arr, args...)
			if err != nil {
				return ret, err
			}
			if ob, ok := arr.Marker().(*Observer); ok {
				ob.arrayMutated(arr, name, args)
			}
			return ret, nil
		}
	}
	return table
}

// InterceptedMethods returns the table shared by every observed array. It
// holds exactly MutatingMethods and falls through to values.ArrayPrototype.
// The table is process-wide: callers must not modify it.
func InterceptedMethods() *values.MethodTable {
	return interceptedMethods
}

// BindArray makes mutating methods of arr resolve through InterceptedMethods.
// Other arrays and values.ArrayPrototype are unaffected.
func BindArray(arr *values.Array) {
	arr.SetProto(interceptedMethods)
}
