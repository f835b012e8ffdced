package values

import (
	"maps"
	"slices"
)

type Method func(arr *Array, args ...any) (any, error)

// MethodTable maps method names to implementations. Names missing from
// Methods resolve through Parent.
type MethodTable struct {
	Parent  *MethodTable
	Methods map[string]Method
}

func (t *MethodTable) Lookup(name string) (Method, bool) {
	for table := t; table != nil; table = table.Parent {
		if method, ok := table.Methods[name]; ok {
			return method, true
		}
	}
	return nil, false
}

// Owns reports whether name is defined on t itself rather than on a parent.
func (t *MethodTable) Owns(name string) bool {
	_, ok := t.Methods[name]
	return ok
}

// Names returns every resolvable method name, sorted.
func (t *MethodTable) Names() []string {
	set := make(map[string]bool)
	for table := t; table != nil; table = table.Parent {
		for name := range table.Methods {
			set[name] = true
		}
	}
	return slices.Sorted(maps.Keys(set))
}
