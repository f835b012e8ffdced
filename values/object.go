package values

import (
	"fmt"
	"iter"
	"slices"
)

// Property is a named slot of an Object. It is an accessor when Get or Set is
// non-nil, a data slot otherwise.
type Property struct {
	Value        any
	Get          func() any
	Set          func(any)
	Enumerable   bool
	Configurable bool
}

func (p *Property) IsAccessor() bool {
	return p.Get != nil || p.Set != nil
}

func (p *Property) read() any {
	if p.IsAccessor() {
		if p.Get == nil {
			return nil
		}
		return p.Get()
	}
	return p.Value
}

// Object is a plain keyed aggregate. Lookups fall through Proto.
type Object struct {
	Proto  *Object
	keys   []string
	props  map[string]*Property
	marker any
	sealed bool
}

var _ Aggregate = new(Object)

func NewObject() *Object {
	return &Object{
		props: make(map[string]*Property),
	}
}

// NewObjectFrom builds an object from key value pairs, keeping argument order.
func NewObjectFrom(kvs ...any) *Object {
	if len(kvs)%2 != 0 {
		panic(fmt.Errorf("odd number of key value arguments"))
	}
	o := NewObject()
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Errorf("key must be string, got %T", kvs[i]))
		}
		o.add(key, &Property{
			Value:        kvs[i+1],
			Enumerable:   true,
			Configurable: true,
		})
	}
	return o
}

func (o *Object) add(key string, prop *Property) {
	if o.props == nil {
		o.props = make(map[string]*Property)
	}
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = prop
}

func (o *Object) Marker() any {
	return o.marker
}

func (o *Object) SetMarker(marker any) error {
	if o.sealed && o.marker == nil {
		return fmt.Errorf("set marker: %w", ErrNotExtensible)
	}
	o.marker = marker
	return nil
}

func (o *Object) PreventExtensions() {
	o.sealed = true
}

func (o *Object) IsExtensible() bool {
	return !o.sealed
}

func (o *Object) findProperty(key string) *Property {
	for obj := o; obj != nil; obj = obj.Proto {
		if prop, ok := obj.props[key]; ok {
			return prop
		}
	}
	return nil
}

// Lookup reads key from the object or its prototype chain.
func (o *Object) Lookup(key string) (any, bool) {
	prop := o.findProperty(key)
	if prop == nil {
		return nil, false
	}
	return prop.read(), true
}

func (o *Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

// Set assigns key. An accessor found anywhere on the chain receives the
// value; otherwise the value lands in an own data slot.
func (o *Object) Set(key string, value any) error {
	prop := o.findProperty(key)
	if prop != nil && prop.IsAccessor() {
		if prop.Set == nil {
			return fmt.Errorf("set %s: %w", key, ErrReadOnly)
		}
		prop.Set(value)
		return nil
	}
	if own, ok := o.props[key]; ok {
		own.Value = value
		return nil
	}
	if o.sealed {
		return fmt.Errorf("set %s: %w", key, ErrNotExtensible)
	}
	o.add(key, &Property{
		Value:        value,
		Enumerable:   true,
		Configurable: true,
	})
	return nil
}

// Define installs or replaces an own property.
func (o *Object) Define(key string, prop Property) error {
	if existing, ok := o.props[key]; ok {
		if !existing.Configurable {
			return fmt.Errorf("define %s: %w", key, ErrNotConfigurable)
		}
		*existing = prop
		return nil
	}
	if o.sealed {
		return fmt.Errorf("define %s: %w", key, ErrNotExtensible)
	}
	o.add(key, &prop)
	return nil
}

// OwnProperty returns a copy of the own property descriptor.
func (o *Object) OwnProperty(key string) (Property, bool) {
	prop, ok := o.props[key]
	if !ok {
		return Property{}, false
	}
	return *prop, true
}

func (o *Object) HasOwn(key string) bool {
	_, ok := o.props[key]
	return ok
}

func (o *Object) Has(key string) bool {
	return o.findProperty(key) != nil
}

func (o *Object) Delete(key string) bool {
	prop, ok := o.props[key]
	if !ok {
		return true
	}
	if !prop.Configurable {
		return false
	}
	delete(o.props, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool {
		return k == key
	})
	return true
}

// Keys returns own enumerable keys in insertion order.
func (o *Object) Keys() []string {
	ret := make([]string, 0, len(o.keys))
	for _, key := range o.keys {
		if o.props[key].Enumerable {
			ret = append(ret, key)
		}
	}
	return ret
}

// ForIn yields enumerable keys of the object and then of each prototype, each
// name at most once. A non-enumerable own property still shadows inherited ones.
func (o *Object) ForIn() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for obj := o; obj != nil; obj = obj.Proto {
			for _, key := range obj.keys {
				if seen[key] {
					continue
				}
				seen[key] = true
				if !obj.props[key].Enumerable {
					continue
				}
				if !yield(key) {
					return
				}
			}
		}
	}
}

func (o *Object) Len() int {
	return len(o.Keys())
}

// MarshalJSON encodes own enumerable properties. A value reachable from
// itself gives ErrCyclic.
func (o *Object) MarshalJSON() ([]byte, error) {
	return marshalJSON(o)
}

func (o *Object) String() string {
	return ToString(o)
}
