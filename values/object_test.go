package values

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestObjectGetSet(t *testing.T) {
	obj := NewObjectFrom("a", 1, "b", "foo")
	if v := obj.Get("a"); v != 1 {
		t.Fatalf("got %v", v)
	}
	if err := obj.Set("a", 2); err != nil {
		t.Fatal(err)
	}
	if v := obj.Get("a"); v != 2 {
		t.Fatalf("got %v", v)
	}
	if err := obj.Set("c", true); err != nil {
		t.Fatal(err)
	}
	if keys := fmt.Sprintf("%v", obj.Keys()); keys != "[a b c]" {
		t.Fatalf("got %s", keys)
	}
	if _, ok := obj.Lookup("nope"); ok {
		t.Fatal()
	}
}

func TestObjectAccessor(t *testing.T) {
	obj := NewObject()
	var stored any = 1
	var reads, writes int
	if err := obj.Define("x", Property{
		Get: func() any {
			reads++
			return stored
		},
		Set: func(v any) {
			writes++
			stored = v
		},
		Enumerable:   true,
		Configurable: true,
	}); err != nil {
		t.Fatal(err)
	}
	if v := obj.Get("x"); v != 1 {
		t.Fatalf("got %v", v)
	}
	if err := obj.Set("x", 42); err != nil {
		t.Fatal(err)
	}
	if reads != 1 || writes != 1 || stored != 42 {
		t.Fatalf("got %v %v %v", reads, writes, stored)
	}

	// accessor without setter
	if err := obj.Define("y", Property{
		Get: func() any {
			return 0
		},
		Configurable: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := obj.Set("y", 1); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("got %v", err)
	}
}

func TestObjectNotExtensible(t *testing.T) {
	obj := NewObjectFrom("a", 1)
	obj.PreventExtensions()
	if obj.IsExtensible() {
		t.Fatal()
	}
	if err := obj.Set("a", 2); err != nil {
		t.Fatal(err)
	}
	if err := obj.Set("b", 2); !errors.Is(err, ErrNotExtensible) {
		t.Fatalf("got %v", err)
	}
	if err := obj.Define("b", Property{}); !errors.Is(err, ErrNotExtensible) {
		t.Fatalf("got %v", err)
	}
	if err := obj.SetMarker("foo"); !errors.Is(err, ErrNotExtensible) {
		t.Fatalf("got %v", err)
	}
}

func TestObjectNotConfigurable(t *testing.T) {
	obj := NewObject()
	if err := obj.Define("a", Property{Value: 1, Enumerable: true}); err != nil {
		t.Fatal(err)
	}
	if err := obj.Define("a", Property{Value: 2}); !errors.Is(err, ErrNotConfigurable) {
		t.Fatalf("got %v", err)
	}
	if obj.Delete("a") {
		t.Fatal()
	}
	if err := obj.Set("a", 3); err != nil {
		t.Fatal(err)
	}
	if v := obj.Get("a"); v != 3 {
		t.Fatalf("got %v", v)
	}
}

func TestObjectForIn(t *testing.T) {
	base := NewObjectFrom("inherited", 1, "shadowed", 2)
	if err := base.Define("hidden", Property{Value: 3}); err != nil {
		t.Fatal(err)
	}
	obj := NewObjectFrom("own", 4, "shadowed", 5)
	obj.Proto = base

	keys := slices.Collect(obj.ForIn())
	if str := fmt.Sprintf("%v", keys); str != "[own shadowed inherited]" {
		t.Fatalf("got %s", str)
	}
	if str := fmt.Sprintf("%v", obj.Keys()); str != "[own shadowed]" {
		t.Fatalf("got %s", str)
	}
	if v := obj.Get("shadowed"); v != 5 {
		t.Fatalf("got %v", v)
	}
	if v := obj.Get("inherited"); v != 1 {
		t.Fatalf("got %v", v)
	}

	// non-enumerable own property hides the inherited one from enumeration
	if err := obj.Define("inherited", Property{Value: 6, Configurable: true}); err != nil {
		t.Fatal(err)
	}
	keys = slices.Collect(obj.ForIn())
	if str := fmt.Sprintf("%v", keys); str != "[own shadowed]" {
		t.Fatalf("got %s", str)
	}
}

func TestObjectMarkerInvisible(t *testing.T) {
	obj := NewObjectFrom("a", 1)
	if err := obj.SetMarker("marker"); err != nil {
		t.Fatal(err)
	}
	if obj.Marker() != "marker" {
		t.Fatal()
	}
	bs, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != `{"a":1}` {
		t.Fatalf("got %s", bs)
	}
	if str := fmt.Sprintf("%v", slices.Collect(obj.ForIn())); str != "[a]" {
		t.Fatalf("got %s", str)
	}
	// writable
	if err := obj.SetMarker("other"); err != nil {
		t.Fatal(err)
	}
	if obj.Marker() != "other" {
		t.Fatal()
	}
}

func TestObjectDelete(t *testing.T) {
	obj := NewObjectFrom("a", 1, "b", 2)
	if !obj.Delete("a") {
		t.Fatal()
	}
	if obj.HasOwn("a") || obj.Has("a") {
		t.Fatal()
	}
	if str := fmt.Sprintf("%v", obj.Keys()); str != "[b]" {
		t.Fatalf("got %s", str)
	}
	if !obj.Delete("not-exists") {
		t.Fatal()
	}
}

func TestIsAggregate(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"int", 1, false},
		{"string", "foo", false},
		{"map", map[string]any{}, false},
		{"object", NewObject(), true},
		{"array", NewArray(), true},
		{"nil object", (*Object)(nil), false},
		{"nil array", (*Array)(nil), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := IsAggregate(c.value); ok != c.want {
				t.Fatalf("got %v", ok)
			}
		})
	}
}

func TestObjectJSONCycle(t *testing.T) {
	obj := NewObjectFrom("a", 1)
	if err := obj.Set("self", obj); err != nil {
		t.Fatal(err)
	}
	if _, err := json.Marshal(obj); !errors.Is(err, ErrCyclic) {
		t.Fatalf("got %v", err)
	}

	// through an accessor and an array
	inner := NewObject()
	if err := inner.Define("back", Property{
		Get: func() any {
			return NewArray(obj)
		},
		Enumerable: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := obj.Set("self", inner); err != nil {
		t.Fatal(err)
	}
	if _, err := obj.MarshalJSON(); !errors.Is(err, ErrCyclic) {
		t.Fatalf("got %v", err)
	}
}
