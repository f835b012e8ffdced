package values

import (
	"fmt"
	"math"
	"testing"
)

func TestToString(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"foo", "foo"},
		{true, "true"},
		{42, "42"},
		{int64(-1), "-1"},
		{1.5, "1.5"},
		{2.0, "2"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{NewObject(), "[object Object]"},
		{NewArray(1, nil, NewArray(2, 3)), "1,,2,3"},
	}
	for _, c := range cases {
		if got := ToString(c.value); got != c.want {
			t.Fatalf("%#v: got %q", c.value, got)
		}
	}
}

func TestFromGo(t *testing.T) {
	v := FromGo(map[string]any{
		"b": []any{1, map[string]any{"c": 2}},
		"a": 1,
		"d": []string{"x", "y"},
		"e": map[string]int{"z": 1},
	})
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("got %T", v)
	}
	if str := fmt.Sprintf("%v", obj.Keys()); str != "[a b d e]" {
		t.Fatalf("got %s", str)
	}
	arr, ok := obj.Get("b").(*Array)
	if !ok {
		t.Fatalf("got %T", obj.Get("b"))
	}
	if _, ok := arr.At(1).(*Object); !ok {
		t.Fatalf("got %T", arr.At(1))
	}
	if _, ok := obj.Get("d").(*Array); !ok {
		t.Fatalf("got %T", obj.Get("d"))
	}
	if _, ok := obj.Get("e").(*Object); !ok {
		t.Fatalf("got %T", obj.Get("e"))
	}

	back := ToGo(obj)
	if str := fmt.Sprintf("%v", back); str != "map[a:1 b:[1 map[c:2]] d:[x y] e:map[z:1]]" {
		t.Fatalf("got %s", str)
	}

	if FromGo(42) != 42 {
		t.Fatal()
	}
	if FromGo((*int)(nil)) != nil {
		t.Fatal()
	}
}

func TestToGoCycle(t *testing.T) {
	obj := NewObject()
	if err := obj.Set("self", obj); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", ToGo(obj)); str != "map[self:<nil>]" {
		t.Fatalf("got %s", str)
	}
}

func TestStrictEqual(t *testing.T) {
	obj := NewObject()
	if !StrictEqual(obj, obj) {
		t.Fatal()
	}
	if StrictEqual(NewObject(), NewObject()) {
		t.Fatal()
	}
	if StrictEqual(1, 1.0) {
		t.Fatal()
	}
	if !StrictEqual(nil, nil) {
		t.Fatal()
	}
	if StrictEqual([]int{1}, []int{1}) {
		t.Fatal()
	}
}

func TestToStringCycle(t *testing.T) {
	arr := NewArray(1)
	if _, err := arr.Push(arr, 2); err != nil {
		t.Fatal(err)
	}
	if str := ToString(arr); str != "1,,2" {
		t.Fatalf("got %s", str)
	}
}
