package scripts

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/reacts/configs"
	"github.com/reusee/reacts/modes"
	"github.com/reusee/reacts/observers"
	"github.com/reusee/reacts/values"
	"go.starlark.net/starlark"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, configs.Schema)
		},
	)
}

func elements(t *testing.T, v starlark.Value) string {
	arr, ok := v.(arrayValue)
	if !ok {
		t.Fatalf("got %s", v.Type())
	}
	return fmt.Sprintf("%v", arr.arr.Elements())
}

func TestScriptEffects(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		ret, err := run(t.Context(), "effects.star", `
state = observe({"count": 0, "name": "foo"})
seen = []
def watch():
    seen.append(state.count)
e = effect(watch)
state.count = 1
state.count = 1
state.count += 1
state["name"] = "bar"
runs = e.runs
e.stop()
state.count = 10
`, nil)
		if err != nil {
			t.Fatal(err)
		}
		if str := ret["seen"].String(); str != "[0, 1, 2]" {
			t.Fatalf("got %s", str)
		}
		if str := ret["runs"].String(); str != "3" {
			t.Fatalf("got %s", str)
		}
		obj := ret["state"].(objectValue).obj
		if _, ok := observers.Of(obj); !ok {
			t.Fatal()
		}
		if obj.Get("name") != "bar" || obj.Get("count") != 10 {
			t.Fatalf("got %v", obj)
		}
	})
}

func TestScriptArrayMutations(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		ret, err := run(t.Context(), "arrays.star", `
state = observe({"items": []})
lengths = []
effect(lambda: lengths.append(len(state.items)))
state.items.push(1)
n = state.items.push(2, 3)
removed = state.items.splice(0, 1)
first = state.items[0]
copied = state.items.slice(0)
total = 0
for x in state.items:
    total += x
`, nil)
		if err != nil {
			t.Fatal(err)
		}
		if str := ret["lengths"].String(); str != "[0, 1, 3, 2]" {
			t.Fatalf("got %s", str)
		}
		if str := ret["n"].String(); str != "3" {
			t.Fatalf("got %s", str)
		}
		if str := elements(t, ret["removed"]); str != "[1]" {
			t.Fatalf("got %s", str)
		}
		if str := ret["first"].String(); str != "2" {
			t.Fatalf("got %s", str)
		}
		if str := ret["total"].String(); str != "5" {
			t.Fatalf("got %s", str)
		}
		copied := ret["copied"].(arrayValue).arr
		if _, ok := observers.Of(copied); ok {
			t.Fatal()
		}
		items := ret["state"].(objectValue).obj.Get("items").(*values.Array)
		if items.Proto() != observers.InterceptedMethods() {
			t.Fatal()
		}
	})
}

func TestScriptCallbacks(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		ret, err := run(t.Context(), "callbacks.star", `
arr = observe([3, 1, 2])
arr.sort(lambda a, b: a - b)
doubled = arr.map(lambda x: x * 2)
big = arr.filter(lambda x, i: x > 1 and i > 0)
indexes = []
arr.forEach(lambda x, i: indexes.append(i))
joined = arr.join("-")
`, nil)
		if err != nil {
			t.Fatal(err)
		}
		if str := elements(t, ret["arr"]); str != "[1 2 3]" {
			t.Fatalf("got %s", str)
		}
		if str := elements(t, ret["doubled"]); str != "[2 4 6]" {
			t.Fatalf("got %s", str)
		}
		if str := elements(t, ret["big"]); str != "[2 3]" {
			t.Fatalf("got %s", str)
		}
		if str := ret["indexes"].String(); str != "[0, 1, 2]" {
			t.Fatalf("got %s", str)
		}
		if str := ret["joined"].String(); str != `"1-2-3"` {
			t.Fatalf("got %s", str)
		}
	})
}

func TestScriptToJSON(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		ret, err := run(t.Context(), "json.star", `
state = observe({"a": 1, "b": [1, "x", None]})
s = to_json(state)
`, nil)
		if err != nil {
			t.Fatal(err)
		}
		s, _ := starlark.AsString(ret["s"])
		if s != `{"a":1,"b":[1,"x",null]}` {
			t.Fatalf("got %s", s)
		}
	})
}

func TestScriptToJSONCycle(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		_, err := run(t.Context(), "cycle.star", `
state = observe({"a": 1})
state.self = state
s = to_json(state)
`, nil)
		if err == nil || !strings.Contains(err.Error(), "cyclic value") {
			t.Fatalf("got %v", err)
		}

		ret, err := run(t.Context(), "shared.star", `
shared = [1]
state = observe({"x": shared, "y": shared})
s = to_json(state)
`, nil)
		if err != nil {
			t.Fatal(err)
		}
		s, _ := starlark.AsString(ret["s"])
		if s != `{"x":[1],"y":[1]}` {
			t.Fatalf("got %s", s)
		}
	})
}

func TestScriptGlobals(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
		observe observers.Observe,
	) {
		state := values.NewObjectFrom("v", 41)
		if _, err := observe(state); err != nil {
			t.Fatal(err)
		}
		ret, err := run(t.Context(), "globals.star", `
state.v = state.v + 1
keys = [k for k in state]
log("updated")
`, map[string]any{
			"state": state,
		})
		if err != nil {
			t.Fatal(err)
		}
		if state.Get("v") != 42 {
			t.Fatalf("got %v", state.Get("v"))
		}
		if str := ret["keys"].String(); str != `["v"]` {
			t.Fatalf("got %s", str)
		}
	})
}

func TestScriptErrors(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		_, err := run(t.Context(), "fail.star", `fail("boom")`, nil)
		if err == nil || !strings.Contains(err.Error(), "boom") {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("got %v", err)
		}

		_, err = run(t.Context(), "effect.star", `
def bad():
    fail("in effect")
effect(bad)
`, nil)
		if err == nil || !strings.Contains(err.Error(), "in effect") {
			t.Fatalf("got %v", err)
		}

		_, err = run(t.Context(), "method.star", `
arr = observe([1])
arr.nope()
`, nil)
		if err == nil || !strings.Contains(err.Error(), "nope") {
			t.Fatalf("got %v", err)
		}

		_, err = run(t.Context(), "keys.star", `observe({1: 2})`, nil)
		if err == nil {
			t.Fatal()
		}
	})
}

func TestScriptCancel(t *testing.T) {
	testScope(t).Call(func(
		run RunScript,
	) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := run(ctx, "loop.star", `
while True:
    pass
`, nil)
		if err == nil {
			t.Fatal()
		}
	})
}

func TestTap(t *testing.T) {
	testScope(t).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestToStarlark(t *testing.T) {
	type testStruct struct {
		Exported   string
		unexported int
	}

	cases := []struct {
		input any
		want  string
	}{
		{nil, "None"},
		{true, "True"},
		{"foo", `"foo"`},
		{int8(42), "42"},
		{uint32(42), "42"},
		{1.5, "1.5"},
		{(*testStruct)(nil), "None"},
		{map[int]bool{1: true}, "{1: True}"},
	}
	for _, c := range cases {
		if got := toStarlark(c.input).String(); got != c.want {
			t.Fatalf("%#v: got %s", c.input, got)
		}
	}

	obj, ok := toStarlark(&testStruct{Exported: "x", unexported: 1}).(objectValue)
	if !ok {
		t.Fatal()
	}
	if str := fmt.Sprintf("%v", obj.obj.Keys()); str != "[Exported]" {
		t.Fatalf("got %s", str)
	}
	if _, ok := toStarlark([]int{1, 2}).(arrayValue); !ok {
		t.Fatal()
	}
	if _, ok := toStarlark(map[string]any{"a": 1}).(objectValue); !ok {
		t.Fatal()
	}
}
