package scripts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reusee/reacts/deps"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/observers"
	"github.com/reusee/reacts/values"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// Builtins returns the functions predeclared for scripts.
type Builtins func(ctx context.Context) starlark.StringDict

func (Module) Builtins(
	observe observers.Observe,
	logger logs.Logger,
) Builtins {
	return func(ctx context.Context) starlark.StringDict {
		return starlark.StringDict{

			"observe": starlark.NewBuiltin("observe", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var arg starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg); err != nil {
					return nil, err
				}
				v, err := fromStarlark(arg)
				if err != nil {
					return nil, err
				}
				if _, err := observe(v); err != nil {
					return nil, err
				}
				return toStarlark(v), nil
			}),

			"effect": starlark.NewBuiltin("effect", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var fn starlark.Callable
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &fn); err != nil {
					return nil, err
				}
				var firstErr error
				first := true
				effect := deps.NewEffect(func() {
					_, err := starlark.Call(thread, fn, nil, nil)
					if err == nil {
						return
					}
					if first {
						firstErr = err
						return
					}
					logger.WarnContext(ctx, "effect error",
						"effect", fn.Name(),
						"error", err,
					)
				})
				first = false
				if firstErr != nil {
					effect.Stop()
					return nil, firstErr
				}
				return effectValue{effect: effect}, nil
			}),

			"log": starlarkutil.MakeFunc("log", func(msg string) {
				logger.InfoContext(ctx, msg,
					"thread", "script",
				)
			}),

			"to_json": starlark.NewBuiltin("to_json", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var arg starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg); err != nil {
					return nil, err
				}
				v, err := fromStarlark(arg)
				if err != nil {
					return nil, err
				}
				bs, err := json.Marshal(values.FromGo(v))
				if err != nil {
					return nil, err
				}
				return starlark.String(bs), nil
			}),
		}
	}
}

// effectValue is the handle returned by effect().
type effectValue struct {
	effect *deps.Effect
}

var _ starlark.HasAttrs = effectValue{}

func (e effectValue) String() string {
	return fmt.Sprintf("<effect runs=%d>", e.effect.Runs)
}

func (e effectValue) Type() string {
	return "effect"
}

func (e effectValue) Freeze() {}

func (e effectValue) Truth() starlark.Bool {
	return starlark.True
}

func (e effectValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: effect")
}

func (e effectValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "runs":
		return starlark.MakeInt(e.effect.Runs), nil
	case "stop":
		return starlark.NewBuiltin("stop", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			e.effect.Stop()
			return starlark.None, nil
		}), nil
	}
	return nil, nil
}

func (e effectValue) AttrNames() []string {
	return []string{"runs", "stop"}
}
