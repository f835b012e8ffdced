package scripts

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/reacts/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap starts an interactive session over globals and the builtins. It returns
// when input ends.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	builtins Builtins,
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := builtins(ctx)
		for name, value := range globals {
			mappings[name] = toStarlark(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, mappings)
	}
}
