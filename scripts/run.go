package scripts

import (
	"context"

	"github.com/reusee/reacts/logs"
	"go.starlark.net/starlark"
)

// RunScript executes a script with globals and the builtins predeclared, and
// returns its global bindings.
type RunScript func(ctx context.Context, filename string, src any, globals map[string]any) (starlark.StringDict, error)

func (Module) RunScript(
	builtins Builtins,
	newSpan logs.NewSpan,
	logger logs.Logger,
) RunScript {
	return func(ctx context.Context, filename string, src any, globals map[string]any) (starlark.StringDict, error) {
		ctx, span := newSpan(ctx, "")
		logger.InfoContext(ctx, "run script", "file", filename)

		predeclared := builtins(ctx)
		for name, value := range globals {
			predeclared[name] = toStarlark(value)
		}

		thread := &starlark.Thread{
			Name: string(span),
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, msg, "file", filename)
			},
		}
		stop := context.AfterFunc(ctx, func() {
			thread.Cancel(context.Cause(ctx).Error())
		})
		defer stop()

		ret, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, predeclared)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		return ret, nil
	}
}
