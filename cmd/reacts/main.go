package main

import (
	"context"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/reacts/cmds"
	"github.com/reusee/reacts/configs"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/modes"
	"github.com/reusee/reacts/observers"
	"github.com/reusee/reacts/scripts"
	"github.com/reusee/reacts/vars"
)

var (
	configFiles = cmds.Collect[string]("config")
	statePath   = cmds.Var[string]("state")
	scriptPath  = cmds.Var[string]("run")
	tapFlag     = cmds.Switch("tap")
)

func main() {
	cmds.Execute(os.Args[1:])
	if *scriptPath == "" && !*tapFlag {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(1)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		dscope.Provide(configs.Files(*configFiles)),
	)

	scope.Call(run)
}

func run(
	logger logs.Logger,
	loader configs.Loader,
	observe observers.Observe,
	runScript scripts.RunScript,
	tap scripts.Tap,
) {
	ctx := context.Background()

	state, err := loadState(loader, vars.FirstNonZero(*statePath, "state"), observe)
	ce(err)

	effect := watchState(state, logger)
	defer effect.Stop()

	globals := map[string]any{
		"state": state,
	}

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		ce(err)
		_, err = runScript(ctx, *scriptPath, src, globals)
		ce(err)
	}

	if *tapFlag {
		tap(ctx, "state", globals)
	}

	logger.Info("done", "state changes", effect.Runs-1)
}
