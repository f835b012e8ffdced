package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/reacts/accessors"
	"github.com/reusee/reacts/logs"
	"go.starlark.net/syntax"
)

type Module struct {
	dscope.Module
	Accessors accessors.Module
	Logs      logs.Module
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}
