package accessors

import (
	"github.com/reusee/dscope"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/observers"
)

// Module provides the tracked accessor used by observers.Walk. It composes
// observers.Module, so a scope built from it is a complete engine.
type Module struct {
	dscope.Module
	Observers observers.Module
	Logs      logs.Module
}
