package observers

import (
	"fmt"

	"github.com/reusee/dscope"
	"github.com/reusee/reacts/configs"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/values"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

// ArrayMode decides whether existing elements are observed together with their array.
type ArrayMode string

const (
	ArrayModeLazy  ArrayMode = "lazy"
	ArrayModeEager ArrayMode = "eager"
)

func (Module) ArrayMode(
	loader configs.Loader,
) ArrayMode {
	switch mode := configs.First[ArrayMode](loader, "array_mode"); mode {
	case "":
		return ArrayModeLazy
	case ArrayModeLazy, ArrayModeEager:
		return mode
	default:
		panic(fmt.Errorf("invalid array_mode: %s", mode))
	}
}

// KeyScope decides which keys the object walk converts.
type KeyScope string

const (
	// own and inherited enumerable keys
	KeyScopeInherited KeyScope = "inherited"
	// own enumerable keys
	KeyScopeOwn KeyScope = "own"
)

func (Module) KeyScope(
	loader configs.Loader,
) KeyScope {
	switch scope := configs.First[KeyScope](loader, "key_scope"); scope {
	case "":
		return KeyScopeInherited
	case KeyScopeInherited, KeyScopeOwn:
		return scope
	default:
		panic(fmt.Errorf("invalid key_scope: %s", scope))
	}
}

// DefineTrackedAccessor turns key of obj into an accessor whose reads are
// tracked and whose writes notify. Values written through the accessor must be
// passed to observe before anything reads them back.
type DefineTrackedAccessor func(obj *values.Object, key string, initial any, observe Observe) error

// Observe returns the Observer of value, creating it on first call. Values
// other than objects and arrays, nil included, give nil without error.
type Observe func(value any) (*Observer, error)

func (Module) Observe(
	define DefineTrackedAccessor,
	arrayMode ArrayMode,
	keyScope KeyScope,
	logger logs.Logger,
) Observe {
	o := &observation{
		define:    define,
		arrayMode: arrayMode,
		keyScope:  keyScope,
		logger:    logger,
	}
	return o.observe
}
