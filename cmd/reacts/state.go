package main

import (
	"encoding/json"
	"errors"

	"github.com/reusee/reacts/accessors"
	"github.com/reusee/reacts/configs"
	"github.com/reusee/reacts/deps"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/observers"
	"github.com/reusee/reacts/values"
)

// loadState decodes the state tree at path and observes it. A missing state
// gives an empty object, a scalar is wrapped as {"value": scalar}.
func loadState(loader configs.Loader, path string, observe observers.Observe) (any, error) {
	state, err := loader.State(path)
	if errors.Is(err, configs.ErrValueNotFound) {
		state = values.NewObject()
	} else if err != nil {
		return nil, err
	}
	if _, ok := values.IsAggregate(state); !ok {
		state = values.NewObjectFrom("value", state)
	}
	if _, err := observe(state); err != nil {
		return nil, err
	}
	return state, nil
}

// watchState logs the serialized state now and after every change.
func watchState(state any, logger logs.Logger) *deps.Effect {
	return deps.NewEffect(func() {
		// property reads while serializing register themselves, array contents do not
		if ob, ok := observers.Of(state); ok {
			ob.Dep.Depend()
			if arr, ok := state.(*values.Array); ok {
				accessors.DependArray(arr)
			}
		}
		bs, err := json.Marshal(state)
		if err != nil {
			logger.Error("marshal state", "error", err)
			return
		}
		logger.Info("state", "json", string(bs))
	})
}
