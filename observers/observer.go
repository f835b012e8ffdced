package observers

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/reusee/e5"
	"github.com/reusee/reacts/deps"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/values"
)

// ErrConfiguration is returned when a value cannot carry the observer marker.
var ErrConfiguration = errors.New("configuration error")

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type observation struct {
	define    DefineTrackedAccessor
	arrayMode ArrayMode
	keyScope  KeyScope
	logger    logs.Logger
}

// Observer is the observation state attached to one object or array.
type Observer struct {
	ID    uuid.UUID
	Value values.Aggregate
	// notified after each intercepted array mutation
	Dep *deps.Dep

	observation *observation
}

// Of returns the Observer attached to v, if any.
func Of(v any) (*Observer, bool) {
	agg, ok := values.IsAggregate(v)
	if !ok {
		return nil, false
	}
	ob, ok := agg.Marker().(*Observer)
	return ob, ok
}

func (o *observation) observe(value any) (*Observer, error) {
	agg, ok := values.IsAggregate(value)
	if !ok {
		return nil, nil
	}
	if ob, ok := agg.Marker().(*Observer); ok {
		return ob, nil
	}

	ob := &Observer{
		ID:          uuid.New(),
		Value:       agg,
		Dep:         deps.NewDep(),
		observation: o,
	}
	if err := agg.SetMarker(ob); err != nil {
		return nil, wrap(fmt.Errorf("%w: %w", ErrConfiguration, err))
	}

	var err error
	var prevProto *values.MethodTable
	switch v := agg.(type) {
	case *values.Array:
		prevProto = v.Proto()
		BindArray(v)
		// existing elements are left alone unless configured otherwise
		if o.arrayMode == ArrayModeEager {
			err = ob.ObserveArray(v)
		}
		if err == nil {
			o.logger.Debug("observe array",
				"observer", ob.ID,
				"length", v.Len(),
				"mode", o.arrayMode,
			)
		}
	case *values.Object:
		err = ob.Walk(v)
		if err == nil {
			o.logger.Debug("observe object",
				"observer", ob.ID,
				"keys", v.Len(),
			)
		}
	}
	if err != nil {
		// a marked value must be fully observed
		_ = agg.SetMarker(nil)
		if arr, ok := agg.(*values.Array); ok {
			arr.SetProto(prevProto)
		}
		return nil, err
	}

	return ob, nil
}

// Walk converts every enumerable key of obj into a tracked accessor. Nested
// values are not visited.
func (ob *Observer) Walk(obj *values.Object) error {
	var keys []string
	if ob.observation.keyScope == KeyScopeOwn {
		keys = obj.Keys()
	} else {
		keys = slices.Collect(obj.ForIn())
	}
	for _, key := range keys {
		if err := ob.observation.define(obj, key, obj.Get(key), ob.observation.observe); err != nil {
			return fmt.Errorf("walk %s: %w", key, err)
		}
	}
	return nil
}

// ObserveArray observes every element of arr.
func (ob *Observer) ObserveArray(arr *values.Array) error {
	for i, elem := range arr.Elements() {
		if _, err := ob.observation.observe(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Observe is the entry point the Observer was created with.
func (ob *Observer) Observe(value any) (*Observer, error) {
	return ob.observation.observe(value)
}

func (ob *Observer) arrayMutated(arr *values.Array, method string, args []any) {
	var inserted []any
	switch method {
	case "push", "unshift":
		inserted = args
	case "splice":
		if len(args) > 2 {
			inserted = args[2:]
		}
	}
	for _, elem := range inserted {
		if _, err := ob.observation.observe(elem); err != nil {
			ob.observation.logger.Warn("observe inserted element",
				"observer", ob.ID,
				"method", method,
				"error", err,
			)
		}
	}
	ob.observation.logger.Debug("array mutation",
		"observer", ob.ID,
		"method", method,
		"length", arr.Len(),
	)
	ob.Dep.Notify()
}
