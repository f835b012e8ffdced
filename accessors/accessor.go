package accessors

import (
	"github.com/reusee/reacts/deps"
	"github.com/reusee/reacts/logs"
	"github.com/reusee/reacts/observers"
	"github.com/reusee/reacts/values"
)

func (Module) DefineTrackedAccessor(
	logger logs.Logger,
) observers.DefineTrackedAccessor {
	return func(obj *values.Object, key string, initial any, observe observers.Observe) error {
		existing, isOwn := obj.OwnProperty(key)
		if isOwn && !existing.Configurable {
			return nil
		}

		var getter func() any
		var setter func(any)
		enumerable := true
		if isOwn {
			enumerable = existing.Enumerable
			if existing.IsAccessor() {
				getter = existing.Get
				setter = existing.Set
			}
		}

		value := initial
		dep := deps.NewDep()

		read := func() any {
			if getter != nil {
				return getter()
			}
			return value
		}

		observeLogged := func(v any) *observers.Observer {
			ob, err := observe(v)
			if err != nil {
				logger.Warn("observe property value",
					"key", key,
					"error", err,
				)
			}
			return ob
		}

		prop := values.Property{
			Get: func() any {
				v := read()
				child := observeLogged(v)
				if deps.CurrentTarget() != nil {
					dep.Depend()
					if child != nil {
						child.Dep.Depend()
						if arr, ok := v.(*values.Array); ok {
							DependArray(arr)
						}
					}
				}
				return v
			},
			Enumerable:   enumerable,
			Configurable: true,
		}

		// a getter without setter stays read-only
		if getter == nil || setter != nil {
			prop.Set = func(newValue any) {
				if values.StrictEqual(read(), newValue) {
					return
				}
				if setter != nil {
					setter(newValue)
				} else {
					value = newValue
				}
				observeLogged(newValue)
				dep.Notify()
			}
		}

		return obj.Define(key, prop)
	}
}

// DependArray registers the Deps of observed elements of arr with the current
// target, nested arrays included, since element reads do not pass through
// accessors. The Dep of arr itself is not registered.
func DependArray(arr *values.Array) {
	dependArray(arr, make(map[*values.Array]bool))
}

func dependArray(arr *values.Array, seen map[*values.Array]bool) {
	if seen[arr] {
		return
	}
	seen[arr] = true
	for _, elem := range arr.All() {
		ob, ok := observers.Of(elem)
		if !ok {
			continue
		}
		ob.Dep.Depend()
		if inner, ok := elem.(*values.Array); ok {
			dependArray(inner, seen)
		}
	}
}
