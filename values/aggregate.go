package values

import "errors"

// Aggregate is a value that carries a metadata slot. The slot is not a
// property: it is never enumerated nor serialized.
type Aggregate interface {
	Marker() any
	SetMarker(marker any) error
}

var (
	ErrNotExtensible   = errors.New("value is not extensible")
	ErrNotConfigurable = errors.New("property is not configurable")
	ErrReadOnly        = errors.New("property has no setter")
	ErrNoMethod        = errors.New("no such method")
	ErrType            = errors.New("type error")
)

// IsAggregate reports whether v can carry a marker. Typed nil pointers are not aggregates.
func IsAggregate(v any) (Aggregate, bool) {
	switch v := v.(type) {
	case *Object:
		if v == nil {
			return nil, false
		}
		return v, true
	case *Array:
		if v == nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}
