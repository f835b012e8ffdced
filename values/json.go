package values

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCyclic is returned when serializing a value that contains itself.
var ErrCyclic = errors.New("cyclic value")

// encodeJSON writes v to buf. Objects and Arrays are walked here rather than
// through json.Marshal, so revisits are seen across nesting levels.
func encodeJSON(buf *bytes.Buffer, v any, visiting map[Aggregate]bool) error {
	switch v := v.(type) {

	case *Object:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		if visiting[v] {
			return fmt.Errorf("encode object: %w", ErrCyclic)
		}
		visiting[v] = true
		defer delete(visiting, v)
		buf.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := encodeJSON(buf, v.Get(key), visiting); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		buf.WriteByte('}')
		return nil

	case *Array:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		if visiting[v] {
			return fmt.Errorf("encode array: %w", ErrCyclic)
		}
		visiting[v] = true
		defer delete(visiting, v)
		buf.WriteByte('[')
		for i, elem := range v.elements {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, elem, visiting); err != nil {
				return fmt.Errorf("%d: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil

	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(bs)
	return nil
}

func marshalJSON(v Aggregate) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := encodeJSON(buf, v, make(map[Aggregate]bool)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
