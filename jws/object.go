package jws

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Object is a JSON object used for the JOSE header and the payload.
//
// Numbers are kept as json.Number when parsed, so that an Object
// serializes back to the same bytes it was parsed from.
type Object map[string]any

// ParseObject parses a JSON object
func ParseObject(raw []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, errors.Wrapf(ErrParse, "failed to parse object: %s", err.Error())
	}
	if obj == nil {
		return nil, errors.Wrap(ErrParse, "not an object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrParse, "unexpected data after object")
	}
	return obj, nil
}

// Marshal returns JSON encoding of the object with sorted keys
func (o Object) Marshal() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(map[string]any(o))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal object")
	}
	return raw, nil
}

// Clone returns a deep copy of the object.
// Nested maps and slices are copied, other values are assigned.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	c := make(Object, len(o))
	for k, v := range o {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case Object:
		return val.Clone()
	case map[string]any:
		return map[string]any(Object(val).Clone())
	case []any:
		if val == nil {
			return val
		}
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = cloneValue(item)
		}
		return list
	}

	return cloneReflect(reflect.ValueOf(v)).Interface()
}

// cloneReflect copies typed maps and slices, such as []string or map[string]int
func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), cloneElem(iter.Value(), v.Type().Elem()))
		}
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			c.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return c
	default:
		return v
	}
}

func cloneElem(v reflect.Value, typ reflect.Type) reflect.Value {
	if typ.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(typ)
		}
		return reflect.ValueOf(cloneValue(v.Interface()))
	}
	return cloneReflect(v)
}
