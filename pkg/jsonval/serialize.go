package jsonval

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes the value to UTF-8 JSON bytes. Serialization is
// deterministic: object keys appear in insertion order and number
// literals are emitted verbatim.
func (v Value) Marshal() []byte {
	return v.AppendJSON(nil)
}

// AppendJSON appends the serialized value to dst and returns the
// extended slice.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.text...)
	case KindString:
		return appendQuoted(dst, v.text)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, key := range v.obj.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, key)
			dst = append(dst, ':')
			dst = v.obj.vals[i].AppendJSON(dst)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

func appendQuoted(dst []byte, s string) []byte {
	// json.Marshal cannot fail for a string.
	quoted, _ := json.Marshal(s)
	return append(dst, quoted...)
}

// From converts a Go value into a Value.
//
// Value and *Object pass through; everything else is marshaled with
// encoding/json and re-parsed, so types with custom marshalers (such
// as rpc.Amount) keep their exact wire form. Note that raw float64
// arguments go through encoding/json's float formatting; callers with
// exactness requirements should pass a Value or a custom marshaler
// instead.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Object:
		return ObjectValue(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Uint(t), nil
	case json.Number:
		return Number(t.String()), nil
	}

	data, err := json.Marshal(x)
	if err != nil {
		return Value{}, fmt.Errorf("cannot convert %T to json value: %w", x, err)
	}
	return Parse(data)
}
