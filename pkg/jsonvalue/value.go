// Package jsonvalue models untyped JSON payloads as an explicit tagged union.
// It is used for request parameters, response bodies and error payloads alike.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a JSON value. The zero Value is JSON null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  Object
}

// Object maps string keys to JSON values. It doubles as the request
// parameter bag.
type Object map[string]Value

func NullValue() Value { return Value{} }
func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func ArrayValue(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue wraps o as a Value. A nil map becomes an empty object.
func ObjectValue(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// String returns the string stored under key, if present and string-typed.
func (o Object) String(key string) (string, bool) {
	val, ok := o[key]
	if !ok {
		return "", false
	}
	return val.AsString()
}

// Keys returns the object keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

// Equal reports whether both objects hold equal values under the same keys.
func (o Object) Equal(other Object) bool {
	if len(o) != len(other) {
		return false
	}
	for k, val := range o {
		ov, ok := other[k]
		if !ok || !val.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the legacy default string representation used for query
// items. Strings are returned verbatim; nested containers use a debug form
// (["key": value], [a, b]) that is not valid JSON.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	default:
		var sb strings.Builder
		v.writeDebug(&sb)
		return sb.String()
	}
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("<null>")
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindNumber:
		sb.WriteString(formatNumber(v.num))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeDebug(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		if len(v.obj) == 0 {
			sb.WriteString("[:]")
			return
		}
		sb.WriteByte('[')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			v.obj[k].writeDebug(sb)
		}
		sb.WriteByte(']')
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// From converts native Go values (as produced by encoding/json or written
// by hand) into a Value.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case Object:
		return ObjectValue(t), nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return NumberValue(float64(t)), nil
	case int32:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parse number %q: %w", t.String(), err)
		}
		return NumberValue(n), nil
	case []any:
		items := make([]Value, len(t))
		for i, raw := range t {
			item, err := From(raw)
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return ArrayValue(items...), nil
	case map[string]any:
		obj := make(Object, len(t))
		for k, raw := range t {
			item, err := From(raw)
			if err != nil {
				return Value{}, err
			}
			obj[k] = item
		}
		return ObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("unsupported json value type %T", x)
	}
}

// native converts v back into the shapes encoding/json understands.
func (v Value) native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.native()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.native()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as canonical JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// UnmarshalJSON decodes any JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := From(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Encode serializes v to JSON bytes.
func Encode(v Value) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses data as a single JSON document. Anything that does not
// decode cleanly, including an empty body, is reported as absent.
func Decode(data []byte) (Value, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, false
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return Value{}, false
	}

	v, err := From(raw)
	if err != nil {
		return Value{}, false
	}
	return v, true
}
