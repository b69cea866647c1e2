package types

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
)

// Kind discriminates the variants of a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a schema-less JSON value. The zero Value is null.
//
// Numbers keep their textual form so that large integers such as byte
// counts survive decoding without float rounding.
type Value struct {
	kind Kind
	b    bool
	num  string
	str  string
	arr  []Value
	obj  Object
}

// Object is a JSON object keyed by member name
type Object map[string]Value

// codec decodes numbers as json.Number so integer fields stay exact
var codec = sonic.Config{UseNumber: true}.Froze()

// Null returns the null value
func Null() Value { return Value{} }

// Bool wraps a boolean
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer
func Int(n int64) Value { return Value{kind: KindNumber, num: strconv.FormatInt(n, 10)} }

// Float wraps a floating point number
func Float(f float64) Value {
	return Value{kind: KindNumber, num: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Array wraps a sequence of values
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue wraps an object
func ObjectValue(o Object) Value { return Value{kind: KindObject, obj: o} }

// Kind returns the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether v holds one
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string and whether v holds one
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns v as an integer. Fractional numbers are truncated.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if n, err := strconv.ParseInt(v.num, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v.num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// AsFloat returns v as a float64
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.num, 64)
	return f, err == nil
}

// AsArray returns the elements and whether v is an array
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the members and whether v is an object
func (v Value) AsObject() (Object, bool) { return v.obj, v.kind == KindObject }

// Text renders scalars the way they appear in a form field or query string.
// Arrays and objects render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Interface converts v back to plain Go values (map[string]interface{},
// []interface{}, json.Number, string, bool, nil)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.num)
	case KindString:
		return v.str
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		return v.obj.Interface()
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return codec.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := codec.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromInterface converts decoded JSON or ordinary Go scalars into a Value
func FromInterface(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Value{kind: KindNumber, num: x.String()}, nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint32:
		return Int(int64(x)), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			parsed, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = parsed
		}
		return Array(items...), nil
	case []string:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = String(item)
		}
		return Array(items...), nil
	case map[string]interface{}:
		obj, err := ObjectFromMap(x)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	case Object:
		return ObjectValue(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// ObjectFromMap converts a decoded JSON object
func ObjectFromMap(m map[string]interface{}) (Object, error) {
	obj := make(Object, len(m))
	for k, raw := range m {
		parsed, err := FromInterface(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		obj[k] = parsed
	}
	return obj, nil
}

// ParseObject decodes a JSON document whose top level must be an object
func ParseObject(data []byte) (Object, error) {
	var raw map[string]interface{}
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return Object{}, nil
	}
	return ObjectFromMap(raw)
}

// Get returns the member named key
func (o Object) Get(key string) (Value, bool) {
	v, ok := o[key]
	return v, ok
}

// String returns the string member or "" when absent or not a string
func (o Object) String(key string) string {
	s, _ := o[key].AsString()
	return s
}

// Int returns the numeric member as an integer, or 0
func (o Object) Int(key string) int64 {
	n, _ := o[key].AsInt()
	return n
}

// Float returns the numeric member as a float64, or 0
func (o Object) Float(key string) float64 {
	f, _ := o[key].AsFloat()
	return f
}

// Bool returns the boolean member, or false
func (o Object) Bool(key string) bool {
	b, _ := o[key].AsBool()
	return b
}

// Array returns the array member, or nil
func (o Object) Array(key string) []Value {
	arr, _ := o[key].AsArray()
	return arr
}

// Object returns the nested object member, or nil
func (o Object) Object(key string) Object {
	obj, _ := o[key].AsObject()
	return obj
}

// Strings returns the string elements of an array member
func (o Object) Strings(key string) []string {
	arr := o.Array(key)
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Keys returns the member names in sorted order
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts o to map[string]interface{}
func (o Object) Interface() map[string]interface{} {
	out := make(map[string]interface{}, len(o))
	for k, v := range o {
		out[k] = v.Interface()
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (o Object) MarshalJSON() ([]byte, error) {
	return codec.Marshal(o.Interface())
}
