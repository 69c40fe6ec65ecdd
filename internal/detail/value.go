package detail

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindNumber represents a numeric value.
	KindNumber
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
	// KindObject represents a nested object value.
	KindObject
)

// Value is an explicitly tagged variant for metadata fields. Field sets are
// not fixed at build time, so records carry an open mapping of name to Value.
//
// Object members keep insertion order; the panel renders them in that order
// and the JSON form must be stable across a serialize/parse round trip.
type Value struct {
	Kind Kind
	F64  float64
	Str  string
	B    bool
	Arr  []Value
	Obj  []Member
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, F64: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Array returns an array value.
func Array(elems ...Value) Value { return Value{Kind: KindArray, Arr: elems} }

// Object returns an object value with members in the given order.
func Object(members ...Member) Value { return Value{Kind: KindObject, Obj: members} }

// IsNull reports whether the value is null (or invalid, which is treated as
// null so that a malformed field degrades instead of aborting a render).
func (v Value) IsNull() bool { return v.Kind == KindNull || v.Kind == KindInvalid }

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// AsNumber returns the numeric value if Kind is KindNumber.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.F64, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// FromAny converts an arbitrary cell value into a tagged Value. Unknown types
// degrade to their fmt string form rather than failing.
func FromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case []Value:
		return Array(v...)
	case []any:
		elems := make([]Value, len(v))
		for i := range v {
			elems[i] = FromAny(v[i])
		}
		return Array(elems...)
	case []string:
		elems := make([]Value, len(v))
		for i := range v {
			elems[i] = String(v[i])
		}
		return Array(elems...)
	case []float64:
		elems := make([]Value, len(v))
		for i := range v {
			elems[i] = Number(v[i])
		}
		return Array(elems...)
	case map[string]any:
		// Go maps have no order; sort keys for a deterministic artifact.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: FromAny(v[k])}
		}
		return Object(members...)
	default:
		return String(fmt.Sprint(v))
	}
}

// Text returns the plain text form of the value: strings as-is, numbers and
// booleans formatted, arrays joined with ", ", objects as compact JSON.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return formatNumber(v.F64)
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindArray:
		parts := make([]string, len(v.Arr))
		for i := range v.Arr {
			parts[i] = v.Arr[i].Text()
		}
		return strings.Join(parts, ", ")
	case KindObject:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// MarshalJSON emits the plain untagged JSON form of the value.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(v.F64, 'g', -1, 64))
	case KindString:
		data, err := gojson.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.B))
	case KindArray:
		buf.WriteByte('[')
		for i := range v.Arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.Arr[i].appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := gojson.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// UnmarshalJSON parses the plain JSON form, preserving object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func decodeValue(dec *gojson.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *gojson.Decoder, tok gojson.Token) (Value, error) {
	switch t := tok.(type) {
	case gojson.Delim:
		switch t {
		case '[':
			var elems []Value
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Value{}, err
			}
			return Array(elems...), nil
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("detail: object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Value{}, err
			}
			return Object(members...), nil
		default:
			return Value{}, fmt.Errorf("detail: unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case gojson.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("detail: unexpected token %v", tok)
	}
}
