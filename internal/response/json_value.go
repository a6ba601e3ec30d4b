package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is a decoded JSON value held without empty interfaces.
type Value struct {
	Kind   Kind
	String string
	Number float64
	Bool   bool
	Object map[string]Value
	Array  []Value
}

// UnmarshalJSON decodes a JSON value into the typed tree.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty json value")
	}
	switch trimmed[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = KindObject
		v.Object = make(map[string]Value, len(raw))
		for key, value := range raw {
			var child Value
			if err := json.Unmarshal(value, &child); err != nil {
				return err
			}
			v.Object[key] = child
		}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = KindArray
		v.Array = make([]Value, 0, len(raw))
		for _, value := range raw {
			var child Value
			if err := json.Unmarshal(value, &child); err != nil {
				return err
			}
			v.Array = append(v.Array, child)
		}
		return nil
	case '"':
		v.Kind = KindString
		return json.Unmarshal(trimmed, &v.String)
	case 't', 'f':
		v.Kind = KindBool
		return json.Unmarshal(trimmed, &v.Bool)
	case 'n':
		if string(trimmed) != "null" {
			return fmt.Errorf("invalid json literal")
		}
		v.Kind = KindNull
		return nil
	default:
		v.Kind = KindNumber
		return json.Unmarshal(trimmed, &v.Number)
	}
}

// Field returns a member of an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	child, ok := v.Object[name]
	return child, ok
}

// FirstField returns the first member present among names.
func (v Value) FirstField(names ...string) (Value, bool) {
	for _, name := range names {
		if child, ok := v.Field(name); ok && child.Kind != KindNull {
			return child, true
		}
	}
	return Value{}, false
}

// Text renders scalar values as trimmed text. Objects, arrays and null
// yield false.
func (v Value) Text() (string, bool) {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.String), true
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.Bool), true
	default:
		return "", false
	}
}

// Float reads a number, accepting numeric strings and percentages.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Number, true
	case KindString:
		text := strings.TrimSpace(v.String)
		percent := strings.HasSuffix(text, "%")
		text = strings.TrimSuffix(text, "%")
		number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0, false
		}
		if percent {
			number /= 100
		}
		return number, true
	default:
		return 0, false
	}
}
