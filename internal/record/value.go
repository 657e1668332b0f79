package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a schemaless reading value. Incoming hardware reports numbers
// (temperatures, humidity percentages), booleans (relay states) and the
// occasional string, so the type is a tagged union over those three.
// Arrays, objects and null are rejected at the JSON boundary.
type Value struct {
	kind valueKind
	num  float64
	b    bool
	s    string
}

type valueKind uint8

const (
	valueUnset valueKind = iota
	valueNumber
	valueBool
	valueString
)

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{kind: valueNumber, num: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: valueBool, b: b} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: valueString, s: s} }

// IsSet reports whether the value carries data.
func (v Value) IsSet() bool { return v.kind != valueUnset }

// Number returns the numeric payload and whether the value is numeric.
func (v Value) Number() (float64, bool) { return v.num, v.kind == valueNumber }

// Bool returns the boolean payload and whether the value is boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == valueBool }

// String renders the payload for logs regardless of kind.
func (v Value) String() string {
	switch v.kind {
	case valueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case valueBool:
		return strconv.FormatBool(v.b)
	case valueString:
		return v.s
	default:
		return ""
	}
}

// Float coerces the value to a float64 for numeric sinks. Booleans map
// to 0/1; strings and unset values do not coerce.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case valueNumber:
		return v.num, true
	case valueBool:
		if v.b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// MarshalJSON writes the payload in its native JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueNumber:
		return json.Marshal(v.num)
	case valueBool:
		return json.Marshal(v.b)
	case valueString:
		return json.Marshal(v.s)
	default:
		return nil, fmt.Errorf("marshal: %w", ErrValueRequired)
	}
}

// UnmarshalJSON accepts a JSON number, boolean or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return ErrValueRequired
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	case '[', '{':
		return fmt.Errorf("valor must be a number, boolean or string")
	case 'n':
		return ErrValueRequired
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("valor must be a number, boolean or string")
		}
		*v = NumberValue(n)
		return nil
	}
}

// encode renders the value as JSON text for the database column.
func (v Value) encode() (string, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeValue parses a database column back into a Value.
func decodeValue(raw string) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON([]byte(raw)); err != nil {
		return Value{}, fmt.Errorf("corrupt value column %q: %w", raw, err)
	}
	return v, nil
}
