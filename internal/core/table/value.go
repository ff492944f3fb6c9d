package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Value is a single cell. The zero Value is Null, the explicit absence marker.
// Absent values are never coerced to zero implicitly; callers that want a
// zero default must ask for it (see Float64Or).
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// Null is the absence marker.
var Null = Value{}

func String(s string) Value  { return Value{kind: KindString, s: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// StringPtr returns Null for a nil pointer.
func StringPtr(s *string) Value {
	if s == nil {
		return Null
	}
	return String(*s)
}

// IntPtr returns Null for a nil pointer.
func IntPtr(i *int64) Value {
	if i == nil {
		return Null
	}
	return Int(*i)
}

// FloatPtr returns Null for a nil pointer or NaN.
func FloatPtr(f *float64) Value {
	if f == nil || math.IsNaN(*f) {
		return Null
	}
	return Float(*f)
}

// FromAny converts a decoded JSON scalar into a Value.
// JSON numbers arrive as float64; integral ones become Int.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		if val {
			return Int(1)
		}
		return Int(0)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		if f, err := val.Float64(); err == nil {
			return Float(f)
		}
		return String(val.String())
	case time.Time:
		return Time(val)
	}
	return Null
}

func fromFloat(f float64) Value {
	if math.IsNaN(f) {
		return Null
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f))
	}
	return Float(f)
}

// Text returns the string content, or "" when the value is not a string.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Int64 returns the value as an integer. Floats are truncated; numeric strings are parsed.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	case KindString:
		if i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

// Float64 returns the value as a float. Numeric strings are parsed.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Float64Or returns the numeric value or def when the value is absent or not numeric.
func (v Value) Float64Or(def float64) float64 {
	if f, ok := v.Float64(); ok {
		return f
	}
	return def
}

// Timestamp returns the time held by a Time value, or parses a string value.
func (v Value) Timestamp() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindString:
		return ParseTimestamp(v.s)
	case KindInt:
		if v.i > 0 {
			return time.Unix(v.i, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes produced by the APIs and by CSV
// round-trips: RFC3339 variants, plain dates, and unix seconds.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}

// String renders the value for delimited text output. Null renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindTime:
		return v.t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// MarshalJSON encodes Null as JSON null and times as RFC3339 strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.f)
	case KindTime:
		return json.Marshal(v.t.UTC().Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON; timestamps come back as strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// Parse infers a Value from delimited text. Empty text is Null. Numbers are
// only recognised when they round-trip exactly and are finite, so identifiers
// with leading zeros and words like "NaN" stay strings.
func Parse(s string) Value {
	if s == "" {
		return Null
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		strconv.FormatFloat(f, 'f', -1, 64) == s {
		return Float(f)
	}
	return String(s)
}

// AsText returns v re-typed as a string. Null stays Null.
func (v Value) AsText() Value {
	if v.kind == KindNull || v.kind == KindString {
		return v
	}
	return String(v.String())
}
