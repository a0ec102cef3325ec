package core

import (
	"fmt"
	"strconv"
	"time"
)

// Kind enumerates the closed set of primitive kinds a Value can carry.
type Kind uint8

const (
	KindNull  Kind = iota // absent value
	KindInt               // 64-bit signed integer
	KindFloat             // 64-bit float
	KindText              // UTF-8 string
	KindBool              // boolean
	KindBlob              // raw bytes
	KindTime              // timestamp
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindBlob:
		return "blob"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind holds a numeric value. Auto-increment
// identity columns require a numeric kind.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is a tagged variant over the primitive kinds supported by the
// engine. Statement parameters, result cells, and column accessors all move
// data as Values: coercion happens when a Value is written into a field,
// validation when one is read out.
type Value struct {
	kind Kind
	n    int64
	f    float64
	s    string
	b    []byte
	t    time.Time
	ok   bool // bool payload shares no field with the others
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Int wraps a 64-bit integer.
func Int(n int64) Value { return Value{kind: KindInt, n: n} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, ok: b} }

// Blob wraps a byte slice. The slice is referenced, not copied.
func Blob(b []byte) Value { return Value{kind: KindBlob, b: b} }

// Time wraps a timestamp.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// FromAny lifts a loosely-typed value, as produced by database/sql drivers,
// into a Value. Unsupported dynamic types are an error.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case int:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case string:
		return Text(val), nil
	case bool:
		return Bool(val), nil
	case []byte:
		return Blob(val), nil
	case time.Time:
		return Time(val), nil
	case Value:
		return val, nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Len returns the length of a length-bearing value (text or blob) and true,
// or 0 and false for every other kind.
func (v Value) Len() (int, bool) {
	switch v.kind {
	case KindText:
		return len(v.s), true
	case KindBlob:
		return len(v.b), true
	default:
		return 0, false
	}
}

// Int64 coerces the value to an integer. Floats truncate, booleans map to
// 0/1, and text is parsed.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.n, nil
	case KindFloat:
		return int64(v.f), nil
	case KindBool:
		if v.ok {
			return 1, nil
		}
		return 0, nil
	case KindText:
		n, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to int: %w", v.s, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to int", v.kind)
	}
}

// Float64 coerces the value to a float.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.n), nil
	case KindText:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to float: %w", v.s, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot coerce %s to float", v.kind)
	}
}

// Text coerces the value to a string. Blobs convert byte-for-byte, numbers
// and booleans format in their canonical form.
func (v Value) Text() (string, error) {
	switch v.kind {
	case KindText:
		return v.s, nil
	case KindBlob:
		return string(v.b), nil
	case KindInt:
		return strconv.FormatInt(v.n, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(v.ok), nil
	default:
		return "", fmt.Errorf("cannot coerce %s to text", v.kind)
	}
}

// Bool coerces the value to a boolean. Integers map zero/non-zero, text
// parses "true"/"false"/"0"/"1".
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.ok, nil
	case KindInt:
		return v.n != 0, nil
	case KindText:
		b, err := strconv.ParseBool(v.s)
		if err != nil {
			return false, fmt.Errorf("cannot coerce %q to bool: %w", v.s, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot coerce %s to bool", v.kind)
	}
}

// Bytes coerces the value to a byte slice.
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBlob:
		return v.b, nil
	case KindText:
		return []byte(v.s), nil
	default:
		return nil, fmt.Errorf("cannot coerce %s to bytes", v.kind)
	}
}

// Timestamp coerces the value to a time.Time. Text parses as RFC 3339,
// integers are treated as Unix seconds.
func (v Value) Timestamp() (time.Time, error) {
	switch v.kind {
	case KindTime:
		return v.t, nil
	case KindText:
		t, err := time.Parse(time.RFC3339, v.s)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot coerce %q to time: %w", v.s, err)
		}
		return t, nil
	case KindInt:
		return time.Unix(v.n, 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("cannot coerce %s to time", v.kind)
	}
}

// Any unwraps the value into the loosely-typed form expected by
// database/sql parameter binding.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.n
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.ok
	case KindBlob:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// Equal reports whether two values share a kind and payload. Blob values
// compare by content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.n == o.n
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBool:
		return v.ok == o.ok
	case KindTime:
		return v.t.Equal(o.t)
	case KindBlob:
		if len(v.b) != len(o.b) {
			return false
		}
		for i := range v.b {
			if v.b[i] != o.b[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer for logging.
func (v Value) String() string {
	if v.kind == KindNull {
		return "NULL"
	}
	s, err := v.Text()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return s
}
