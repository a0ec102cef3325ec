package core

// Pointer helpers for optional (nullable) record fields.

func StringPtr(s string) *string {
	return &s
}

func Int64Ptr(i int64) *int64 {
	return &i
}

func BoolPtr(b bool) *bool {
	return &b
}

// NullableText maps an optional string field to a Value, using Null for the
// nil pointer.
func NullableText(s *string) Value {
	if s == nil {
		return Null()
	}
	return Text(*s)
}

// NullableInt maps an optional integer field to a Value.
func NullableInt(i *int64) Value {
	if i == nil {
		return Null()
	}
	return Int(*i)
}
