package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{name: "nil", input: nil, expected: Null()},
		{name: "int", input: 7, expected: Int(7)},
		{name: "int64", input: int64(7), expected: Int(7)},
		{name: "float64", input: 1.5, expected: Float(1.5)},
		{name: "string", input: "x", expected: Text("x")},
		{name: "bool", input: true, expected: Bool(true)},
		{name: "bytes", input: []byte("ab"), expected: Blob([]byte("ab"))},
		{name: "time", input: now, expected: Time(now)},
		{name: "value passes through", input: Int(3), expected: Int(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(v))
		})
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
}

func TestValue_Coercions(t *testing.T) {
	n, err := Text("42").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = Float(3.9).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = Bool(true).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	f, err := Int(2).Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	s, err := Int(7).Text()
	require.NoError(t, err)
	assert.Equal(t, "7", s)

	s, err = Blob([]byte("hi")).Text()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	b, err := Int(1).Bool()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = Text("false").Bool()
	require.NoError(t, err)
	assert.False(t, b)

	bs, err := Text("hi").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), bs)

	ts, err := Int(0).Timestamp()
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).UTC(), ts)
}

func TestValue_CoercionFailures(t *testing.T) {
	_, err := Text("abc").Int64()
	assert.Error(t, err)
	_, err = Null().Int64()
	assert.Error(t, err)
	_, err = Bool(true).Float64()
	assert.Error(t, err)
	_, err = Null().Text()
	assert.Error(t, err)
	_, err = Float(1.0).Bool()
	assert.Error(t, err)
	_, err = Int(1).Bytes()
	assert.Error(t, err)
}

func TestValue_Len(t *testing.T) {
	length, ok := Text("hello").Len()
	assert.True(t, ok)
	assert.Equal(t, 5, length)

	length, ok = Blob([]byte{1, 2}).Len()
	assert.True(t, ok)
	assert.Equal(t, 2, length)

	_, ok = Int(5).Len()
	assert.False(t, ok)
}

func TestValue_Any(t *testing.T) {
	assert.Equal(t, int64(7), Int(7).Any())
	assert.Equal(t, "x", Text("x").Any())
	assert.Nil(t, Null().Any())
}

func TestKind_Numeric(t *testing.T) {
	assert.True(t, KindInt.Numeric())
	assert.True(t, KindFloat.Numeric())
	assert.False(t, KindText.Numeric())
	assert.False(t, KindBool.Numeric())
	assert.False(t, KindNull.Numeric())
}
