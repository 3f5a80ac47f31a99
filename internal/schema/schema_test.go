package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringDecodeBytesRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  ColumnType
		text string
	}{
		{"bool true", Boolean(), "true"},
		{"bool false", Boolean(), "false"},
		{"int32 negative", Int32(), "-42"},
		{"uint32", UInt32(), "42"},
		{"int64", Int64(), "-9223372036854775808"},
		{"uint64", UInt64(), "18446744073709551615"},
		{"byte exact fit", Byte(9), "Billy Bob"},
		{"byte shorter than width", Byte(64), "How to Sting Like a Bee"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := c.typ.ParseString(c.text)
			require.NoError(t, err)
			assert.Len(t, encoded, c.typ.SizeInBytes())

			decoded, err := c.typ.ParseBytes(encoded)
			require.NoError(t, err)
			assert.Equal(t, c.text, decoded)
		})
	}
}

func TestParseStringUUID(t *testing.T) {
	typ := UUID()
	text := "f47ac10b-58cc-4372-a567-0e02b2c3d479"

	encoded, err := typ.ParseString(text)
	require.NoError(t, err)
	assert.Len(t, encoded, 16)

	decoded, err := typ.ParseBytes(encoded)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

func TestByteOversizedValueRejected(t *testing.T) {
	typ := Byte(4)
	_, err := typ.ParseString("hello")
	require.Error(t, err)
	var oversized *OversizedByteValueError
	require.ErrorAs(t, err, &oversized)
	assert.Equal(t, 4, oversized.Width)
	assert.Equal(t, 5, oversized.Got)
}

func TestSerialIDNotInsertable(t *testing.T) {
	_, err := SerialID().ParseString("5")
	require.ErrorIs(t, err, ErrSerialIDNotInsertable)
}

func TestUnparseableInt(t *testing.T) {
	_, err := Int32().ParseString("not-a-number")
	require.Error(t, err)
	var target *UnparseableValueError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, KindInt32, target.Kind)
}
