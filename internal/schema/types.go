// Package schema declares the column type system, the fixed byte layout
// derived from it, and the database/table catalog. It is the single
// source of truth for per-type widths and for the text<->bytes
// transcoding used by insertion and query execution.
package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the closed tagged variant of column types a table can declare.
type Kind int

const (
	KindSerialID Kind = iota
	KindBoolean
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindUUID
	KindByte
)

func (k Kind) String() string {
	switch k {
	case KindSerialID:
		return "SerialId"
	case KindBoolean:
		return "Boolean"
	case KindInt32:
		return "Int32"
	case KindUInt32:
		return "UInt32"
	case KindInt64:
		return "Int64"
	case KindUInt64:
		return "UInt64"
	case KindUUID:
		return "UuidV4"
	case KindByte:
		return "Byte"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ColumnType is a closed tagged variant: Kind plus the only
// kind-specific parameter that exists, the declared width of a Byte(n)
// column. Width is meaningless for every other Kind.
type ColumnType struct {
	Kind  Kind
	Width int // only meaningful when Kind == KindByte
}

// Constructors. These are the only supported way to build a ColumnType;
// Byte enforces that n is positive.

func SerialID() ColumnType { return ColumnType{Kind: KindSerialID} }
func Boolean() ColumnType  { return ColumnType{Kind: KindBoolean} }
func Int32() ColumnType    { return ColumnType{Kind: KindInt32} }
func UInt32() ColumnType   { return ColumnType{Kind: KindUInt32} }
func Int64() ColumnType    { return ColumnType{Kind: KindInt64} }
func UInt64() ColumnType   { return ColumnType{Kind: KindUInt64} }
func UUID() ColumnType     { return ColumnType{Kind: KindUUID} }

// Byte declares a fixed n-byte textual column. It panics if n <= 0,
// mirroring the other constructors which can only ever produce a valid
// width; callers building column lists from user input should validate
// n before calling this.
func Byte(n int) ColumnType {
	if n <= 0 {
		panic("schema: Byte width must be positive")
	}
	return ColumnType{Kind: KindByte, Width: n}
}

// SizeInBytes returns the fixed on-disk width of the type. This is the
// single source of truth every other component (codec, row store,
// executor) relies on for offsets and row size.
func (t ColumnType) SizeInBytes() int {
	switch t.Kind {
	case KindSerialID:
		return 8
	case KindBoolean:
		return 1
	case KindInt32, KindUInt32:
		return 4
	case KindInt64, KindUInt64:
		return 8
	case KindUUID:
		return 16
	case KindByte:
		return t.Width
	default:
		return 0
	}
}

// EqualityOnly reports whether the type only supports == and != in a
// WHERE clause (Boolean, UuidV4, Byte(n)) as opposed to full ordering.
func (t ColumnType) EqualityOnly() bool {
	switch t.Kind {
	case KindBoolean, KindUUID, KindByte:
		return true
	default:
		return false
	}
}

// UnparseableValueError reports that a textual value could not be
// parsed into the declared column type.
type UnparseableValueError struct {
	Kind  Kind
	Text  string
	Cause error
}

func (e *UnparseableValueError) Error() string {
	return fmt.Sprintf("schema: could not parse %q as %s: %v", e.Text, e.Kind, e.Cause)
}

func (e *UnparseableValueError) Unwrap() error { return e.Cause }

// OversizedByteValueError reports that a textual value is longer than
// the declared width of a Byte(n) column.
type OversizedByteValueError struct {
	Width int
	Got   int
}

func (e *OversizedByteValueError) Error() string {
	return fmt.Sprintf("schema: value of %d bytes does not fit in Byte(%d)", e.Got, e.Width)
}

// ErrSerialIDNotInsertable is returned when the caller tries to supply a
// textual value for the SerialId column; the store assigns it.
var ErrSerialIDNotInsertable = fmt.Errorf("schema: cannot supply a value for a SerialId column")

// ErrInvalidUTF8 is returned when a Byte(n) column's window does not
// decode as valid UTF-8 up to its first NUL byte.
var ErrInvalidUTF8 = fmt.Errorf("schema: byte column is not valid utf-8")

// parseUUIDText parses a canonical UUID string into its 16 raw bytes
// for ParseString. It is unexported; package resolve reaches it only
// through ColumnType.ParseString.
func parseUUIDText(text string) ([16]byte, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		var zero [16]byte
		return zero, err
	}
	return [16]byte(id), nil
}
