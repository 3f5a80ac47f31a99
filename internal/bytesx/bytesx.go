// Package bytesx encodes and decodes the fixed-width little-endian
// primitives that make up a row's on-disk representation. It is the
// single source of truth for "how many bytes does a primitive take" at
// the wire level; schema.ColumnType builds on top of it.
package bytesx

import (
	"encoding/binary"
	"fmt"
)

// InsufficientBufferError is returned when a decode call is handed fewer
// bytes than the primitive it's decoding requires.
type InsufficientBufferError struct {
	Needed int
	Got    int
}

func (e *InsufficientBufferError) Error() string {
	return fmt.Sprintf("bytesx: insufficient buffer: needed %d bytes, got %d", e.Needed, e.Got)
}

func insufficient(needed, got int) error {
	if got < needed {
		return &InsufficientBufferError{Needed: needed, Got: got}
	}
	return nil
}

// EncodeBool encodes a boolean as a single 0/1 byte.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool reads the first byte of buf as a boolean: any nonzero byte is true.
func DecodeBool(buf []byte) (bool, error) {
	if err := insufficient(1, len(buf)); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

// EncodeInt32 encodes v little-endian in 4 bytes.
func EncodeInt32(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

// DecodeInt32 reads the first 4 bytes of buf as a little-endian int32.
func DecodeInt32(buf []byte) (int32, error) {
	if err := insufficient(4, len(buf)); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

// EncodeUint32 encodes v little-endian in 4 bytes.
func EncodeUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// DecodeUint32 reads the first 4 bytes of buf as a little-endian uint32.
func DecodeUint32(buf []byte) (uint32, error) {
	if err := insufficient(4, len(buf)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// EncodeInt64 encodes v little-endian in 8 bytes.
func EncodeInt64(v int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

// DecodeInt64 reads the first 8 bytes of buf as a little-endian int64.
func DecodeInt64(buf []byte) (int64, error) {
	if err := insufficient(8, len(buf)); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

// EncodeUint64 encodes v little-endian in 8 bytes.
func EncodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// DecodeUint64 reads the first 8 bytes of buf as a little-endian uint64.
func DecodeUint64(buf []byte) (uint64, error) {
	if err := insufficient(8, len(buf)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// UUIDSize is the fixed width, in bytes, of a raw UuidV4 column.
const UUIDSize = 16

// EncodeUUID returns a copy of the 16 raw UUID bytes.
func EncodeUUID(v [UUIDSize]byte) []byte {
	out := make([]byte, UUIDSize)
	copy(out, v[:])
	return out
}

// DecodeUUID reads the first 16 bytes of buf as a raw UUID.
func DecodeUUID(buf []byte) ([UUIDSize]byte, error) {
	var out [UUIDSize]byte
	if err := insufficient(UUIDSize, len(buf)); err != nil {
		return out, err
	}
	copy(out[:], buf[:UUIDSize])
	return out, nil
}
