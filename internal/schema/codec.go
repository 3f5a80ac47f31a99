package schema

import (
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"kronkdb/internal/bytesx"
)

// ParseString converts a textual value into the column's fixed-width
// byte encoding. It is the insertion-time half of the schema codec; the
// store appends whatever it returns directly as a row's column window.
func (t ColumnType) ParseString(text string) ([]byte, error) {
	switch t.Kind {
	case KindSerialID:
		return nil, ErrSerialIDNotInsertable

	case KindBoolean:
		switch text {
		case "true":
			return bytesx.EncodeBool(true), nil
		case "false":
			return bytesx.EncodeBool(false), nil
		default:
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text}
		}

	case KindInt32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text, Cause: err}
		}
		return bytesx.EncodeInt32(int32(v)), nil

	case KindUInt32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text, Cause: err}
		}
		return bytesx.EncodeUint32(uint32(v)), nil

	case KindInt64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text, Cause: err}
		}
		return bytesx.EncodeInt64(v), nil

	case KindUInt64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text, Cause: err}
		}
		return bytesx.EncodeUint64(v), nil

	case KindUUID:
		raw, err := parseUUIDText(text)
		if err != nil {
			return nil, &UnparseableValueError{Kind: t.Kind, Text: text, Cause: err}
		}
		return bytesx.EncodeUUID(raw), nil

	case KindByte:
		b := []byte(text)
		if len(b) > t.Width {
			return nil, &OversizedByteValueError{Width: t.Width, Got: len(b)}
		}
		out := make([]byte, t.Width)
		copy(out, b)
		return out, nil

	default:
		return nil, &UnparseableValueError{Kind: t.Kind, Text: text}
	}
}

// ParseBytes is the inverse of ParseString: it decodes a column's byte
// window back into its textual representation. The executor relies on
// this being the exact inverse rather than re-implementing per-type
// decoding itself.
func (t ColumnType) ParseBytes(buf []byte) (string, error) {
	switch t.Kind {
	case KindSerialID:
		v, err := bytesx.DecodeUint64(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil

	case KindBoolean:
		v, err := bytesx.DecodeBool(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil

	case KindInt32:
		v, err := bytesx.DecodeInt32(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(v), 10), nil

	case KindUInt32:
		v, err := bytesx.DecodeUint32(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case KindInt64:
		v, err := bytesx.DecodeInt64(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil

	case KindUInt64:
		v, err := bytesx.DecodeUint64(buf)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil

	case KindUUID:
		raw, err := bytesx.DecodeUUID(buf)
		if err != nil {
			return "", err
		}
		return uuid.UUID(raw).String(), nil

	case KindByte:
		if len(buf) < t.Width {
			return "", &bytesx.InsufficientBufferError{Needed: t.Width, Got: len(buf)}
		}
		window := buf[:t.Width]
		if nul := indexByte(window, 0); nul >= 0 {
			window = window[:nul]
		}
		if !utf8.Valid(window) {
			return "", ErrInvalidUTF8
		}
		return string(window), nil

	default:
		return "", &UnparseableValueError{Kind: t.Kind, Text: ""}
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
