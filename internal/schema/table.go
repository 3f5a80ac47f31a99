package schema

import (
	"fmt"

	"kronkdb/internal/bytesx"
)

// ColumnSpec is the user-supplied (name, type) pair TableDescriptor is
// built from; Offset is always derived, never user-supplied.
type ColumnSpec struct {
	Name string
	Type ColumnType
}

// TableColumn is a declared column together with its derived byte
// offset within a row.
type TableColumn struct {
	Name   string
	Type   ColumnType
	Offset int
}

// TableDescriptor is the canonical byte layout for a table: the ordered
// column sequence, left-to-right, is the on-disk row format. Reordering
// columns changes the format.
type TableDescriptor struct {
	Name    string
	Columns []TableColumn
	RowSize int
}

// MissingSerialIDError reports that a table declaration did not have
// exactly one SerialId column.
type MissingSerialIDError struct {
	Count int
}

func (e *MissingSerialIDError) Error() string {
	return fmt.Sprintf("schema: table must declare exactly one SerialId column, found %d", e.Count)
}

// DuplicateColumnError reports a repeated column name within one table.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("schema: duplicate column name %q", e.Name)
}

// NewTableDescriptor computes the layout for a new table: offsets are a
// left-to-right prefix sum over the declared columns, and row_size is
// the sum of every column's width. It fails if the column list does not
// declare exactly one SerialId column, or if a name repeats.
func NewTableDescriptor(name string, specs []ColumnSpec) (*TableDescriptor, error) {
	seen := make(map[string]struct{}, len(specs))
	serialCount := 0
	columns := make([]TableColumn, 0, len(specs))
	offset := 0

	for _, spec := range specs {
		if _, dup := seen[spec.Name]; dup {
			return nil, &DuplicateColumnError{Name: spec.Name}
		}
		seen[spec.Name] = struct{}{}

		if spec.Type.Kind == KindSerialID {
			serialCount++
		}

		columns = append(columns, TableColumn{
			Name:   spec.Name,
			Type:   spec.Type,
			Offset: offset,
		})
		offset += spec.Type.SizeInBytes()
	}

	if serialCount != 1 {
		return nil, &MissingSerialIDError{Count: serialCount}
	}

	return &TableDescriptor{Name: name, Columns: columns, RowSize: offset}, nil
}

// IDColumn returns the table's single SerialId column. Callers may rely
// on it always being present: NewTableDescriptor enforces that
// invariant at construction time.
func (d *TableDescriptor) IDColumn() *TableColumn {
	for i := range d.Columns {
		if d.Columns[i].Type.Kind == KindSerialID {
			return &d.Columns[i]
		}
	}
	return nil
}

// ColumnForName performs the linear search over a table's columns that
// the catalog contract specifies; first match wins (names are unique,
// so there is never more than one).
func (d *TableDescriptor) ColumnForName(name string) (*TableColumn, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// ColumnValue is a (column name, textual value) pair as supplied by a
// caller to Insert.
type ColumnValue struct {
	Name string
	Text string
}

// UnknownColumnError reports a column name in an insertion that the
// table does not declare.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("schema: unknown column %q", e.Name)
}

// GetInsertionBytes builds the row_size-byte row for id and the
// supplied column values: for each declared column in schema order it
// writes the supplied textual value, the supplied serial id, or
// zero-fill if no value was supplied. An unknown column name in
// columns is rejected rather than silently ignored.
func (d *TableDescriptor) GetInsertionBytes(id uint64, columns []ColumnValue) ([]byte, error) {
	supplied := make(map[string]string, len(columns))
	for _, c := range columns {
		supplied[c.Name] = c.Text
	}
	for _, c := range columns {
		if _, ok := d.ColumnForName(c.Name); !ok {
			return nil, &UnknownColumnError{Name: c.Name}
		}
	}

	out := make([]byte, 0, d.RowSize)
	for _, col := range d.Columns {
		if col.Type.Kind == KindSerialID {
			out = append(out, bytesx.EncodeUint64(id)...)
			continue
		}

		if text, ok := supplied[col.Name]; ok {
			encoded, err := col.Type.ParseString(text)
			if err != nil {
				return nil, &EncodingError{Column: col.Name, Cause: err}
			}
			out = append(out, encoded...)
		} else {
			out = append(out, make([]byte, col.Type.SizeInBytes())...)
		}
	}

	return out, nil
}

// EncodingError wraps a per-column ParseString failure with the
// offending column's name, matching the §7 SchemaError taxonomy.
type EncodingError struct {
	Column string
	Cause  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("schema: column %q: %v", e.Column, e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }
