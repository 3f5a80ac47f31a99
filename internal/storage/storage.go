// Package storage defines the row store contract shared by the
// in-memory and file-backed variants: a polymorphic, append-only byte
// stream keyed by insertion order, with a single-threaded concurrency
// model (see package memstore and package filestore).
package storage

import (
	"fmt"
	"io"

	"kronkdb/internal/schema"
)

// Store is the one contract both row store variants implement.
// Insert appends a new row and returns the id assigned to it. Scan
// opens a forward-only, non-restartable reader positioned at the
// first row; rows are yielded in insertion order, concatenated, with
// no framing.
type Store interface {
	Insert(descriptor *schema.TableDescriptor, columns []schema.ColumnValue) (uint64, error)
	Scan() (io.ReadCloser, error)
}

// InvalidRowSizeError reports that an encoded row did not match the
// table's declared row_size. GetInsertionBytes always returns exactly
// row_size bytes, so this should be unreachable; Insert checks it anyway.
type InvalidRowSizeError struct {
	Expected int
	Got      int
}

func (e *InvalidRowSizeError) Error() string {
	return fmt.Sprintf("storage: encoded row is %d bytes, expected %d", e.Got, e.Expected)
}

// IOError wraps an underlying filesystem failure from the file-backed
// variant.
type IOError struct {
	Op    string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }
