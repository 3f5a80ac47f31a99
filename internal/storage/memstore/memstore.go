// Package memstore is the in-memory row store variant: an extensible
// byte vector with no durability, scoped to a single table.
package memstore

import (
	"bytes"
	"io"

	"kronkdb/internal/schema"
	"kronkdb/internal/storage"
)

// Store is a single table's row data held entirely in memory. It
// implements storage.Store. The zero value is not usable; use New.
type Store struct {
	descriptor *schema.TableDescriptor
	buf        []byte
	nextID     uint64
}

// New returns an empty in-memory store for the given table.
func New(descriptor *schema.TableDescriptor) *Store {
	return &Store{descriptor: descriptor}
}

var _ storage.Store = (*Store)(nil)

// Insert encodes columns against descriptor (the argument, not the
// descriptor the store was created with) and appends the resulting
// row to the byte vector, assigning it the next sequential id.
func (s *Store) Insert(descriptor *schema.TableDescriptor, columns []schema.ColumnValue) (uint64, error) {
	id := s.nextID

	row, err := descriptor.GetInsertionBytes(id, columns)
	if err != nil {
		return 0, err
	}
	if len(row) != descriptor.RowSize {
		return 0, &storage.InvalidRowSizeError{Expected: descriptor.RowSize, Got: len(row)}
	}

	s.buf = append(s.buf, row...)
	s.nextID = id + 1
	return id, nil
}

// Scan returns a forward-only reader over the store's current
// contents, in insertion order. The returned reader is a snapshot: it
// is unaffected by inserts that happen after Scan returns.
func (s *Store) Scan() (io.ReadCloser, error) {
	snapshot := make([]byte, len(s.buf))
	copy(snapshot, s.buf)
	return io.NopCloser(bytes.NewReader(snapshot)), nil
}
