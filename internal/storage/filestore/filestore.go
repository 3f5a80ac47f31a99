// Package filestore is the file-backed row store variant: one file per
// table under a fixed root directory, with a 64-byte header holding
// the next id to assign followed by concatenated fixed-size rows.
//
// Layout:
//
//	offset 0 .. 8   : id_counter (u64, little-endian) -- next id to assign
//	offset 8 .. 64  : reserved, zero-filled (header padding)
//	offset 64 ..    : concatenated fixed-size rows
package filestore

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"kronkdb/internal/schema"
	"kronkdb/internal/storage"
)

const (
	headerSize = 64
	counterLen = 8
)

// DefaultRootDir is the directory persisted tables live under when the
// caller doesn't override it.
const DefaultRootDir = ".kronkstore"

// Store is a single table's file-backed row store. It assumes
// sole-writer access to its table file for the lifetime of the
// Database instance that owns it (see package engine); concurrent
// writers are not supported.
type Store struct {
	path string
}

var _ storage.Store = (*Store)(nil)

// Open returns the file-backed store for tableName under rootDir,
// creating the directory and a zeroed 64-byte header if the file does
// not already exist. rootDir is typically DefaultRootDir joined with
// "tables".
func Open(rootDir, tableName string) (*Store, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, &storage.IOError{Op: "mkdir " + rootDir, Cause: err}
	}

	path := filepath.Join(rootDir, tableName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, &storage.IOError{Op: "create " + path, Cause: err}
		}
		if _, err := f.Write(make([]byte, headerSize)); err != nil {
			f.Close()
			return nil, &storage.IOError{Op: "write header " + path, Cause: err}
		}
		if err := f.Close(); err != nil {
			return nil, &storage.IOError{Op: "close " + path, Cause: err}
		}
	} else if err != nil {
		return nil, &storage.IOError{Op: "stat " + path, Cause: err}
	}

	return &Store{path: path}, nil
}

// Insert reads the current id_counter from the header, encodes the row
// via descriptor, appends it to the end of the file, and rewrites the
// counter -- all under one file handle held for the duration of the
// call. A failed row or counter write truncates the file back to its
// length before the append, so either the full row and the advanced
// counter both land or neither does.
func (s *Store) Insert(descriptor *schema.TableDescriptor, columns []schema.ColumnValue) (uint64, error) {
	f, err := os.OpenFile(s.path, os.O_RDWR, 0o644)
	if err != nil {
		return 0, &storage.IOError{Op: "open " + s.path, Cause: err}
	}
	defer f.Close()

	id, err := readCounter(f)
	if err != nil {
		return 0, err
	}

	row, err := descriptor.GetInsertionBytes(id, columns)
	if err != nil {
		return 0, err
	}
	if len(row) != descriptor.RowSize {
		return 0, &storage.InvalidRowSizeError{Expected: descriptor.RowSize, Got: len(row)}
	}

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, &storage.IOError{Op: "seek end " + s.path, Cause: err}
	}
	if _, err := f.Write(row); err != nil {
		_ = f.Truncate(end)
		return 0, &storage.IOError{Op: "write row " + s.path, Cause: err}
	}

	if err := writeCounter(f, id+1); err != nil {
		_ = f.Truncate(end)
		return 0, err
	}

	return id, nil
}

// Scan opens the table file for read, seeks past the header, and
// returns a forward-only reader over the rows.
func (s *Store) Scan() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &storage.IOError{Op: "open " + s.path, Cause: err}
	}
	if _, err := f.Seek(headerSize, io.SeekStart); err != nil {
		f.Close()
		return nil, &storage.IOError{Op: "seek header " + s.path, Cause: err}
	}
	return f, nil
}

func readCounter(f *os.File) (uint64, error) {
	var buf [counterLen]byte
	if _, err := f.ReadAt(buf[:], 0); err != nil {
		return 0, &storage.IOError{Op: "read counter", Cause: err}
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeCounter(f *os.File, next uint64) error {
	var buf [counterLen]byte
	binary.LittleEndian.PutUint64(buf[:], next)
	if _, err := f.WriteAt(buf[:], 0); err != nil {
		return &storage.IOError{Op: "write counter", Cause: err}
	}
	return nil
}
