package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"kronkdb/internal/query/resolve"
	"kronkdb/internal/schema"
)

// ResultRow is one projected output row: the SerialId and, for each
// projected column, its decoded text value.
type ResultRow struct {
	ID          uint64
	Projections []Projection
}

// Projection is one (column_name, text_value) pair in a result row.
type Projection struct {
	Name string
	Text string
}

// CorruptStoreError reports that the executor read fewer than
// row_size bytes before EOF, or failed to decode a column. A decode
// failure on any row is fatal for the query; the executor does not
// skip rows.
type CorruptStoreError struct {
	Table string
	Cause error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("engine: corrupt store for table %q: %v", e.Table, e.Cause)
}

func (e *CorruptStoreError) Unwrap() error { return e.Cause }

// Execute runs a resolved query against this Database's row store for
// query.Table, in insertion order.
func (db *Database) Execute(query *resolve.SelectQuery) ([]ResultRow, error) {
	store, ok := db.stores[query.Table.Name]
	if !ok {
		return nil, fmt.Errorf("engine: table %q has no open store", query.Table.Name)
	}

	reader, err := store.Scan()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	idColumn := query.Table.IDColumn()
	rowSize := query.Table.RowSize
	buf := make([]byte, rowSize)

	var results []ResultRow
	for {
		if err := readFullRow(reader, buf); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			cerr := &CorruptStoreError{Table: query.Table.Name, Cause: err}
			db.cfg.Logger.Errorw("scan aborted: corrupt store", "table", query.Table.Name, "error", err)
			return nil, cerr
		}

		if query.WherePredicate != nil {
			ok, err := evaluatePredicate(query.WherePredicate, buf)
			if err != nil {
				cerr := &CorruptStoreError{Table: query.Table.Name, Cause: err}
				db.cfg.Logger.Errorw("predicate evaluation failed", "table", query.Table.Name, "error", err)
				return nil, cerr
			}
			if !ok {
				continue
			}
		}

		id, err := decodeSerialID(idColumn, buf)
		if err != nil {
			return nil, &CorruptStoreError{Table: query.Table.Name, Cause: err}
		}

		projections := make([]Projection, 0, len(query.Columns))
		for _, rc := range query.Columns {
			window := buf[rc.Column.Offset : rc.Column.Offset+rc.Column.Type.SizeInBytes()]
			text, err := rc.Column.Type.ParseBytes(window)
			if err != nil {
				return nil, &CorruptStoreError{Table: query.Table.Name, Cause: err}
			}
			projections = append(projections, Projection{Name: rc.Column.Name, Text: text})
		}

		results = append(results, ResultRow{ID: id, Projections: projections})
	}

	return results, nil
}

// readFullRow fills buf completely from r, translating a clean
// zero-byte read at a row boundary into io.EOF and any partial read
// into a short-row error the caller turns into CorruptStoreError.
func readFullRow(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF && n == 0 {
		return io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		return fmt.Errorf("engine: short row: got %d of %d bytes", n, len(buf))
	}
	return err
}

// decodeSerialID is the inverse of ParseString for a SerialId column,
// matching the executor's documented reliance on that identity rather
// than re-implementing per-type decoding.
func decodeSerialID(idColumn *schema.TableColumn, buf []byte) (uint64, error) {
	window := buf[idColumn.Offset : idColumn.Offset+idColumn.Type.SizeInBytes()]
	text, err := idColumn.Type.ParseBytes(window)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(text, 10, 64)
}

func evaluatePredicate(pred *resolve.WherePredicate, row []byte) (bool, error) {
	for _, cond := range pred.Conditions {
		offset := cond.Column.Offset
		window := row[offset : offset+cond.Column.Type.SizeInBytes()]
		ok, err := cond.Comparison.Evaluate(window)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
