package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kronkdb/internal/schema"
)

func newBooksDB(t *testing.T) *Database {
	t.Helper()
	db := New("kronk", DefaultConfig())
	_, err := db.AddTableSpecs("books", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
		{Name: "author", Type: schema.Byte(64)},
		{Name: "title", Type: schema.Byte(64)},
		{Name: "year_published", Type: schema.Int32()},
		{Name: "us_based_publisher", Type: schema.Boolean()},
	})
	require.NoError(t, err)
	return db
}

func insertBook(t *testing.T, db *Database, author, title, year string) uint64 {
	t.Helper()
	id, err := db.InsertColumns("books", []schema.ColumnValue{
		{Name: "author", Text: author},
		{Name: "title", Text: title},
		{Name: "year_published", Text: year},
	})
	require.NoError(t, err)
	return id
}

func TestSchemaInsertScanAll(t *testing.T) {
	db := newBooksDB(t)
	insertBook(t, db, "Billy Bob", "How to Sting Like a Bee", "1932")

	results, err := db.Query(`select id, author, year_published from books`)
	require.NoError(t, err)
	require.Len(t, results, 1)

	row := results[0]
	assert.EqualValues(t, 0, row.ID)
	assert.Equal(t, []Projection{
		{Name: "id", Text: "0"},
		{Name: "author", Text: "Billy Bob"},
		{Name: "year_published", Text: "1932"},
	}, row.Projections)
}

func TestNumericOrderingWhere(t *testing.T) {
	db := newBooksDB(t)
	years := []string{"1932", "1921", "1923", "1937", "1924", "1923", "1917"}
	for _, y := range years {
		insertBook(t, db, "author", "title", y)
	}

	results, err := db.Query(`select id, title, year_published from books where year_published >= 1930`)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.EqualValues(t, 0, results[0].ID)
	assert.EqualValues(t, 3, results[1].ID)
}

func TestEqualityOnByteColumn(t *testing.T) {
	db := newBooksDB(t)
	years := []string{"1932", "1921", "1923", "1937", "1924", "1923", "1917"}
	for _, y := range years {
		insertBook(t, db, "author", "title", y)
	}
	var wantIDs []uint64
	for i := 0; i < 4; i++ {
		id := insertBook(t, db, "Stink Williams", "title", "1900")
		wantIDs = append(wantIDs, id)
	}

	results, err := db.Query(`select id, title from books where author == "Stink Williams"`)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, row := range results {
		assert.Equal(t, wantIDs[i], row.ID)
	}
}

func TestUnknownColumnInProjection(t *testing.T) {
	db := newBooksDB(t)
	_, err := db.Query(`select nonesuch from books`)
	require.Error(t, err)
}

func TestDuplicateTableRejected(t *testing.T) {
	db := newBooksDB(t)
	_, err := db.AddTableSpecs("books", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
	})
	require.Error(t, err)
	var target *schema.DuplicateTableError
	require.ErrorAs(t, err, &target)
}

func TestFileBackendPersistsIDCounterAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Backend = BackendFile
	cfg.DataDir = dir

	db := New("kronk", cfg)
	_, err := db.AddTableSpecs("widgets", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
		{Name: "count", Type: schema.Int32()},
	})
	require.NoError(t, err)

	id, err := db.InsertColumns("widgets", []schema.ColumnValue{{Name: "count", Text: "1"}})
	require.NoError(t, err)
	assert.EqualValues(t, 0, id)

	reopened := New("kronk", cfg)
	_, err = reopened.AddTableSpecs("widgets", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
		{Name: "count", Type: schema.Int32()},
	})
	require.NoError(t, err)

	id, err = reopened.InsertColumns("widgets", []schema.ColumnValue{{Name: "count", Text: "2"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	results, err := reopened.Query(`select id, count from widgets`)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.EqualValues(t, 0, results[0].ID)
	assert.EqualValues(t, 1, results[1].ID)
}
