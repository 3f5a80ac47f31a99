package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kronkdb/internal/query/parse"
	"kronkdb/internal/schema"
)

func booksCatalog(t *testing.T) *schema.DatabaseDescriptor {
	t.Helper()
	table, err := schema.NewTableDescriptor("books", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
		{Name: "author", Type: schema.Byte(64)},
		{Name: "title", Type: schema.Byte(64)},
		{Name: "year_published", Type: schema.Int32()},
		{Name: "us_based_publisher", Type: schema.Boolean()},
	})
	require.NoError(t, err)

	db := schema.NewDatabaseDescriptor("kronk")
	require.NoError(t, db.AddTable(table))
	return db
}

func TestResolveProjectsKnownColumns(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select id, author, year_published from books`)
	require.NoError(t, err)

	query, err := Resolve(raw, db)
	require.NoError(t, err)

	require.Len(t, query.Columns, 3)
	assert.Equal(t, "id", query.Columns[0].Column.Name)
	assert.Equal(t, "author", query.Columns[1].Column.Name)
	assert.Equal(t, "year_published", query.Columns[2].Column.Name)
	assert.Nil(t, query.WherePredicate)
}

func TestResolveUnknownTable(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select id from widgets`)
	require.NoError(t, err)

	_, err = Resolve(raw, db)
	require.Error(t, err)
	var target *InvalidTableError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "widgets", target.Name)
}

func TestResolveMissingColumn(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select nonesuch from books`)
	require.NoError(t, err)

	_, err = Resolve(raw, db)
	require.Error(t, err)
	var target *MissingColumnError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "nonesuch", target.Column)
}

func TestResolveOrderingOnByteColumnRejected(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select id from books where author > "a"`)
	require.NoError(t, err)

	_, err = Resolve(raw, db)
	require.Error(t, err)
	var target *InvalidComparisonError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, schema.KindByte, target.Kind)
}

func TestResolveNumericOrderingComparison(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select id from books where year_published >= 1930`)
	require.NoError(t, err)

	query, err := Resolve(raw, db)
	require.NoError(t, err)
	require.NotNil(t, query.WherePredicate)
	require.Len(t, query.WherePredicate.Conditions, 1)

	cond := query.WherePredicate.Conditions[0]
	encoded, err := cond.Column.Type.ParseString("1935")
	require.NoError(t, err)
	ok, err := cond.Comparison.Evaluate(encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	encoded, err = cond.Column.Type.ParseString("1900")
	require.NoError(t, err)
	ok, err = cond.Comparison.Evaluate(encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveByteColumnEquality(t *testing.T) {
	db := booksCatalog(t)
	raw, err := parse.Parse(`select id from books where author == "Stink Williams"`)
	require.NoError(t, err)

	query, err := Resolve(raw, db)
	require.NoError(t, err)
	cond := query.WherePredicate.Conditions[0]

	encoded, err := cond.Column.Type.ParseString("Stink Williams")
	require.NoError(t, err)
	ok, err := cond.Comparison.Evaluate(encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	encoded, err = cond.Column.Type.ParseString("Billy Bob")
	require.NoError(t, err)
	ok, err = cond.Comparison.Evaluate(encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}
