package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleSelect(t *testing.T) {
	query, err := Parse(`select id, author, year_published from books`)
	require.NoError(t, err)

	assert.Equal(t, "books", query.TableName)
	assert.Nil(t, query.TableIdentifier)
	assert.Nil(t, query.WhereExpression)
	require.Len(t, query.Columns, 3)
	assert.Equal(t, "id", query.Columns[0].Reference.ColumnName)
	assert.Equal(t, "author", query.Columns[1].Reference.ColumnName)
	assert.Equal(t, "year_published", query.Columns[2].Reference.ColumnName)
}

func TestParseWithWhereAndAlias(t *testing.T) {
	query, err := Parse(`select b.title as t from books b where b.year_published >= 1930`)
	require.NoError(t, err)

	require.Len(t, query.Columns, 1)
	col := query.Columns[0]
	require.NotNil(t, col.Reference.TableIdentifier)
	assert.Equal(t, "b", *col.Reference.TableIdentifier)
	assert.Equal(t, "title", col.Reference.ColumnName)
	require.NotNil(t, col.AsName)
	assert.Equal(t, "t", *col.AsName)

	require.NotNil(t, query.TableIdentifier)
	assert.Equal(t, "b", *query.TableIdentifier)

	require.NotNil(t, query.WhereExpression)
	require.NotNil(t, query.WhereExpression.Single)
	cmp := query.WhereExpression.Single
	assert.Equal(t, "year_published", cmp.Column.ColumnName)
	assert.Equal(t, CmpGreaterOrEqual, cmp.Op)
	assert.Equal(t, "1930", cmp.Value)
}

func TestParseWithQuotedStringValue(t *testing.T) {
	query, err := Parse(`select title from books where author == "Stink Williams"`)
	require.NoError(t, err)
	require.NotNil(t, query.WhereExpression)
	assert.Equal(t, "Stink Williams", query.WhereExpression.Single.Value)
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	_, err := Parse(`select id from books where year_published >`)
	require.ErrorIs(t, err, ErrUnexpectedEndOfInput)
}

func TestParseUnexpectedToken(t *testing.T) {
	_, err := Parse(`select from books`)
	require.Error(t, err)
	var target *UnexpectedTokenError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "String", target.Expected)
}

func TestParseLiftsLexError(t *testing.T) {
	_, err := Parse(`select id from books where ^`)
	require.Error(t, err)
}
