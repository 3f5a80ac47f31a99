package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, query string) []Token {
	t.Helper()
	lx := New(query)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if EOF(err) {
			return tokens
		}
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}
}

func TestLexSelectStatement(t *testing.T) {
	tokens := collectTokens(t, `select id, author from books where year_published >= 1930`)

	want := []Token{
		{Kind: KindKeyword, Value: "select"},
		{Kind: KindString, Value: "id"},
		{Kind: KindCharacter, Value: ","},
		{Kind: KindString, Value: "author"},
		{Kind: KindKeyword, Value: "from"},
		{Kind: KindString, Value: "books"},
		{Kind: KindKeyword, Value: "where"},
		{Kind: KindString, Value: "year_published"},
		{Kind: KindCharacter, Value: ">="},
		{Kind: KindNumber, Value: "1930"},
	}
	assert.Equal(t, want, tokens)
}

func TestLexQuotedStringWithEscape(t *testing.T) {
	tokens := collectTokens(t, `"Stink \"Danger\" Williams"`)
	require.Len(t, tokens, 1)
	assert.Equal(t, Token{Kind: KindString, Value: `Stink "Danger" Williams`}, tokens[0])
}

func TestLexUnexpectedCharacter(t *testing.T) {
	lx := New("^")
	_, err := lx.Next()
	require.Error(t, err)
	var target *UnexpectedCharacterError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, '^', target.Char)
}

func TestLexUnterminatedString(t *testing.T) {
	lx := New(`"unterminated`)
	_, err := lx.Next()
	require.ErrorIs(t, err, ErrUnexpectedEndOfInput)
}

func TestLexLoneEqualsIsUnexpected(t *testing.T) {
	lx := New("=")
	_, err := lx.Next()
	require.Error(t, err)
	var target *UnexpectedCharacterError
	require.ErrorAs(t, err, &target)
}

func TestLexLatchesOnFirstError(t *testing.T) {
	lx := New("^ select")
	_, err1 := lx.Next()
	require.Error(t, err1)
	_, err2 := lx.Next()
	assert.Same(t, err1, err2) //nolint:errorlint // intentionally checking latch identity
}
