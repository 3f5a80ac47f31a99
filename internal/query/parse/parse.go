// Package parse consumes a lex.Lexer's token stream through a
// one-token-lookahead interface and produces a RawSelectQuery: an
// unbound AST that package resolve later binds against a catalog.
package parse

import (
	"fmt"

	"kronkdb/internal/query/lex"
)

// RawColumnRef is an unresolved "table.column" or bare "column"
// reference.
type RawColumnRef struct {
	TableIdentifier *string
	ColumnName      string
}

// RawSelectColumn is one projected column, with its optional "as" alias.
type RawSelectColumn struct {
	Reference RawColumnRef
	AsName    *string
}

// CmpOp is a comparison operator as written in a WHERE clause.
type CmpOp int

const (
	CmpGreaterThan CmpOp = iota
	CmpGreaterOrEqual
	CmpLessThan
	CmpLessOrEqual
	CmpEqual
	CmpNotEqual
)

func (op CmpOp) String() string {
	switch op {
	case CmpGreaterThan:
		return ">"
	case CmpGreaterOrEqual:
		return ">="
	case CmpLessThan:
		return "<"
	case CmpLessOrEqual:
		return "<="
	case CmpEqual:
		return "=="
	case CmpNotEqual:
		return "!="
	default:
		return fmt.Sprintf("CmpOp(%d)", int(op))
	}
}

func cmpOpFromCharacter(v string) (CmpOp, bool) {
	switch v {
	case ">":
		return CmpGreaterThan, true
	case ">=":
		return CmpGreaterOrEqual, true
	case "<":
		return CmpLessThan, true
	case "<=":
		return CmpLessOrEqual, true
	case "==":
		return CmpEqual, true
	case "!=":
		return CmpNotEqual, true
	default:
		return 0, false
	}
}

// RawWhereComparison is a single "column op value" predicate.
type RawWhereComparison struct {
	Column RawColumnRef
	Op     CmpOp
	Value  string
}

// RawWhereExpression is the WHERE-clause AST shape. Only Single is
// ever produced by Parse today; And/Or/Not document the shape the
// grammar would take if compound WHERE were added, per the grammar
// note in the parser's comment below.
type RawWhereExpression struct {
	Single *RawWhereComparison
	And    *[2]RawWhereExpression
	Or     *[2]RawWhereExpression
	Not    *RawWhereExpression
}

// RawSelectQuery is the unbound AST the parser produces for one
// "select ... from ... [where ...]" query.
type RawSelectQuery struct {
	TableName       string
	TableIdentifier *string
	Columns         []RawSelectColumn
	WhereExpression *RawWhereExpression
}

// UnexpectedTokenError reports a token the parser did not expect at
// the current production.
type UnexpectedTokenError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("parse: expected %s, got %s", e.Expected, e.Actual)
}

// ErrUnexpectedEndOfInput is returned when the token stream ends
// mid-production.
var ErrUnexpectedEndOfInput = fmt.Errorf("parse: unexpected end of input")

// parser wraps a lex.Lexer with one token of lookahead.
type parser struct {
	lx       *lex.Lexer
	lookhead *lex.Token
	atEOF    bool
}

// Parse lexes and parses query into a RawSelectQuery.
//
// Grammar (the only form produced today):
//
//	query       := "select" column_list "from" String [ String ] [ "where" comparison ] EOF
//	column_list := column ( "," column )*
//	column      := column_ref [ "as" String ]
//	column_ref  := String [ "." String ]
//	comparison  := column_ref CmpOp (String | Number)
func Parse(query string) (*RawSelectQuery, error) {
	p := &parser{lx: lex.New(query)}

	if err := p.expectKeyword("select"); err != nil {
		return nil, err
	}

	columns, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}

	tableName, err := p.expectString()
	if err != nil {
		return nil, err
	}

	var tableIdentifier *string
	if tok, ok, err := p.peekOptionalString(); err != nil {
		return nil, err
	} else if ok {
		tableIdentifier = &tok
	}

	var where *RawWhereExpression
	if ok, err := p.tryConsumeKeyword("where"); err != nil {
		return nil, err
	} else if ok {
		cmp, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		where = &RawWhereExpression{Single: cmp}
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return &RawSelectQuery{
		TableName:       tableName,
		TableIdentifier: tableIdentifier,
		Columns:         columns,
		WhereExpression: where,
	}, nil
}

func (p *parser) parseColumnList() ([]RawSelectColumn, error) {
	var columns []RawSelectColumn
	for {
		col, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)

		ok, err := p.tryConsumeCharacter(",")
		if err != nil {
			return nil, err
		}
		if !ok {
			return columns, nil
		}
	}
}

func (p *parser) parseColumn() (RawSelectColumn, error) {
	ref, err := p.parseColumnRef()
	if err != nil {
		return RawSelectColumn{}, err
	}

	var asName *string
	if ok, err := p.tryConsumeKeyword("as"); err != nil {
		return RawSelectColumn{}, err
	} else if ok {
		name, err := p.expectString()
		if err != nil {
			return RawSelectColumn{}, err
		}
		asName = &name
	}

	return RawSelectColumn{Reference: ref, AsName: asName}, nil
}

func (p *parser) parseColumnRef() (RawColumnRef, error) {
	first, err := p.expectString()
	if err != nil {
		return RawColumnRef{}, err
	}

	if ok, err := p.tryConsumeCharacter("."); err != nil {
		return RawColumnRef{}, err
	} else if ok {
		second, err := p.expectString()
		if err != nil {
			return RawColumnRef{}, err
		}
		return RawColumnRef{TableIdentifier: &first, ColumnName: second}, nil
	}

	return RawColumnRef{ColumnName: first}, nil
}

func (p *parser) parseComparison() (*RawWhereComparison, error) {
	ref, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}

	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != lex.KindCharacter {
		return nil, &UnexpectedTokenError{Expected: "comparison operator", Actual: tok.String()}
	}
	op, ok := cmpOpFromCharacter(tok.Value)
	if !ok {
		return nil, &UnexpectedTokenError{Expected: "comparison operator", Actual: tok.String()}
	}

	value, err := p.next()
	if err != nil {
		return nil, err
	}
	if value.Kind != lex.KindString && value.Kind != lex.KindNumber {
		return nil, &UnexpectedTokenError{Expected: "String or Number", Actual: value.String()}
	}

	return &RawWhereComparison{Column: ref, Op: op, Value: value.Value}, nil
}

// --- token-stream plumbing ---

func (p *parser) next() (lex.Token, error) {
	if p.lookhead != nil {
		tok := *p.lookhead
		p.lookhead = nil
		return tok, nil
	}
	tok, err := p.lx.Next()
	if lex.EOF(err) {
		p.atEOF = true
		return lex.Token{}, ErrUnexpectedEndOfInput
	}
	if err != nil {
		return lex.Token{}, err
	}
	return tok, nil
}

func (p *parser) peek() (lex.Token, bool, error) {
	if p.lookhead != nil {
		return *p.lookhead, true, nil
	}
	tok, err := p.lx.Next()
	if lex.EOF(err) {
		p.atEOF = true
		return lex.Token{}, false, nil
	}
	if err != nil {
		return lex.Token{}, false, err
	}
	p.lookhead = &tok
	return tok, true, nil
}

func (p *parser) expectKeyword(kw string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lex.KindKeyword || tok.Value != kw {
		return &UnexpectedTokenError{Expected: fmt.Sprintf("Keyword(%s)", kw), Actual: tok.String()}
	}
	return nil
}

func (p *parser) tryConsumeKeyword(kw string) (bool, error) {
	tok, ok, err := p.peek()
	if err != nil || !ok {
		return false, err
	}
	if tok.Kind == lex.KindKeyword && tok.Value == kw {
		p.lookhead = nil
		return true, nil
	}
	return false, nil
}

func (p *parser) tryConsumeCharacter(v string) (bool, error) {
	tok, ok, err := p.peek()
	if err != nil || !ok {
		return false, err
	}
	if tok.Kind == lex.KindCharacter && tok.Value == v {
		p.lookhead = nil
		return true, nil
	}
	return false, nil
}

func (p *parser) expectString() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if tok.Kind != lex.KindString {
		return "", &UnexpectedTokenError{Expected: "String", Actual: tok.String()}
	}
	return tok.Value, nil
}

// peekOptionalString consumes the lookahead token iff it is a bare
// String, for the optional table alias production. A keyword like
// "where" must not be swallowed here, which KindString vs KindKeyword
// already guarantees.
func (p *parser) peekOptionalString() (string, bool, error) {
	tok, ok, err := p.peek()
	if err != nil || !ok {
		return "", false, err
	}
	if tok.Kind == lex.KindString {
		p.lookhead = nil
		return tok.Value, true, nil
	}
	return "", false, nil
}

func (p *parser) expectEOF() error {
	tok, ok, err := p.peek()
	if err != nil {
		return err
	}
	if ok {
		return &UnexpectedTokenError{Expected: "end of input", Actual: tok.String()}
	}
	return nil
}
