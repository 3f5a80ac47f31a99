// Package resolve binds a parse.RawSelectQuery against a
// schema.DatabaseDescriptor catalog, producing a typed SelectQuery the
// executor can run directly: every column reference becomes a
// *schema.TableColumn, and every WHERE comparison becomes a
// TypedComparison closed over its parsed target value.
package resolve

import (
	"bytes"
	"fmt"

	"kronkdb/internal/bytesx"
	"kronkdb/internal/query/parse"
	"kronkdb/internal/schema"
)

// ResolvedColumn is a projected column bound to its table column.
// Alias is carried through from the parser's "as" clause but is
// currently unused by the executor, which always emits the source
// column name as the output key.
type ResolvedColumn struct {
	Column *schema.TableColumn
	Alias  *string
}

// TypedComparison evaluates a single WHERE condition against a row's
// raw column window, already sliced to the column's declared width.
type TypedComparison interface {
	Evaluate(window []byte) (bool, error)
}

// WhereCondition pairs a resolved column with the comparison to run
// against its byte window.
type WhereCondition struct {
	Column     *schema.TableColumn
	Comparison TypedComparison
}

// WherePredicate is a conjunction of conditions: every one of them
// must hold for a row to be emitted. The grammar in package parse
// only ever produces one condition, but the executor always evaluates
// this as a conjunction regardless of length.
type WherePredicate struct {
	Conditions []WhereCondition
}

// SelectQuery is the fully resolved, typed query the executor runs.
type SelectQuery struct {
	Table          *schema.TableDescriptor
	Columns        []ResolvedColumn
	WherePredicate *WherePredicate
}

// InvalidTableError reports that the query's FROM table does not
// exist in the catalog.
type InvalidTableError struct {
	Name string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("resolve: no such table %q", e.Name)
}

// MissingColumnError reports a column reference that does not exist
// on the resolved table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("resolve: table %q has no column %q", e.Table, e.Column)
}

// InvalidComparisonError reports an ordering operator applied to an
// equality-only column type, or a value that fails to parse as the
// column's declared type.
type InvalidComparisonError struct {
	Kind   schema.Kind
	Op     parse.CmpOp
	Reason error
}

func (e *InvalidComparisonError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("resolve: comparison %s on %s: %v", e.Op, e.Kind, e.Reason)
	}
	return fmt.Sprintf("resolve: operator %s is not valid on %s (equality-only type)", e.Op, e.Kind)
}

func (e *InvalidComparisonError) Unwrap() error { return e.Reason }

// Resolve binds raw against db, yielding an executable SelectQuery.
func Resolve(raw *parse.RawSelectQuery, db *schema.DatabaseDescriptor) (*SelectQuery, error) {
	table, err := db.TableWithName(raw.TableName)
	if err != nil {
		return nil, &InvalidTableError{Name: raw.TableName}
	}

	columns := make([]ResolvedColumn, 0, len(raw.Columns))
	for _, rc := range raw.Columns {
		col, ok := table.ColumnForName(rc.Reference.ColumnName)
		if !ok {
			return nil, &MissingColumnError{Table: table.Name, Column: rc.Reference.ColumnName}
		}
		columns = append(columns, ResolvedColumn{Column: col, Alias: rc.AsName})
	}

	var where *WherePredicate
	if raw.WhereExpression != nil {
		cond, err := resolveComparison(raw.WhereExpression.Single, table)
		if err != nil {
			return nil, err
		}
		where = &WherePredicate{Conditions: []WhereCondition{*cond}}
	}

	return &SelectQuery{Table: table, Columns: columns, WherePredicate: where}, nil
}

func resolveComparison(raw *parse.RawWhereComparison, table *schema.TableDescriptor) (*WhereCondition, error) {
	col, ok := table.ColumnForName(raw.Column.ColumnName)
	if !ok {
		return nil, &MissingColumnError{Table: table.Name, Column: raw.Column.ColumnName}
	}

	if col.Type.EqualityOnly() && raw.Op != parse.CmpEqual && raw.Op != parse.CmpNotEqual {
		return nil, &InvalidComparisonError{Kind: col.Type.Kind, Op: raw.Op}
	}

	cmp, err := newTypedComparison(col.Type, raw.Op, raw.Value)
	if err != nil {
		return nil, err
	}

	return &WhereCondition{Column: col, Comparison: cmp}, nil
}

func newTypedComparison(t schema.ColumnType, op parse.CmpOp, text string) (TypedComparison, error) {
	switch t.Kind {
	case schema.KindSerialID:
		// ParseString rejects SerialId values (they are never
		// caller-supplied), so the target is parsed as the u64 it is
		// stored as.
		target, err := parseUnsignedTarget(schema.UInt64(), text)
		if err != nil {
			return nil, &InvalidComparisonError{Kind: t.Kind, Op: op, Reason: err}
		}
		return &unsignedComparison{kind: schema.KindUInt64, op: op, target: target}, nil

	case schema.KindInt32, schema.KindInt64:
		target, err := parseSignedTarget(t, text)
		if err != nil {
			return nil, &InvalidComparisonError{Kind: t.Kind, Op: op, Reason: err}
		}
		return &signedComparison{kind: t.Kind, op: op, target: target}, nil

	case schema.KindUInt32, schema.KindUInt64:
		target, err := parseUnsignedTarget(t, text)
		if err != nil {
			return nil, &InvalidComparisonError{Kind: t.Kind, Op: op, Reason: err}
		}
		return &unsignedComparison{kind: t.Kind, op: op, target: target}, nil

	case schema.KindBoolean, schema.KindUUID:
		encoded, err := t.ParseString(text)
		if err != nil {
			return nil, &InvalidComparisonError{Kind: t.Kind, Op: op, Reason: err}
		}
		return &byteEqualityComparison{op: op, target: encoded}, nil

	case schema.KindByte:
		decoded, err := decodedTextTarget(t, text)
		if err != nil {
			return nil, &InvalidComparisonError{Kind: t.Kind, Op: op, Reason: err}
		}
		return &textEqualityComparison{op: op, target: decoded, colType: t}, nil

	default:
		return nil, &InvalidComparisonError{Kind: t.Kind, Op: op}
	}
}

// decodedTextTarget round-trips text through ParseString/ParseBytes so
// the comparison target undergoes the same NUL-trim/width rules as a
// stored row's decoded value, per §4.G's "String-column comparison
// uses UTF-8 lexicographic order on the NUL-trimmed decoded value".
func decodedTextTarget(t schema.ColumnType, text string) (string, error) {
	encoded, err := t.ParseString(text)
	if err != nil {
		return "", err
	}
	return t.ParseBytes(encoded)
}

func parseSignedTarget(t schema.ColumnType, text string) (int64, error) {
	encoded, err := t.ParseString(text)
	if err != nil {
		return 0, err
	}
	switch t.Kind {
	case schema.KindInt32:
		v, err := bytesx.DecodeInt32(encoded)
		return int64(v), err
	default:
		v, err := bytesx.DecodeInt64(encoded)
		return v, err
	}
}

func parseUnsignedTarget(t schema.ColumnType, text string) (uint64, error) {
	encoded, err := t.ParseString(text)
	if err != nil {
		return 0, err
	}
	switch t.Kind {
	case schema.KindUInt32:
		v, err := bytesx.DecodeUint32(encoded)
		return uint64(v), err
	default:
		v, err := bytesx.DecodeUint64(encoded)
		return v, err
	}
}

type signedComparison struct {
	kind   schema.Kind
	op     parse.CmpOp
	target int64
}

func (c *signedComparison) Evaluate(window []byte) (bool, error) {
	var actual int64
	var err error
	if c.kind == schema.KindInt32 {
		var v int32
		v, err = bytesx.DecodeInt32(window)
		actual = int64(v)
	} else {
		actual, err = bytesx.DecodeInt64(window)
	}
	if err != nil {
		return false, err
	}
	return compareOrdered(c.op, actual, c.target), nil
}

type unsignedComparison struct {
	kind   schema.Kind
	op     parse.CmpOp
	target uint64
}

func (c *unsignedComparison) Evaluate(window []byte) (bool, error) {
	var actual uint64
	var err error
	if c.kind == schema.KindUInt32 {
		var v uint32
		v, err = bytesx.DecodeUint32(window)
		actual = uint64(v)
	} else {
		actual, err = bytesx.DecodeUint64(window)
	}
	if err != nil {
		return false, err
	}
	return compareOrdered(c.op, actual, c.target), nil
}

type byteEqualityComparison struct {
	op     parse.CmpOp
	target []byte
}

func (c *byteEqualityComparison) Evaluate(window []byte) (bool, error) {
	eq := bytes.Equal(window, c.target)
	if c.op == parse.CmpNotEqual {
		return !eq, nil
	}
	return eq, nil
}

type textEqualityComparison struct {
	op      parse.CmpOp
	target  string
	colType schema.ColumnType
}

func (c *textEqualityComparison) Evaluate(window []byte) (bool, error) {
	decoded, err := c.colType.ParseBytes(window)
	if err != nil {
		return false, err
	}
	eq := decoded == c.target
	if c.op == parse.CmpNotEqual {
		return !eq, nil
	}
	return eq, nil
}

type ordered interface{ ~int64 | ~uint64 }

func compareOrdered[T ordered](op parse.CmpOp, actual, target T) bool {
	switch op {
	case parse.CmpGreaterThan:
		return actual > target
	case parse.CmpGreaterOrEqual:
		return actual >= target
	case parse.CmpLessThan:
		return actual < target
	case parse.CmpLessOrEqual:
		return actual <= target
	case parse.CmpEqual:
		return actual == target
	case parse.CmpNotEqual:
		return actual != target
	default:
		return false
	}
}
