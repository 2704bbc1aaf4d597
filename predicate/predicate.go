// Package predicate builds WHERE conditions as trees of AND/OR combined
// predicates that compile to dialect-agnostic expressions.
package predicate

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Re-exported from internal/types.
type (
	Expression         = types.Expression
	ExpressionProvider = types.ExpressionProvider
	Kind               = types.Kind
	Part               = types.Part
	Combinator         = types.Combinator
	Op                 = types.Operator
)

const (
	AND = types.AND
	OR  = types.OR

	KindLiteral    = types.KindLiteral
	KindValue      = types.KindValue
	KindIdentifier = types.KindIdentifier
	KindNested     = types.KindNested

	EQ      = types.EQ
	NE      = types.NE
	LTGT    = types.LTGT
	GT      = types.GT
	GE      = types.GE
	LT      = types.LT
	LE      = types.LE
	LIKE    = types.LIKE
	NotLike = types.NotLike
)

// InvalidArgumentError is returned for nil or malformed predicate input.
type InvalidArgumentError = render.InvalidArgumentError

// Variant identifies the concrete shape of a predicate.
type Variant int

const (
	VariantIsNull Variant = iota
	VariantIsNotNull
	VariantIn
	VariantNotIn
	VariantOperator
	VariantBetween
	VariantNotBetween
	VariantLiteral
	VariantExpression
	VariantSet
)

var variantNames = [...]string{
	"IsNull", "IsNotNull", "In", "NotIn", "Operator",
	"Between", "NotBetween", "Literal", "Expression", "Set",
}

func (v Variant) String() string {
	if int(v) >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Predicate is a single boolean condition. Predicates are immutable once built;
// the combinator joining one to its neighbours belongs to the parent Set.
type Predicate interface {
	ExpressionProvider
	Variant() Variant
}

// NullPredicate tests an identifier against NULL.
type NullPredicate struct {
	Identifier string
	Not        bool
}

// IsNull creates an "identifier IS NULL" predicate.
func IsNull(identifier string) NullPredicate {
	return NullPredicate{Identifier: identifier}
}

// IsNotNull creates an "identifier IS NOT NULL" predicate.
func IsNotNull(identifier string) NullPredicate {
	return NullPredicate{Identifier: identifier, Not: true}
}

func (p NullPredicate) Variant() Variant {
	if p.Not {
		return VariantIsNotNull
	}
	return VariantIsNull
}

func (p NullPredicate) Expression() Expression {
	template := "%s IS NULL"
	if p.Not {
		template = "%s IS NOT NULL"
	}
	return Expression{
		Template: template,
		Values:   []any{p.Identifier},
		Kinds:    []Kind{KindIdentifier},
	}
}

// InPredicate tests membership of an identifier in a value list.
type InPredicate struct {
	Identifier string
	Values     []any
	Not        bool
}

// In creates an "identifier IN (...)" predicate.
func In(identifier string, values ...any) InPredicate {
	return InPredicate{Identifier: identifier, Values: values}
}

// NotIn creates an "identifier NOT IN (...)" predicate.
func NotIn(identifier string, values ...any) InPredicate {
	return InPredicate{Identifier: identifier, Values: values, Not: true}
}

func (p InPredicate) Variant() Variant {
	if p.Not {
		return VariantNotIn
	}
	return VariantIn
}

// Expression renders the membership test. An empty list matches nothing for
// IN and everything for NOT IN.
func (p InPredicate) Expression() Expression {
	if len(p.Values) == 0 {
		if p.Not {
			return Expression{Template: "1 = 1"}
		}
		return Expression{Template: "1 = 0"}
	}

	keyword := "IN"
	if p.Not {
		keyword = "NOT IN"
	}
	markers := make([]string, len(p.Values))
	values := make([]any, 0, len(p.Values)+1)
	kinds := make([]Kind, 0, len(p.Values)+1)
	values = append(values, p.Identifier)
	kinds = append(kinds, KindIdentifier)
	for i, v := range p.Values {
		markers[i] = "%s"
		values = append(values, v)
		kinds = append(kinds, valueKind(v))
	}
	return Expression{
		Template: "%s " + keyword + " (" + strings.Join(markers, ", ") + ")",
		Values:   values,
		Kinds:    kinds,
	}
}

// OperatorPredicate compares two operands. The left operand is an identifier
// and the right a value unless overridden with WithKinds; either side may be
// an ExpressionProvider, which is rendered in place.
type OperatorPredicate struct {
	Left      any
	Op        Op
	Right     any
	LeftKind  Kind
	RightKind Kind
}

// TryOperator creates a comparison predicate, rejecting unknown operators.
func TryOperator(left any, op Op, right any) (OperatorPredicate, error) {
	if !op.Valid() {
		return OperatorPredicate{}, render.NewInvalidArgumentError("operator", "unsupported operator %q", string(op))
	}
	if left == nil {
		return OperatorPredicate{}, render.NewInvalidArgumentError("operator", "left operand cannot be nil")
	}
	return OperatorPredicate{
		Left:      left,
		Op:        op,
		Right:     right,
		LeftKind:  operandKind(left, KindIdentifier),
		RightKind: operandKind(right, KindValue),
	}, nil
}

// Operator creates a comparison predicate. Panics on an unknown operator.
func Operator(left any, op Op, right any) OperatorPredicate {
	p, err := TryOperator(left, op, right)
	if err != nil {
		panic(err)
	}
	return p
}

// WithKinds returns a copy with explicit operand kinds.
func (p OperatorPredicate) WithKinds(left, right Kind) OperatorPredicate {
	p.LeftKind = left
	p.RightKind = right
	return p
}

func (p OperatorPredicate) Variant() Variant { return VariantOperator }

func (p OperatorPredicate) Expression() Expression {
	return Expression{
		Template: "%s " + string(p.Op) + " %s",
		Values:   []any{p.Left, p.Right},
		Kinds:    []Kind{p.LeftKind, p.RightKind},
	}
}

// BetweenPredicate tests an identifier against an inclusive range.
type BetweenPredicate struct {
	Identifier string
	Min        any
	Max        any
	Not        bool
}

// Between creates an "identifier BETWEEN min AND max" predicate.
func Between(identifier string, minValue, maxValue any) BetweenPredicate {
	return BetweenPredicate{Identifier: identifier, Min: minValue, Max: maxValue}
}

// NotBetween creates an "identifier NOT BETWEEN min AND max" predicate.
func NotBetween(identifier string, minValue, maxValue any) BetweenPredicate {
	return BetweenPredicate{Identifier: identifier, Min: minValue, Max: maxValue, Not: true}
}

func (p BetweenPredicate) Variant() Variant {
	if p.Not {
		return VariantNotBetween
	}
	return VariantBetween
}

func (p BetweenPredicate) Expression() Expression {
	template := "%s BETWEEN %s AND %s"
	if p.Not {
		template = "%s NOT BETWEEN %s AND %s"
	}
	return Expression{
		Template: template,
		Values:   []any{p.Identifier, p.Min, p.Max},
		Kinds:    []Kind{KindIdentifier, valueKind(p.Min), valueKind(p.Max)},
	}
}

// LiteralPredicate is an opaque SQL fragment emitted without substitution.
type LiteralPredicate struct {
	SQL string
}

// Literal creates a raw SQL predicate.
func Literal(sql string) LiteralPredicate {
	return LiteralPredicate{SQL: sql}
}

func (p LiteralPredicate) Variant() Variant { return VariantLiteral }

func (p LiteralPredicate) Expression() Expression {
	return Expression{Template: types.EscapeTemplate(p.SQL)}
}

// ExpressionPredicate is raw SQL whose ? markers are bound to Values in order.
type ExpressionPredicate struct {
	SQL    string
	Values []any
}

// TryExpression creates a raw SQL predicate with ? markers.
// The number of markers must match the number of values.
func TryExpression(sql string, values ...any) (ExpressionPredicate, error) {
	if strings.TrimSpace(sql) == "" {
		return ExpressionPredicate{}, render.NewInvalidArgumentError("expression", "SQL cannot be empty")
	}
	if n := strings.Count(sql, "?"); n != len(values) {
		return ExpressionPredicate{}, render.NewInvalidArgumentError("expression",
			"%q has %d placeholders but %d values were given", sql, n, len(values))
	}
	return ExpressionPredicate{SQL: sql, Values: values}, nil
}

// NewExpression is like TryExpression but panics on a placeholder mismatch.
func NewExpression(sql string, values ...any) ExpressionPredicate {
	p, err := TryExpression(sql, values...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p ExpressionPredicate) Variant() Variant { return VariantExpression }

func (p ExpressionPredicate) Expression() Expression {
	kinds := make([]Kind, len(p.Values))
	for i, v := range p.Values {
		kinds[i] = valueKind(v)
	}
	return Expression{
		Template: strings.ReplaceAll(types.EscapeTemplate(p.SQL), "?", "%s"),
		Values:   append([]any(nil), p.Values...),
		Kinds:    kinds,
	}
}

func valueKind(v any) Kind {
	return operandKind(v, KindValue)
}

func operandKind(v any, def Kind) Kind {
	if _, ok := v.(ExpressionProvider); ok {
		return KindNested
	}
	return def
}
