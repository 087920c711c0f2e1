package models

import "math"

// Operator is a filter comparison operator.
type Operator string

const (
	OpEQ       Operator = "eq"
	OpNE       Operator = "ne"
	OpGE       Operator = "ge"
	OpLE       Operator = "le"
	OpBetween  Operator = "between"
	OpIn       Operator = "in"
	OpContains Operator = "contains"
)

// ValueShape tags what a NormalizedValue holds.
type ValueShape string

const (
	ShapeNumber ValueShape = "number"
	ShapeRange  ValueShape = "range"
	ShapeText   ValueShape = "text"
)

// Qualifier is the threshold qualifier detected next to a value
// ("or more", "以上", ...). The condition parser maps it to an operator.
type Qualifier int

const (
	QualNone Qualifier = iota
	QualAtLeast
	QualAtMost
)

// NormalizedValue is a parsed, comparison-ready value: a number, a (possibly
// open-ended) range, or a canonical text token. Valid=false marks input the
// normalizer could not parse; callers drop the condition rather than guess.
type NormalizedValue struct {
	Valid  bool
	Shape  ValueShape
	Number float64
	Low    float64 // range lower bound, -Inf when open
	High   float64 // range upper bound, +Inf when open
	Text   string
}

// Invalid is the failure marker returned for unparseable input.
func Invalid() NormalizedValue {
	return NormalizedValue{}
}

// NumberValue builds a scalar numeric value.
func NumberValue(n float64) NormalizedValue {
	return NormalizedValue{Valid: true, Shape: ShapeNumber, Number: n, Low: n, High: n}
}

// RangeValue builds a range value; use math.Inf for open bounds.
func RangeValue(low, high float64) NormalizedValue {
	return NormalizedValue{Valid: true, Shape: ShapeRange, Number: rangeMidpoint(low, high), Low: low, High: high}
}

// TextValue builds a canonical categorical token.
func TextValue(s string) NormalizedValue {
	return NormalizedValue{Valid: true, Shape: ShapeText, Text: s, Number: nan(), Low: nan(), High: nan()}
}

// Scalar returns the single representative number for comparisons: the number
// itself, or the midpoint of a range (a finite bound when the other is open).
func (v NormalizedValue) Scalar() float64 {
	if v.Shape == ShapeRange {
		return rangeMidpoint(v.Low, v.High)
	}
	return v.Number
}

func rangeMidpoint(low, high float64) float64 {
	switch {
	case math.IsInf(low, -1) && math.IsInf(high, 1):
		return 0
	case math.IsInf(low, -1):
		return high
	case math.IsInf(high, 1):
		return low
	default:
		return (low + high) / 2
	}
}

func nan() float64 { return math.NaN() }

// Condition is a single (column, operator, value) filter clause. Conditions
// are combined conjunctively; there is no OR or NOT.
type Condition struct {
	Column ColumnDescriptor
	Op     Operator
	Value  NormalizedValue
	Values []NormalizedValue // populated for OpIn only
}

// ParsedQuery is the outcome of condition parsing: the AND-combined filter
// clauses plus the single column whose distribution should be visualized.
// Target is never empty; TargetExplicit records whether the question actually
// named it or the default column was substituted.
type ParsedQuery struct {
	Conditions     []Condition
	Target         ColumnDescriptor
	TargetExplicit bool
}
