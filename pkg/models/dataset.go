package models

import (
	"fmt"
	"math"
	"strings"
)

// ColumnKind classifies how a column's cells are compared and summarized.
type ColumnKind string

const (
	KindCategorical ColumnKind = "categorical"
	KindNumeric     ColumnKind = "numeric"
)

// NormalizeRule selects the value-normalization variant for a column.
// The set is closed; dispatch happens on these tags, not on column names.
type NormalizeRule string

const (
	// RuleNone means plain handling per the column kind.
	RuleNone NormalizeRule = ""
	// RuleRangedDays parses day-count tokens ("5日以上", "3-4 days").
	RuleRangedDays NormalizeRule = "ranged-days"
	// RuleRangedHours parses duration tokens ("8時間以上", "4-8 hours").
	// Cells in such columns hold bucketed ranges rather than scalars.
	RuleRangedHours NormalizeRule = "ranged-hours"
)

// ColumnDescriptor declares a dataset column: its canonical name, how its
// values behave, and the synonym keywords that help question text resolve
// to it.
type ColumnDescriptor struct {
	Name     string        `yaml:"name"`
	Kind     ColumnKind    `yaml:"kind"`
	Synonyms []string      `yaml:"synonyms,omitempty"`
	Rule     NormalizeRule `yaml:"rule,omitempty"`
}

// Cell is a single dataset value. Num holds the parsed numeric value for
// numeric columns and NaN otherwise; Raw always preserves the source text.
type Cell struct {
	Raw string
	Num float64
}

// NewCell builds a non-numeric cell.
func NewCell(raw string) Cell {
	return Cell{Raw: raw, Num: math.NaN()}
}

// NewNumCell builds a numeric cell, keeping the raw spelling alongside.
func NewNumCell(raw string, num float64) Cell {
	return Cell{Raw: raw, Num: num}
}

// Dataset is an ordered collection of named columns and their rows.
// It is loaded once at process start and treated as read-only afterwards;
// filtering produces new Datasets that share row storage.
type Dataset struct {
	Columns []ColumnDescriptor
	Rows    [][]Cell
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the descriptor for the named column.
func (d *Dataset) Column(name string) (ColumnDescriptor, bool) {
	i := d.ColumnIndex(name)
	if i < 0 {
		return ColumnDescriptor{}, false
	}
	return d.Columns[i], true
}

// ColumnNames returns the declared column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the dataset's column metadata. A dataset that reaches the
// query pipeline with no columns, an unnamed column, or an undeclared kind is
// a configuration fault, not a bad question.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("dataset declares no columns")
	}
	for i, c := range d.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("column %d has an empty name", i)
		}
		switch c.Kind {
		case KindCategorical, KindNumeric:
		default:
			return fmt.Errorf("column %q has unknown kind %q", c.Name, c.Kind)
		}
	}
	for r, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), len(d.Columns))
		}
	}
	return nil
}
