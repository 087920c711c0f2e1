package services

import (
	"math"
	"strings"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// ApplyConditions filters the dataset by the AND of all conditions. The
// source dataset is never mutated: the result is a new Dataset sharing
// column metadata and row storage. Conditions naming a column absent from
// the dataset are skipped. An empty result is a normal outcome.
func ApplyConditions(ds *models.Dataset, conds []models.Condition) *models.Dataset {
	out := &models.Dataset{Columns: ds.Columns}
	if len(conds) == 0 {
		out.Rows = append(out.Rows, ds.Rows...)
		return out
	}

	for _, row := range ds.Rows {
		keep := true
		for _, cond := range conds {
			idx := ds.ColumnIndex(cond.Column.Name)
			if idx < 0 {
				continue
			}
			if !matchCell(cond.Column, row[idx], cond) {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// matchCell applies one condition to one cell, selecting comparison
// semantics by the column's kind and normalization rule.
func matchCell(col models.ColumnDescriptor, cell models.Cell, cond models.Condition) bool {
	if col.Rule == models.RuleRangedHours {
		return matchRanged(cell, cond)
	}
	if col.Kind == models.KindNumeric {
		return matchNumeric(cell, cond)
	}
	return matchCategorical(cell, cond)
}

// matchNumeric compares the cell's parsed number against the condition's
// scalar (midpoint when the condition carried a range). Cells that never
// parsed to a number match nothing.
func matchNumeric(cell models.Cell, cond models.Condition) bool {
	v := cell.Num
	if math.IsNaN(v) {
		return false
	}
	t := cond.Value.Scalar()
	switch cond.Op {
	case models.OpGE:
		return v >= t
	case models.OpLE:
		return v <= t
	case models.OpEQ, models.OpContains:
		return v == t
	case models.OpNE:
		return v != t
	case models.OpBetween:
		return v >= cond.Value.Low && v <= cond.Value.High
	case models.OpIn:
		for _, cv := range cond.Values {
			if v == cv.Scalar() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// matchRanged compares bucketed range cells ("4〜8時間", "8時間以上")
// against a threshold. Overlap policy: a bucket matches a one-sided
// threshold whenever any part of the bucket satisfies it, so GE keeps
// buckets whose upper bound reaches the threshold and LE keeps buckets
// whose lower bound is at or under it. EQ keeps buckets containing the
// threshold value.
func matchRanged(cell models.Cell, cond models.Condition) bool {
	rv, _ := normalizeDuration(cell.Raw)
	if !rv.Valid {
		return false
	}
	t := cond.Value.Scalar()
	switch cond.Op {
	case models.OpGE:
		return rv.High >= t
	case models.OpLE:
		return rv.Low <= t
	case models.OpEQ, models.OpContains:
		return rv.Low <= t && t <= rv.High
	case models.OpNE:
		return !(rv.Low <= t && t <= rv.High)
	case models.OpBetween:
		return rv.High >= cond.Value.Low && rv.Low <= cond.Value.High
	case models.OpIn:
		for _, cv := range cond.Values {
			s := cv.Scalar()
			if rv.Low <= s && s <= rv.High {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// matchCategorical tests case-normalized containment. EQ is deliberately a
// substring match, not strict equality: question phrasing rarely reproduces
// a stored value exactly ("mixer" should match "mixer truck").
func matchCategorical(cell models.Cell, cond models.Condition) bool {
	cellVal := foldValue(cell.Raw)
	switch cond.Op {
	case models.OpEQ, models.OpContains:
		return containsEither(cellVal, cond.Value.Text)
	case models.OpNE:
		return !containsEither(cellVal, cond.Value.Text)
	case models.OpIn:
		for _, cv := range cond.Values {
			if containsEither(cellVal, cv.Text) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// containsEither matches when either string contains the other, so a short
// stored value still matches a longer question phrase.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
