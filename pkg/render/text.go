// Package render formats distribution summaries as user-facing text.
package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// SummaryText renders a summary as a small aligned table preceded by a
// one-line description. matched is the row count that survived filtering.
func SummaryText(s *models.Summary, matched int) string {
	var b strings.Builder

	switch s.Kind {
	case models.SummaryNoData:
		fmt.Fprintf(&b, "No data for %s.", s.Target)
		return b.String()
	case models.SummaryNumeric:
		fmt.Fprintf(&b, "%s: %d rows, mean %.2f, min %.4g, max %.4g\n",
			s.Target, s.Stats.Count, s.Stats.Mean, s.Stats.Min, s.Stats.Max)
	default:
		fmt.Fprintf(&b, "%s: %d rows\n", s.Target, matched)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{s.Target, "count"})
	for _, bucket := range s.Buckets {
		t.AppendRow(table.Row{bucket.Label, bucket.Count})
	}
	b.WriteString(t.Render())
	return b.String()
}

// Guidance builds the message returned when nothing in a question resolved:
// it enumerates the recognized columns and shows example phrasings so the
// user can rephrase, instead of a bare failure.
func Guidance(columns []string) string {
	var b strings.Builder
	b.WriteString("I couldn't match your question to the survey data. ")
	b.WriteString("Ask about one of these columns:\n")
	for _, c := range columns {
		fmt.Fprintf(&b, "  - %s\n", c)
	}
	if len(columns) > 0 {
		fmt.Fprintf(&b, "For example: \"%s distribution\" or \"%s 5 or more\".", columns[0], columns[0])
	}
	return b.String()
}

// EmptyResultText describes a successfully parsed query that matched no rows.
func EmptyResultText(conds []models.Condition) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, conditionText(c))
	}
	if len(parts) == 0 {
		return "No rows matched your question."
	}
	return fmt.Sprintf("No rows matched %s.", strings.Join(parts, " and "))
}

func conditionText(c models.Condition) string {
	var v string
	switch c.Value.Shape {
	case models.ShapeText:
		v = c.Value.Text
	case models.ShapeRange:
		v = fmt.Sprintf("%.4g-%.4g", c.Value.Low, c.Value.High)
	default:
		v = fmt.Sprintf("%.4g", c.Value.Number)
	}
	switch c.Op {
	case models.OpGE:
		return fmt.Sprintf("%s >= %s", c.Column.Name, v)
	case models.OpLE:
		return fmt.Sprintf("%s <= %s", c.Column.Name, v)
	case models.OpNE:
		return fmt.Sprintf("%s != %s", c.Column.Name, v)
	case models.OpBetween:
		return fmt.Sprintf("%s between %s", c.Column.Name, v)
	default:
		return fmt.Sprintf("%s = %s", c.Column.Name, v)
	}
}
