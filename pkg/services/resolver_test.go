package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

func testColumns() []models.ColumnDescriptor {
	return []models.ColumnDescriptor{
		{Name: "carrier deck shape", Kind: models.KindCategorical, Synonyms: []string{"body type"}},
		{Name: "days worked", Kind: models.KindNumeric},
		{Name: "荷台形状", Kind: models.KindCategorical, Synonyms: []string{"荷台"}},
	}
}

func TestNormalizeFragment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Carrier Deck Shape", expected: "carrierdeckshape"},
		{name: "strips brackets and spaces", input: " (carrier) [deck] shape ", expected: "carrierdeckshape"},
		{name: "folds full-width", input: "（荷台形状）", expected: "荷台形状"},
		{name: "full-width digits narrow", input: "５日", expected: "5日"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeFragment(tt.input))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("daysworked", "daysworked"))
	assert.Equal(t, 0.0, similarity("", "daysworked"))
	assert.InDelta(t, 0.8, similarity("abcde", "abcdx"), 1e-9)

	// Rune-based, not byte-based: one substitution in a 4-rune string.
	assert.InDelta(t, 0.75, similarity("荷台形状", "荷台形式"), 1e-9)
}

func TestResolveColumn(t *testing.T) {
	cols := testColumns()

	tests := []struct {
		name      string
		fragment  string
		threshold float64
		expected  string
		ok        bool
	}{
		{name: "exact name", fragment: "carrier deck shape", threshold: 0.55, expected: "carrier deck shape", ok: true},
		{name: "synonym match", fragment: "body type", threshold: 0.55, expected: "carrier deck shape", ok: true},
		{name: "near miss resolves", fragment: "days workd", threshold: 0.55, expected: "days worked", ok: true},
		{name: "japanese with brackets", fragment: "（荷台形状）", threshold: 0.55, expected: "荷台形状", ok: true},
		{name: "below threshold", fragment: "zzzzzz", threshold: 0.55, ok: false},
		{name: "empty fragment", fragment: "", threshold: 0.55, ok: false},
		{name: "high threshold rejects near miss", fragment: "days workd", threshold: 0.99, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := ResolveColumn(tt.fragment, cols, tt.threshold)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, col.Name)
			}
		})
	}
}

// A returned column always scores at or above the threshold, and is always
// one of the declared columns.
func TestResolveColumnThresholdProperty(t *testing.T) {
	cols := testColumns()
	fragments := []string{"deck", "days", "shape", "worked", "荷台", "carrier deck", "nonsense"}
	for _, threshold := range []float64{0.3, 0.55, 0.7, 1.0} {
		for _, f := range fragments {
			col, ok := ResolveColumn(f, cols, threshold)
			if !ok {
				continue
			}
			norm := normalizeFragment(f)
			best := similarity(norm, normalizeFragment(col.Name))
			for _, syn := range col.Synonyms {
				if s := similarity(norm, normalizeFragment(syn)); s > best {
					best = s
				}
			}
			assert.GreaterOrEqual(t, best, threshold, "fragment %q threshold %v", f, threshold)
			assert.NotEqual(t, -1, indexOfColumn(cols, col.Name))
		}
	}
}

func TestResolveColumnTieBreaksByDeclarationOrder(t *testing.T) {
	cols := []models.ColumnDescriptor{
		{Name: "alpha", Kind: models.KindCategorical, Synonyms: []string{"size"}},
		{Name: "beta", Kind: models.KindCategorical, Synonyms: []string{"size"}},
	}
	col, ok := ResolveColumn("size", cols, 0.55)
	require.True(t, ok)
	assert.Equal(t, "alpha", col.Name)
}

func indexOfColumn(cols []models.ColumnDescriptor, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}
