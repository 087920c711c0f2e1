package services

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// ResolveColumn fuzzy-matches a question fragment against the declared
// columns. Each column scores the maximum similarity across its name and
// synonym keywords; the best-scoring column wins. A candidate replaces the
// current best only on a strictly greater score, so ties resolve to the
// first column in declaration order. Returns false when the best score is
// below threshold; a column name absent from columns is never returned.
func ResolveColumn(fragment string, columns []models.ColumnDescriptor, threshold float64) (models.ColumnDescriptor, bool) {
	norm := normalizeFragment(fragment)
	if norm == "" {
		return models.ColumnDescriptor{}, false
	}

	var best models.ColumnDescriptor
	bestScore := 0.0
	for _, col := range columns {
		score := similarity(norm, normalizeFragment(col.Name))
		for _, syn := range col.Synonyms {
			if s := similarity(norm, normalizeFragment(syn)); s > score {
				score = s
			}
		}
		if score > bestScore {
			bestScore = score
			best = col
		}
	}
	if bestScore < threshold {
		return models.ColumnDescriptor{}, false
	}
	return best, true
}

// strippedRunes are characters removed before similarity scoring: whitespace
// and the bracket/quote characters survey column headers tend to carry, in
// both their ASCII and full-width forms. Width folding happens first, so the
// full-width variants normally collapse into the ASCII entries.
const strippedRunes = " \t　()[]{}（）［］｛｝【】「」『』'\"　・"

// normalizeFragment folds full-width characters to their narrow forms,
// lower-cases, and strips bracket/whitespace characters so that question
// fragments and column headers compare on their textual core.
func normalizeFragment(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(strippedRunes, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// similarity is a Levenshtein ratio normalized to [0,1]: 1 for identical
// strings, 0 for entirely different ones. Comparison is rune-based so
// multibyte text scores by character, not by byte.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein calculates the edit distance between two rune slices using a
// two-row DP table.
func levenshtein(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = minInt(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// minInt returns the minimum of three integers.
func minInt(a, b, c int) int {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
