package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// fillerPhrases are removed from the question before tokenizing: chart/
// reporting boilerplate and the grammatical particles that glue Japanese
// question text together. Replacing particles with spaces doubles as a crude
// segmenter for unspaced Japanese input. Order matters: longer phrases are
// stripped before the single-character particles they contain.
var fillerPhrases = []string{
	"をグラフで", "をグラフに", "グラフで", "グラフに", "グラフ",
	"の分布", "分布", "の内訳", "内訳",
	"教えてください", "教えて", "ください", "表示して", "見せて",
	"について", "ごとの", "における", "の場合",
	"ですか", "です", "ますか",
	"for the chart", "as a result", "show me",
	"distribution of", "distribution", "breakdown of", "breakdown",
	"please",
	"を", "は", "が", "で", "に", "の",
}

// qualifierWords may continue a value phrase started by a number token, so
// "5 or more days" is consumed as one token before normalization.
var qualifierWords = map[string]struct{}{
	"or": {}, "more": {}, "less": {}, "fewer": {}, "above": {}, "below": {},
	"and": {}, "up": {}, "over": {}, "under": {},
	"day": {}, "days": {}, "hour": {}, "hours": {}, "hrs": {},
}

var leadingDigitRe = regexp.MustCompile(`^\d`)

// maxColumnWindow bounds how many consecutive tokens may be joined when
// trying to resolve a multi-word column name.
const maxColumnWindow = 3

// multiWindowThreshold is the minimum score for joined multi-token windows.
// Joining exists to match multi-word column names nearly exactly; a looser
// floor lets unrelated neighbors ("kanto days worked") swallow real column
// mentions.
const multiWindowThreshold = 0.8

// ConditionParser turns free-text questions into filter conditions and a
// target column for the given dataset.
type ConditionParser struct {
	columns   []models.ColumnDescriptor
	threshold float64
}

// NewConditionParser builds a parser over the dataset's declared columns.
// threshold is the column-resolution confidence floor, passed through to
// ResolveColumn on every attempt.
func NewConditionParser(ds *models.Dataset, threshold float64) *ConditionParser {
	return &ConditionParser{columns: ds.Columns, threshold: threshold}
}

// Parse scans the question for (column, operator, value) clauses and picks
// the target column.
//
// The forward scan keeps a "column in focus" slot: a token that resolves to
// a column takes the focus; a following token that normalizes under that
// column's value shape emits a condition (GE for "or more" qualifiers, LE
// for "or less", EQ otherwise) and clears the focus. A column token with no
// qualifying value contributes nothing. Conditions repeated on the same
// column overwrite, last one wins.
//
// The reverse scan independently looks for the last column named in the
// question and makes it the visualization target, falling back to the first
// declared column when nothing resolves. TargetExplicit reports which case
// occurred.
func (p *ConditionParser) Parse(question string) models.ParsedQuery {
	tokens := p.tokenize(question)

	byColumn := map[string]int{} // column name -> index into conds
	var conds []models.Condition

	var focus *models.ColumnDescriptor
	for i := 0; i < len(tokens); {
		col, span, ok := p.resolveWindow(tokens, i)
		if ok {
			focus = &col
			i += span
			continue
		}
		if focus != nil {
			phrase, consumed := joinValuePhrase(tokens, i)
			if cond, ok := buildCondition(*focus, phrase); ok {
				if prev, seen := byColumn[cond.Column.Name]; seen {
					conds[prev] = cond
				} else {
					byColumn[cond.Column.Name] = len(conds)
					conds = append(conds, cond)
				}
				focus = nil
				i += consumed
				continue
			}
		}
		i++
	}

	target, explicit := p.resolveTarget(tokens)
	return models.ParsedQuery{Conditions: conds, Target: target, TargetExplicit: explicit}
}

// tokenize strips filler phrases and particles, collapses whitespace, and
// splits on spaces.
func (p *ConditionParser) tokenize(question string) []string {
	s := width.Fold.String(question)
	s = strings.ToLower(s)
	for _, phrase := range fillerPhrases {
		s = strings.ReplaceAll(s, phrase, " ")
	}
	return strings.Fields(s)
}

// resolveWindow tries to resolve a column starting at tokens[i], preferring
// the longest join of up to maxColumnWindow tokens. Joining lets space-
// separated column names ("carrier deck shape") resolve as a unit. Windows
// never span value-looking tokens, so a number stays available as the
// focused column's value.
func (p *ConditionParser) resolveWindow(tokens []string, i int) (models.ColumnDescriptor, int, bool) {
	for w := maxColumnWindow; w >= 1; w-- {
		if i+w > len(tokens) {
			continue
		}
		window := tokens[i : i+w]
		if containsValueToken(window) {
			continue
		}
		if col, ok := ResolveColumn(strings.Join(window, ""), p.columns, p.windowThreshold(w)); ok {
			return col, w, true
		}
	}
	return models.ColumnDescriptor{}, 0, false
}

func (p *ConditionParser) windowThreshold(w int) float64 {
	if w > 1 && p.threshold < multiWindowThreshold {
		return multiWindowThreshold
	}
	return p.threshold
}

func containsValueToken(tokens []string) bool {
	for _, t := range tokens {
		if leadingDigitRe.MatchString(t) {
			return true
		}
	}
	return false
}

// joinValuePhrase extends a number-led value token with following qualifier
// words so multi-word phrasings like "5 or more days" normalize as one unit.
// Non-numeric tokens stay single: qualifier phrases only trail numbers.
func joinValuePhrase(tokens []string, i int) (string, int) {
	phrase := tokens[i]
	consumed := 1
	if !leadingDigitRe.MatchString(phrase) {
		return phrase, consumed
	}
	for j := i + 1; j < len(tokens); j++ {
		if _, ok := qualifierWords[tokens[j]]; !ok {
			break
		}
		phrase += " " + tokens[j]
		consumed++
	}
	return phrase, consumed
}

// buildCondition normalizes the phrase under the focused column's shape and
// maps the detected qualifier to an operator. Unparseable values contribute
// no condition.
func buildCondition(col models.ColumnDescriptor, phrase string) (models.Condition, bool) {
	val, qual := NormalizeValue(col, phrase)
	if !val.Valid {
		return models.Condition{}, false
	}
	op := models.OpEQ
	switch qual {
	case models.QualAtLeast:
		op = models.OpGE
	case models.QualAtMost:
		op = models.OpLE
	}
	if val.Shape == models.ShapeRange && qual == models.QualNone && val.Low != val.High {
		op = models.OpBetween
	}
	return models.Condition{Column: col, Op: op, Value: val}, true
}

// resolveTarget scans tokens in reverse for the last column mention; the
// question's final column reference names what to visualize. Falls back to
// the first declared column.
func (p *ConditionParser) resolveTarget(tokens []string) (models.ColumnDescriptor, bool) {
	for end := len(tokens); end > 0; end-- {
		for w := maxColumnWindow; w >= 1; w-- {
			start := end - w
			if start < 0 {
				continue
			}
			window := tokens[start:end]
			if containsValueToken(window) {
				continue
			}
			if col, ok := ResolveColumn(strings.Join(window, ""), p.columns, p.windowThreshold(w)); ok {
				return col, true
			}
		}
	}
	return p.columns[0], false
}
