package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// Qualified value patterns. Input is width-folded, lower-cased, and has all
// whitespace removed before matching, so "５日以上", "5 days or more" and
// "5days or more" all reduce to the same shape. Range dashes cover the
// ASCII hyphen and the wave/long dashes common in Japanese survey buckets.
var (
	numPat  = `(\d+(?:\.\d+)?)`
	dashPat = `[〜~\-–ー]`

	dayAtLeastRe = regexp.MustCompile(`^` + numPat + `(?:日|days?)?(?:以上|ormore|orabove|andup|andover)(?:日|days?)?$`)
	dayAtMostRe  = regexp.MustCompile(`^` + numPat + `(?:日|days?)?(?:以下|以内|orless|orfewer|orbelow|andunder)(?:日|days?)?$`)
	dayRangeRe   = regexp.MustCompile(`^` + numPat + dashPat + numPat + `(?:日|days?)?$`)
	dayPlainRe   = regexp.MustCompile(`^` + numPat + `(?:日|days?)?$`)

	hourAtLeastRe = regexp.MustCompile(`^` + numPat + `(?:時間|hours?|hrs?|h)?(?:以上|ormore|orabove|andup|andover)(?:時間|hours?|hrs?|h)?$`)
	hourAtMostRe  = regexp.MustCompile(`^` + numPat + `(?:時間|hours?|hrs?|h)?(?:以下|以内|未満|orless|orfewer|orbelow|andunder)(?:時間|hours?|hrs?|h)?$`)
	hourRangeRe   = regexp.MustCompile(`^` + numPat + dashPat + numPat + `(?:時間|hours?|hrs?|h)?$`)
	hourPlainRe   = regexp.MustCompile(`^` + numPat + `(?:時間|hours?|hrs?|h)?$`)
)

// foldValue canonicalizes a raw value token: narrow width forms, lower-case,
// trimmed. Categorical comparisons and pattern matching both start here.
func foldValue(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '　' {
			return -1
		}
		return r
	}, s)
}

// NormalizeValue converts a raw question token into a comparison-ready value
// for the given column, reporting any threshold qualifier found next to it.
// Dispatch is on the column's declared rule and kind only. Input that does
// not fit the column's shape yields the invalid marker; callers must treat
// that as "no condition", never as a zero value.
func NormalizeValue(col models.ColumnDescriptor, raw string) (models.NormalizedValue, models.Qualifier) {
	switch {
	case col.Rule == models.RuleRangedHours:
		return normalizeDuration(raw)
	case col.Rule == models.RuleRangedDays, col.Kind == models.KindNumeric:
		return normalizeDayCount(raw)
	default:
		folded := foldValue(raw)
		if folded == "" {
			return models.Invalid(), models.QualNone
		}
		return models.TextValue(folded), models.QualNone
	}
}

// normalizeDayCount parses day-count shapes: "5日", "5 days", "5日以上",
// "2 or fewer days", "3〜4日". Ranged input keeps both bounds; Scalar()
// yields the midpoint when a single representative number is needed.
func normalizeDayCount(raw string) (models.NormalizedValue, models.Qualifier) {
	s := stripSpaces(foldValue(raw))
	if s == "" {
		return models.Invalid(), models.QualNone
	}

	if m := dayAtLeastRe.FindStringSubmatch(s); m != nil {
		return models.NumberValue(mustFloat(m[1])), models.QualAtLeast
	}
	if m := dayAtMostRe.FindStringSubmatch(s); m != nil {
		return models.NumberValue(mustFloat(m[1])), models.QualAtMost
	}
	if m := dayRangeRe.FindStringSubmatch(s); m != nil {
		lo, hi := mustFloat(m[1]), mustFloat(m[2])
		if lo > hi {
			return models.Invalid(), models.QualNone
		}
		return models.RangeValue(lo, hi), models.QualNone
	}
	if m := dayPlainRe.FindStringSubmatch(s); m != nil {
		return models.NumberValue(mustFloat(m[1])), models.QualNone
	}
	return models.Invalid(), models.QualNone
}

// normalizeDuration parses duration shapes into ranges. One-sided
// thresholds become open-ended ranges with an infinity bound: "8時間以上"
// is [8, +Inf), "4 or less hours" is (-Inf, 4].
func normalizeDuration(raw string) (models.NormalizedValue, models.Qualifier) {
	s := stripSpaces(foldValue(raw))
	if s == "" {
		return models.Invalid(), models.QualNone
	}

	if m := hourAtLeastRe.FindStringSubmatch(s); m != nil {
		return models.RangeValue(mustFloat(m[1]), math.Inf(1)), models.QualAtLeast
	}
	if m := hourAtMostRe.FindStringSubmatch(s); m != nil {
		return models.RangeValue(math.Inf(-1), mustFloat(m[1])), models.QualAtMost
	}
	if m := hourRangeRe.FindStringSubmatch(s); m != nil {
		lo, hi := mustFloat(m[1]), mustFloat(m[2])
		if lo > hi {
			return models.Invalid(), models.QualNone
		}
		return models.RangeValue(lo, hi), models.QualNone
	}
	if m := hourPlainRe.FindStringSubmatch(s); m != nil {
		n := mustFloat(m[1])
		return models.RangeValue(n, n), models.QualNone
	}
	return models.Invalid(), models.QualNone
}

// mustFloat is only called on strings already matched by numPat.
func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
