package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

var (
	daysCol  = models.ColumnDescriptor{Name: "days worked", Kind: models.KindNumeric, Rule: models.RuleRangedDays}
	hoursCol = models.ColumnDescriptor{Name: "拘束時間", Kind: models.KindCategorical, Rule: models.RuleRangedHours}
	catCol   = models.ColumnDescriptor{Name: "carrier deck shape", Kind: models.KindCategorical}
)

func TestNormalizeDayCount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		num   float64
		qual  models.Qualifier
	}{
		{name: "plain number", raw: "5", valid: true, num: 5, qual: models.QualNone},
		{name: "number with unit", raw: "5 days", valid: true, num: 5, qual: models.QualNone},
		{name: "japanese unit", raw: "5日", valid: true, num: 5, qual: models.QualNone},
		{name: "or more", raw: "5 or more", valid: true, num: 5, qual: models.QualAtLeast},
		{name: "unit then or more", raw: "5 days or more", valid: true, num: 5, qual: models.QualAtLeast},
		{name: "japanese at least", raw: "5日以上", valid: true, num: 5, qual: models.QualAtLeast},
		{name: "or fewer", raw: "2 or fewer days", valid: true, num: 2, qual: models.QualAtMost},
		{name: "japanese at most", raw: "3日以下", valid: true, num: 3, qual: models.QualAtMost},
		{name: "decimal", raw: "3.5日", valid: true, num: 3.5, qual: models.QualNone},
		{name: "full-width digits", raw: "５日以上", valid: true, num: 5, qual: models.QualAtLeast},
		{name: "garbage", raw: "mixer", valid: false},
		{name: "empty", raw: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, qual := NormalizeValue(daysCol, tt.raw)
			require.Equal(t, tt.valid, v.Valid)
			if !tt.valid {
				return
			}
			assert.Equal(t, tt.num, v.Number)
			assert.Equal(t, tt.qual, qual)
		})
	}
}

func TestNormalizeDayCountRange(t *testing.T) {
	v, qual := NormalizeValue(daysCol, "3〜4日")
	require.True(t, v.Valid)
	assert.Equal(t, models.ShapeRange, v.Shape)
	assert.Equal(t, 3.0, v.Low)
	assert.Equal(t, 4.0, v.High)
	assert.Equal(t, 3.5, v.Scalar())
	assert.Equal(t, models.QualNone, qual)

	v, _ = NormalizeValue(daysCol, "3-4 days")
	require.True(t, v.Valid)
	assert.Equal(t, 3.5, v.Scalar())

	// Inverted bounds are unparseable, not silently reordered.
	v, _ = NormalizeValue(daysCol, "9〜4日")
	assert.False(t, v.Valid)
}

// Normalizing the stringified numeric result again yields the same number.
func TestNormalizeDayCountIdempotent(t *testing.T) {
	for _, raw := range []string{"5 days", "3〜4 days", "2 or fewer days", "7日以上"} {
		v, _ := NormalizeValue(daysCol, raw)
		require.True(t, v.Valid, raw)
		again, _ := NormalizeValue(daysCol, fmt.Sprintf("%g", v.Scalar()))
		require.True(t, again.Valid, raw)
		assert.Equal(t, v.Scalar(), again.Scalar(), raw)
	}
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		valid    bool
		low      float64
		high     float64
		qual     models.Qualifier
	}{
		{name: "japanese at least", raw: "8時間以上", valid: true, low: 8, high: math.Inf(1), qual: models.QualAtLeast},
		{name: "japanese at most", raw: "4時間以下", valid: true, low: math.Inf(-1), high: 4, qual: models.QualAtMost},
		{name: "japanese range", raw: "4〜8時間", valid: true, low: 4, high: 8, qual: models.QualNone},
		{name: "english at least", raw: "8 hours or more", valid: true, low: 8, high: math.Inf(1), qual: models.QualAtLeast},
		{name: "english at most", raw: "4 or less hours", valid: true, low: math.Inf(-1), high: 4, qual: models.QualAtMost},
		{name: "english range", raw: "4-8 hours", valid: true, low: 4, high: 8, qual: models.QualNone},
		{name: "bare number is degenerate range", raw: "6時間", valid: true, low: 6, high: 6, qual: models.QualNone},
		{name: "garbage", raw: "whenever", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, qual := NormalizeValue(hoursCol, tt.raw)
			require.Equal(t, tt.valid, v.Valid)
			if !tt.valid {
				return
			}
			assert.Equal(t, models.ShapeRange, v.Shape)
			assert.Equal(t, tt.low, v.Low)
			assert.Equal(t, tt.high, v.High)
			assert.Equal(t, tt.qual, qual)
		})
	}
}

func TestNormalizeCategorical(t *testing.T) {
	v, qual := NormalizeValue(catCol, " Mixer ")
	require.True(t, v.Valid)
	assert.Equal(t, models.ShapeText, v.Shape)
	assert.Equal(t, "mixer", v.Text)
	assert.Equal(t, models.QualNone, qual)

	v, _ = NormalizeValue(catCol, "ミキサー")
	require.True(t, v.Valid)
	assert.Equal(t, "ミキサー", v.Text)

	v, _ = NormalizeValue(catCol, "   ")
	assert.False(t, v.Valid)
}
