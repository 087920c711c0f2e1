package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// histogramBins is the fixed number of equal-width bins for numeric targets.
const histogramBins = 5

// Summarize computes the distribution of the target column over the
// (already filtered) dataset. Categorical targets yield per-value frequency
// buckets sorted by descending count with ties in first-encountered order.
// Numeric targets yield population count/mean/min/max plus a five-bin
// equal-width histogram in ascending bin order. Zero usable rows yield a
// no-data summary.
func Summarize(ds *models.Dataset, target models.ColumnDescriptor) models.Summary {
	idx := ds.ColumnIndex(target.Name)
	if idx < 0 || len(ds.Rows) == 0 {
		return models.Summary{Kind: models.SummaryNoData, Target: target.Name}
	}
	if target.Kind == models.KindNumeric {
		return summarizeNumeric(ds, target, idx)
	}
	return summarizeCategorical(ds, target, idx)
}

func summarizeCategorical(ds *models.Dataset, target models.ColumnDescriptor, idx int) models.Summary {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	labels := map[string]string{} // folded -> first observed spelling

	order := 0
	for _, row := range ds.Rows {
		raw := row[idx].Raw
		key := foldValue(raw)
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			firstSeen[key] = order
			labels[key] = raw
			order++
		}
		counts[key]++
	}
	if len(counts) == 0 {
		return models.Summary{Kind: models.SummaryNoData, Target: target.Name}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return firstSeen[keys[i]] < firstSeen[keys[j]]
	})

	buckets := make([]models.Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, models.Bucket{Label: labels[k], Count: counts[k]})
	}
	return models.Summary{Kind: models.SummaryCategorical, Target: target.Name, Buckets: buckets}
}

func summarizeNumeric(ds *models.Dataset, target models.ColumnDescriptor, idx int) models.Summary {
	var values []float64
	for _, row := range ds.Rows {
		v := row[idx].Num
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return models.Summary{Kind: models.SummaryNoData, Target: target.Name}
	}

	minV, maxV, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	stats := &models.NumericStats{
		Count: len(values),
		Mean:  sum / float64(len(values)),
		Min:   minV,
		Max:   maxV,
	}

	binWidth := (maxV - minV) / histogramBins
	binCounts := make([]int, histogramBins)
	for _, v := range values {
		b := 0
		if binWidth > 0 {
			b = int((v - minV) / binWidth)
			if b >= histogramBins {
				b = histogramBins - 1
			}
		}
		binCounts[b]++
	}

	buckets := make([]models.Bucket, 0, histogramBins)
	for i := 0; i < histogramBins; i++ {
		lo := minV + binWidth*float64(i)
		hi := lo + binWidth
		buckets = append(buckets, models.Bucket{
			Label: fmt.Sprintf("%s-%s", formatBound(lo), formatBound(hi)),
			Count: binCounts[i],
		})
	}
	return models.Summary{Kind: models.SummaryNumeric, Target: target.Name, Stats: stats, Buckets: buckets}
}

// formatBound trims trailing zeros from bin edge labels.
func formatBound(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
