package models

// SummaryKind tags what a Summary describes.
type SummaryKind string

const (
	SummaryCategorical SummaryKind = "categorical"
	SummaryNumeric     SummaryKind = "numeric"
	SummaryNoData      SummaryKind = "no-data"
)

// ValueSemantics tags what the bucket values mean when charted.
type ValueSemantics string

const (
	SemanticsCount      ValueSemantics = "count"
	SemanticsPercentage ValueSemantics = "percentage"
)

// Bucket is one bar of a distribution: a category label or histogram bin
// and its member count.
type Bucket struct {
	Label string
	Count int
}

// NumericStats holds population descriptive statistics for a numeric target.
type NumericStats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// Summary is the distribution of a target column over a (filtered) dataset.
// Categorical: Buckets sorted by descending count, ties in first-encountered
// order. Numeric: Stats plus exactly five equal-width bins in ascending
// order. NoData: zero rows survived filtering.
type Summary struct {
	Kind    SummaryKind
	Target  string
	Buckets []Bucket
	Stats   *NumericStats
}

// Outcome classifies a query result for the serving layer.
type Outcome string

const (
	// OutcomeAnswer: conditions applied, data found, summary produced.
	OutcomeAnswer Outcome = "answer"
	// OutcomeNoMatch: nothing in the question resolved to a column with
	// sufficient confidence; Text carries guidance, not an answer.
	OutcomeNoMatch Outcome = "no_match"
	// OutcomeEmpty: conditions parsed and applied but zero rows remained.
	OutcomeEmpty Outcome = "empty_result"
)

// QueryResult is the structured answer handed to the serving boundary.
// Chart is PNG bytes and is nil for NoMatch, Empty, and no-data outcomes.
type QueryResult struct {
	Outcome     Outcome
	Text        string
	Chart       []byte
	Summary     *Summary
	Conditions  []Condition
	Target      string
	MatchedRows int
}
