package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/driveline-labs/survey-engine/pkg/apperrors"
	"github.com/driveline-labs/survey-engine/pkg/chart"
	"github.com/driveline-labs/survey-engine/pkg/models"
	"github.com/driveline-labs/survey-engine/pkg/render"
)

// AnswerService resolves free-text questions about the loaded survey
// dataset into distribution answers.
type AnswerService interface {
	// Answer runs the full pipeline: parse -> filter -> summarize -> render.
	Answer(ctx context.Context, question string) (*models.QueryResult, error)
}

// Options tunes the pipeline.
type Options struct {
	// Threshold is the column-resolution confidence floor in (0, 1].
	Threshold float64
	// Extractor, when set, is tried before the deterministic parser.
	Extractor *LLMExtractor
}

type answerService struct {
	dataset   *models.Dataset
	parser    *ConditionParser
	extractor *LLMExtractor
	renderer  chart.Renderer
	logger    *zap.Logger
}

// NewAnswerService validates the dataset and wires the pipeline. A dataset
// with broken column metadata is a configuration fault and fails
// construction; questions never do.
func NewAnswerService(ds *models.Dataset, renderer chart.Renderer, opts Options, logger *zap.Logger) (AnswerService, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedDataset, err)
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("resolver threshold %v outside (0, 1]", opts.Threshold)
	}
	return &answerService{
		dataset:   ds,
		parser:    NewConditionParser(ds, opts.Threshold),
		extractor: opts.Extractor,
		renderer:  renderer,
		logger:    logger.Named("answer"),
	}, nil
}

func (s *answerService) Answer(ctx context.Context, question string) (*models.QueryResult, error) {
	queryID := uuid.New()
	logger := s.logger.With(zap.String("query_id", queryID.String()))
	logger.Info("Answering question", zap.String("question", question))

	pq := s.parseQuestion(ctx, question, logger)

	// Nothing resolved with confidence: return guidance, not a failure.
	if len(pq.Conditions) == 0 && !pq.TargetExplicit {
		logger.Info("No column or condition resolved")
		return &models.QueryResult{
			Outcome: models.OutcomeNoMatch,
			Text:    render.Guidance(s.dataset.ColumnNames()),
			Target:  pq.Target.Name,
		}, nil
	}

	filtered := ApplyConditions(s.dataset, pq.Conditions)
	logger.Info("Applied conditions",
		zap.Int("conditions", len(pq.Conditions)),
		zap.String("target", pq.Target.Name),
		zap.Int("rows_in", len(s.dataset.Rows)),
		zap.Int("rows_out", len(filtered.Rows)))

	if len(filtered.Rows) == 0 {
		return &models.QueryResult{
			Outcome:    models.OutcomeEmpty,
			Text:       render.EmptyResultText(pq.Conditions),
			Conditions: pq.Conditions,
			Target:     pq.Target.Name,
		}, nil
	}

	summary := Summarize(filtered, pq.Target)
	result := &models.QueryResult{
		Outcome:     models.OutcomeAnswer,
		Text:        render.SummaryText(&summary, len(filtered.Rows)),
		Summary:     &summary,
		Conditions:  pq.Conditions,
		Target:      pq.Target.Name,
		MatchedRows: len(filtered.Rows),
	}
	if summary.Kind == models.SummaryNoData {
		// Rows survived filtering but none carried a usable target value.
		result.Outcome = models.OutcomeEmpty
		return result, nil
	}

	result.Chart = s.renderChart(&summary, logger)
	return result, nil
}

// parseQuestion prefers the LLM extractor when configured, falling back to
// the deterministic parser on any extractor failure.
func (s *answerService) parseQuestion(ctx context.Context, question string, logger *zap.Logger) models.ParsedQuery {
	if s.extractor != nil {
		pq, err := s.extractor.Extract(ctx, question, s.dataset)
		if err == nil {
			logger.Debug("Conditions extracted via LLM", zap.Int("conditions", len(pq.Conditions)))
			return pq
		}
		logger.Warn("LLM extraction failed, using deterministic parser", zap.Error(err))
	}
	return s.parser.Parse(question)
}

// renderChart draws the summary's bar chart. A rendering failure degrades
// to a text-only answer rather than failing the query.
func (s *answerService) renderChart(summary *models.Summary, logger *zap.Logger) []byte {
	labels := make([]string, len(summary.Buckets))
	values := make([]float64, len(summary.Buckets))
	for i, b := range summary.Buckets {
		labels[i] = b.Label
		values[i] = float64(b.Count)
	}
	img, err := s.renderer.RenderBar(labels, values, summary.Target, models.SemanticsCount)
	if err != nil {
		logger.Warn("Chart rendering failed", zap.Error(err))
		return nil
	}
	return img
}
