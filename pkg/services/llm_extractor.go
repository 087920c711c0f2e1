package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/driveline-labs/survey-engine/pkg/llm"
	"github.com/driveline-labs/survey-engine/pkg/models"
)

const extractorSystemMessage = `You translate survey questions into structured filters.
Respond with JSON only, no prose:
{"conditions":[{"column":"<column name>","op":"eq|ne|ge|le|between|in","value":"<value text>"}],"target":"<column name>"}
Use only the column names provided. Leave conditions empty when the question only asks for a distribution.`

// extractedQuery mirrors the JSON the model is asked to emit.
type extractedQuery struct {
	Conditions []extractedCondition `json:"conditions"`
	Target     string               `json:"target"`
}

type extractedCondition struct {
	Column string `json:"column"`
	Op     string `json:"op"`
	Value  string `json:"value"`
}

// LLMExtractor asks a chat-completion model to translate a question into
// structured conditions directly. It is an alternate front for the
// deterministic ConditionParser: every column and value in the model's
// output is still validated through the resolver and normalizer, so the
// model cannot introduce columns the dataset does not have.
type LLMExtractor struct {
	client    llm.ChatClient
	threshold float64
	logger    *zap.Logger
}

// NewLLMExtractor builds an extractor over the given chat client.
func NewLLMExtractor(client llm.ChatClient, threshold float64, logger *zap.Logger) *LLMExtractor {
	return &LLMExtractor{client: client, threshold: threshold, logger: logger.Named("extractor")}
}

// Extract sends the question and column inventory to the model and maps the
// response onto validated conditions. Any transport or parse failure is
// returned so the caller can fall back to the deterministic parser.
func (e *LLMExtractor) Extract(ctx context.Context, question string, ds *models.Dataset) (models.ParsedQuery, error) {
	prompt := e.buildPrompt(question, ds)
	resp, err := e.client.GenerateResponse(ctx, prompt, extractorSystemMessage, 0.0)
	if err != nil {
		return models.ParsedQuery{}, fmt.Errorf("extract conditions: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[extractedQuery](resp)
	if err != nil {
		return models.ParsedQuery{}, fmt.Errorf("extract conditions: %w", err)
	}
	return e.toParsedQuery(parsed, ds), nil
}

func (e *LLMExtractor) buildPrompt(question string, ds *models.Dataset) string {
	var b strings.Builder
	b.WriteString("Columns:\n")
	for _, c := range ds.Columns {
		fmt.Fprintf(&b, "- %s (%s)", c.Name, c.Kind)
		if len(c.Synonyms) > 0 {
			fmt.Fprintf(&b, " also called: %s", strings.Join(c.Synonyms, ", "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}

// toParsedQuery validates the model output. Conditions with unresolvable
// columns or unparseable values are dropped, mirroring the deterministic
// parser's recovery behavior.
func (e *LLMExtractor) toParsedQuery(q extractedQuery, ds *models.Dataset) models.ParsedQuery {
	var conds []models.Condition
	for _, ec := range q.Conditions {
		col, ok := e.resolveNamed(ec.Column, ds)
		if !ok {
			e.logger.Debug("Dropping condition on unknown column", zap.String("column", ec.Column))
			continue
		}
		val, qual := NormalizeValue(col, ec.Value)
		if !val.Valid {
			e.logger.Debug("Dropping condition with unparseable value",
				zap.String("column", col.Name),
				zap.String("value", ec.Value))
			continue
		}
		conds = append(conds, models.Condition{Column: col, Op: mapOperator(ec.Op, qual), Value: val})
	}

	target, explicit := e.resolveNamed(q.Target, ds)
	if !explicit {
		target = ds.Columns[0]
	}
	return models.ParsedQuery{Conditions: conds, Target: target, TargetExplicit: explicit}
}

// resolveNamed matches a model-reported column name: exact first, fuzzy as
// a fallback for slightly mangled names.
func (e *LLMExtractor) resolveNamed(name string, ds *models.Dataset) (models.ColumnDescriptor, bool) {
	if col, ok := ds.Column(name); ok {
		return col, true
	}
	return ResolveColumn(name, ds.Columns, e.threshold)
}

func mapOperator(op string, qual models.Qualifier) models.Operator {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case "ge", ">=", "gte":
		return models.OpGE
	case "le", "<=", "lte":
		return models.OpLE
	case "ne", "!=":
		return models.OpNE
	case "between":
		return models.OpBetween
	case "in":
		return models.OpIn
	case "contains":
		return models.OpContains
	}
	// The model sometimes answers "eq" for threshold phrasings; trust the
	// qualifier the normalizer saw in the value text.
	switch qual {
	case models.QualAtLeast:
		return models.OpGE
	case models.QualAtMost:
		return models.OpLE
	}
	return models.OpEQ
}
