package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

type stubAnswerService struct {
	result *models.QueryResult
	err    error
}

func (s *stubAnswerService) Answer(ctx context.Context, question string) (*models.QueryResult, error) {
	return s.result, s.err
}

func postAsk(t *testing.T, h *AskHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)
	return rec
}

func TestAskReturnsAnswerWithChart(t *testing.T) {
	chart := []byte{0x89, 'P', 'N', 'G'}
	svc := &stubAnswerService{result: &models.QueryResult{
		Outcome:     models.OutcomeAnswer,
		Text:        "carrier deck shape: 3 rows",
		Chart:       chart,
		Target:      "carrier deck shape",
		MatchedRows: 3,
	}}
	h := NewAskHandler(svc, zap.NewNop())

	rec := postAsk(t, h, `{"question":"deck shape distribution"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "answer", resp.Outcome)
	assert.Equal(t, "carrier deck shape: 3 rows", resp.Answer)
	assert.Equal(t, "carrier deck shape", resp.Target)
	assert.Equal(t, 3, resp.Rows)
	require.NotNil(t, resp.Image)
	decoded, err := base64.StdEncoding.DecodeString(*resp.Image)
	require.NoError(t, err)
	assert.Equal(t, chart, decoded)
}

func TestAskNoMatchHasNoImage(t *testing.T) {
	svc := &stubAnswerService{result: &models.QueryResult{
		Outcome: models.OutcomeNoMatch,
		Text:    "I couldn't match your question to a survey column.",
	}}
	h := NewAskHandler(svc, zap.NewNop())

	rec := postAsk(t, h, `{"question":"xyz123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_match", resp.Outcome)
	assert.Nil(t, resp.Image)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	h := NewAskHandler(&stubAnswerService{}, zap.NewNop())

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		rec := postAsk(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestAskRejectsMalformedBody(t *testing.T) {
	h := NewAskHandler(&stubAnswerService{}, zap.NewNop())

	rec := postAsk(t, h, "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskRejectsNonPost(t *testing.T) {
	h := NewAskHandler(&stubAnswerService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAskPipelineErrorIs500(t *testing.T) {
	svc := &stubAnswerService{err: errors.New("boom")}
	h := NewAskHandler(svc, zap.NewNop())

	rec := postAsk(t, h, `{"question":"deck shape"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"])
}
