package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/driveline-labs/survey-engine/pkg/models"
	"github.com/driveline-labs/survey-engine/pkg/services"
)

// AskRequest is the question payload from the chat front-end.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the answer text and, when available, the rendered
// chart as base64 PNG. Outcome distinguishes answers from guidance and
// empty results so the front-end can style them differently.
type AskResponse struct {
	Outcome string  `json:"outcome"`
	Answer  string  `json:"answer"`
	Image   *string `json:"image"`
	Target  string  `json:"target,omitempty"`
	Rows    int     `json:"rows,omitempty"`
}

// AskHandler handles question-answering requests.
type AskHandler struct {
	svc    services.AnswerService
	logger *zap.Logger
}

// NewAskHandler creates a new AskHandler over the answer service.
func NewAskHandler(svc services.AnswerService, logger *zap.Logger) *AskHandler {
	return &AskHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ask", h.Ask)
}

// Ask handles POST /ask requests.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "body must be JSON with a question field")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "question must not be empty")
		return
	}

	result, err := h.svc.Answer(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("Answer pipeline failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to answer question")
		return
	}

	resp := AskResponse{
		Outcome: string(result.Outcome),
		Answer:  result.Text,
		Target:  result.Target,
		Rows:    result.MatchedRows,
	}
	if len(result.Chart) > 0 {
		encoded := base64.StdEncoding.EncodeToString(result.Chart)
		resp.Image = &encoded
	}
	if result.Outcome != models.OutcomeAnswer {
		h.logger.Info("Question did not produce an answer",
			zap.String("outcome", string(result.Outcome)),
			zap.String("question", req.Question))
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode ask response", zap.Error(err))
	}
}
