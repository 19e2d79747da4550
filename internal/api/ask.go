package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// maxQuestionBytes bounds the request body size.
const maxQuestionBytes = 64 << 10

// Answerer resolves a question to a text answer. Satisfied by
// *agent.Agent; its contract is that it never fails, so every accepted
// question produces a 200 with text.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// askRequest is the POST /api/ask request body.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse is the POST /api/ask response body.
type askResponse struct {
	Response string `json:"response"`
}

type askHandler struct {
	agent  Answerer
	logger *slog.Logger
}

// ask handles POST /api/ask. A missing or empty question is the only
// client error; everything downstream comes back as in-band answer text.
func (h *askHandler) ask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQuestionBytes)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "missing_question", "question is required")
		return
	}

	answer := h.agent.Answer(r.Context(), question)
	h.logger.Debug("question answered", "question_chars", len(question), "answer_chars", len(answer))
	writeJSON(w, http.StatusOK, askResponse{Response: answer})
}
