package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brightsmile/clinassist/internal/api"
	"github.com/brightsmile/clinassist/internal/service"
)

type Assistant interface {
	HandleTurn(ctx context.Context, utterance string) *service.TurnResult
}

type ChatHandler struct {
	assistant Assistant
}

func NewChatHandler(assistant Assistant) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply       string `json:"reply"`
	Intent      string `json:"intent"`
	ContextUsed bool   `json:"context_used"`
}

const maxMessageLength = 2000

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Message) > maxMessageLength {
		api.Error(w, http.StatusBadRequest, "message is too long")
		return
	}

	// Blank messages are not an error: the assistant answers them
	// with a greeting prompt.
	result := h.assistant.HandleTurn(r.Context(), req.Message)

	api.Success(w, http.StatusOK, ChatResponse{
		Reply:       result.Reply,
		Intent:      string(result.Intent),
		ContextUsed: result.ContextUsed,
	})
}
