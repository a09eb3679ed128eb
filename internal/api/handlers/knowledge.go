package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brightsmile/clinassist/internal/api"
	"github.com/brightsmile/clinassist/internal/service"
)

type KnowledgeAPI interface {
	Append(ctx context.Context, text string) error
	Stats() service.Stats
}

type KnowledgeHandler struct {
	svc KnowledgeAPI
}

func NewKnowledgeHandler(svc KnowledgeAPI) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type AppendKnowledgeRequest struct {
	Text string `json:"text"`
}

type KnowledgeStatsResponse struct {
	Passages            int    `json:"passages"`
	EmbeddingsAvailable bool   `json:"embeddings_available"`
	EmbeddingModel      string `json:"embedding_model"`
	SourceFile          string `json:"source_file"`
}

// Append adds new text to the knowledge base and reindexes it.
func (h *KnowledgeHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req AppendKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		api.Error(w, http.StatusBadRequest, "text is required")
		return
	}

	if err := h.svc.Append(r.Context(), req.Text); err != nil {
		api.HandleError(w, err)
		return
	}

	stats := h.svc.Stats()
	api.Success(w, http.StatusCreated, statsToResponse(stats))
}

// Stats returns the current state of the knowledge base.
func (h *KnowledgeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, statsToResponse(h.svc.Stats()))
}

func statsToResponse(s service.Stats) *KnowledgeStatsResponse {
	return &KnowledgeStatsResponse{
		Passages:            s.Passages,
		EmbeddingsAvailable: s.EmbeddingsAvailable,
		EmbeddingModel:      s.EmbeddingModel,
		SourceFile:          s.SourceFile,
	}
}
