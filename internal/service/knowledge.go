package service

import (
	"context"
	"strings"
	"sync"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/store"
	"github.com/brightsmile/clinassist/internal/telemetry"
)

// KnowledgeService manages the knowledge base file and keeps the
// retrieval index in sync with its contents.
type KnowledgeService struct {
	mu        sync.Mutex
	path      string
	retrieval *RetrievalService
	model     string
}

// NewKnowledgeService creates a new KnowledgeService instance
func NewKnowledgeService(path string, retrieval *RetrievalService, embeddingModel string) *KnowledgeService {
	return &KnowledgeService{
		path:      path,
		retrieval: retrieval,
		model:     embeddingModel,
	}
}

// Load reads the knowledge base file and rebuilds the retrieval index.
func (s *KnowledgeService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(ctx)
}

// Append adds new text to the knowledge base file and rebuilds the
// index so the new passages are immediately retrievable. Appends are
// serialized; a concurrent append cannot interleave with a rebuild.
func (s *KnowledgeService) Append(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewDomainError(domain.ErrCodeValidation, "knowledge text is required")
	}

	ctx, span := telemetry.StartSpan(ctx, "KnowledgeService.Append", telemetry.SpanAttributes{
		Operation: "append",
	})
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.AppendKnowledgeText(s.path, text); err != nil {
		span.SetError(err)
		return err
	}
	if err := s.reload(ctx); err != nil {
		span.SetError(err)
		return err
	}
	return nil
}

// Stats describes the current state of the knowledge base.
type Stats struct {
	Passages            int
	EmbeddingsAvailable bool
	EmbeddingModel      string
	SourceFile          string
}

// Stats returns passage counts and embedding availability.
func (s *KnowledgeService) Stats() Stats {
	return Stats{
		Passages:            s.retrieval.PassageCount(),
		EmbeddingsAvailable: s.retrieval.EmbeddingsAvailable(),
		EmbeddingModel:      s.model,
		SourceFile:          s.path,
	}
}

func (s *KnowledgeService) reload(ctx context.Context) error {
	text, err := store.LoadKnowledgeText(s.path)
	if err != nil {
		return err
	}
	return s.retrieval.Rebuild(ctx, text)
}
