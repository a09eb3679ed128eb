package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/index"
	"github.com/brightsmile/clinassist/internal/knowledge"
	"github.com/brightsmile/clinassist/internal/telemetry"
)

// EmbeddingClient defines the interface for embedding generation
type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// RetrievalConfig controls retrieval behavior.
type RetrievalConfig struct {
	TopK     int
	MinScore float32
	Chunk    knowledge.ChunkConfig
}

// DefaultRetrievalConfig returns the default retrieval configuration.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopK:     3,
		MinScore: 0.1,
		Chunk:    knowledge.DefaultChunkConfig(),
	}
}

// RetrievalService embeds queries and ranks knowledge passages. The
// index is built once at startup and swapped atomically on rebuild;
// reads take the shared lock so concurrent turn handling is safe.
type RetrievalService struct {
	embedder EmbeddingClient // nil when no embedding provider is configured
	cfg      RetrievalConfig

	mu       sync.RWMutex
	idx      *index.Index
	degraded bool // embedding failed at build time; keyword search only
}

// NewRetrievalService creates a RetrievalService. A nil embedder leaves
// only degraded keyword search available.
func NewRetrievalService(embedder EmbeddingClient, cfg RetrievalConfig) *RetrievalService {
	if cfg.TopK <= 0 {
		cfg = DefaultRetrievalConfig()
	}
	return &RetrievalService{
		embedder: embedder,
		cfg:      cfg,
	}
}

// Config returns the retrieval configuration.
func (s *RetrievalService) Config() RetrievalConfig {
	return s.cfg
}

// Rebuild chunks the knowledge text and rebuilds the index. With an
// embedder the passages are embedded once. Without one, or when the
// embedding API fails, the passages are kept in a keyword-only index
// so FAQ, booking, and degraded knowledge search continue to function;
// an embedding failure never takes the service down.
func (s *RetrievalService) Rebuild(ctx context.Context, text string) error {
	paragraphs := knowledge.SplitParagraphsWithConfig(text, s.cfg.Chunk)

	var idx *index.Index
	degraded := s.embedder == nil
	if !degraded {
		built, err := index.Build(ctx, paragraphs, s.embedder)
		if err != nil {
			log.Printf("embedding model unavailable, serving keyword search only: %v", err)
			telemetry.CaptureError(ctx, err)
			degraded = true
		} else {
			idx = built
		}
	}
	if degraded {
		idx = index.FromParagraphs(paragraphs)
	}

	s.mu.Lock()
	s.idx = idx
	s.degraded = degraded
	s.mu.Unlock()
	return nil
}

// Retrieve embeds the query and returns up to k passages above minScore,
// best first. An empty result is not an error. Returns
// ErrModelUnavailable when embeddings cannot be produced; FAQ and
// booking flows are unaffected by that failure.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int, minScore float32) ([]*domain.Passage, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		Operation: "retrieve",
	})
	defer span.End()

	idx, degraded := s.snapshot()
	if idx == nil {
		return nil, fmt.Errorf("index not built: %w", domain.ErrModelUnavailable)
	}
	if s.embedder == nil || degraded {
		return nil, domain.ErrModelUnavailable
	}

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeModelUnavailable,
			"failed to embed query", err)
	}

	results := idx.Query(vec, k, minScore)
	return passagesOf(results), nil
}

// KeywordSearch is the degraded retrieval path used when the embedding
// model is unavailable: passages are scored by the fraction of query
// words they contain.
func (s *RetrievalService) KeywordSearch(query string, k int) []*domain.Passage {
	idx := s.index()
	if idx == nil {
		return nil
	}
	return passagesOf(idx.KeywordQuery(query, k))
}

// EmbeddingsAvailable reports whether semantic retrieval is usable.
func (s *RetrievalService) EmbeddingsAvailable() bool {
	idx, degraded := s.snapshot()
	return s.embedder != nil && !degraded && idx != nil
}

// PassageCount returns the number of indexed passages.
func (s *RetrievalService) PassageCount() int {
	idx := s.index()
	if idx == nil {
		return 0
	}
	return idx.Len()
}

func (s *RetrievalService) index() *index.Index {
	idx, _ := s.snapshot()
	return idx
}

func (s *RetrievalService) snapshot() (*index.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx, s.degraded
}

func passagesOf(results []domain.QueryResult) []*domain.Passage {
	passages := make([]*domain.Passage, 0, len(results))
	for _, r := range results {
		passages = append(passages, r.Passage)
	}
	return passages
}
