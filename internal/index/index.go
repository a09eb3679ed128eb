// Package index provides an in-memory cosine-similarity index over
// knowledge passages. The corpus this system targets is tens to low
// hundreds of passages, so build is O(n) and every query is a linear
// scan; no approximate nearest-neighbor structure is used.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/knowledge"
)

// Embedder converts a text passage into a fixed-length vector. One
// embedder must serve both index build and queries so that all vectors
// share the same dimensionality.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Index holds (passage, vector) pairs. Immutable after Build; safe for
// concurrent readers.
type Index struct {
	passages []*domain.Passage
}

// Build embeds every paragraph once and returns the populated index.
// Passage IDs follow the original paragraph order.
func Build(ctx context.Context, paragraphs []knowledge.Paragraph, embedder Embedder) (*Index, error) {
	passages := make([]*domain.Passage, 0, len(paragraphs))
	for i, p := range paragraphs {
		embedding, err := embedder.EmbedText(ctx, p.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed passage %d: %w", i, err)
		}
		passages = append(passages, &domain.Passage{
			ID:            i,
			Text:          p.Text,
			Embedding:     embedding,
			SourceSection: p.Section,
		})
	}
	return &Index{passages: passages}, nil
}

// FromParagraphs builds an index without embeddings. Used when no
// embedder is available; only KeywordQuery returns results against it.
func FromParagraphs(paragraphs []knowledge.Paragraph) *Index {
	passages := make([]*domain.Passage, 0, len(paragraphs))
	for i, p := range paragraphs {
		passages = append(passages, &domain.Passage{
			ID:            i,
			Text:          p.Text,
			SourceSection: p.Section,
		})
	}
	return &Index{passages: passages}
}

// Len returns the number of indexed passages.
func (idx *Index) Len() int {
	return len(idx.passages)
}

// Passages returns the indexed passages in original order.
func (idx *Index) Passages() []*domain.Passage {
	return idx.passages
}

// Query returns at most k results sorted by descending cosine
// similarity, ties broken by original passage order. Results scoring
// below minScore are filtered out.
func (idx *Index) Query(vec []float32, k int, minScore float32) []domain.QueryResult {
	if k <= 0 {
		return nil
	}

	results := make([]domain.QueryResult, 0, len(idx.passages))
	for _, p := range idx.passages {
		score := CosineSimilarity(vec, p.Embedding)
		if score < minScore {
			continue
		}
		results = append(results, domain.QueryResult{Passage: p, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// KeywordQuery is the degraded search used when no embedder is
// available: the score is the fraction of query words contained in the
// passage text. Results follow the same ordering rules as Query.
func (idx *Index) KeywordQuery(query string, k int) []domain.QueryResult {
	words := strings.Fields(strings.ToLower(query))
	if k <= 0 || len(words) == 0 {
		return nil
	}

	results := make([]domain.QueryResult, 0)
	for _, p := range idx.passages {
		text := strings.ToLower(p.Text)
		matches := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		results = append(results, domain.QueryResult{
			Passage: p,
			Score:   float32(matches) / float32(len(words)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// CosineSimilarity computes dot(a,b)/(|a||b|). A zero-norm or
// mismatched vector yields 0 rather than an error.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
