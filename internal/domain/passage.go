package domain

// Passage is one retrievable unit of knowledge-base text. Passages are
// created during index build and immutable afterwards; the embedding is
// produced by the same embedder used for queries, so all passages share
// one vector dimensionality.
type Passage struct {
	ID            int
	Text          string
	Embedding     []float32
	SourceSection string
}

// QueryResult pairs a passage with its similarity score for one query.
// Ephemeral, produced per request, never persisted.
type QueryResult struct {
	Passage *Passage
	Score   float32
}
