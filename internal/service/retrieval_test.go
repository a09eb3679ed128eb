package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinassist/internal/domain"
)

// vectorEmbedder maps known phrases to fixed vectors so similarity
// ordering is deterministic.
type vectorEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e *vectorEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	for phrase, vec := range e.vectors {
		if strings.Contains(text, phrase) {
			return vec, nil
		}
	}
	return []float32{0, 0, 1}, nil
}

func newRetrievalFixture(t *testing.T) *RetrievalService {
	t.Helper()
	embedder := &vectorEmbedder{vectors: map[string][]float32{
		"root canal": {1, 0, 0},
		"whitening":  {0, 1, 0},
	}}
	svc := NewRetrievalService(embedder, DefaultRetrievalConfig())
	text := "Root Canal Treatment\nA root canal removes infected pulp.\n\n" +
		"Teeth Whitening\nProfessional whitening lightens enamel."
	require.NoError(t, svc.Rebuild(context.Background(), text))
	return svc
}

func TestRetrieve_RanksBySimilarity(t *testing.T) {
	svc := newRetrievalFixture(t)

	passages, err := svc.Retrieve(context.Background(), "tell me about root canal", 3, 0.1)

	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Text, "root canal")
}

func TestRetrieve_EmptyResultIsNotAnError(t *testing.T) {
	svc := newRetrievalFixture(t)

	// The fixture query vector is orthogonal to every passage.
	passages, err := svc.Retrieve(context.Background(), "unrelated", 3, 0.1)

	require.NoError(t, err)
	assert.Empty(t, passages)
}

func TestRetrieve_NoEmbedder(t *testing.T) {
	svc := NewRetrievalService(nil, DefaultRetrievalConfig())
	require.NoError(t, svc.Rebuild(context.Background(), "Some passage."))

	_, err := svc.Retrieve(context.Background(), "query", 3, 0.1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	embedder := &vectorEmbedder{vectors: map[string][]float32{"passage": {1, 0, 0}}}
	svc := NewRetrievalService(embedder, DefaultRetrievalConfig())
	require.NoError(t, svc.Rebuild(context.Background(), "A passage."))

	embedder.err = errors.New("api down")

	_, err := svc.Retrieve(context.Background(), "query", 3, 0.1)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeModelUnavailable, domainErr.Code)
}

func TestRetrieve_IndexNotBuilt(t *testing.T) {
	svc := NewRetrievalService(&vectorEmbedder{}, DefaultRetrievalConfig())

	_, err := svc.Retrieve(context.Background(), "query", 3, 0.1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
}

func TestKeywordSearch(t *testing.T) {
	svc := NewRetrievalService(nil, DefaultRetrievalConfig())
	require.NoError(t, svc.Rebuild(context.Background(),
		"Root canal facts.\n\nWhitening facts."))

	passages := svc.KeywordSearch("whitening", 3)

	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Text, "Whitening")
}

func TestRebuild_SwapsIndex(t *testing.T) {
	svc := NewRetrievalService(nil, DefaultRetrievalConfig())
	require.NoError(t, svc.Rebuild(context.Background(), "One."))
	require.Equal(t, 1, svc.PassageCount())

	require.NoError(t, svc.Rebuild(context.Background(), "One.\n\nTwo.\n\nThree."))

	assert.Equal(t, 3, svc.PassageCount())
}

func TestRebuild_EmbeddingFailureDegradesToKeywordSearch(t *testing.T) {
	embedder := &vectorEmbedder{err: errors.New("api unreachable")}
	svc := NewRetrievalService(embedder, DefaultRetrievalConfig())

	// The index must still come up so FAQ and booking flows stay
	// available; only semantic retrieval is lost.
	require.NoError(t, svc.Rebuild(context.Background(),
		"Root Canal Treatment\nA root canal removes infected pulp.\n\n"+
			"Teeth Whitening\nProfessional whitening lightens enamel."))

	assert.Equal(t, 2, svc.PassageCount())
	assert.False(t, svc.EmbeddingsAvailable())

	_, err := svc.Retrieve(context.Background(), "root canal", 3, 0.1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))

	passages := svc.KeywordSearch("root canal", 3)
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0].Text, "Root Canal")
}

func TestRebuild_RecoversAfterEmbeddingFailure(t *testing.T) {
	embedder := &vectorEmbedder{
		vectors: map[string][]float32{"root canal": {1, 0, 0}},
		err:     errors.New("api unreachable"),
	}
	svc := NewRetrievalService(embedder, DefaultRetrievalConfig())
	require.NoError(t, svc.Rebuild(context.Background(), "A root canal removes infected pulp."))
	require.False(t, svc.EmbeddingsAvailable())

	embedder.err = nil
	require.NoError(t, svc.Rebuild(context.Background(), "A root canal removes infected pulp."))

	assert.True(t, svc.EmbeddingsAvailable())
	passages, err := svc.Retrieve(context.Background(), "root canal", 3, 0.1)
	require.NoError(t, err)
	require.Len(t, passages, 1)
}

func TestEmbeddingsAvailable(t *testing.T) {
	withEmbedder := newRetrievalFixture(t)
	assert.True(t, withEmbedder.EmbeddingsAvailable())

	without := NewRetrievalService(nil, DefaultRetrievalConfig())
	require.NoError(t, without.Rebuild(context.Background(), "One."))
	assert.False(t, without.EmbeddingsAvailable())
}
