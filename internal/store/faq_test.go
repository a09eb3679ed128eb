package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFAQs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.json")
	content := `{
  "faqs": [
    {"question": "What is the cost of a cleaning?", "answer": "$120.", "keywords": ["cleaning", "cost", "price"]},
    {"question": "What are your office hours?", "answer": "Mon-Fri 9-5.", "keywords": ["hours", "open"]}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	faqs, err := LoadFAQs(path)
	require.NoError(t, err)
	require.Len(t, faqs, 2)

	// File order is preserved; it is the tie-break order for matching.
	assert.Equal(t, "What is the cost of a cleaning?", faqs[0].Question)
	assert.Equal(t, []string{"cleaning", "cost", "price"}, faqs[0].Keywords)
	assert.Equal(t, "What are your office hours?", faqs[1].Question)
}

func TestLoadFAQs_MissingFile(t *testing.T) {
	_, err := LoadFAQs(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeDataNotFound, domainErr.Code)
}

func TestLoadFAQs_InvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"faqs":[{"question":"","answer":"x"}]}`), 0644))

	_, err := LoadFAQs(path)
	assert.Error(t, err)
}

func TestLoadKnowledgeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dental Cleanings\nDetails."), 0644))

	text, err := LoadKnowledgeText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Dental Cleanings")
}

func TestLoadKnowledgeText_MissingFile(t *testing.T) {
	_, err := LoadKnowledgeText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeDataNotFound, domainErr.Code)
}

func TestAppendKnowledgeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("First paragraph."), 0644))

	require.NoError(t, AppendKnowledgeText(path, "Second paragraph."))

	text, err := LoadKnowledgeText(path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
}

func TestAppendKnowledgeText_MissingFile(t *testing.T) {
	err := AppendKnowledgeText(filepath.Join(t.TempDir(), "missing.txt"), "text")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeDataNotFound, domainErr.Code)
}
