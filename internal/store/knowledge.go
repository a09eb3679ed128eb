// Package store reads the clinic's flat-file data sources: the knowledge
// base text, the FAQ table, and the appointment slot file.
package store

import (
	"fmt"
	"os"

	"github.com/brightsmile/clinassist/internal/domain"
)

// LoadKnowledgeText reads the knowledge base file. The file is read once
// at startup; a missing file is fatal for the process.
func LoadKnowledgeText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.NewDomainErrorWithCause(domain.ErrCodeDataNotFound,
				fmt.Sprintf("knowledge base file not found: %s", path), err)
		}
		return "", fmt.Errorf("failed to read knowledge base: %w", err)
	}
	return string(data), nil
}

// AppendKnowledgeText appends new text to the knowledge base file,
// separated by a blank line so it chunks as its own passages.
func AppendKnowledgeText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewDomainErrorWithCause(domain.ErrCodeDataNotFound,
				fmt.Sprintf("knowledge base file not found: %s", path), err)
		}
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n\n%s", text); err != nil {
		return fmt.Errorf("failed to append to knowledge base: %w", err)
	}
	return nil
}
