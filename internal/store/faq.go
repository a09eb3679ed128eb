package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/brightsmile/clinassist/internal/domain"
)

type faqFile struct {
	FAQs []faqRecord `json:"faqs"`
}

type faqRecord struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// LoadFAQs reads the FAQ table from a JSON file. Entries keep their file
// order, which is the tie-break order for FAQ matching. Read once at
// startup; a missing file is fatal.
func LoadFAQs(path string) ([]domain.FAQEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeDataNotFound,
				fmt.Sprintf("faq file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read faq file: %w", err)
	}

	var file faqFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse faq file: %w", err)
	}

	entries := make([]domain.FAQEntry, 0, len(file.FAQs))
	for i, rec := range file.FAQs {
		entry := domain.FAQEntry{
			Question: rec.Question,
			Answer:   rec.Answer,
			Keywords: rec.Keywords,
		}
		if err := domain.ValidateFAQEntry(&entry); err != nil {
			return nil, fmt.Errorf("invalid faq entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
