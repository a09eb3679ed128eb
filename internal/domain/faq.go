package domain

import "fmt"

// FAQEntry is a single question/answer record with match keywords.
// Entries are loaded once at startup and read-only at runtime.
type FAQEntry struct {
	Question string
	Answer   string
	Keywords []string
}

// ValidateFAQEntry validates an FAQEntry instance
func ValidateFAQEntry(e *FAQEntry) error {
	if e == nil {
		return fmt.Errorf("faq entry cannot be nil")
	}
	if e.Question == "" {
		return fmt.Errorf("faq entry question is required")
	}
	if e.Answer == "" {
		return fmt.Errorf("faq entry answer is required")
	}
	return nil
}
