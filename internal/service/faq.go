package service

import (
	"strings"

	"github.com/brightsmile/clinassist/internal/domain"
)

// FAQMatch is a matched FAQ entry with its overlap score.
type FAQMatch struct {
	Entry *domain.FAQEntry
	Score float64
}

// FAQService answers FAQ-intent turns by keyword overlap against the
// static FAQ table.
type FAQService struct {
	entries []domain.FAQEntry
}

// NewFAQService creates an FAQService over the loaded FAQ table.
func NewFAQService(entries []domain.FAQEntry) *FAQService {
	return &FAQService{entries: entries}
}

// Entries returns the FAQ table in file order.
func (s *FAQService) Entries() []domain.FAQEntry {
	return s.entries
}

// Match returns the best entry for the utterance. The score is the
// number of matched keywords plus half a point per matched question
// word; an entry needs at least one hit to qualify, and ties keep the
// first-listed entry. Returns ErrFAQNotFound when nothing qualifies.
func (s *FAQService) Match(utterance string) (*FAQMatch, error) {
	lower := strings.ToLower(utterance)

	var best *FAQMatch
	for i := range s.entries {
		entry := &s.entries[i]

		score := float64(countContained(lower, entry.Keywords))
		score += 0.5 * float64(countContained(lower, strings.Fields(strings.ToLower(entry.Question))))

		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &FAQMatch{Entry: entry, Score: score}
		}
	}

	if best == nil {
		return nil, domain.ErrFAQNotFound
	}
	return best, nil
}

// countContained counts how many of the terms appear in text.
func countContained(text string, terms []string) int {
	matches := 0
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(text, term) {
			matches++
		}
	}
	return matches
}
