// Package intent classifies user utterances into the coarse categories
// that drive turn routing.
package intent

import (
	"strings"

	"github.com/brightsmile/clinassist/internal/domain"
)

// Rule pairs a predicate with the intent it selects. Rules are evaluated
// in order; the first match wins.
type Rule struct {
	Name      string
	Intent    domain.Intent
	Predicate func(utterance string) bool
}

// Classifier maps an utterance to an Intent via ordered rule evaluation.
// Booking keywords are checked before anything else so a booking request
// is never misrouted to retrieval.
type Classifier struct {
	rules []Rule
}

var bookingKeywords = []string{
	"book", "schedule", "appointment", "reserve", "available",
	"slot", "when can", "make appointment", "see doctor",
	"visit", "come in",
}

var knowledgeKeywords = []string{
	"what is", "how to", "tell me about", "explain", "information",
	"learn", "treatment", "procedure", "pain", "care", "recovery",
	"healing", "advice", "recommend", "cleaning", "filling",
	"crown", "root canal", "whitening", "braces", "implant",
}

// NewClassifier builds the default ruleset against the given FAQ table.
// The FAQ rule matches on keyword overlap with any entry.
func NewClassifier(faqs []domain.FAQEntry) *Classifier {
	return &Classifier{
		rules: []Rule{
			{
				Name:      "booking-keywords",
				Intent:    domain.IntentBooking,
				Predicate: containsAny(bookingKeywords),
			},
			{
				Name:      "faq-keyword-overlap",
				Intent:    domain.IntentFAQ,
				Predicate: matchesFAQKeywords(faqs),
			},
			{
				Name:      "knowledge-keywords",
				Intent:    domain.IntentKnowledge,
				Predicate: containsAny(knowledgeKeywords),
			},
		},
	}
}

// Classify returns the intent of the first matching rule, or
// IntentFallback when no keywords match anywhere.
func (c *Classifier) Classify(utterance string) domain.Intent {
	lower := strings.ToLower(utterance)
	for _, rule := range c.rules {
		if rule.Predicate(lower) {
			return rule.Intent
		}
	}
	return domain.IntentFallback
}

// Rules exposes the ordered ruleset, mainly for tests asserting the
// evaluation priority.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

func containsAny(keywords []string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

func matchesFAQKeywords(faqs []domain.FAQEntry) func(string) bool {
	return func(lower string) bool {
		for _, faq := range faqs {
			for _, kw := range faq.Keywords {
				if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
					return true
				}
			}
		}
		return false
	}
}
