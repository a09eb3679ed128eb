package intent

import (
	"testing"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFAQs() []domain.FAQEntry {
	return []domain.FAQEntry{
		{
			Question: "What is the cost of a cleaning?",
			Answer:   "A standard cleaning is $120.",
			Keywords: []string{"cleaning", "cost", "price"},
		},
		{
			Question: "What are your office hours?",
			Answer:   "We are open Monday to Friday, 9am to 5pm.",
			Keywords: []string{"hours", "open", "location"},
		},
	}
}

func TestClassify(t *testing.T) {
	classifier := NewClassifier(testFAQs())

	tests := []struct {
		name      string
		utterance string
		expected  domain.Intent
	}{
		{"booking request", "I'd like to book an appointment", domain.IntentBooking},
		{"booking available times", "what times are available next week", domain.IntentBooking},
		{"booking schedule", "schedule me for next Tuesday", domain.IntentBooking},
		{"faq cleaning cost", "how much is a cleaning", domain.IntentFAQ},
		{"faq hours", "what are your hours", domain.IntentFAQ},
		{"knowledge root canal", "what is a root canal", domain.IntentKnowledge},
		{"knowledge aftercare", "tell me about recovery after a filling", domain.IntentKnowledge},
		{"fallback", "hello there", domain.IntentFallback},
		{"fallback gibberish", "zzz qqq", domain.IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.utterance))
		})
	}
}

func TestClassify_BookingCheckedBeforeKnowledge(t *testing.T) {
	classifier := NewClassifier(testFAQs())

	// "appointment" (booking) and "cleaning" (knowledge/faq) both appear;
	// the booking rule runs first so the turn must not be routed to RAG.
	got := classifier.Classify("I need a cleaning appointment")
	assert.Equal(t, domain.IntentBooking, got)
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := NewClassifier(testFAQs())

	utterances := []string{
		"how much is a cleaning",
		"what is a root canal",
		"book me in",
		"hello",
	}
	for _, u := range utterances {
		first := classifier.Classify(u)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, classifier.Classify(u), "utterance %q", u)
		}
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier(testFAQs())
	assert.Equal(t, domain.IntentBooking, classifier.Classify("BOOK AN APPOINTMENT"))
	assert.Equal(t, domain.IntentKnowledge, classifier.Classify("What Is A Root Canal?"))
}

func TestRules_Order(t *testing.T) {
	classifier := NewClassifier(testFAQs())
	rules := classifier.Rules()

	require.Len(t, rules, 3)
	assert.Equal(t, domain.IntentBooking, rules[0].Intent)
	assert.Equal(t, domain.IntentFAQ, rules[1].Intent)
	assert.Equal(t, domain.IntentKnowledge, rules[2].Intent)
}

func TestClassify_EmptyFAQTable(t *testing.T) {
	classifier := NewClassifier(nil)
	assert.Equal(t, domain.IntentKnowledge, classifier.Classify("what is a crown"))
	assert.Equal(t, domain.IntentFallback, classifier.Classify("good morning"))
}
