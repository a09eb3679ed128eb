package domain

// Intent is the coarse category of a user request. It decides which
// subsystem handles a turn.
type Intent string

const (
	IntentFAQ       Intent = "faq"
	IntentBooking   Intent = "booking"
	IntentKnowledge Intent = "knowledge"
	IntentFallback  Intent = "fallback"
)

// IsValidIntent checks if an Intent is one of the known categories
func IsValidIntent(i Intent) bool {
	switch i {
	case IntentFAQ, IntentBooking, IntentKnowledge, IntentFallback:
		return true
	}
	return false
}
