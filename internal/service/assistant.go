package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/telemetry"
)

// GenerationClient defines the interface for the hosted text-generation
// service. Implementations must honor context cancellation.
type GenerationClient interface {
	Complete(ctx context.Context, prompt, systemContext string) (string, error)
}

// Classifier maps an utterance to an Intent.
type Classifier interface {
	Classify(utterance string) domain.Intent
}

// AssistantConfig controls orchestration behavior.
type AssistantConfig struct {
	ClinicName    string
	ClinicAddress string
	ClinicPhone   string

	TopK     int
	MinScore float32

	// GenerationTimeout bounds each call to the generation service; an
	// unbounded external call is an availability risk.
	GenerationTimeout time.Duration

	// SlotListLimit caps how many slots a booking reply lists.
	SlotListLimit int
}

// DefaultAssistantConfig returns the default orchestration configuration.
func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{
		ClinicName:        "Bright Smile Dental Clinic",
		ClinicAddress:     "123 Health Street, Medical District",
		ClinicPhone:       "(555) 123-DENT",
		TopK:              3,
		MinScore:          0.1,
		GenerationTimeout: 30 * time.Second,
		SlotListLimit:     5,
	}
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	Reply       string
	Intent      domain.Intent
	ContextUsed bool
	Passages    int
	FAQQuestion string
}

// AssistantService routes each turn by intent to the FAQ table, the
// booking flow, or retrieval, assembles a prompt, and delegates phrasing
// to the generation service. Every branch terminates in a string reply;
// external failures degrade to fixed replies and never escape a turn.
type AssistantService struct {
	classifier Classifier
	retrieval  *RetrievalService
	faqs       *FAQService
	booking    *BookingService
	generator  GenerationClient // nil when no generation provider is configured
	cfg        AssistantConfig

	apologyReply     string
	noSlotsReply     string
	noKnowledgeReply string
	helpReply        string
}

// NewAssistantService creates a new AssistantService instance
func NewAssistantService(
	classifier Classifier,
	retrieval *RetrievalService,
	faqs *FAQService,
	booking *BookingService,
	generator GenerationClient,
	cfg AssistantConfig,
) *AssistantService {
	if cfg.TopK <= 0 {
		cfg = DefaultAssistantConfig()
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 30 * time.Second
	}
	if cfg.SlotListLimit <= 0 {
		cfg.SlotListLimit = 5
	}
	return &AssistantService{
		classifier: classifier,
		retrieval:  retrieval,
		faqs:       faqs,
		booking:    booking,
		generator:  generator,
		cfg:        cfg,
		apologyReply: fmt.Sprintf(
			"I'm sorry, I'm having trouble answering right now. Please try again in a moment or call us at %s.",
			cfg.ClinicPhone),
		noSlotsReply: fmt.Sprintf(
			"I'm sorry, but there are no available appointment slots at the moment. Please call us at %s for assistance.",
			cfg.ClinicPhone),
		noKnowledgeReply: fmt.Sprintf(
			"I couldn't find relevant information for that in our knowledge base. For specific questions, please call us at %s.",
			cfg.ClinicPhone),
		helpReply: "I'm here to help with your dental questions! You can ask me about our services and procedures, " +
			"appointment booking, general dental care, or office hours and location.",
	}
}

const emptyUtteranceReply = "I didn't receive any message. How can I help you today?"

// HandleTurn processes a single utterance and always returns a reply.
func (s *AssistantService) HandleTurn(ctx context.Context, utterance string) *TurnResult {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return &TurnResult{Reply: emptyUtteranceReply, Intent: domain.IntentFallback}
	}

	detected := s.classifier.Classify(utterance)

	ctx, span := telemetry.StartSpan(ctx, "AssistantService.HandleTurn", telemetry.SpanAttributes{
		Intent:    string(detected),
		Operation: "turn",
	})
	defer span.End()

	switch detected {
	case domain.IntentFAQ:
		return s.handleFAQ(ctx, utterance)
	case domain.IntentBooking:
		return s.handleBooking(ctx, utterance)
	case domain.IntentKnowledge:
		return s.handleKnowledge(ctx, utterance)
	default:
		return s.handleFallback(ctx, utterance)
	}
}

func (s *AssistantService) handleFAQ(ctx context.Context, utterance string) *TurnResult {
	match, err := s.faqs.Match(utterance)
	if err != nil {
		// No FAQ entry qualifies; the knowledge base may still help.
		return s.handleKnowledge(ctx, utterance)
	}

	answer := fmt.Sprintf("%s\n\n%s", match.Entry.Question, match.Entry.Answer)
	result := &TurnResult{
		Intent:      domain.IntentFAQ,
		ContextUsed: true,
		FAQQuestion: match.Entry.Question,
	}

	if s.generator == nil {
		result.Reply = answer
		return result
	}

	prompt := fmt.Sprintf("Context from our FAQ:\nQ: %s\nA: %s\n\nUser question: %s\n\nPlease provide a helpful response:",
		match.Entry.Question, match.Entry.Answer, utterance)
	reply, err := s.generate(ctx, prompt, s.systemPrompt())
	if err != nil {
		telemetry.CaptureError(ctx, err)
		result.Reply = s.apologyReply
		return result
	}
	result.Reply = reply
	return result
}

var slotListingWords = []string{"available", "slots", "times", "when"}

func (s *AssistantService) handleBooking(ctx context.Context, utterance string) *TurnResult {
	lower := strings.ToLower(utterance)
	wantsListing := false
	for _, w := range slotListingWords {
		if strings.Contains(lower, w) {
			wantsListing = true
			break
		}
	}

	result := &TurnResult{Intent: domain.IntentBooking}

	var summary string
	if wantsListing {
		slots := s.booking.AvailableSlots(s.cfg.SlotListLimit)
		if len(slots) == 0 {
			result.Reply = s.noSlotsReply
			return result
		}
		summary = fmt.Sprintf("Here are our available appointment slots:\n%s\n\nTo book, tell us the slot ID, your name, and your phone number.",
			FormatSlots(slots))
		result.ContextUsed = true
	} else {
		summary = fmt.Sprintf("I can help you book an appointment at %s. Ask for available slots to get started, or call us at %s.",
			s.cfg.ClinicName, s.cfg.ClinicPhone)
	}

	if s.generator == nil {
		result.Reply = summary
		return result
	}

	prompt := fmt.Sprintf("Booking information:\n%s\n\nUser message: %s\n\nPlease provide a helpful response:",
		summary, utterance)
	reply, err := s.generate(ctx, prompt, s.systemPrompt())
	if err != nil {
		telemetry.CaptureError(ctx, err)
		result.Reply = s.apologyReply
		return result
	}
	result.Reply = reply
	return result
}

func (s *AssistantService) handleKnowledge(ctx context.Context, utterance string) *TurnResult {
	passages, err := s.retrieval.Retrieve(ctx, utterance, s.cfg.TopK, s.cfg.MinScore)
	if err != nil {
		// Embedding model unavailable; degrade to keyword search so the
		// turn still terminates in a useful reply.
		telemetry.AddBreadcrumb(ctx, "retrieval", "falling back to keyword search")
		passages = s.retrieval.KeywordSearch(utterance, s.cfg.TopK)
	}

	result := &TurnResult{Intent: domain.IntentKnowledge, Passages: len(passages)}

	if len(passages) == 0 {
		result.Reply = s.noKnowledgeReply
		return result
	}

	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Text)
	}
	contextText := strings.Join(parts, "\n\n")
	result.ContextUsed = true

	if s.generator == nil {
		result.Reply = fmt.Sprintf("Based on our dental knowledge:\n\n%s", truncate(contextText, 500))
		return result
	}

	prompt := fmt.Sprintf("Context from our knowledge base:\n%s\n\nUser question: %s\n\nPlease provide a helpful response:",
		contextText, utterance)
	reply, err := s.generate(ctx, prompt, s.systemPrompt())
	if err != nil {
		telemetry.CaptureError(ctx, err)
		result.Reply = s.apologyReply
		return result
	}
	result.Reply = reply
	return result
}

func (s *AssistantService) handleFallback(ctx context.Context, utterance string) *TurnResult {
	result := &TurnResult{Intent: domain.IntentFallback}

	if s.generator == nil {
		result.Reply = s.helpReply
		return result
	}

	reply, err := s.generate(ctx, utterance, s.systemPrompt())
	if err != nil {
		telemetry.CaptureError(ctx, err)
		result.Reply = s.apologyReply
		return result
	}
	result.Reply = reply
	return result
}

// generate calls the generation service under the configured timeout.
func (s *AssistantService) generate(ctx context.Context, prompt, systemContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	reply, err := s.generator.Complete(ctx, prompt, systemContext)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeServiceError,
			"generation request failed", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.ErrServiceUnavailable
	}
	return reply, nil
}

func (s *AssistantService) systemPrompt() string {
	return fmt.Sprintf("You are a helpful dental clinic assistant for %s. "+
		"Provide professional and friendly responses about dental care and services. "+
		"If you don't know something specific about our clinic, suggest calling %s. "+
		"Keep responses concise but informative.",
		s.cfg.ClinicName, s.cfg.ClinicPhone)
}

// ClinicInfo summarizes the clinic and loaded data sources.
type ClinicInfo struct {
	Name           string
	Address        string
	Phone          string
	AvailableSlots int
	Passages       int
	FAQs           int
}

// Info returns basic clinic information for the info endpoint.
func (s *AssistantService) Info() ClinicInfo {
	return ClinicInfo{
		Name:           s.cfg.ClinicName,
		Address:        s.cfg.ClinicAddress,
		Phone:          s.cfg.ClinicPhone,
		AvailableSlots: len(s.booking.AvailableSlots(0)),
		Passages:       s.retrieval.PassageCount(),
		FAQs:           len(s.faqs.Entries()),
	}
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
