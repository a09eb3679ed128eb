package admin

import (
	"context"
	"fmt"

	"github.com/brightsmile/clinassist/internal/config"
	"github.com/brightsmile/clinassist/internal/service"
	"github.com/brightsmile/clinassist/internal/store"
	"github.com/spf13/cobra"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify data files",
		Long:  "Verify that the knowledge base, FAQ, and appointments files exist and parse cleanly",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	faqs, err := store.LoadFAQs(cfg.FAQFile)
	if err != nil {
		return fmt.Errorf("faq file %s: %w", cfg.FAQFile, err)
	}
	fmt.Printf("ok: %s (%d entries)\n", cfg.FAQFile, len(faqs))

	bookingStore, err := store.OpenBookingStore(cfg.AppointmentsFile)
	if err != nil {
		return fmt.Errorf("appointments file %s: %w", cfg.AppointmentsFile, err)
	}
	slots := bookingStore.AvailableSlots(0)
	fmt.Printf("ok: %s (%d available slots)\n", cfg.AppointmentsFile, len(slots))

	retrievalSvc := service.NewRetrievalService(nil, service.DefaultRetrievalConfig())
	knowledgeSvc := service.NewKnowledgeService(cfg.KnowledgeFile, retrievalSvc, cfg.EmbeddingModel)
	if err := knowledgeSvc.Load(context.Background()); err != nil {
		return fmt.Errorf("knowledge file %s: %w", cfg.KnowledgeFile, err)
	}
	fmt.Printf("ok: %s (%d passages)\n", cfg.KnowledgeFile, retrievalSvc.PassageCount())

	if !cfg.HasOpenAI() {
		fmt.Println("warning: OPENAI_API_KEY not set, semantic retrieval and reply generation will be disabled")
	}

	return nil
}
