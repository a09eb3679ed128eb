package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightsmile/clinassist/internal/api/handlers"
	"github.com/brightsmile/clinassist/internal/config"
	"github.com/brightsmile/clinassist/internal/intent"
	"github.com/brightsmile/clinassist/internal/openai"
	"github.com/brightsmile/clinassist/internal/server"
	"github.com/brightsmile/clinassist/internal/service"
	"github.com/brightsmile/clinassist/internal/store"
	"github.com/brightsmile/clinassist/internal/telemetry"
	openaiapi "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the clinic assistant API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if cfg.SentryDSN != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	// Missing data files are a deployment fault; refuse to start.
	faqs, err := store.LoadFAQs(cfg.FAQFile)
	if err != nil {
		return fmt.Errorf("failed to load faq file: %w", err)
	}
	log.Printf("loaded %d faq entries from %s", len(faqs), cfg.FAQFile)

	bookingStore, err := store.OpenBookingStore(cfg.AppointmentsFile)
	if err != nil {
		return fmt.Errorf("failed to open appointments file: %w", err)
	}
	log.Printf("opened appointments store %s", cfg.AppointmentsFile)

	var openaiClient *openai.Client
	var embedder service.EmbeddingClient
	var generator service.GenerationClient
	if cfg.HasOpenAI() {
		openaiClient = openai.NewClientWithConfig(openai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			EmbeddingModel: openaiapi.EmbeddingModel(cfg.EmbeddingModel),
			ChatModel:      cfg.ChatModel,
		})
		embedder = openaiClient
		generator = openaiClient
		log.Println("openai client configured")
	} else {
		log.Println("OPENAI_API_KEY not set: running with keyword search and canned replies")
	}

	retrievalCfg := service.DefaultRetrievalConfig()
	retrievalCfg.TopK = cfg.RetrievalTopK
	retrievalCfg.MinScore = cfg.RetrievalMinScore
	retrievalSvc := service.NewRetrievalService(embedder, retrievalCfg)

	knowledgeSvc := service.NewKnowledgeService(cfg.KnowledgeFile, retrievalSvc, cfg.EmbeddingModel)
	if err := knowledgeSvc.Load(ctx); err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	log.Printf("indexed %d knowledge passages from %s", retrievalSvc.PassageCount(), cfg.KnowledgeFile)
	if cfg.HasOpenAI() && !retrievalSvc.EmbeddingsAvailable() {
		log.Println("semantic retrieval degraded: continuing with keyword search")
	}

	faqSvc := service.NewFAQService(faqs)
	bookingSvc := service.NewBookingService(bookingStore)

	assistantCfg := service.DefaultAssistantConfig()
	assistantCfg.ClinicName = cfg.ClinicName
	assistantCfg.ClinicAddress = cfg.ClinicAddress
	assistantCfg.ClinicPhone = cfg.ClinicPhone
	assistantCfg.TopK = cfg.RetrievalTopK
	assistantCfg.MinScore = cfg.RetrievalMinScore
	assistantCfg.GenerationTimeout = time.Duration(cfg.GenerationTimeoutSeconds) * time.Second

	assistantSvc := service.NewAssistantService(
		intent.NewClassifier(faqs),
		retrievalSvc,
		faqSvc,
		bookingSvc,
		generator,
		assistantCfg,
	)

	routerCfg := server.RouterConfig{
		ChatHandler:      handlers.NewChatHandler(assistantSvc),
		BookingHandler:   handlers.NewBookingHandler(bookingSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeSvc),
		ClinicHandler:    handlers.NewClinicHandler(assistantSvc, faqSvc),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
