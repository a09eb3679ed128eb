package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	KnowledgeFile    string `envconfig:"KNOWLEDGE_FILE" default:"data/knowledge_base.txt"`
	FAQFile          string `envconfig:"FAQ_FILE" default:"data/faqs.json"`
	AppointmentsFile string `envconfig:"APPOINTMENTS_FILE" default:"data/appointments.json"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`

	RetrievalTopK     int     `envconfig:"RETRIEVAL_TOP_K" default:"3"`
	RetrievalMinScore float32 `envconfig:"RETRIEVAL_MIN_SCORE" default:"0.1"`

	GenerationTimeoutSeconds int `envconfig:"GENERATION_TIMEOUT_SECONDS" default:"30"`

	ClinicName    string `envconfig:"NAME" default:"Bright Smile Dental Clinic"`
	ClinicAddress string `envconfig:"ADDRESS" default:"123 Health Street, Medical District"`
	ClinicPhone   string `envconfig:"PHONE" default:"(555) 123-DENT"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CLINIC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
