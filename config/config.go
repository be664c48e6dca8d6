package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is built once at startup and never mutated afterwards. Every
// component reads from this struct; nothing else touches the environment.
type Config struct {
	ListenAddr string
	Env        string // "dev" enables the seeding endpoint

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	SpreadsheetID         string
	GoogleCredentialsJSON []byte

	// Users is the fixed set of people the tracker knows about.
	Users []string
}

func Load() (*Config, error) {
	// .env is a local-dev convenience; in deployment the variables are
	// injected directly, so a missing file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		Env:           getEnv("DIET_ENV", "prod"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
	}

	for _, u := range strings.Split(getEnv("DIET_USERS", "Suyash,Divyanshi"), ",") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.Users = append(cfg.Users, u)
		}
	}
	if len(cfg.Users) == 0 {
		return nil, fmt.Errorf("DIET_USERS resolved to an empty user list")
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID is not set")
	}

	// Service-account credentials come either inline (deployment) or as a
	// file path (local dev). Resolved here exactly once; the store client
	// only ever sees the bytes.
	if sa := os.Getenv("GOOGLE_SA_JSON"); sa != "" {
		cfg.GoogleCredentialsJSON = []byte(sa)
	} else if path := os.Getenv("GOOGLE_SA_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read GOOGLE_SA_FILE: %w", err)
		}
		cfg.GoogleCredentialsJSON = b
	} else {
		return nil, fmt.Errorf("neither GOOGLE_SA_JSON nor GOOGLE_SA_FILE is set")
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
