package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvloznov/cnab-returns/internal/cnab/banks"
)

// Config holds every runtime knob of the api, worker and cli binaries.
type Config struct {
	App     AppSettings
	HTTP    HTTPSettings
	GCP     GCPSettings
	Worker  WorkerSettings
	Parsing ParsingSettings
}

type AppSettings struct {
	Environment string
	LogLevel    string
}

type HTTPSettings struct {
	Port               int
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

type GCPSettings struct {
	ProjectID      string
	Dataset        string
	Bucket         string
	InboxPrefix    string
	UploadedPrefix string
}

type WorkerSettings struct {
	Count        int
	QueueBuffer  int
	PollSchedule string
}

type ParsingSettings struct {
	Timeout     time.Duration
	DefaultBank string
}

// Load resolves the configuration from the environment, reading a .env file
// first when one exists. Variables already set win over .env values.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		App: AppSettings{
			Environment: getEnv("APP_ENV", "local"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		HTTP: HTTPSettings{
			Port:               getEnvAsInt("HTTP_PORT", 8080),
			ShutdownTimeout:    getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSAllowedOrigins: getEnvAsCSV("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		GCP: GCPSettings{
			ProjectID:      strings.TrimSpace(os.Getenv("GCP_PROJECT_ID")),
			Dataset:        getEnv("BQ_DATASET", "cnab"),
			Bucket:         strings.TrimSpace(os.Getenv("GCS_BUCKET")),
			InboxPrefix:    getEnv("GCS_INBOX_PREFIX", "inbox/"),
			UploadedPrefix: getEnv("GCS_UPLOAD_PREFIX", "uploads/"),
		},
		Worker: WorkerSettings{
			Count:        getEnvAsInt("WORKER_COUNT", 4),
			QueueBuffer:  getEnvAsInt("QUEUE_BUFFER", 100),
			PollSchedule: getEnv("POLL_SCHEDULE", "@every 5m"),
		},
		Parsing: ParsingSettings{
			Timeout:     getEnvAsDuration("PARSE_TIMEOUT", 2*time.Minute),
			DefaultBank: getEnv("DEFAULT_BANK", "237"),
		},
	}

	if cfg.Worker.Count <= 0 {
		return cfg, errors.New("invalid config: WORKER_COUNT must be greater than 0")
	}
	if cfg.Worker.QueueBuffer <= 0 {
		return cfg, errors.New("invalid config: QUEUE_BUFFER must be greater than 0")
	}
	if cfg.Parsing.DefaultBank != "" {
		if _, err := banks.Default().Lookup(cfg.Parsing.DefaultBank); err != nil {
			return cfg, fmt.Errorf("invalid config: DEFAULT_BANK %q is not a supported bank", cfg.Parsing.DefaultBank)
		}
	}

	return cfg, nil
}

// Address returns the HTTP listen address in host:port form.
func (h HTTPSettings) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}

// RequireGCP fails when the settings needed to reach BigQuery and GCS are missing.
func (g GCPSettings) RequireGCP() error {
	if g.ProjectID == "" {
		return errors.New("invalid config: GCP_PROJECT_ID is required")
	}
	if g.Bucket == "" {
		return errors.New("invalid config: GCS_BUCKET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsCSV(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
