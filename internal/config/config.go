package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLM providers understood by the completion layer.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds the configuration for the application.
type Config struct {
	LLMProvider  string
	GeminiAPIKey string
	GroqAPIKey   string
	OllamaURL    string
	OllamaModel  string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64

	// External services
	NominatimURL   string
	OpenMeteoURL   string
	OverpassURL    string
	AdapterTimeout time.Duration
	PlanTimeout    time.Duration

	// Calendar export
	GoogleCalendarCredentials string
	GoogleCalendarID          string
	CalendarLinkSecret        string
	PublicBaseURL             string
	DefaultTimezone           string

	DatabasePath string
	SessionTTL   time.Duration
	PlannerSeed  uint64
	AppEnv       string
	Port         string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := strings.ToLower(envOr("LLM_PROVIDER", ProviderGroq))

	cfg := &Config{
		LLMProvider:  provider,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		OllamaURL:    envOr("OLLAMA_URL", "http://localhost:11434/v1"),
		OllamaModel:  envOr("OLLAMA_MODEL", "mistral:7b-instruct"),

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),

		NominatimURL: envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OpenMeteoURL: envOr("OPEN_METEO_URL", "https://api.open-meteo.com"),
		OverpassURL:  envOr("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),

		GoogleCalendarCredentials: os.Getenv("GOOGLE_CALENDAR_CREDENTIALS"),
		GoogleCalendarID:          envOr("GOOGLE_CALENDAR_ID", "primary"),
		CalendarLinkSecret:        os.Getenv("CALENDAR_LINK_SECRET"),
		PublicBaseURL:             strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		DefaultTimezone:           envOr("DEFAULT_TIMEZONE", "Europe/Moscow"),

		DatabasePath: envOr("DATABASE_PATH", "data/trip-planner.db"),
		AppEnv:       envOr("APP_ENV", "development"),
		Port:         envOr("PORT", "8080"),
	}

	switch provider {
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderOllama:
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", provider)
	}

	var err error
	if cfg.AdapterTimeout, err = durationEnv("ADAPTER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PlanTimeout, err = durationEnv("PLAN_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		if cfg.AdminTelegramID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	if v := os.Getenv("PLANNER_SEED"); v != "" {
		if cfg.PlannerSeed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid PLANNER_SEED: %w", err)
		}
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production logging.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UserAllowed reports whether a Telegram user may talk to the bot.
// An empty allow-list admits everyone.
func (c *Config) UserAllowed(userID int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
