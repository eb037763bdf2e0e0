package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	LLMProvider     string

	ResendAPIKey string
	DigestFrom   string
	DigestTo     string

	IMAPAddr     string
	IMAPUser     string
	IMAPPassword string

	ProfilePath string
	LogDir      string

	LLMCallInterval time.Duration
	RSSItemLimit    int
}

func Load() *Config {
	return &Config{
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		DigestFrom:   getEnv("DIGEST_FROM", "Daily Digest <onboarding@resend.dev>"),
		DigestTo:     getEnv("DIGEST_TO", getEnv("GMAIL_ADDRESS", "")),

		IMAPAddr:     getEnv("IMAP_ADDR", "imap.gmail.com:993"),
		IMAPUser:     getEnv("GMAIL_ADDRESS", ""),
		IMAPPassword: getEnv("GMAIL_APP_PASS", ""),

		ProfilePath: getEnv("PROFILE_PATH", "config/user_profile.yaml"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		LLMCallInterval: getEnvAsDuration("LLM_CALL_INTERVAL", 3*time.Second),
		RSSItemLimit:    getEnvAsInt("RSS_ITEM_LIMIT", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
