package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults compiled into the binaries. An explicit environment value always
// overrides these.
const (
	DefaultPort          = "3000"
	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultDataPath      = "coach.db"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI
	// APIKey may be empty: /chat reports a configuration error in-band
	// instead of refusing to start.
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Provider call bounds. One timeout, no retries.
	ProviderTimeout   time.Duration
	BlockFetchTimeout time.Duration
}

// ClientConfig configures the on-device chat orchestrator (the coach CLI).
type ClientConfig struct {
	// BackendURL, when set, routes all chat through the proxy so the API key
	// never leaves the server. No trailing slash.
	BackendURL string
	// OpenAIAPIKey is only used for the direct-provider path when no backend
	// is configured (local dev).
	OpenAIAPIKey  string
	OpenAIBaseURL string
	// DataPath is the local SQLite file holding goals, challenges, chat
	// history and food entries.
	DataPath string
	// CustomInstructions is appended to the system prompt on the direct path.
	CustomInstructions string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Port:              getEnvOrDefault("PORT", DefaultPort),
		Env:               getEnvOrDefault("ENV", "development"),
		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnvOrDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		ProviderTimeout:   getEnvAsDurationOrDefault("OPENAI_TIMEOUT", 55*time.Second),
		BlockFetchTimeout: getEnvAsDurationOrDefault("FOOD_LOG_FETCH_TIMEOUT", 15*time.Second),
	}
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		BackendURL:         getEnvOrDefault("COACH_BACKEND_URL", ""),
		OpenAIAPIKey:       getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnvOrDefault("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
		DataPath:           getEnvOrDefault("COACH_DATA_PATH", DefaultDataPath),
		CustomInstructions: getEnvOrDefault("COACH_CUSTOM_INSTRUCTIONS", ""),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
