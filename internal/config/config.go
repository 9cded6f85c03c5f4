package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverBolt     = "bolt"
	StoreDriverPostgres = "postgres"

	NLUProviderLUIS   = "luis"
	NLUProviderGemini = "gemini"
)

type Config struct {
	Port    string
	DataDir string

	StoreDriver  string
	PostgresDSN  string
	StoreTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	IconStorageURL  string
	WebchatEmbedURL string

	MicrosoftAppID       string
	MicrosoftAppPassword string

	NLUProvider     string
	LUISAppID       string
	LUISAPIKey      string
	LUISAPIHostName string
	GeminiAPIKey    string
	GeminiModel     string
	IntentThreshold float64

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// .env is optional; variables may already be set in the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 os.Getenv("PORT"),
		DataDir:              os.Getenv("DATA_DIR"),
		StoreDriver:          os.Getenv("STORE_DRIVER"),
		PostgresDSN:          os.Getenv("POSTGRES_DSN"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		IconStorageURL:       os.Getenv("ICON_STORAGE_URL"),
		WebchatEmbedURL:      os.Getenv("WEBCHAT_EMBED_URL"),
		MicrosoftAppID:       os.Getenv("MICROSOFT_APP_ID"),
		MicrosoftAppPassword: os.Getenv("MICROSOFT_APP_PASSWORD"),
		NLUProvider:          os.Getenv("NLU_PROVIDER"),
		LUISAppID:            os.Getenv("LUIS_APP_ID"),
		LUISAPIKey:           os.Getenv("LUIS_API_KEY"),
		LUISAPIHostName:      os.Getenv("LUIS_API_HOSTNAME"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          os.Getenv("GEMINI_MODEL"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		LogFormat:            os.Getenv("LOG_FORMAT"),
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout, err = durationEnv("STORE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.IntentThreshold, err = floatEnv("INTENT_THRESHOLD", 0.1); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		cfg.Port = "3978"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreDriverBolt
	}
	if cfg.NLUProvider == "" {
		cfg.NLUProvider = NLUProviderLUIS
	}
	if cfg.LUISAPIHostName == "" {
		cfg.LUISAPIHostName = "westus.api.cognitive.microsoft.com"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	switch cfg.StoreDriver {
	case StoreDriverBolt:
	case StoreDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("required env var POSTGRES_DSN is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// Validate checks the settings only the chat service needs. The seed command
// runs without them.
func (c *Config) Validate() error {
	required := []struct {
		name, val string
	}{
		{"ICON_STORAGE_URL", c.IconStorageURL},
	}

	switch c.NLUProvider {
	case NLUProviderLUIS:
		required = append(required,
			struct{ name, val string }{"LUIS_APP_ID", c.LUISAppID},
			struct{ name, val string }{"LUIS_API_KEY", c.LUISAPIKey},
		)
	case NLUProviderGemini:
		required = append(required, struct{ name, val string }{"GEMINI_API_KEY", c.GeminiAPIKey})
	default:
		return fmt.Errorf("unsupported NLU_PROVIDER %q", c.NLUProvider)
	}

	for _, req := range required {
		if req.val == "" {
			return fmt.Errorf("required env var %s is not set", req.name)
		}
	}

	if (c.MicrosoftAppID == "") != (c.MicrosoftAppPassword == "") {
		return fmt.Errorf("MICROSOFT_APP_ID and MICROSOFT_APP_PASSWORD must be set together")
	}
	return nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return f, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
