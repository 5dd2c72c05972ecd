package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	StaticFilesPath string
	LogMode         string

	SessionSecret          string
	SessionSecretGenerated bool
	SessionDuration        time.Duration
	RateLimitPerMinute     int
	TrustProxy             bool

	SarvamAPIKey  string
	SarvamBaseURL string
	ChatModel     string
	ChatTimeout   time.Duration
	TTSTimeout    time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("PORT", "5000"),
		DatabaseType:       getEnv("DB_TYPE", "sqlite"),
		DatabasePath:       getEnv("DB_PATH", "./hindipath.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		StaticFilesPath:    getEnv("STATIC_PATH", "./static"),
		LogMode:            getEnv("LOG_MODE", "development"),
		SessionSecret:      getEnv("SECRET_KEY", ""),
		SessionDuration:    getDuration("SESSION_DURATION", 7*24*time.Hour),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 10),
		TrustProxy:         getBool("TRUST_PROXY", false),
		SarvamAPIKey:       getEnv("SARVAM_KEY", ""),
		SarvamBaseURL:      strings.TrimRight(getEnv("SARVAM_BASE_URL", "https://api.sarvam.ai"), "/"),
		ChatModel:          getEnv("SARVAM_CHAT_MODEL", "sarvam-m"),
		ChatTimeout:        getDuration("CHAT_TIMEOUT", 30*time.Second),
		TTSTimeout:         getDuration("TTS_TIMEOUT", 20*time.Second),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "HindiPath"),
		AppBaseURL:         strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:5000"), "/"),
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = randomSecret()
		cfg.SessionSecretGenerated = true
	}

	return cfg
}

// TutorEnabled reports whether an upstream provider key is configured
func (c *Config) TutorEnabled() bool {
	return c.SarvamAPIKey != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := getEnv(key, ""); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := getEnv(key, ""); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := getEnv(key, ""); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// randomSecret is used when SECRET_KEY is unset; sessions do not survive a restart.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("config: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
