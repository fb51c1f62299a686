package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	APIBaseURL        string
	APITimeout        time.Duration
	SessionDSN        string
	LogFile           string
	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	TopicSlug         bool
	MaxUploadBytes    int
}

func Load() Config {
	// A missing .env is normal in containers.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup, applying defaults.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(get("API_TIMEOUT", "15s"))
	if err != nil || timeout < 0 {
		log.Printf("[config] bad API_TIMEOUT %q, using 15s", getenv("API_TIMEOUT"))
		timeout = 15 * time.Second
	}
	maxUpload, err := strconv.Atoi(get("MAX_UPLOAD_BYTES", "10485760"))
	if err != nil || maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	topicSlug, err := strconv.ParseBool(get("TOPIC_SLUG", "false"))
	if err != nil {
		topicSlug = false
	}

	cfg := Config{
		Port:              get("PORT", "8081"),
		APIBaseURL:        strings.TrimRight(get("API_BASE_URL", "http://localhost:8080"), "/"),
		APITimeout:        timeout,
		SessionDSN:        get("SESSION_DSN", ":memory:"),
		LogFile:           get("LOG_FILE", ""),
		AdminUser:         get("ADMIN_USER", "admin"),
		AdminPassword:     get("ADMIN_PASSWORD", "admin"),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),
		TopicSlug:         topicSlug,
		MaxUploadBytes:    maxUpload,
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s API_TIMEOUT=%s SESSION_DSN=%s LOG_FILE=%s ADMIN_USER=%s TOPIC_SLUG=%t",
		cfg.Port, cfg.APIBaseURL, cfg.APITimeout, cfg.SessionDSN, cfg.LogFile, cfg.AdminUser, cfg.TopicSlug)
	return cfg
}
