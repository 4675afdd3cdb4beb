package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every secret and endpoint the service needs. It is built
// once at startup and passed down explicitly; nothing in the service
// reads the environment after this.
type Config struct {
	Port        string
	MetricsPort string

	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	MireloAPIKey string
	MireloURL    string

	// Optional: empty key disables the fallback synthesis path.
	ElevenLabsAPIKey string
	ElevenLabsURL    string

	// Optional: empty URL disables completion-event publishing.
	NatsURL string

	BlobDir       string
	PublicBaseURL string

	// Off by default; the original service disabled TLS verification
	// everywhere, here it is an explicit opt-out.
	InsecureSkipVerify bool

	DownloadTimeout  time.Duration
	ExtractTimeout   time.Duration
	SynthesisTimeout time.Duration

	SynthConcurrency int
}

// Load reads the configuration from the environment. Missing required
// keys are reported together.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-flash-latest"),

		MireloAPIKey: os.Getenv("MIRELO_API_KEY"),
		MireloURL:    getEnv("MIRELO_URL", "https://api.mirelo.ai/video-to-sfx"),

		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsURL:    getEnv("ELEVENLABS_URL", "https://api.elevenlabs.io/v1/sound-generation"),

		NatsURL: os.Getenv("NATS_URL"),

		BlobDir:       getEnv("BLOB_DIR", "data/media"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),

		InsecureSkipVerify: getBool("HTTP_INSECURE_SKIP_VERIFY", false),

		DownloadTimeout:  getDuration("DOWNLOAD_TIMEOUT", 120*time.Second),
		ExtractTimeout:   getDuration("EXTRACT_TIMEOUT", 180*time.Second),
		SynthesisTimeout: getDuration("SYNTHESIS_TIMEOUT", 60*time.Second),

		SynthConcurrency: getInt("SYNTH_CONCURRENCY", 3),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.MireloAPIKey == "" {
		missing = append(missing, "MIRELO_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// FallbackEnabled reports whether the text-to-audio fallback is usable.
func (c *Config) FallbackEnabled() bool {
	return c.ElevenLabsAPIKey != ""
}

// PublishEnabled reports whether completion events should be published.
func (c *Config) PublishEnabled() bool {
	return c.NatsURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
