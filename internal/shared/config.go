package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// Hotel store. Empty DSN leaves the store unconfigured.
	StoreDriver string // mysql|postgres
	StoreDSN    string

	// Booking notifications go to Redis when RedisAddr is set, else to the log.
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	NotifyDelay time.Duration

	// Text generation. Empty key leaves it unconfigured.
	GenAIBaseURL  string
	GenAIKey      string
	GenAIModel    string
	GenAITimeout  time.Duration
	GenAIRPS      int
	ShortlistSize int

	AdminToken         string
	RateLimitPerMinute int
	CORSOrigins        []string

	SeedCount   int
	SeedBatch   int
	SeedWorkers int
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	// a missing .env is fine; real env vars win over it
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		LogLevel:           env("LOG_LEVEL", "info"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        env("METRICS_ADDR", ""),
		StoreDriver:        strings.ToLower(env("STORE_DRIVER", "mysql")),
		StoreDSN:           env("STORE_DSN", ""),
		RedisAddr:          env("REDIS_ADDR", ""),
		RedisPass:          env("REDIS_PASSWORD", ""),
		RedisDB:            atoi("REDIS_DB", 0),
		NotifyDelay:        time.Duration(atoi("NOTIFY_DELAY_MS", 2000)) * time.Millisecond,
		GenAIBaseURL:       env("GENAI_BASE_URL", ""),
		GenAIKey:           env("GENAI_API_KEY", ""),
		GenAIModel:         env("GENAI_MODEL", ""),
		GenAITimeout:       time.Duration(atoi("GENAI_TIMEOUT_SECONDS", 20)) * time.Second,
		GenAIRPS:           atoi("GENAI_RPS", 5),
		ShortlistSize:      atoi("SHORTLIST_SIZE", 5),
		AdminToken:         env("ADMIN_TOKEN", "secret-token"),
		RateLimitPerMinute: atoi("RATE_LIMIT_PER_MINUTE", 60),
		CORSOrigins:        splitList(env("CORS_ORIGINS", "*")),
		SeedCount:          atoi("SEED_COUNT", 100),
		SeedBatch:          atoi("SEED_BATCH", 20),
		SeedWorkers:        atoi("SEED_WORKERS", 4),
	}
	if c.StoreDSN == "" {
		log.Warn().Msg("STORE_DSN is empty; hotel store unavailable")
	}
	if c.GenAIKey == "" {
		log.Warn().Msg("GENAI_API_KEY is empty; using template reasoning")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
