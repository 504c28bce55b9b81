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
	HTTPAddr    string
	MetricsAddr string

	GeminiKey   string
	GeminiModel string
	GeminiBase  string
	GeminiRPS   int

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	MaxUploadBytes int64
	CORSOrigins    []string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		GeminiKey:      env("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    env("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBase:     env("GEMINI_BASE_URL", ""),
		GeminiRPS:      atoi("GEMINI_RPS", 5),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("INSIGHT_CACHE_TTL_SECONDS", 900)) * time.Second,
		MaxUploadBytes: int64(atoi("MAX_UPLOAD_MB", 50)) << 20,
		CORSOrigins:    list("CORS_ORIGINS"),
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty, AI insights disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

// list splits a comma separated variable, dropping blanks.
func list(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
