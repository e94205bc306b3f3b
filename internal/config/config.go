package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	DBURL                        string
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
	AdminToken                   string
	DemoSeedEnabled              bool
	WebhookEnabled               bool
	WebhookEndpoint              string
	WebhookSecret                string
	WebhookTimeout               time.Duration
	WebhookCircuitEnabled        bool
	WebhookCircuitFailureCount   int
	WebhookCircuitOpenTimeout    time.Duration
	WebhookCircuitHalfOpenMaxReq int
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	LogLevel                     logging.Level
}

// envReader reads environment variables and remembers the first failure, so
// Load can parse the whole block and report one error at the end of each
// section instead of threading err through every line.
type envReader struct {
	err error
}

func (r *envReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

func (r *envReader) str(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	return v
}

func (r *envReader) integer(key string, fallback, min int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	if v < min {
		r.fail("%s must be >= %d", key, min)
		return fallback
	}
	return v
}

func (r *envReader) duration(key, fallback string) time.Duration {
	v, err := time.ParseDuration(r.str(key, fallback))
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return 0
	}
	if v <= 0 {
		r.fail("%s must be > 0", key)
		return 0
	}
	return v
}

// requiredWith enforces that key is set whenever the named toggle is on.
func (r *envReader) requiredWith(enabled bool, toggleKey, key, fallback string) string {
	v := r.str(key, fallback)
	if enabled && v == "" {
		r.fail("%s is required when %s=true", key, toggleKey)
	}
	return v
}

func Load() (Config, error) {
	r := &envReader{}

	appEnv := strings.ToLower(r.str("APP_ENV", EnvDev))
	switch appEnv {
	case EnvDev, EnvStage, EnvProd:
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q, expected dev, stage, or prod", appEnv)
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    r.str("APP_SERVICE_NAME", "competition-engine-api"),
		ServiceVersion: r.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       r.str("APP_HTTP_ADDR", ":8080"),
		DBURL:          r.str("DB_URL", ""),
		ReadTimeout:    r.duration("APP_READ_TIMEOUT", "10s"),
		WriteTimeout:   r.duration("APP_WRITE_TIMEOUT", "15s"),
		AdminToken:     r.str("ADMIN_TOKEN", ""),
		LogLevel:       parseLogLevel(r.str("APP_LOG_LEVEL", "info")),

		CacheEnabled: r.boolean("CACHE_ENABLED", true),
		CacheTTL:     r.duration("CACHE_TTL", "60s"),

		DemoSeedEnabled: r.boolean("DEMO_SEED_ENABLED", true),

		CORSAllowedOrigins: splitCSV(r.str("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	cfg.WebhookEnabled = r.boolean("WEBHOOK_ENABLED", false)
	cfg.WebhookEndpoint = r.requiredWith(cfg.WebhookEnabled, "WEBHOOK_ENABLED", "WEBHOOK_ENDPOINT", "")
	cfg.WebhookSecret = r.str("WEBHOOK_SECRET", "")
	cfg.WebhookTimeout = r.duration("WEBHOOK_TIMEOUT", "10s")
	cfg.WebhookCircuitEnabled = r.boolean("WEBHOOK_CIRCUIT_ENABLED", true)
	cfg.WebhookCircuitFailureCount = r.integer("WEBHOOK_CIRCUIT_FAILURE_COUNT", 5, 1)
	cfg.WebhookCircuitOpenTimeout = r.duration("WEBHOOK_CIRCUIT_OPEN_TIMEOUT", "15s")
	cfg.WebhookCircuitHalfOpenMaxReq = r.integer("WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)

	cfg.UptraceEnabled = r.boolean("UPTRACE_ENABLED", false)
	cfg.UptraceDSN = r.requiredWith(cfg.UptraceEnabled, "UPTRACE_ENABLED", "UPTRACE_DSN", "")

	cfg.PprofEnabled = r.boolean("PPROF_ENABLED", false)
	cfg.PprofAddr = r.requiredWith(cfg.PprofEnabled, "PPROF_ENABLED", "PPROF_ADDR", ":6060")

	cfg.PyroscopeEnabled = r.boolean("PYROSCOPE_ENABLED", false)
	cfg.PyroscopeServerAddress = r.requiredWith(cfg.PyroscopeEnabled, "PYROSCOPE_ENABLED", "PYROSCOPE_SERVER_ADDRESS", "")
	cfg.PyroscopeAppName = r.requiredWith(cfg.PyroscopeEnabled, "PYROSCOPE_ENABLED", "PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = r.str("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = r.str("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = r.str("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate = r.duration("PYROSCOPE_UPLOAD_RATE", "15s")

	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(v) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func splitCSV(v string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(v, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
