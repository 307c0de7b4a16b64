package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/platform/resilience"
)

// Config stores runtime configuration for the API server and the terminal viewer.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	LogLevel           logging.Level
	LogFormat          logging.Format

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	ScoreboardBaseURL               string
	ScoreboardTimeout               time.Duration
	ScoreboardRateLimit             float64
	ScoreboardRateBurst             int
	ScoreboardCircuitEnabled        bool
	ScoreboardCircuitFailureCount   int
	ScoreboardCircuitOpenTimeout    time.Duration
	ScoreboardCircuitHalfOpenMaxReq int

	LivePollInterval      time.Duration
	LiveCycleTimeout      time.Duration
	LiveMaxWatchedMatches int
	LiveIdleTimeout       time.Duration
	LiveFirstLoadWait     time.Duration
	MatchListCacheTTL     time.Duration

	SessionFile string
}

// ScoreboardCircuitBreaker returns the breaker settings for the scoreboard client.
func (c Config) ScoreboardCircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.ScoreboardCircuitEnabled,
		FailureThreshold: c.ScoreboardCircuitFailureCount,
		OpenTimeout:      c.ScoreboardCircuitOpenTimeout,
		HalfOpenMaxReq:   c.ScoreboardCircuitHalfOpenMaxReq,
	}
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            strings.TrimSpace(getEnv("APP_SERVICE_NAME", "cricket-live-api")),
		ServiceVersion:         strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:               strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:             strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		BetterStackEndpoint:    strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:       strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackMinLevel:    logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		ScoreboardBaseURL:      strings.TrimRight(strings.TrimSpace(getEnv("SCOREBOARD_BASE_URL", "http://localhost:8084")), "/"),
	}
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	if cfg.ServiceName == "" {
		return Config{}, fmt.Errorf("APP_SERVICE_NAME cannot be empty")
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.ScoreboardBaseURL == "" {
		return Config{}, fmt.Errorf("SCOREBOARD_BASE_URL cannot be empty")
	}

	logFormat, err := parseLogFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON)))
	if err != nil {
		return Config{}, err
	}
	cfg.LogFormat = logFormat

	swaggerDefault := appEnv != EnvProd
	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}

	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.BetterStackEnabled, err = getEnvAsBool("BETTERSTACK_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.BetterStackEnabled && cfg.BetterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	if cfg.BetterStackTimeout, err = getEnvAsPositiveDuration("BETTERSTACK_TIMEOUT", "3s"); err != nil {
		return Config{}, err
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	if cfg.ScoreboardTimeout, err = getEnvAsPositiveDuration("SCOREBOARD_TIMEOUT", "5s"); err != nil {
		return Config{}, err
	}
	if cfg.ScoreboardRateLimit, err = getEnvAsFloat("SCOREBOARD_RATE_LIMIT", 20); err != nil {
		return Config{}, fmt.Errorf("parse SCOREBOARD_RATE_LIMIT: %w", err)
	}
	if cfg.ScoreboardRateLimit < 0 {
		return Config{}, fmt.Errorf("SCOREBOARD_RATE_LIMIT must be >= 0")
	}
	if cfg.ScoreboardRateBurst, err = getEnvAsMinInt("SCOREBOARD_RATE_BURST", 10, 1); err != nil {
		return Config{}, err
	}
	if cfg.ScoreboardCircuitEnabled, err = getEnvAsBool("SCOREBOARD_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.ScoreboardCircuitFailureCount, err = getEnvAsMinInt("SCOREBOARD_CIRCUIT_FAILURE_COUNT", 5, 1); err != nil {
		return Config{}, err
	}
	if cfg.ScoreboardCircuitOpenTimeout, err = getEnvAsPositiveDuration("SCOREBOARD_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.ScoreboardCircuitHalfOpenMaxReq, err = getEnvAsMinInt("SCOREBOARD_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1); err != nil {
		return Config{}, err
	}

	if cfg.LivePollInterval, err = getEnvAsPositiveDuration("LIVE_POLL_INTERVAL", "2500ms"); err != nil {
		return Config{}, err
	}
	if cfg.LiveCycleTimeout, err = getEnvAsPositiveDuration("LIVE_CYCLE_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.LiveMaxWatchedMatches, err = getEnvAsMinInt("LIVE_MAX_WATCHED_MATCHES", 32, 1); err != nil {
		return Config{}, err
	}
	if cfg.LiveIdleTimeout, err = getEnvAsPositiveDuration("LIVE_IDLE_TIMEOUT", "2m"); err != nil {
		return Config{}, err
	}
	firstLoadWait, err := time.ParseDuration(getEnv("LIVE_FIRST_LOAD_WAIT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_FIRST_LOAD_WAIT: %w", err)
	}
	if firstLoadWait < 0 {
		return Config{}, fmt.Errorf("LIVE_FIRST_LOAD_WAIT must be >= 0")
	}
	cfg.LiveFirstLoadWait = firstLoadWait
	if cfg.MatchListCacheTTL, err = getEnvAsPositiveDuration("MATCH_LIST_CACHE_TTL", "30s"); err != nil {
		return Config{}, err
	}

	cfg.SessionFile = strings.TrimSpace(getEnv("SESSION_FILE", defaultSessionFile()))

	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".cricket-live-session.json"
	}
	return filepath.Join(dir, "cricket-live", "session.json")
}

func parseLogFormat(v string) (logging.Format, error) {
	switch logging.Format(strings.ToLower(strings.TrimSpace(v))) {
	case logging.FormatJSON:
		return logging.FormatJSON, nil
	case logging.FormatConsole:
		return logging.FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return out, nil
}

func getEnvAsMinInt(key string, fallback, minimum int) (int, error) {
	out, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < minimum {
		return 0, fmt.Errorf("%s must be >= %d", key, minimum)
	}
	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}
	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
