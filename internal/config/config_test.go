package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/cricket-live/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SESSION_FILE", "/tmp/cricket-live-session.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "cricket-live-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.ScoreboardBaseURL != "http://localhost:8084" {
		t.Fatalf("unexpected scoreboard base url: %q", cfg.ScoreboardBaseURL)
	}
	if cfg.LivePollInterval != 2500*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.LivePollInterval)
	}
	if cfg.LiveFirstLoadWait != 3*time.Second {
		t.Fatalf("unexpected first load wait: %s", cfg.LiveFirstLoadWait)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log format: %q", cfg.LogFormat)
	}
	if !cfg.ScoreboardCircuitEnabled || cfg.ScoreboardCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults: enabled=%v failures=%d", cfg.ScoreboardCircuitEnabled, cfg.ScoreboardCircuitFailureCount)
	}
	if cfg.SessionFile != "/tmp/cricket-live-session.json" {
		t.Fatalf("unexpected session file: %q", cfg.SessionFile)
	}
}

func TestLoad_LiveAndScoreboardParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("SCOREBOARD_BASE_URL", "http://scoreboard.internal:8084/")
	t.Setenv("SCOREBOARD_TIMEOUT", "2s")
	t.Setenv("SCOREBOARD_RATE_LIMIT", "7.5")
	t.Setenv("SCOREBOARD_RATE_BURST", "3")
	t.Setenv("SCOREBOARD_CIRCUIT_ENABLED", "false")
	t.Setenv("SCOREBOARD_CIRCUIT_FAILURE_COUNT", "9")
	t.Setenv("SCOREBOARD_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("SCOREBOARD_CIRCUIT_HALF_OPEN_MAX_REQ", "4")
	t.Setenv("LIVE_POLL_INTERVAL", "1s")
	t.Setenv("LIVE_CYCLE_TIMEOUT", "4s")
	t.Setenv("LIVE_MAX_WATCHED_MATCHES", "8")
	t.Setenv("LIVE_IDLE_TIMEOUT", "45s")
	t.Setenv("LIVE_FIRST_LOAD_WAIT", "0s")
	t.Setenv("MATCH_LIST_CACHE_TTL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoreboardBaseURL != "http://scoreboard.internal:8084" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.ScoreboardBaseURL)
	}
	if cfg.ScoreboardTimeout != 2*time.Second || cfg.ScoreboardRateLimit != 7.5 || cfg.ScoreboardRateBurst != 3 {
		t.Fatalf("unexpected scoreboard transport config: %+v", cfg)
	}

	breaker := cfg.ScoreboardCircuitBreaker()
	if breaker.Enabled || breaker.FailureThreshold != 9 || breaker.OpenTimeout != 30*time.Second || breaker.HalfOpenMaxReq != 4 {
		t.Fatalf("unexpected circuit breaker config: %+v", breaker)
	}

	if cfg.LivePollInterval != time.Second || cfg.LiveCycleTimeout != 4*time.Second {
		t.Fatalf("unexpected live cadence: poll=%s cycle=%s", cfg.LivePollInterval, cfg.LiveCycleTimeout)
	}
	if cfg.LiveMaxWatchedMatches != 8 || cfg.LiveIdleTimeout != 45*time.Second || cfg.LiveFirstLoadWait != 0 {
		t.Fatalf("unexpected live limits: %+v", cfg)
	}
	if cfg.MatchListCacheTTL != time.Minute {
		t.Fatalf("unexpected match list ttl: %s", cfg.MatchListCacheTTL)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "LIVE_POLL_INTERVAL", value: "0s"},
		{key: "LIVE_POLL_INTERVAL", value: "soon"},
		{key: "LIVE_FIRST_LOAD_WAIT", value: "-1s"},
		{key: "LIVE_MAX_WATCHED_MATCHES", value: "0"},
		{key: "SCOREBOARD_RATE_LIMIT", value: "-2"},
		{key: "SCOREBOARD_RATE_BURST", value: "zero"},
		{key: "SCOREBOARD_CIRCUIT_ENABLED", value: "maybe"},
		{key: "APP_LOG_FORMAT", value: "xml"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BetterStackEndpoint != "s1765114.eu-fsn-3.betterstackdata.com" {
		t.Fatalf("unexpected BetterStackEndpoint: %q", cfg.BetterStackEndpoint)
	}
	if cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected BetterStackToken")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "cricket-live-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "cricket-live-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only commas is rejected", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origin list")
		}
	})
}

func TestLoad_SwaggerDefaultsByEnvironment(t *testing.T) {
	t.Setenv("SWAGGER_ENABLED", "")

	t.Setenv("APP_ENV", EnvDev)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}

	t.Setenv("APP_ENV", EnvProd)
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod")
	}
}
