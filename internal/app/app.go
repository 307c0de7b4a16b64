package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/cricket-live/external/scoreboard"
	"github.com/riskibarqy/cricket-live/internal/config"
	"github.com/riskibarqy/cricket-live/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/usecase"
)

// NewScoreboardClient builds the backend client shared by the API server and the terminal viewer.
func NewScoreboardClient(cfg config.Config, logger *logging.Logger) *scoreboard.Client {
	return scoreboard.NewClient(scoreboard.ClientConfig{
		BaseURL:        cfg.ScoreboardBaseURL,
		Timeout:        cfg.ScoreboardTimeout,
		RateLimit:      cfg.ScoreboardRateLimit,
		RateBurst:      cfg.ScoreboardRateBurst,
		Logger:         logger,
		CircuitBreaker: cfg.ScoreboardCircuitBreaker(),
	})
}

// NewLiveMatchViewConfig maps configuration onto a single view's settings.
func NewLiveMatchViewConfig(cfg config.Config, logger *logging.Logger) usecase.LiveMatchViewConfig {
	return usecase.LiveMatchViewConfig{
		RefreshInterval: cfg.LivePollInterval,
		CycleTimeout:    cfg.LiveCycleTimeout,
		Logger:          logger,
	}
}

// NewHTTPServer wires the API. The returned cleanup stops every live view and the janitor.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	scoreboardClient := NewScoreboardClient(cfg, logger)

	liveSvc, err := usecase.NewLiveMatchService(scoreboardClient, usecase.LiveMatchServiceConfig{
		RefreshInterval:   cfg.LivePollInterval,
		CycleTimeout:      cfg.LiveCycleTimeout,
		IdleTimeout:       cfg.LiveIdleTimeout,
		FirstLoadWait:     cfg.LiveFirstLoadWait,
		MaxWatchedMatches: cfg.LiveMaxWatchedMatches,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build live match service: %w", err)
	}
	directorySvc := usecase.NewMatchDirectoryService(scoreboardClient, cfg.MatchListCacheTTL, logger)

	handler := httpapi.NewHandler(liveSvc, directorySvc, cfg.CORSAllowedOrigins, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go liveSvc.RunJanitor(janitorCtx)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() {
		stopJanitor()
		liveSvc.Close()
	}
	return server, cleanup, nil
}
