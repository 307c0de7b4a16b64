package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/cricket-live/internal/platform/id"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/usecase"
)

type Handler struct {
	liveService      *usecase.LiveMatchService
	directoryService *usecase.MatchDirectoryService
	logger           *logging.Logger
	validator        *validator.Validate
	subscriberIDs    id.Generator
	upgrader         websocket.Upgrader
}

func NewHandler(
	liveService *usecase.LiveMatchService,
	directoryService *usecase.MatchDirectoryService,
	allowedOrigins []string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	origins := newOriginPolicy(allowedOrigins)
	return &Handler{
		liveService:      liveService,
		directoryService: directoryService,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
		subscriberIDs:    id.NewUUIDGenerator("sub_"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				return origin == "" || origins.allows(origin)
			},
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status:         "ok",
		WatchedMatches: len(h.liveService.Watching()),
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type matchPathParams struct {
	MatchID string `validate:"required,max=64,printascii"`
}

type scorecardPathParams struct {
	MatchID string `validate:"required,max=64,printascii"`
	Innings int    `validate:"oneof=1 2"`
}

type listMatchesQuery struct {
	Status string `validate:"required,oneof=LIVE UPCOMING COMPLETED"`
}
