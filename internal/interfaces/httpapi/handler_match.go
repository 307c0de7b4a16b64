package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/cricket-live/internal/domain/match"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := listMatchesQuery{Status: match.NormalizeStatus(r.URL.Query().Get("status"))}
	if query.Status == "" {
		query.Status = match.StatusLive
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.directoryService.ListByStatus(ctx, query.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "status", query.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchResult")
	defer span.End()

	params := matchPathParams{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.directoryService.GetResult(ctx, params.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match result failed", "match_id", params.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(result))
}
