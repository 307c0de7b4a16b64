package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/usecase"
)

const (
	streamWriteWait      = 10 * time.Second
	streamPongWait       = 60 * time.Second
	streamPingPeriod     = (streamPongWait * 9) / 10
	streamMaxMessageSize = 512
	streamMessageScore   = "score"
)

func (h *Handler) GetLiveScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveScore")
	defer span.End()

	params := matchPathParams{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	score, err := h.liveService.CurrentScore(ctx, livematch.MatchID(params.MatchID))
	if err != nil {
		h.logger.WarnContext(ctx, "get live score failed", "match_id", params.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, liveScoreToDTO(score))
}

func (h *Handler) GetLiveScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveScorecard")
	defer span.End()

	innings, err := strconv.Atoi(strings.TrimSpace(r.PathValue("innings")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: innings must be a number", usecase.ErrInvalidInput))
		return
	}
	params := scorecardPathParams{
		MatchID: strings.TrimSpace(r.PathValue("matchID")),
		Innings: innings,
	}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := livematch.MatchID(params.MatchID)
	card, err := h.liveService.Scorecard(ctx, matchID, livematch.Innings(params.Innings))
	if err != nil {
		h.logger.WarnContext(ctx, "get live scorecard failed", "match_id", params.MatchID, "innings", params.Innings, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorecardToDTO(matchID, card))
}

// StreamLiveScore upgrades to a websocket and pushes the current score after every
// applied refresh. Slow clients only ever receive the latest board.
func (h *Handler) StreamLiveScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamLiveScore")
	defer span.End()

	params := matchPathParams{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := livematch.MatchID(params.MatchID)

	updates := make(chan livematch.Board, 1)
	current, unsubscribe, err := h.liveService.Subscribe(ctx, matchID, func(board livematch.Board) {
		offerLatest(updates, board)
	})
	if err != nil {
		h.logger.WarnContext(ctx, "subscribe live score failed", "match_id", params.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		h.logger.WarnContext(ctx, "websocket upgrade failed", "match_id", params.MatchID, "error", err)
		return
	}
	defer conn.Close()

	subscriberID := h.subscriberIDs.NewID()
	h.logger.InfoContext(ctx, "live stream opened", "match_id", params.MatchID, "subscriber_id", subscriberID)

	if !current.IsEmpty() {
		offerLatest(updates, current)
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	go readStream(conn, cancel)

	h.writeStream(streamCtx, conn, subscriberID, updates)
	h.logger.InfoContext(ctx, "live stream closed", "match_id", params.MatchID, "subscriber_id", subscriberID)
}

func (h *Handler) writeStream(ctx context.Context, conn *websocket.Conn, subscriberID string, updates <-chan livematch.Board) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	var lastVersion uint64
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait))
			return

		case board := <-updates:
			if board.Version <= lastVersion {
				continue
			}
			lastVersion = board.Version

			payload, err := sonic.Marshal(streamMessageDTO{
				Type:         streamMessageScore,
				SubscriberID: subscriberID,
				Data:         liveScoreToDTO(usecase.LiveScoreOf(board)),
			})
			if err != nil {
				h.logger.ErrorContext(ctx, "encode stream message failed", "subscriber_id", subscriberID, "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.DebugContext(ctx, "stream write failed", "subscriber_id", subscriberID, "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readStream drains client frames so control messages are processed. It cancels the
// stream once the peer goes away.
func readStream(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(streamMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// offerLatest replaces whatever is buffered in ch with board.
func offerLatest(ch chan livematch.Board, board livematch.Board) {
	for {
		select {
		case ch <- board:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
