package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/match"
	usecasemock "github.com/riskibarqy/cricket-live/internal/mocks/usecase"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMatchID livematch.MatchID = "m-101"

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type testAPI struct {
	server    *httptest.Server
	feed      *usecasemock.LiveMatchFeed
	directory *usecasemock.MatchDirectory
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	feed := usecasemock.NewLiveMatchFeed(t)
	directory := usecasemock.NewMatchDirectory(t)

	liveService, err := usecase.NewLiveMatchService(feed, usecase.LiveMatchServiceConfig{
		RefreshInterval: time.Hour,
		FirstLoadWait:   2 * time.Second,
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(liveService.Close)

	directoryService := usecase.NewMatchDirectoryService(directory, time.Minute, logging.NewNop())
	handler := NewHandler(liveService, directoryService, []string{"*"}, logging.NewNop())

	server := httptest.NewServer(NewRouter(handler, logging.NewNop(), true, []string{"*"}))
	t.Cleanup(server.Close)

	return &testAPI{server: server, feed: feed, directory: directory}
}

func (a *testAPI) stubLiveFeed() {
	a.feed.On("FetchBallByBall", mock.Anything, testMatchID).Return(livematch.MatchSnapshot{
		Innings1: livematch.InningsSnapshot{
			BattingTeamName: "Lions",
			BowlingTeamName: "Tigers",
			BallByBall: []livematch.BallEvent{
				{BallNumber: 1, OverNumber: 0, RunsScored: 4, Batsman1: "A", Batsman2: "B", Bowler: "X", Total: 4},
			},
		},
	}, nil).Maybe()
	a.feed.On("FetchBattingScore", mock.Anything, testMatchID).Return(livematch.BattingCard{
		Innings1: []livematch.BattingLine{{PlayerName: "A", RunsScored: 4, BallsFaced: 1, Fours: 1}},
	}, nil).Maybe()
	a.feed.On("FetchBowlingScore", mock.Anything, testMatchID).Return(livematch.BowlingCard{
		Innings1: []livematch.BowlingLine{{PlayerName: "X", Overs: 0.1, RunsGiven: 4}},
	}, nil).Maybe()
}

func getEnvelope[T any](t *testing.T, url string) (int, envelope[T]) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(body, &out), "body: %s", body)
	return resp.StatusCode, out
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	status, body := getEnvelope[healthDTO](t, api.server.URL+"/healthz")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2.0", body.APIVersion)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Zero(t, body.Data.WatchedMatches)
}

func TestHandler_ListMatchesDefaultsToLive(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.directory.On("ListMatchesByStatus", mock.Anything, match.StatusLive).Return([]match.Match{
		{ID: "7", Team1: "Lions", Team2: "Tigers", Status: match.StatusLive},
	}, nil).Once()

	status, body := getEnvelope[[]matchDTO](t, api.server.URL+"/v1/matches")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Lions vs Tigers", body.Data[0].Title)

	// second read is served from the list cache
	status, _ = getEnvelope[[]matchDTO](t, api.server.URL+"/v1/matches?status=live")
	assert.Equal(t, http.StatusOK, status)
}

func TestHandler_ListMatchesRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	status, body := getEnvelope[any](t, api.server.URL+"/v1/matches?status=ABANDONED")

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_ARGUMENT", body.Error.Status)
}

func TestHandler_GetMatchResult(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.directory.On("GetMatchResult", mock.Anything, "9").Return(match.Result{
		MatchID: "9", MatchWinner: "Lions", FirstInningsRuns: 182,
	}, nil).Once()
	api.directory.On("GetMatchResult", mock.Anything, "404").
		Return(match.Result{}, fmt.Errorf("%w: no result for match 404", usecase.ErrNotFound)).Once()

	status, body := getEnvelope[matchResultDTO](t, api.server.URL+"/v1/matches/9/result")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Lions", body.Data.MatchWinner)
	assert.Equal(t, 182, body.Data.FirstInningsRuns)

	status, missing := getEnvelope[any](t, api.server.URL+"/v1/matches/404/result")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, missing.Error)
	assert.Equal(t, "notFound", missing.Error.Errors[0].Reason)
}

func TestHandler_GetLiveScore(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.stubLiveFeed()

	status, body := getEnvelope[liveScoreDTO](t, api.server.URL+"/v1/matches/m-101/live/score")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "m-101", body.Data.MatchID)
	assert.Equal(t, uint64(1), body.Data.Version)
	require.Len(t, body.Data.Innings, 1)

	innings := body.Data.Innings[0]
	assert.Equal(t, "4/0", innings.Score)
	assert.Equal(t, "0.1", innings.Over)
	assert.Equal(t, "X", innings.Bowler)
	assert.Equal(t, batsmanDTO{Name: "A", Runs: 4, Balls: 1}, innings.Striker)
	assert.Contains(t, innings.Lines, "Score: 4/0")
}

func TestHandler_GetLiveScoreWhileFeedDown(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	down := usecase.MarkTransient(fmt.Errorf("scoreboard unreachable"))
	api.feed.On("FetchBallByBall", mock.Anything, testMatchID).Return(livematch.MatchSnapshot{}, down).Maybe()
	api.feed.On("FetchBattingScore", mock.Anything, testMatchID).Return(livematch.BattingCard{}, down).Maybe()
	api.feed.On("FetchBowlingScore", mock.Anything, testMatchID).Return(livematch.BowlingCard{}, down).Maybe()

	status, body := getEnvelope[liveScoreDTO](t, api.server.URL+"/v1/matches/m-101/live/score")
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, body.Data.Version)
	assert.Empty(t, body.Data.Innings)
}

func TestHandler_GetLiveScorecard(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.stubLiveFeed()

	status, body := getEnvelope[scorecardDTO](t, api.server.URL+"/v1/matches/m-101/live/scorecard/1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Data.Innings)
	require.Len(t, body.Data.Batting, 1)
	assert.Equal(t, 400.0, body.Data.Batting[0].StrikeRate)
	require.Len(t, body.Data.Bowling, 1)
	assert.Equal(t, 40.0, body.Data.Bowling[0].Economy)

	for _, innings := range []string{"3", "0", "first"} {
		status, bad := getEnvelope[any](t, api.server.URL+"/v1/matches/m-101/live/scorecard/"+innings)
		assert.Equal(t, http.StatusBadRequest, status, "innings=%s", innings)
		require.NotNil(t, bad.Error)
	}
}

func TestHandler_StreamLiveScore(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.stubLiveFeed()

	wsURL := "ws" + strings.TrimPrefix(api.server.URL, "http") + "/v1/matches/m-101/live/stream"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg streamMessageDTO
	require.NoError(t, sonic.Unmarshal(payload, &msg))
	assert.Equal(t, streamMessageScore, msg.Type)
	assert.True(t, strings.HasPrefix(msg.SubscriberID, "sub_"), "subscriber id %q", msg.SubscriberID)
	assert.Equal(t, "m-101", msg.Data.MatchID)
	require.Len(t, msg.Data.Innings, 1)
	assert.Equal(t, "4/0", msg.Data.Innings[0].Score)
}

func TestHandler_SwaggerRoutes(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	resp, err := http.Get(api.server.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/v1/matches/{matchID}/live/stream")
}

func TestOfferLatest_KeepsNewestBoard(t *testing.T) {
	t.Parallel()

	ch := make(chan livematch.Board, 1)
	offerLatest(ch, livematch.Board{Version: 1})
	offerLatest(ch, livematch.Board{Version: 2})

	select {
	case board := <-ch:
		assert.Equal(t, uint64(2), board.Version)
	default:
		t.Fatal("expected a buffered board")
	}
}
