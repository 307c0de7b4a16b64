package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLiveMatchService(t *testing.T, feed LiveMatchFeed, cfg LiveMatchServiceConfig) *LiveMatchService {
	t.Helper()

	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = time.Hour
	}
	svc, err := NewLiveMatchService(feed, cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestNewLiveMatchService_RequiresFeed(t *testing.T) {
	t.Parallel()

	_, err := NewLiveMatchService(nil, LiveMatchServiceConfig{}, logging.NewNop())
	assert.Error(t, err)
}

func TestLiveMatchService_WatchReusesActiveView(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{})
	ctx := context.Background()

	first, err := svc.Watch(ctx, "m-1")
	require.NoError(t, err)
	second, err := svc.Watch(ctx, "m-1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = svc.Watch(ctx, "m-2")
	require.NoError(t, err)
	assert.Equal(t, []livematch.MatchID{"m-1", "m-2"}, svc.Watching())

	_, err = svc.Watch(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLiveMatchService_WatchLimit(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{MaxWatchedMatches: 1})
	ctx := context.Background()

	_, err := svc.Watch(ctx, "m-1")
	require.NoError(t, err)

	_, err = svc.Watch(ctx, "m-2")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	assert.Equal(t, []livematch.MatchID{"m-1"}, svc.Watching())
}

func TestLiveMatchService_CurrentScoreWaitsForFirstLoad(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{FirstLoadWait: 2 * time.Second})

	score, err := svc.CurrentScore(context.Background(), testMatchID)
	require.NoError(t, err)
	assert.Equal(t, testMatchID, score.MatchID)
	assert.Equal(t, uint64(1), score.Version)
	require.Len(t, score.Innings, 1)
	assert.Equal(t, "4/0", score.Innings[0].ScoreText())
	assert.Equal(t, "0.1", score.Innings[0].OverText())
}

func TestLiveMatchService_Scorecard(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{FirstLoadWait: 2 * time.Second})
	ctx := context.Background()

	_, err := svc.Scorecard(ctx, testMatchID, livematch.Innings(3))
	assert.ErrorIs(t, err, ErrInvalidInput)

	card, err := svc.Scorecard(ctx, testMatchID, livematch.FirstInnings)
	require.NoError(t, err)
	assert.Equal(t, livematch.FirstInnings, card.Innings)
	require.Len(t, card.Batting, 1)
	assert.Equal(t, "A", card.Batting[0].PlayerName)

	second, err := svc.Scorecard(ctx, testMatchID, livematch.SecondInnings)
	require.NoError(t, err)
	assert.Empty(t, second.Batting)
	assert.Empty(t, second.Bowling)
}

func TestLiveMatchService_SubscribeReceivesBoards(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{RefreshInterval: 5 * time.Millisecond})

	boards := make(chan livematch.Board, 4)
	_, unsubscribe, err := svc.Subscribe(context.Background(), testMatchID, func(board livematch.Board) {
		select {
		case boards <- board:
		default:
		}
	})
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case board := <-boards:
		assert.Equal(t, testMatchID, board.MatchID)
		assert.False(t, board.IsEmpty())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for board")
	}
}

func TestLiveMatchService_SweepIdleKeepsSubscribedViews(t *testing.T) {
	t.Parallel()

	svc := newTestLiveMatchService(t, newStubLiveFeed(), LiveMatchServiceConfig{IdleTimeout: time.Minute})
	ctx := context.Background()

	idle, err := svc.Watch(ctx, "m-idle")
	require.NoError(t, err)
	_, unsubscribe, err := svc.Subscribe(ctx, "m-streamed", func(livematch.Board) {})
	require.NoError(t, err)
	defer unsubscribe()

	assert.Zero(t, svc.SweepIdle())

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, svc.SweepIdle())
	waitClosed(t, idle.Done(), "idle view exit")
	assert.Equal(t, []livematch.MatchID{"m-streamed"}, svc.Watching())
}

func TestLiveMatchService_StopAndClose(t *testing.T) {
	t.Parallel()

	svc, err := NewLiveMatchService(newStubLiveFeed(), LiveMatchServiceConfig{RefreshInterval: time.Hour}, logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	stopped, err := svc.Watch(ctx, "m-1")
	require.NoError(t, err)
	kept, err := svc.Watch(ctx, "m-2")
	require.NoError(t, err)

	svc.Stop("m-1")
	waitClosed(t, stopped.Done(), "stopped view exit")
	assert.Equal(t, []livematch.MatchID{"m-2"}, svc.Watching())

	svc.Close()
	waitClosed(t, kept.Done(), "view exit on close")
	assert.Empty(t, svc.Watching())

	_, err = svc.Watch(ctx, "m-3")
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
