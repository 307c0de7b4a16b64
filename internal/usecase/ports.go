package usecase

import (
	"context"

	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/match"
)

// LiveMatchFeed reads the three live feeds of one match from the scoreboard backend.
type LiveMatchFeed interface {
	FetchBallByBall(ctx context.Context, matchID livematch.MatchID) (livematch.MatchSnapshot, error)
	FetchBattingScore(ctx context.Context, matchID livematch.MatchID) (livematch.BattingCard, error)
	FetchBowlingScore(ctx context.Context, matchID livematch.MatchID) (livematch.BowlingCard, error)
}

// MatchDirectory lists fixtures and completed results.
type MatchDirectory interface {
	ListMatchesByStatus(ctx context.Context, status string) ([]match.Match, error)
	GetMatchResult(ctx context.Context, matchID string) (match.Result, error)
}
