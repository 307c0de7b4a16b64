package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-live/internal/domain/match"
	"github.com/riskibarqy/cricket-live/internal/platform/cache"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
)

const matchListCachePrefix = "matches:"

type MatchDirectoryService struct {
	directory MatchDirectory
	lists     *cache.Store[[]match.Match]
	logger    *logging.Logger
}

func NewMatchDirectoryService(directory MatchDirectory, listTTL time.Duration, logger *logging.Logger) *MatchDirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchDirectoryService{
		directory: directory,
		lists:     cache.NewStore[[]match.Match](listTTL),
		logger:    logger,
	}
}

func (s *MatchDirectoryService) ListByStatus(ctx context.Context, status string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDirectoryService.ListByStatus")
	defer span.End()

	status = match.NormalizeStatus(status)
	if !match.IsKnownStatus(status) {
		return nil, fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, status)
	}

	matches, err := s.lists.GetOrLoad(ctx, matchListCachePrefix+status, func(ctx context.Context) ([]match.Match, error) {
		items, err := s.directory.ListMatchesByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].Status == "" {
				items[i].Status = status
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list matches status=%s: %w", status, err)
	}
	return matches, nil
}

// LiveMatches is ListByStatus for matches currently in play.
func (s *MatchDirectoryService) LiveMatches(ctx context.Context) ([]match.Match, error) {
	return s.ListByStatus(ctx, match.StatusLive)
}

func (s *MatchDirectoryService) GetResult(ctx context.Context, matchID string) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDirectoryService.GetResult")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Result{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	result, err := s.directory.GetMatchResult(ctx, matchID)
	if err != nil {
		return match.Result{}, fmt.Errorf("get match result match_id=%s: %w", matchID, err)
	}
	if result.MatchID == "" {
		result.MatchID = matchID
	}
	return result, nil
}

// Invalidate drops every cached match list.
func (s *MatchDirectoryService) Invalidate(ctx context.Context) {
	s.lists.DeletePrefix(ctx, matchListCachePrefix)
	s.logger.DebugContext(ctx, "match list cache invalidated")
}
