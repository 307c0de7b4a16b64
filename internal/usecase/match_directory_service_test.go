package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-live/internal/domain/match"
	usecasemock "github.com/riskibarqy/cricket-live/internal/mocks/usecase"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestMatchDirectoryService_ListByStatus_CachesPerStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	directory := usecasemock.NewMatchDirectory(t)
	service := NewMatchDirectoryService(directory, time.Minute, logging.NewNop())

	kickoff := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	directory.
		On("ListMatchesByStatus", mock.Anything, match.StatusLive).
		Return([]match.Match{
			{ID: "m-1", Team1: "Lions", Team2: "Tigers", MatchDate: &kickoff, Stadium: "Eden Park"},
		}, nil).
		Once()

	for i := 0; i < 3; i++ {
		got, err := service.ListByStatus(ctx, " live ")
		if err != nil {
			t.Fatalf("list live matches: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("unexpected match count: got=%d want=1", len(got))
		}
		if got[0].Status != match.StatusLive {
			t.Fatalf("status should default to the requested one, got=%q", got[0].Status)
		}
		if got[0].Title() != "Lions vs Tigers" {
			t.Fatalf("unexpected title: %s", got[0].Title())
		}
	}

	directory.
		On("ListMatchesByStatus", mock.Anything, match.StatusLive).
		Return([]match.Match{}, nil).
		Once()
	service.Invalidate(ctx)

	got, err := service.LiveMatches(ctx)
	if err != nil {
		t.Fatalf("list live matches after invalidate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected reload after invalidate, got=%d matches", len(got))
	}
}

func TestMatchDirectoryService_ListByStatus_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	directory := usecasemock.NewMatchDirectory(t)
	service := NewMatchDirectoryService(directory, time.Minute, logging.NewNop())

	_, err := service.ListByStatus(context.Background(), "POSTPONED")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchDirectoryService_ListByStatus_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	directory := usecasemock.NewMatchDirectory(t)
	service := NewMatchDirectoryService(directory, time.Minute, logging.NewNop())

	directory.
		On("ListMatchesByStatus", mock.Anything, match.StatusUpcoming).
		Return(nil, MarkTransient(errors.New("dial tcp: connection refused"))).
		Once()
	directory.
		On("ListMatchesByStatus", mock.Anything, match.StatusUpcoming).
		Return([]match.Match{{ID: "m-2", Status: match.StatusUpcoming}}, nil).
		Once()

	if _, err := service.ListByStatus(ctx, match.StatusUpcoming); !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	got, err := service.ListByStatus(ctx, match.StatusUpcoming)
	if err != nil {
		t.Fatalf("retry list upcoming: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m-2" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestMatchDirectoryService_GetResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	directory := usecasemock.NewMatchDirectory(t)
	service := NewMatchDirectoryService(directory, time.Minute, logging.NewNop())

	directory.
		On("GetMatchResult", mock.Anything, "m-9").
		Return(match.Result{MatchWinner: "Lions", FirstInningsRuns: 182, FirstInningsWickets: 6}, nil).
		Once()
	directory.
		On("GetMatchResult", mock.Anything, "m-404").
		Return(match.Result{}, ErrNotFound).
		Once()

	result, err := service.GetResult(ctx, " m-9 ")
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.MatchID != "m-9" || result.MatchWinner != "Lions" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := service.GetResult(ctx, "m-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetResult(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
