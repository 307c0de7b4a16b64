package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type LiveMatchServiceConfig struct {
	RefreshInterval   time.Duration
	CycleTimeout      time.Duration
	IdleTimeout       time.Duration
	FirstLoadWait     time.Duration
	MaxWatchedMatches int
}

// LiveScore is the current-score projection of both innings plus board metadata.
type LiveScore struct {
	MatchID   livematch.MatchID
	Version   uint64
	UpdatedAt time.Time
	Innings   []livematch.ScoreView
}

func LiveScoreOf(board livematch.Board) LiveScore {
	return LiveScore{
		MatchID:   board.MatchID,
		Version:   board.Version,
		UpdatedAt: board.UpdatedAt,
		Innings:   livematch.CurrentScores(board),
	}
}

// LiveMatchService owns one LiveMatchView per watched match. Views start on first
// use and are cancelled after IdleTimeout without reads or subscribers.
type LiveMatchService struct {
	feed   LiveMatchFeed
	cfg    LiveMatchServiceConfig
	logger *logging.Logger
	pool   *ants.Pool

	baseCtx context.Context
	stop    context.CancelFunc

	mu    sync.Mutex
	views map[livematch.MatchID]*LiveMatchView
	now   func() time.Time
}

func NewLiveMatchService(feed LiveMatchFeed, cfg LiveMatchServiceConfig, logger *logging.Logger) (*LiveMatchService, error) {
	if feed == nil {
		return nil, crerr.New("live match feed is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWatchedMatches <= 0 {
		cfg.MaxWatchedMatches = 32
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 2 * time.Minute
	}
	if cfg.FirstLoadWait < 0 {
		cfg.FirstLoadWait = 0
	}

	workers, err := ants.NewPool(cfg.MaxWatchedMatches, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create live view pool: %w", err)
	}

	baseCtx, stop := context.WithCancel(context.Background())
	return &LiveMatchService{
		feed:    feed,
		cfg:     cfg,
		logger:  logger,
		pool:    workers,
		baseCtx: baseCtx,
		stop:    stop,
		views:   make(map[livematch.MatchID]*LiveMatchView),
		now:     time.Now,
	}, nil
}

// Watch returns the active view for matchID, starting one when needed.
func (s *LiveMatchService) Watch(ctx context.Context, matchID livematch.MatchID) (*LiveMatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveMatchService.Watch", attribute.String("match_id", matchID.String()))
	defer span.End()

	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if s.baseCtx.Err() != nil {
		return nil, fmt.Errorf("%w: live match service is closed", ErrDependencyUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if view, ok := s.views[matchID]; ok && view.Active() {
		return view, nil
	}

	view := NewLiveMatchView(matchID, s.feed, LiveMatchViewConfig{
		RefreshInterval: s.cfg.RefreshInterval,
		CycleTimeout:    s.cfg.CycleTimeout,
		Logger:          s.logger,
		Spawn:           s.pool.Submit,
	})
	if err := view.Start(s.baseCtx); err != nil {
		if crerr.Is(err, ants.ErrPoolOverload) {
			return nil, fmt.Errorf("%w: already watching %d matches", ErrDependencyUnavailable, s.cfg.MaxWatchedMatches)
		}
		return nil, err
	}
	s.views[matchID] = view
	s.logger.InfoContext(ctx, "live view activated", "match_id", matchID.String(), "watched", len(s.views))
	return view, nil
}

// CurrentScore returns Projection A for both innings. A freshly activated view is
// given up to FirstLoadWait to complete its first refresh.
func (s *LiveMatchService) CurrentScore(ctx context.Context, matchID livematch.MatchID) (LiveScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveMatchService.CurrentScore")
	defer span.End()

	view, err := s.Watch(ctx, matchID)
	if err != nil {
		return LiveScore{}, err
	}
	s.awaitFirstLoad(ctx, view)
	return LiveScoreOf(view.Board()), nil
}

func (s *LiveMatchService) Scorecard(ctx context.Context, matchID livematch.MatchID, innings livematch.Innings) (livematch.Scorecard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveMatchService.Scorecard")
	defer span.End()

	if !innings.Valid() {
		return livematch.Scorecard{}, fmt.Errorf("%w: innings must be 1 or 2, got %d", ErrInvalidInput, innings)
	}
	view, err := s.Watch(ctx, matchID)
	if err != nil {
		return livematch.Scorecard{}, err
	}
	s.awaitFirstLoad(ctx, view)
	return view.Scorecard(innings), nil
}

// Subscribe keeps the match watched until unsubscribe is called.
func (s *LiveMatchService) Subscribe(ctx context.Context, matchID livematch.MatchID, fn func(livematch.Board)) (livematch.Board, func(), error) {
	view, err := s.Watch(ctx, matchID)
	if err != nil {
		return livematch.Board{}, nil, err
	}
	unsubscribe := view.Subscribe(fn)
	return view.Board(), unsubscribe, nil
}

// Stop cancels the view for matchID, if any.
func (s *LiveMatchService) Stop(matchID livematch.MatchID) {
	s.mu.Lock()
	view, ok := s.views[matchID]
	delete(s.views, matchID)
	s.mu.Unlock()

	if ok {
		view.Cancel()
	}
}

func (s *LiveMatchService) Watching() []livematch.MatchID {
	s.mu.Lock()
	out := make([]livematch.MatchID, 0, len(s.views))
	for id := range s.views {
		out = append(out, id)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SweepIdle cancels views nobody read or subscribed to within IdleTimeout.
func (s *LiveMatchService) SweepIdle() int {
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	s.mu.Lock()
	stale := make([]*LiveMatchView, 0)
	for id, view := range s.views {
		if !view.Active() || (view.subscriberCount() == 0 && view.LastAccess().Before(cutoff)) {
			stale = append(stale, view)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, view := range stale {
		view.Cancel()
		s.logger.Info("live view deactivated", "match_id", view.MatchID().String(), "reason", "idle")
	}
	return len(stale)
}

// RunJanitor sweeps idle views until ctx is done.
func (s *LiveMatchService) RunJanitor(ctx context.Context) {
	interval := s.cfg.IdleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.baseCtx.Done():
			return
		case <-ticker.C:
			s.SweepIdle()
		}
	}
}

// Close cancels every view and releases the worker pool.
func (s *LiveMatchService) Close() {
	s.stop()

	s.mu.Lock()
	views := s.views
	s.views = make(map[livematch.MatchID]*LiveMatchView)
	s.mu.Unlock()

	for _, view := range views {
		view.Cancel()
	}
	s.pool.Release()
}

func (s *LiveMatchService) awaitFirstLoad(ctx context.Context, view *LiveMatchView) {
	if s.cfg.FirstLoadWait <= 0 {
		return
	}
	timer := time.NewTimer(s.cfg.FirstLoadWait)
	defer timer.Stop()

	select {
	case <-view.Ready():
	case <-view.Done():
	case <-timer.C:
	case <-ctx.Done():
	}
}
