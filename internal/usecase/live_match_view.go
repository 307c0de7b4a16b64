package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultLiveRefreshInterval = 2500 * time.Millisecond
	DefaultLiveCycleTimeout    = 10 * time.Second
)

// FetchFailureHook receives every failed refresh cycle. err is marked ErrTransientFetch.
type FetchFailureHook func(ctx context.Context, matchID livematch.MatchID, err error)

// Spawner runs a long-lived task, typically on its own goroutine or a bounded pool.
type Spawner func(task func()) error

func goSpawner(task func()) error {
	go task()
	return nil
}

type LiveMatchViewConfig struct {
	RefreshInterval time.Duration
	CycleTimeout    time.Duration
	Logger          *logging.Logger
	OnFetchFailure  FetchFailureHook
	Spawn           Spawner
}

type viewState int

const (
	viewIdle viewState = iota
	viewActive
	viewCancelled
)

// LiveMatchView keeps one match's live board refreshed on a fixed cadence.
//
// Cycles never overlap: a tick that fires while a cycle is in flight is coalesced
// into the next one. Once Cancel returns no refresh result is applied, including
// results of fetches that were already in flight.
type LiveMatchView struct {
	matchID      livematch.MatchID
	feed         LiveMatchFeed
	interval     time.Duration
	cycleTimeout time.Duration
	logger       *logging.Logger
	onFailure    FetchFailureHook
	spawn        Spawner
	now          func() time.Time

	mu           sync.RWMutex
	state        viewState
	board        livematch.Board
	cancel       context.CancelFunc
	listeners    map[uint64]func(livematch.Board)
	nextListener uint64

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}

	lastAccess          atomic.Int64
	consecutiveFailures atomic.Int64
}

func NewLiveMatchView(matchID livematch.MatchID, feed LiveMatchFeed, cfg LiveMatchViewConfig) *LiveMatchView {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = DefaultLiveRefreshInterval
	}
	cycleTimeout := cfg.CycleTimeout
	if cycleTimeout <= 0 {
		cycleTimeout = DefaultLiveCycleTimeout
	}
	spawn := cfg.Spawn
	if spawn == nil {
		spawn = goSpawner
	}

	v := &LiveMatchView{
		matchID:      matchID,
		feed:         feed,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		logger:       logger.With("match_id", matchID.String()),
		spawn:        spawn,
		now:          time.Now,
		board:        livematch.Board{MatchID: matchID},
		listeners:    make(map[uint64]func(livematch.Board)),
		ready:        make(chan struct{}),
		done:         make(chan struct{}),
	}
	v.onFailure = cfg.OnFetchFailure
	if v.onFailure == nil {
		v.onFailure = v.logFetchFailure
	}
	v.lastAccess.Store(v.now().UnixNano())
	return v
}

func (v *LiveMatchView) MatchID() livematch.MatchID {
	return v.matchID
}

// Start refreshes immediately and then every refresh interval until Cancel or ctx ends.
// A view can be started once.
func (v *LiveMatchView) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.state != viewIdle {
		v.mu.Unlock()
		return fmt.Errorf("%w: live view for match %s was already started", ErrInvalidInput, v.matchID)
	}
	runCtx, cancel := context.WithCancel(ctx)
	v.state = viewActive
	v.cancel = cancel
	v.mu.Unlock()

	if err := v.spawn(func() { v.run(runCtx) }); err != nil {
		v.mu.Lock()
		v.state = viewCancelled
		cancel()
		close(v.done)
		v.mu.Unlock()
		return fmt.Errorf("start live view for match %s: %w", v.matchID, err)
	}
	return nil
}

// Cancel stops the cadence. It does not wait for an in-flight cycle; use Done for that.
func (v *LiveMatchView) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case viewCancelled:
		return
	case viewIdle:
		close(v.done)
	}
	v.state = viewCancelled
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *LiveMatchView) Active() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state == viewActive
}

// Done is closed once the refresh loop has exited.
func (v *LiveMatchView) Done() <-chan struct{} {
	return v.done
}

// Ready is closed after the first refresh has been applied.
func (v *LiveMatchView) Ready() <-chan struct{} {
	return v.ready
}

// Board returns the last applied board. Before the first refresh it is empty.
func (v *LiveMatchView) Board() livematch.Board {
	v.touch()
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.board
}

func (v *LiveMatchView) CurrentScores() []livematch.ScoreView {
	return livematch.CurrentScores(v.Board())
}

func (v *LiveMatchView) Scorecard(innings livematch.Innings) livematch.Scorecard {
	return livematch.BuildScorecard(v.Board(), innings)
}

// Subscribe registers fn to receive every applied board. fn runs on the refresh
// goroutine and must not block.
func (v *LiveMatchView) Subscribe(fn func(livematch.Board)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextListener
	v.nextListener++
	v.listeners[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.listeners, id)
			v.mu.Unlock()
			v.touch()
		})
	}
}

func (v *LiveMatchView) subscriberCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.listeners)
}

func (v *LiveMatchView) LastAccess() time.Time {
	return time.Unix(0, v.lastAccess.Load())
}

func (v *LiveMatchView) touch() {
	v.lastAccess.Store(v.now().UnixNano())
}

func (v *LiveMatchView) run(ctx context.Context) {
	defer close(v.done)

	v.logger.Debug("live view started", "interval", v.interval)
	v.refresh(ctx)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			v.logger.Debug("live view stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			v.refresh(ctx)
		}
	}
}

// refresh runs one cycle: three concurrent fetches, then an all-or-nothing swap.
func (v *LiveMatchView) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	cycleCtx, cancel := context.WithTimeout(ctx, v.cycleTimeout)
	defer cancel()

	var (
		snapshot livematch.MatchSnapshot
		batting  livematch.BattingCard
		bowling  livematch.BowlingCard
	)

	fetches := pool.New().WithContext(cycleCtx).WithCancelOnError()
	fetches.Go(func(ctx context.Context) error {
		out, err := v.feed.FetchBallByBall(ctx, v.matchID)
		if err != nil {
			return fmt.Errorf("fetch ball by ball: %w", err)
		}
		snapshot = out
		return nil
	})
	fetches.Go(func(ctx context.Context) error {
		out, err := v.feed.FetchBattingScore(ctx, v.matchID)
		if err != nil {
			return fmt.Errorf("fetch batting score: %w", err)
		}
		batting = out
		return nil
	})
	fetches.Go(func(ctx context.Context) error {
		out, err := v.feed.FetchBowlingScore(ctx, v.matchID)
		if err != nil {
			return fmt.Errorf("fetch bowling score: %w", err)
		}
		bowling = out
		return nil
	})
	err := fetches.Wait()

	if ctx.Err() != nil {
		// Cancelled while in flight: whatever arrived is stale.
		return
	}
	if err != nil {
		v.consecutiveFailures.Add(1)
		v.onFailure(ctx, v.matchID, MarkTransient(err))
		return
	}

	if v.apply(livematch.Board{Snapshot: snapshot, Batting: batting, Bowling: bowling}) {
		v.consecutiveFailures.Store(0)
	}
}

func (v *LiveMatchView) apply(next livematch.Board) bool {
	v.mu.Lock()
	if v.state != viewActive {
		v.mu.Unlock()
		v.logger.Debug("discarded refresh result after cancel")
		return false
	}
	next.MatchID = v.matchID
	next.Version = v.board.Version + 1
	next.UpdatedAt = v.now().UTC()
	v.board = next

	listeners := make([]func(livematch.Board), 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	v.mu.Unlock()

	v.readyOnce.Do(func() { close(v.ready) })
	for _, fn := range listeners {
		fn(next)
	}
	return true
}

func (v *LiveMatchView) logFetchFailure(ctx context.Context, _ livematch.MatchID, err error) {
	v.logger.WarnContext(ctx, "live refresh failed, keeping previous board",
		"consecutive_failures", v.consecutiveFailures.Load(),
		"error", err,
	)
}
