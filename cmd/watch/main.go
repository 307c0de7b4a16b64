package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/cricket-live/internal/app"
	"github.com/riskibarqy/cricket-live/internal/config"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/session"
	"github.com/riskibarqy/cricket-live/internal/infrastructure/repository/file"
	"github.com/riskibarqy/cricket-live/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	matchFlag := flag.String("match", "", "match id to watch; defaults to the first LIVE match")
	sessionFlag := flag.String("session", "", "session file path; defaults to SESSION_FILE")
	loginFlag := flag.String("login", "", "sign in as this username before watching")
	roleFlag := flag.String("role", string(session.RoleViewer), "role used with -login: ADMIN, COACH or VIEWER")
	logoutFlag := flag.Bool("logout", false, "clear the saved session and exit")
	scorecardFlag := flag.Bool("scorecard", false, "print both innings scorecards after every update")
	ephemeralFlag := flag.Bool("ephemeral", false, "keep the session in memory only; nothing is read from or written to disk")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if path := strings.TrimSpace(*sessionFlag); path != "" {
		cfg.SessionFile = path
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.FormatConsole,
		Output: os.Stderr,
	}).Named("watch")
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := watchOptions{
		matchID:   livematch.NormalizeMatchID(*matchFlag),
		login:     strings.TrimSpace(*loginFlag),
		role:      *roleFlag,
		logout:    *logoutFlag,
		scorecard: *scorecardFlag,
		ephemeral: *ephemeralFlag,
	}
	if err := run(ctx, cfg, opts, logger, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch failed", "error", err)
		os.Exit(1)
	}
}

type watchOptions struct {
	matchID   livematch.MatchID
	login     string
	role      string
	logout    bool
	scorecard bool
	ephemeral bool
}

func newSessionStore(cfg config.Config, ephemeral bool) (session.Store, error) {
	if ephemeral {
		return memory.NewSessionStore(), nil
	}
	store, err := file.NewSessionStore(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func run(ctx context.Context, cfg config.Config, opts watchOptions, logger *logging.Logger, out io.Writer) error {
	store, err := newSessionStore(cfg, opts.ephemeral)
	if err != nil {
		return err
	}
	sessions := usecase.NewSessionService(store, logger)
	if err := sessions.Init(ctx); err != nil {
		return err
	}

	if opts.logout {
		if err := sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "signed out")
		return nil
	}
	if opts.login != "" {
		if _, err := sessions.Login(ctx, usecase.LoginInput{Username: opts.login, Role: opts.role}); err != nil {
			return err
		}
	}

	viewer := "anonymous"
	if user, ok := sessions.Current(); ok {
		viewer = fmt.Sprintf("%s (%s)", user.Username, user.Role)
		logger = logger.With("viewer", user.Username)
	}

	client := app.NewScoreboardClient(cfg, logger)
	matchID := opts.matchID
	if matchID == "" {
		directory := usecase.NewMatchDirectoryService(client, cfg.MatchListCacheTTL, logger)
		live, err := directory.LiveMatches(ctx)
		if err != nil {
			return fmt.Errorf("find a live match: %w", err)
		}
		if len(live) == 0 {
			return fmt.Errorf("%w: no LIVE matches, pass -match", usecase.ErrNotFound)
		}
		matchID = livematch.NormalizeMatchID(live[0].ID)
		fmt.Fprintf(out, "Watching %s\n", live[0].Title())
	}

	view := usecase.NewLiveMatchView(matchID, client, app.NewLiveMatchViewConfig(cfg, logger))
	updates := make(chan livematch.Board, 1)
	unsubscribe := view.Subscribe(func(board livematch.Board) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- board:
		default:
		}
	})
	defer unsubscribe()

	if err := view.Start(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "watching match", "match_id", matchID.String(), "viewer", viewer)

	for {
		select {
		case <-ctx.Done():
			view.Cancel()
			select {
			case <-view.Done():
			case <-time.After(cfg.LiveCycleTimeout):
			}
			return nil
		case <-view.Done():
			return nil
		case board := <-updates:
			printBoard(out, board, opts.scorecard)
		}
	}
}

func printBoard(out io.Writer, board livematch.Board, withScorecard bool) {
	fmt.Fprintf(out, "\n== match %s  update #%d  %s ==\n", board.MatchID, board.Version, board.UpdatedAt.Local().Format("15:04:05"))

	scores := livematch.CurrentScores(board)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No balls bowled yet")
	}
	for _, score := range scores {
		fmt.Fprintf(out, "-- Innings %d --\n%s\n", score.Innings, score.String())
	}

	if !withScorecard {
		return
	}
	for _, innings := range []livematch.Innings{livematch.FirstInnings, livematch.SecondInnings} {
		fmt.Fprintln(out, strings.Join(livematch.BuildScorecard(board, innings).Lines(), "\n"))
	}
}
