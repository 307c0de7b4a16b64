package livematch

import (
	"strings"
	"time"
)

// MatchID addresses one match on the scoreboard backend. It is never generated locally.
type MatchID string

func (id MatchID) String() string {
	return string(id)
}

func NormalizeMatchID(value string) MatchID {
	return MatchID(strings.TrimSpace(value))
}

// Innings selects one of the two batting turns of a match.
type Innings int

const (
	FirstInnings  Innings = 1
	SecondInnings Innings = 2
)

func (i Innings) Valid() bool {
	return i == FirstInnings || i == SecondInnings
}

// BallEvent is one delivery as reported by the ball-by-ball feed.
type BallEvent struct {
	BallNumber   int
	OverNumber   int
	RunsScored   int
	Wicket       bool
	Extra        string
	Batsman1     string
	Batsman2     string
	Bowler       string
	Total        int
	WicketNumber int
}

// InningsSnapshot holds every ball bowled so far in one innings, oldest first.
type InningsSnapshot struct {
	BallByBall      []BallEvent
	BattingTeamName string
	BowlingTeamName string
}

// LatestBall returns the last recorded delivery.
func (s InningsSnapshot) LatestBall() (BallEvent, bool) {
	if len(s.BallByBall) == 0 {
		return BallEvent{}, false
	}
	return s.BallByBall[len(s.BallByBall)-1], true
}

type MatchSnapshot struct {
	Innings1 InningsSnapshot
	Innings2 InningsSnapshot
}

type BattingLine struct {
	PlayerName string
	RunsScored int
	BallsFaced int
	Fours      int
	Sixes      int
}

type BowlingLine struct {
	PlayerName string
	Overs      float64
	RunsGiven  int
	Wickets    int
}

type BattingCard struct {
	Innings1 []BattingLine
	Innings2 []BattingLine
}

type BowlingCard struct {
	Innings1 []BowlingLine
	Innings2 []BowlingLine
}

// Board is everything one refresh cycle produces. It is replaced wholesale, never merged.
type Board struct {
	MatchID   MatchID
	Snapshot  MatchSnapshot
	Batting   BattingCard
	Bowling   BowlingCard
	Version   uint64
	UpdatedAt time.Time
}

func (b Board) Innings(i Innings) InningsSnapshot {
	if i == SecondInnings {
		return b.Snapshot.Innings2
	}
	return b.Snapshot.Innings1
}

func (b Board) BattingLines(i Innings) []BattingLine {
	if i == SecondInnings {
		return b.Batting.Innings2
	}
	return b.Batting.Innings1
}

func (b Board) BowlingLines(i Innings) []BowlingLine {
	if i == SecondInnings {
		return b.Bowling.Innings2
	}
	return b.Bowling.Innings1
}

// IsEmpty reports whether no refresh has been applied yet.
func (b Board) IsEmpty() bool {
	return b.Version == 0
}
