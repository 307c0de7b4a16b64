package match

import (
	"strings"
	"time"
)

const (
	StatusLive      = "LIVE"
	StatusUpcoming  = "UPCOMING"
	StatusCompleted = "COMPLETED"
)

// Match is one fixture as listed by the scoreboard backend.
type Match struct {
	ID        string
	Team1     string
	Team2     string
	MatchDate *time.Time
	Stadium   string
	Status    string
}

func (m Match) Title() string {
	return m.Team1 + " vs " + m.Team2
}

// Result summarises a completed match.
type Result struct {
	MatchID              string
	TossWinnerName       string
	TossDecision         string
	MatchWinner          string
	FirstInningsRuns     int
	FirstInningsWickets  int
	SecondInningsRuns    int
	SecondInningsWickets int
}

func NormalizeStatus(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func IsKnownStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusUpcoming, StatusCompleted:
		return true
	default:
		return false
	}
}
