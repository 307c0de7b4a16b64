package scoreboard

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/match"
)

type ballEventPayload struct {
	BallNumber   int    `json:"ballNumber"`
	OverNumber   int    `json:"overNumber"`
	RunsScored   int    `json:"runsScored"`
	Wicket       bool   `json:"wicket"`
	Extra        string `json:"extra"`
	Batsman1     string `json:"batsmen1"`
	Batsman2     string `json:"batsmen2"`
	Bowler       string `json:"bowler"`
	Total        int    `json:"total"`
	WicketNumber int    `json:"wicketNumber"`
}

type inningsPayload struct {
	BallByBall      []ballEventPayload `json:"ballByBall"`
	BattingTeamName string             `json:"battingTeamName"`
	BowlingTeamName string             `json:"bowlingTeamName"`
}

type ballByBallEnvelope struct {
	Innings1 inningsPayload `json:"Innings1"`
	Innings2 inningsPayload `json:"Innings2"`
}

type battingLinePayload struct {
	PlayerName string `json:"playerName"`
	RunsScored int    `json:"runsScored"`
	BallsFaced int    `json:"ballsFaced"`
	Fours      int    `json:"fours"`
	Six        int    `json:"six"`
}

type battingEnvelope struct {
	Innings1 []battingLinePayload `json:"Innings1"`
	Innings2 []battingLinePayload `json:"Innings2"`
}

type bowlingLinePayload struct {
	PlayerName string  `json:"playerName"`
	Overs      float64 `json:"overs"`
	RunsGiven  int     `json:"runsGiven"`
	Wickets    int     `json:"wickets"`
}

type bowlingEnvelope struct {
	Innings1 []bowlingLinePayload `json:"Innings1"`
	Innings2 []bowlingLinePayload `json:"Innings2"`
}

type matchPayload struct {
	MID       flexString `json:"mid"`
	Team1     string     `json:"team1"`
	Team2     string     `json:"team2"`
	MatchDate string     `json:"matchDate"`
	Stadium   string     `json:"stadium"`
	Status    string     `json:"status"`
}

type resultPayload struct {
	MID                       flexString `json:"mid"`
	TossWinnerName            string     `json:"tossWinnerName"`
	TossDecision              string     `json:"tossDecision"`
	MatchWinner               string     `json:"matchWinner"`
	RunsScoredInFirstInnings  int        `json:"runsScoredInFirstinnings"`
	WicketsInFirstInnings     int        `json:"wicketsInFirstinnings"`
	RunsScoredInSecondInnings int        `json:"runsScoredInSecondinnings"`
	WicketsInSecondInnings    int        `json:"wicketsInSecondinnings"`
}

// flexString accepts both JSON strings and numbers; the backend sends match ids either way.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	value := strings.TrimSpace(string(raw))
	switch {
	case value == "null":
		*f = ""
	case strings.HasPrefix(value, `"`):
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	default:
		*f = flexString(value)
	}
	return nil
}

func (e ballByBallEnvelope) toDomain() livematch.MatchSnapshot {
	return livematch.MatchSnapshot{
		Innings1: e.Innings1.toDomain(),
		Innings2: e.Innings2.toDomain(),
	}
}

func (p inningsPayload) toDomain() livematch.InningsSnapshot {
	balls := make([]livematch.BallEvent, 0, len(p.BallByBall))
	for _, item := range p.BallByBall {
		balls = append(balls, livematch.BallEvent{
			BallNumber:   item.BallNumber,
			OverNumber:   item.OverNumber,
			RunsScored:   item.RunsScored,
			Wicket:       item.Wicket,
			Extra:        strings.TrimSpace(item.Extra),
			Batsman1:     item.Batsman1,
			Batsman2:     item.Batsman2,
			Bowler:       item.Bowler,
			Total:        item.Total,
			WicketNumber: item.WicketNumber,
		})
	}
	return livematch.InningsSnapshot{
		BallByBall:      balls,
		BattingTeamName: p.BattingTeamName,
		BowlingTeamName: p.BowlingTeamName,
	}
}

func (e battingEnvelope) toDomain() livematch.BattingCard {
	return livematch.BattingCard{
		Innings1: mapBattingLines(e.Innings1),
		Innings2: mapBattingLines(e.Innings2),
	}
}

func mapBattingLines(items []battingLinePayload) []livematch.BattingLine {
	out := make([]livematch.BattingLine, 0, len(items))
	for _, item := range items {
		out = append(out, livematch.BattingLine{
			PlayerName: item.PlayerName,
			RunsScored: item.RunsScored,
			BallsFaced: item.BallsFaced,
			Fours:      item.Fours,
			Sixes:      item.Six,
		})
	}
	return out
}

func (e bowlingEnvelope) toDomain() livematch.BowlingCard {
	return livematch.BowlingCard{
		Innings1: mapBowlingLines(e.Innings1),
		Innings2: mapBowlingLines(e.Innings2),
	}
}

func mapBowlingLines(items []bowlingLinePayload) []livematch.BowlingLine {
	out := make([]livematch.BowlingLine, 0, len(items))
	for _, item := range items {
		out = append(out, livematch.BowlingLine{
			PlayerName: item.PlayerName,
			Overs:      item.Overs,
			RunsGiven:  item.RunsGiven,
			Wickets:    item.Wickets,
		})
	}
	return out
}

func (p matchPayload) toDomain() match.Match {
	return match.Match{
		ID:        string(p.MID),
		Team1:     strings.TrimSpace(p.Team1),
		Team2:     strings.TrimSpace(p.Team2),
		MatchDate: parseMatchDate(p.MatchDate),
		Stadium:   strings.TrimSpace(p.Stadium),
		Status:    match.NormalizeStatus(p.Status),
	}
}

func (p resultPayload) toDomain(matchID string) match.Result {
	id := string(p.MID)
	if id == "" {
		id = matchID
	}
	return match.Result{
		MatchID:              id,
		TossWinnerName:       p.TossWinnerName,
		TossDecision:         p.TossDecision,
		MatchWinner:          p.MatchWinner,
		FirstInningsRuns:     p.RunsScoredInFirstInnings,
		FirstInningsWickets:  p.WicketsInFirstInnings,
		SecondInningsRuns:    p.RunsScoredInSecondInnings,
		SecondInningsWickets: p.WicketsInSecondInnings,
	}
}

func parseMatchDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000-07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}
