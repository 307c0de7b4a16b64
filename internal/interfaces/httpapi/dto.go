package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/match"
	"github.com/riskibarqy/cricket-live/internal/usecase"
)

type healthDTO struct {
	Status         string `json:"status"`
	WatchedMatches int    `json:"watched_matches"`
}

type matchDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Team1     string     `json:"team1"`
	Team2     string     `json:"team2"`
	MatchDate *time.Time `json:"match_date,omitempty"`
	Stadium   string     `json:"stadium,omitempty"`
	Status    string     `json:"status"`
}

type matchResultDTO struct {
	MatchID              string `json:"match_id"`
	TossWinnerName       string `json:"toss_winner_name"`
	TossDecision         string `json:"toss_decision"`
	MatchWinner          string `json:"match_winner"`
	FirstInningsRuns     int    `json:"first_innings_runs"`
	FirstInningsWickets  int    `json:"first_innings_wickets"`
	SecondInningsRuns    int    `json:"second_innings_runs"`
	SecondInningsWickets int    `json:"second_innings_wickets"`
}

type liveScoreDTO struct {
	MatchID   string         `json:"match_id"`
	Version   uint64         `json:"version"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	Innings   []scoreViewDTO `json:"innings"`
}

type batsmanDTO struct {
	Name  string `json:"name"`
	Runs  int    `json:"runs"`
	Balls int    `json:"balls"`
}

type overSlotDTO struct {
	BallNumber int    `json:"ball_number"`
	Display    string `json:"display"`
	Recorded   bool   `json:"recorded"`
}

type overDTO struct {
	OverNumber int           `json:"over_number"`
	Label      int           `json:"label"`
	Slots      []overSlotDTO `json:"slots"`
}

type scoreViewDTO struct {
	Innings         int        `json:"innings"`
	BattingTeamName string     `json:"batting_team_name"`
	BowlingTeamName string     `json:"bowling_team_name"`
	Striker         batsmanDTO `json:"striker"`
	NonStriker      batsmanDTO `json:"non_striker"`
	Score           string     `json:"score"`
	Total           int        `json:"total"`
	Wickets         int        `json:"wickets"`
	Over            string     `json:"over"`
	Bowler          string     `json:"bowler"`
	Overs           []overDTO  `json:"overs"`
	Lines           []string   `json:"lines"`
}

type scorecardDTO struct {
	MatchID string          `json:"match_id"`
	Innings int             `json:"innings"`
	Batting []battingRowDTO `json:"batting"`
	Bowling []bowlingRowDTO `json:"bowling"`
}

type battingRowDTO struct {
	PlayerName string  `json:"player_name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
}

type bowlingRowDTO struct {
	PlayerName string  `json:"player_name"`
	Overs      float64 `json:"overs"`
	RunsGiven  int     `json:"runs_given"`
	Wickets    int     `json:"wickets"`
	Economy    float64 `json:"economy"`
}

type streamMessageDTO struct {
	Type         string       `json:"type"`
	SubscriberID string       `json:"subscriber_id"`
	Data         liveScoreDTO `json:"data"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ID,
		Title:     m.Title(),
		Team1:     m.Team1,
		Team2:     m.Team2,
		MatchDate: m.MatchDate,
		Stadium:   m.Stadium,
		Status:    m.Status,
	}
}

func matchResultToDTO(r match.Result) matchResultDTO {
	return matchResultDTO{
		MatchID:              r.MatchID,
		TossWinnerName:       r.TossWinnerName,
		TossDecision:         r.TossDecision,
		MatchWinner:          r.MatchWinner,
		FirstInningsRuns:     r.FirstInningsRuns,
		FirstInningsWickets:  r.FirstInningsWickets,
		SecondInningsRuns:    r.SecondInningsRuns,
		SecondInningsWickets: r.SecondInningsWickets,
	}
}

func liveScoreToDTO(score usecase.LiveScore) liveScoreDTO {
	out := liveScoreDTO{
		MatchID: score.MatchID.String(),
		Version: score.Version,
		Innings: make([]scoreViewDTO, 0, len(score.Innings)),
	}
	if !score.UpdatedAt.IsZero() {
		updatedAt := score.UpdatedAt.UTC()
		out.UpdatedAt = &updatedAt
	}
	for _, view := range score.Innings {
		out.Innings = append(out.Innings, scoreViewToDTO(view))
	}
	return out
}

func scoreViewToDTO(v livematch.ScoreView) scoreViewDTO {
	overs := make([]overDTO, 0, len(v.Overs))
	for _, over := range v.Overs {
		slots := make([]overSlotDTO, 0, len(over.Slots))
		for _, slot := range over.Slots {
			slots = append(slots, overSlotDTO{BallNumber: slot.BallNumber, Display: slot.Display, Recorded: slot.Recorded})
		}
		overs = append(overs, overDTO{OverNumber: over.OverNumber, Label: over.Label, Slots: slots})
	}

	return scoreViewDTO{
		Innings:         int(v.Innings),
		BattingTeamName: v.BattingTeamName,
		BowlingTeamName: v.BowlingTeamName,
		Striker:         batsmanDTO{Name: v.Striker.Name, Runs: v.Striker.Runs, Balls: v.Striker.Balls},
		NonStriker:      batsmanDTO{Name: v.NonStriker.Name, Runs: v.NonStriker.Runs, Balls: v.NonStriker.Balls},
		Score:           v.ScoreText(),
		Total:           v.Total,
		Wickets:         v.Wickets,
		Over:            v.OverText(),
		Bowler:          v.Bowler,
		Overs:           overs,
		Lines:           v.Lines(),
	}
}

func scorecardToDTO(matchID livematch.MatchID, card livematch.Scorecard) scorecardDTO {
	out := scorecardDTO{
		MatchID: matchID.String(),
		Innings: int(card.Innings),
		Batting: make([]battingRowDTO, 0, len(card.Batting)),
		Bowling: make([]bowlingRowDTO, 0, len(card.Bowling)),
	}
	for _, row := range card.Batting {
		out.Batting = append(out.Batting, battingRowDTO{
			PlayerName: row.PlayerName,
			Runs:       row.Runs,
			Balls:      row.Balls,
			Fours:      row.Fours,
			Sixes:      row.Sixes,
			StrikeRate: row.StrikeRate,
		})
	}
	for _, row := range card.Bowling {
		out.Bowling = append(out.Bowling, bowlingRowDTO{
			PlayerName: row.PlayerName,
			Overs:      row.Overs,
			RunsGiven:  row.RunsGiven,
			Wickets:    row.Wickets,
			Economy:    row.Economy,
		})
	}
	return out
}
