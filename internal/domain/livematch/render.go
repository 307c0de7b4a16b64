package livematch

import (
	"fmt"
	"strconv"
	"strings"
)

// Lines renders the score view as plain text, one scoreboard row per line.
func (v ScoreView) Lines() []string {
	lines := make([]string, 0, 6+len(v.Overs))
	if v.BattingTeamName != "" {
		lines = append(lines, v.BattingTeamName)
	}
	lines = append(lines,
		fmt.Sprintf("%s* %d (%d)", v.Striker.Name, v.Striker.Runs, v.Striker.Balls),
		fmt.Sprintf("%s %d (%d)", v.NonStriker.Name, v.NonStriker.Runs, v.NonStriker.Balls),
		"Score: "+v.ScoreText(),
		"Over: "+v.OverText(),
		"Bowler: "+v.Bowler,
	)
	for _, over := range v.Overs {
		lines = append(lines, over.String())
	}
	return lines
}

func (v ScoreView) String() string {
	return strings.Join(v.Lines(), "\n")
}

func (o OverSummary) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(o.Label))
	b.WriteString(":")
	for _, slot := range o.Slots {
		b.WriteString(" ")
		b.WriteString(slot.Display)
	}
	return b.String()
}

// Lines renders the scorecard as two fixed-width tables.
func (s Scorecard) Lines() []string {
	lines := make([]string, 0, 4+len(s.Batting)+len(s.Bowling))
	lines = append(lines,
		fmt.Sprintf("Batting - Innings %d", s.Innings),
		fmt.Sprintf("%-20s %5s %5s %5s %5s %8s", "Batsman", "Runs", "Balls", "Fours", "Sixes", "SR"),
	)
	for _, row := range s.Batting {
		lines = append(lines, fmt.Sprintf("%-20s %5d %5d %5d %5d %8.2f",
			row.PlayerName, row.Runs, row.Balls, row.Fours, row.Sixes, row.StrikeRate))
	}
	lines = append(lines,
		fmt.Sprintf("Bowling - Innings %d", s.Innings),
		fmt.Sprintf("%-20s %5s %5s %5s %8s", "Bowler", "Overs", "Runs", "Wkts", "Econ"),
	)
	for _, row := range s.Bowling {
		lines = append(lines, fmt.Sprintf("%-20s %5s %5d %5d %8.2f",
			row.PlayerName, strconv.FormatFloat(row.Overs, 'f', -1, 64), row.RunsGiven, row.Wickets, row.Economy))
	}
	return lines
}
