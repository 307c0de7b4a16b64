package livematch

import (
	"math"
	"sort"
	"strconv"
)

const ballsPerOver = 6

// overSlotOrder is the fixed slot layout of the over strip. It is not chronological.
var overSlotOrder = [...]int{6, 4, 3, 2, 1}

const emptySlot = "-"

type BatsmanScore struct {
	Name  string
	Runs  int
	Balls int
}

type OverSlot struct {
	BallNumber int
	Display    string
	Recorded   bool
}

// OverSummary is one over of the over strip. Label is the one-based over shown to viewers.
type OverSummary struct {
	OverNumber int
	Label      int
	Slots      []OverSlot
}

// ScoreView is the "current score" projection of one innings.
type ScoreView struct {
	Innings         Innings
	BattingTeamName string
	BowlingTeamName string
	Striker         BatsmanScore
	NonStriker      BatsmanScore
	Total           int
	Wickets         int
	Over            int
	BallInOver      int
	Bowler          string
	Overs           []OverSummary
}

func (v ScoreView) ScoreText() string {
	return strconv.Itoa(v.Total) + "/" + strconv.Itoa(v.Wickets)
}

func (v ScoreView) OverText() string {
	return strconv.Itoa(v.Over) + "." + strconv.Itoa(v.BallInOver)
}

// CurrentScore projects one innings. It reports false when the innings has no balls yet.
func CurrentScore(innings Innings, snapshot InningsSnapshot, batting []BattingLine) (ScoreView, bool) {
	latest, ok := snapshot.LatestBall()
	if !ok {
		return ScoreView{}, false
	}

	over, ballInOver := DisplayOver(latest)
	return ScoreView{
		Innings:         innings,
		BattingTeamName: snapshot.BattingTeamName,
		BowlingTeamName: snapshot.BowlingTeamName,
		Striker:         batsmanScore(latest.Batsman1, batting),
		NonStriker:      batsmanScore(latest.Batsman2, batting),
		Total:           latest.Total,
		Wickets:         latest.WicketNumber,
		Over:            over,
		BallInOver:      ballInOver,
		Bowler:          latest.Bowler,
		Overs:           OverStrip(snapshot.BallByBall),
	}, true
}

// CurrentScores projects both innings of a board, skipping innings without balls.
func CurrentScores(board Board) []ScoreView {
	out := make([]ScoreView, 0, 2)
	for _, innings := range []Innings{FirstInnings, SecondInnings} {
		view, ok := CurrentScore(innings, board.Innings(innings), board.BattingLines(innings))
		if ok {
			out = append(out, view)
		}
	}
	return out
}

// DisplayOver converts a ball to the over notation shown on the scoreboard.
// The sixth ball of an over completes it, so it reads as the next over with zero balls.
func DisplayOver(ball BallEvent) (int, int) {
	if ball.BallNumber == ballsPerOver {
		return ball.OverNumber + 1, 0
	}
	return ball.OverNumber, ball.BallNumber
}

// OverStrip groups balls by over, most recent over first.
func OverStrip(balls []BallEvent) []OverSummary {
	byOver := make(map[int][]BallEvent, len(balls)/ballsPerOver+1)
	overNumbers := make([]int, 0, len(balls)/ballsPerOver+1)
	for _, ball := range balls {
		if _, seen := byOver[ball.OverNumber]; !seen {
			overNumbers = append(overNumbers, ball.OverNumber)
		}
		byOver[ball.OverNumber] = append(byOver[ball.OverNumber], ball)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(overNumbers)))

	out := make([]OverSummary, 0, len(overNumbers))
	for _, overNumber := range overNumbers {
		overBalls := byOver[overNumber]
		slots := make([]OverSlot, 0, len(overSlotOrder))
		for _, ballNumber := range overSlotOrder {
			slot := OverSlot{BallNumber: ballNumber, Display: emptySlot}
			if ball, ok := findBall(overBalls, ballNumber); ok {
				slot.Display = BallDisplay(ball)
				slot.Recorded = true
			}
			slots = append(slots, slot)
		}
		out = append(out, OverSummary{
			OverNumber: overNumber,
			Label:      overNumber + 1,
			Slots:      slots,
		})
	}
	return out
}

// BallDisplay is the single token shown for a recorded ball.
func BallDisplay(ball BallEvent) string {
	if ball.Wicket {
		return "W"
	}
	if ball.Extra != "" {
		for _, r := range ball.Extra {
			return string(r)
		}
	}
	return strconv.Itoa(ball.RunsScored)
}

func findBall(balls []BallEvent, ballNumber int) (BallEvent, bool) {
	for _, ball := range balls {
		if ball.BallNumber == ballNumber {
			return ball, true
		}
	}
	return BallEvent{}, false
}

func batsmanScore(name string, batting []BattingLine) BatsmanScore {
	out := BatsmanScore{Name: name}
	for _, line := range batting {
		if line.PlayerName == name {
			out.Runs = line.RunsScored
			out.Balls = line.BallsFaced
			break
		}
	}
	return out
}

type BattingRow struct {
	PlayerName string
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	StrikeRate float64
}

type BowlingRow struct {
	PlayerName string
	Overs      float64
	RunsGiven  int
	Wickets    int
	Economy    float64
}

// Scorecard is the per-innings batting and bowling breakdown.
type Scorecard struct {
	Innings Innings
	Batting []BattingRow
	Bowling []BowlingRow
}

func BuildScorecard(board Board, innings Innings) Scorecard {
	batting := board.BattingLines(innings)
	bowling := board.BowlingLines(innings)

	out := Scorecard{
		Innings: innings,
		Batting: make([]BattingRow, 0, len(batting)),
		Bowling: make([]BowlingRow, 0, len(bowling)),
	}
	for _, line := range batting {
		out.Batting = append(out.Batting, BattingRowOf(line))
	}
	for _, line := range bowling {
		out.Bowling = append(out.Bowling, BowlingRowOf(line))
	}
	return out
}

// BattingRowOf applies the scorecard defaults: an unset balls faced counts as one ball.
func BattingRowOf(line BattingLine) BattingRow {
	balls := line.BallsFaced
	if balls == 0 {
		balls = 1
	}
	return BattingRow{
		PlayerName: line.PlayerName,
		Runs:       line.RunsScored,
		Balls:      balls,
		Fours:      line.Fours,
		Sixes:      line.Sixes,
		StrikeRate: round2(float64(line.RunsScored) / float64(balls) * 100),
	}
}

// BowlingRowOf applies the scorecard defaults: an unset overs value counts as one over.
func BowlingRowOf(line BowlingLine) BowlingRow {
	overs := line.Overs
	if overs == 0 {
		overs = 1
	}
	return BowlingRow{
		PlayerName: line.PlayerName,
		Overs:      overs,
		RunsGiven:  line.RunsGiven,
		Wickets:    line.Wickets,
		Economy:    round2(float64(line.RunsGiven) / overs),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
