package scoring

import "strconv"

const (
	rallySetTarget         = 15
	rallyTiebreakSetTarget = 11 // решающий третий сет при счёте 1-1
	rallyLeadToWinSet      = 2
)

// RacquetballEngine scores rally-point racquetball: every rally won awards a
// point regardless of who served. A set ends at the target (15, or 11 in the
// deciding set when the match is tied 1-1) with a lead of at least two;
// best-of-3 sets to the match.
type RacquetballEngine struct{}

// ApplyPoint applies one point-won event and returns the next snapshot.
func (RacquetballEngine) ApplyPoint(state ScoreState, pointWinner Side) (ScoreState, error) {
	if !pointWinner.Valid() {
		return state, ErrInvalidSide
	}
	if state.MatchWinner != "" {
		return state, ErrMatchFinished
	}

	winnerPoints, err := rallyPoints(state.score(pointWinner), scoreField(pointWinner))
	if err != nil {
		return state, err
	}
	opponent := pointWinner.Opponent()
	opponentPoints, err := rallyPoints(state.score(opponent), scoreField(opponent))
	if err != nil {
		return state, err
	}

	next := state.clearWinners()
	winnerPoints++
	next = next.withScore(pointWinner, PointValue(strconv.Itoa(winnerPoints)))

	target := rallyTargetFor(next.Player1Sets, next.Player2Sets)
	if winnerPoints >= target && winnerPoints-opponentPoints >= rallyLeadToWinSet {
		next = winRallySet(next, pointWinner)
	}
	return next, nil
}

// rallyTargetFor возвращает целевой счёт сета: 11 в решающем третьем сете,
// иначе 15.
func rallyTargetFor(player1Sets, player2Sets int) int {
	if player1Sets == 1 && player2Sets == 1 {
		return rallyTiebreakSetTarget
	}
	return rallySetTarget
}

func winRallySet(state ScoreState, winner Side) ScoreState {
	next := state
	next.Player1Score = PointLove
	next.Player2Score = PointLove
	if winner == SidePlayer1 {
		next.Player1Sets++
	} else {
		next.Player2Sets++
	}
	next.CurrentSet++
	next.SetWinner = winner

	if next.sets(winner) >= setsToWinMatch {
		next.MatchWinner = winner
	}
	return next
}

// rallyPoints парсит числовой маркер счёта. Нечисловое или отрицательное
// значение означает повреждённый снимок: отклоняем, а не обнуляем.
func rallyPoints(v PointValue, field string) (int, error) {
	n, err := strconv.Atoi(string(v))
	if err != nil || n < 0 {
		return 0, &CorruptStateError{Field: field, Value: string(v)}
	}
	return n, nil
}

func scoreField(side Side) string {
	if side == SidePlayer1 {
		return "player1_score"
	}
	return "player2_score"
}
