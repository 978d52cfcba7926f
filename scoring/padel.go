package scoring

const (
	setsToWinMatch   = 2
	gamesToWinSet    = 6
	gameLeadToWinSet = 2
)

// PadelEngine scores a classic padel game: the 0/15/30/40 ladder with
// deuce/advantage play, games to sets, best-of-3 sets to the match.
//
// A set is won at 6 or more games with a lead of at least two. There is no
// 7-game cap and no tiebreak game: at 6-6 the set runs on until one side is
// two games ahead (8-6, 9-7, ...). Это зафиксированное поведение исходных
// правил турниров; возможный пробел в регламенте, поднят перед организаторами.
type PadelEngine struct{}

// ApplyPoint applies one point-won event and returns the next snapshot.
// The input snapshot is never modified.
func (PadelEngine) ApplyPoint(state ScoreState, pointWinner Side) (ScoreState, error) {
	if !pointWinner.Valid() {
		return state, ErrInvalidSide
	}
	if state.MatchWinner != "" {
		return state, ErrMatchFinished
	}
	if err := validatePadelMarkers(state); err != nil {
		return state, err
	}

	next := state.clearWinners()
	opponent := pointWinner.Opponent()

	// Порядок проверок важен: сначала преимущество соперника, иначе
	// "unset" маркер победителя попадёт в общую лесенку.
	switch {
	case next.score(opponent) == PointAdvantage:
		// Соперник имел преимущество, возвращаемся к ровно (40-40).
		next = next.withScore(pointWinner, PointForty).withScore(opponent, PointForty)
		return next, nil

	case next.score(pointWinner) == PointAdvantage:
		return winPadelGame(next, pointWinner), nil

	case next.score(pointWinner) == PointForty:
		if next.score(opponent) == PointForty {
			// Deuce: победитель получает преимущество, маркер соперника
			// снимается до развязки.
			next = next.withScore(pointWinner, PointAdvantage).withScore(opponent, PointNone)
			return next, nil
		}
		return winPadelGame(next, pointWinner), nil

	default:
		next = next.withScore(pointWinner, nextLadderPoint(next.score(pointWinner)))
		return next, nil
	}
}

func nextLadderPoint(p PointValue) PointValue {
	switch p {
	case PointLove:
		return PointFifteen
	case PointFifteen:
		return PointThirty
	default:
		return PointForty
	}
}

func winPadelGame(state ScoreState, winner Side) ScoreState {
	next := state
	next.Player1Score = PointLove
	next.Player2Score = PointLove
	if winner == SidePlayer1 {
		next.Player1Games++
	} else {
		next.Player2Games++
	}
	next.GameWinner = winner

	if next.games(winner) >= gamesToWinSet && next.games(winner)-next.games(winner.Opponent()) >= gameLeadToWinSet {
		next = winPadelSet(next, winner)
	}
	return next
}

func winPadelSet(state ScoreState, winner Side) ScoreState {
	next := state
	next.Player1Games = 0
	next.Player2Games = 0
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

func validatePadelMarkers(state ScoreState) error {
	if !state.Player1Score.ladderValid() {
		return &CorruptStateError{Field: "player1_score", Value: string(state.Player1Score)}
	}
	if !state.Player2Score.ladderValid() {
		return &CorruptStateError{Field: "player2_score", Value: string(state.Player2Score)}
	}
	// PointNone существует только напротив преимущества.
	if state.Player1Score == PointNone && state.Player2Score != PointAdvantage {
		return &CorruptStateError{Field: "player1_score", Value: string(state.Player1Score)}
	}
	if state.Player2Score == PointNone && state.Player1Score != PointAdvantage {
		return &CorruptStateError{Field: "player2_score", Value: string(state.Player2Score)}
	}
	return nil
}
