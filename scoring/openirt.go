package scoring

import "strconv"

// OpenIRTEngine scores the Open IRT (server-rotation) ruleset: only the side
// holding serve can score. A rally won by the receiver never awards a point:
// it transfers serve to the winner and flags the transition with
// ServerChanged. For the serving side the target/margin rules match
// RacquetballEngine: 15 per set, 11 in the deciding set, lead of two.
type OpenIRTEngine struct{}

// ApplyPoint applies one rally-won event and returns the next snapshot.
// pointWinner разрешается в стабильный идентификатор игрока и сравнивается
// с текущим подающим.
func (OpenIRTEngine) ApplyPoint(state OpenIRTScoreState, pointWinner Side) (OpenIRTScoreState, error) {
	if !pointWinner.Valid() {
		return state, ErrInvalidSide
	}
	if state.MatchWinner != "" {
		return state, ErrMatchFinished
	}
	if err := validateOpenIRTState(state); err != nil {
		return state, err
	}

	next := state
	next.SetWinner = ""
	next.MatchWinner = ""
	next.ServerChanged = false

	winnerID := next.playerID(pointWinner)
	if winnerID != next.ServerID {
		// Принимающий выиграл розыгрыш: счёт не меняется, переходит подача.
		next.ServerID = winnerID
		next.ServerChanged = true
		return next, nil
	}

	if pointWinner == SidePlayer1 {
		next.Player1Score++
	} else {
		next.Player2Score++
	}

	target := rallyTargetFor(next.Player1Sets, next.Player2Sets)
	if next.points(pointWinner) >= target && next.points(pointWinner)-next.points(pointWinner.Opponent()) >= rallyLeadToWinSet {
		next = winOpenIRTSet(next, pointWinner)
	}
	return next, nil
}

func winOpenIRTSet(state OpenIRTScoreState, winner Side) OpenIRTScoreState {
	next := state
	next.Player1Score = 0
	next.Player2Score = 0
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

func validateOpenIRTState(state OpenIRTScoreState) error {
	if state.Player1Score < 0 {
		return &CorruptStateError{Field: "player1_score", Value: strconv.Itoa(state.Player1Score)}
	}
	if state.Player2Score < 0 {
		return &CorruptStateError{Field: "player2_score", Value: strconv.Itoa(state.Player2Score)}
	}
	if state.ServerID != state.Player1ID && state.ServerID != state.Player2ID {
		return &CorruptStateError{Field: "server_id", Value: strconv.Itoa(state.ServerID)}
	}
	return nil
}
