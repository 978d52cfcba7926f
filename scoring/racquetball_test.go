package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rallyState(p1, p2 string, p1Sets, p2Sets, currentSet int) ScoreState {
	return ScoreState{
		Player1Score: PointValue(p1),
		Player2Score: PointValue(p2),
		Player1Sets:  p1Sets,
		Player2Sets:  p2Sets,
		CurrentSet:   currentSet,
	}
}

func TestRacquetballPointIncrement(t *testing.T) {
	engine := RacquetballEngine{}

	state, err := engine.ApplyPoint(NewScoreState(), SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, PointValue("0"), state.Player1Score)
	assert.Equal(t, PointValue("1"), state.Player2Score)
	assert.Empty(t, state.SetWinner)
}

func TestRacquetballSetAtFifteen(t *testing.T) {
	engine := RacquetballEngine{}

	state, err := engine.ApplyPoint(rallyState("14", "9", 0, 0, 1), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Player1Sets)
	assert.Equal(t, PointValue("0"), state.Player1Score)
	assert.Equal(t, PointValue("0"), state.Player2Score)
	assert.Equal(t, 2, state.CurrentSet)
	assert.Equal(t, SidePlayer1, state.SetWinner)
	assert.Empty(t, state.MatchWinner)
}

func TestRacquetballMarginRule(t *testing.T) {
	engine := RacquetballEngine{}

	// При 15-14 перевеса в два очка нет, сет продолжается.
	state, err := engine.ApplyPoint(rallyState("14", "14", 0, 0, 1), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, PointValue("15"), state.Player1Score)
	assert.Empty(t, state.SetWinner)

	// 16-14 закрывает сет.
	state, err = engine.ApplyPoint(state, SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Player1Sets)
	assert.Equal(t, SidePlayer1, state.SetWinner)
}

func TestRacquetballTiebreakTargetSwitch(t *testing.T) {
	engine := RacquetballEngine{}

	// При счёте 1-1 по сетам цель падает до 11: ровно 11 при перевесе в два
	// очка завершает сет, ждать 15 не нужно.
	state, err := engine.ApplyPoint(rallyState("10", "9", 1, 1, 3), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Player1Sets)
	assert.Equal(t, SidePlayer1, state.SetWinner)
	assert.Equal(t, SidePlayer1, state.MatchWinner)
}

func TestRacquetballTargetStaysFifteenOutsideDecider(t *testing.T) {
	engine := RacquetballEngine{}

	// 1-0 по сетам не решающий сет, 11 очков ничего не закрывают.
	state, err := engine.ApplyPoint(rallyState("10", "5", 1, 0, 2), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, PointValue("11"), state.Player1Score)
	assert.Empty(t, state.SetWinner)
}

func TestRacquetballMatchTermination(t *testing.T) {
	engine := RacquetballEngine{}

	state, err := engine.ApplyPoint(rallyState("14", "3", 1, 0, 2), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Player1Sets)
	assert.Equal(t, SidePlayer1, state.MatchWinner)

	after, err := engine.ApplyPoint(state, SidePlayer1)
	assert.ErrorIs(t, err, ErrMatchFinished)
	assert.Equal(t, state, after)
}

func TestRacquetballCorruptScoreRejected(t *testing.T) {
	engine := RacquetballEngine{}

	for _, bad := range []string{"forty", "", "-1", "AD"} {
		_, err := engine.ApplyPoint(rallyState(bad, "3", 0, 0, 1), SidePlayer1)
		var corrupt *CorruptStateError
		require.True(t, errors.As(err, &corrupt), "score %q must be rejected", bad)
		assert.Equal(t, "player1_score", corrupt.Field)
	}
}

func TestRacquetballImmutableInput(t *testing.T) {
	engine := RacquetballEngine{}
	original := rallyState("7", "7", 0, 1, 2)
	retained := original

	_, err := engine.ApplyPoint(original, SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, retained, original)
}
