package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	irtPlayer1ID = 101
	irtPlayer2ID = 202
)

func TestOpenIRTServerRotation(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer1ID)

	// Принимающий выигрывает розыгрыш: очков нет, подача переходит.
	state, err := engine.ApplyPoint(state, SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Player1Score)
	assert.Equal(t, 0, state.Player2Score)
	assert.Equal(t, irtPlayer2ID, state.ServerID)
	assert.True(t, state.ServerChanged)

	// Теперь подаёт второй игрок, его выигрыш приносит очко.
	state, err = engine.ApplyPoint(state, SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Player2Score)
	assert.Equal(t, irtPlayer2ID, state.ServerID)
	assert.False(t, state.ServerChanged)
}

func TestOpenIRTReceiverNeverScores(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer2ID)
	state.Player1Score = 14
	state.Player2Score = 3

	// Даже на сетболе выигрыш розыгрыша без подачи не закрывает сет.
	state, err := engine.ApplyPoint(state, SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 14, state.Player1Score)
	assert.True(t, state.ServerChanged)
	assert.Empty(t, state.SetWinner)

	// Со своей подачи закрывает.
	state, err = engine.ApplyPoint(state, SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Player1Sets)
	assert.Equal(t, 0, state.Player1Score)
	assert.Equal(t, 0, state.Player2Score)
	assert.Equal(t, 2, state.CurrentSet)
	assert.Equal(t, SidePlayer1, state.SetWinner)
	assert.False(t, state.ServerChanged)
}

func TestOpenIRTTiebreakTarget(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer2ID)
	state.Player1Sets = 1
	state.Player2Sets = 1
	state.CurrentSet = 3
	state.Player1Score = 8
	state.Player2Score = 10

	state, err := engine.ApplyPoint(state, SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Player2Sets)
	assert.Equal(t, SidePlayer2, state.SetWinner)
	assert.Equal(t, SidePlayer2, state.MatchWinner)
}

func TestOpenIRTMatchTermination(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer1ID)
	state.MatchWinner = SidePlayer1

	after, err := engine.ApplyPoint(state, SidePlayer2)
	assert.ErrorIs(t, err, ErrMatchFinished)
	assert.Equal(t, state, after)
}

func TestOpenIRTSetWinnerClearedOnNextRally(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer1ID)
	state.Player1Score = 14

	state, err := engine.ApplyPoint(state, SidePlayer1)
	require.NoError(t, err)
	require.Equal(t, SidePlayer1, state.SetWinner)

	state, err = engine.ApplyPoint(state, SidePlayer2)
	require.NoError(t, err)
	assert.Empty(t, state.SetWinner)
	assert.True(t, state.ServerChanged)
}

func TestOpenIRTCorruptServerRejected(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, 999)

	_, err := engine.ApplyPoint(state, SidePlayer1)
	var corrupt *CorruptStateError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "server_id", corrupt.Field)
}

func TestOpenIRTNegativeScoreRejected(t *testing.T) {
	engine := OpenIRTEngine{}
	state := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer1ID)
	state.Player2Score = -2

	_, err := engine.ApplyPoint(state, SidePlayer1)
	var corrupt *CorruptStateError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "player2_score", corrupt.Field)
}

func TestOpenIRTImmutableInput(t *testing.T) {
	engine := OpenIRTEngine{}
	original := NewOpenIRTScoreState(irtPlayer1ID, irtPlayer2ID, irtPlayer1ID)
	original.Player1Score = 7
	retained := original

	_, err := engine.ApplyPoint(original, SidePlayer2)
	require.NoError(t, err)
	assert.Equal(t, retained, original)
}
