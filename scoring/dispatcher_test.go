package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEngine(t *testing.T) {
	engine, err := SelectEngine(SportPadel)
	require.NoError(t, err)
	assert.IsType(t, PadelEngine{}, engine)

	engine, err = SelectEngine(SportRacquetball)
	require.NoError(t, err)
	assert.IsType(t, RacquetballEngine{}, engine)
}

func TestSelectEngineUnknownSport(t *testing.T) {
	_, err := SelectEngine(Sport("chess"))
	var invalid *InvalidSportError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, Sport("chess"), invalid.Sport)
}

func TestSelectEngineOpenIRTNotRouted(t *testing.T) {
	// Open IRT uses a different snapshot shape and is invoked explicitly,
	// never through the generic dispatcher.
	_, err := SelectEngine(SportOpenIRT)
	var invalid *InvalidSportError
	assert.True(t, errors.As(err, &invalid))
}

func TestCalculateScoreRoutesBySport(t *testing.T) {
	// Padel interprets the marker as a ladder position.
	state, err := CalculateScore(SportPadel, NewScoreState(), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, PointFifteen, state.Player1Score)

	// Racquetball interprets the same marker numerically.
	state, err = CalculateScore(SportRacquetball, NewScoreState(), SidePlayer1)
	require.NoError(t, err)
	assert.Equal(t, PointValue("1"), state.Player1Score)
}

func TestCalculateScoreUnknownSportKeepsState(t *testing.T) {
	initial := NewScoreState()
	state, err := CalculateScore(Sport("squash"), initial, SidePlayer1)
	require.Error(t, err)
	assert.Equal(t, initial, state)
}
