package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/racket-tournament-system/live"
	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/repositories"
	"github.com/Dosada05/racket-tournament-system/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	match.ID = len(r.matches) + 1
	stored := *match
	r.matches[match.ID] = &stored
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) ListBySport(_ context.Context, sportID int, status *models.MatchStatus) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.SportID != sportID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		copied := *m
		matches = append(matches, &copied)
	}
	return matches, nil
}

func (r *fakeMatchRepo) UpdateScore(_ context.Context, _ repositories.SQLExecutor, id int, score *string, serverID *int, status models.MatchStatus, winnerID *int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Score = score
	match.ServerID = serverID
	match.Status = status
	match.WinnerID = winnerID
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeSportRepo struct {
	sports map[int]*models.Sport
}

func newFakeSportRepo(sports ...*models.Sport) *fakeSportRepo {
	repo := &fakeSportRepo{sports: make(map[int]*models.Sport)}
	for _, s := range sports {
		repo.sports[s.ID] = s
	}
	return repo
}

func (r *fakeSportRepo) Create(_ context.Context, sport *models.Sport) error {
	sport.ID = len(r.sports) + 1
	stored := *sport
	r.sports[sport.ID] = &stored
	return nil
}

func (r *fakeSportRepo) GetByID(_ context.Context, id int) (*models.Sport, error) {
	sport, ok := r.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (r *fakeSportRepo) GetAll(_ context.Context) ([]models.Sport, error) {
	sports := make([]models.Sport, 0, len(r.sports))
	for _, s := range r.sports {
		sports = append(sports, *s)
	}
	return sports, nil
}

func (r *fakeSportRepo) Update(_ context.Context, sport *models.Sport) error {
	if _, ok := r.sports[sport.ID]; !ok {
		return repositories.ErrSportNotFound
	}
	stored := *sport
	r.sports[sport.ID] = &stored
	return nil
}

func (r *fakeSportRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	sport, ok := r.sports[id]
	if !ok {
		return repositories.ErrSportNotFound
	}
	sport.LogoKey = logoKey
	return nil
}

func (r *fakeSportRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.sports[id]; !ok {
		return repositories.ErrSportNotFound
	}
	delete(r.sports, id)
	return nil
}

func testHub() *live.Hub {
	return live.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func marshalState(t *testing.T, state interface{}) *string {
	t.Helper()
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	s := string(raw)
	return &s
}

func padelFixture(t *testing.T) (*fakeMatchRepo, *fakeSportRepo, ScoreService) {
	t.Helper()
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Padel", Rules: scoring.SportPadel})
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:      1,
		SportID: 1,
		P1ID:    10,
		P2ID:    20,
		Score:   marshalState(t, scoring.NewScoreState()),
		Status:  models.StatusScheduled,
	})
	return matchRepo, sportRepo, NewScoreService(nil, matchRepo, sportRepo, testHub())
}

func TestSubmitPointAppliesPadelPoint(t *testing.T) {
	matchRepo, _, svc := padelFixture(t)

	result, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	require.NoError(t, err)
	assert.False(t, result.Finished)
	assert.Equal(t, models.StatusInProgress, result.Match.Status)

	var state scoring.ScoreState
	require.NoError(t, json.Unmarshal(result.Score, &state))
	assert.Equal(t, scoring.PointFifteen, state.Player1Score)

	// Снимок записан в хранилище
	stored, err := matchRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.JSONEq(t, string(result.Score), *stored.Score)
}

func TestSubmitPointFinishesMatch(t *testing.T) {
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Racquetball", Rules: scoring.SportRacquetball})
	state := scoring.NewScoreState()
	state.Player1Score = "14"
	state.Player2Score = "3"
	state.Player1Sets = 1
	state.CurrentSet = 2
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:      1,
		SportID: 1,
		P1ID:    10,
		P2ID:    20,
		Score:   marshalState(t, state),
		Status:  models.StatusInProgress,
	})
	svc := NewScoreService(nil, matchRepo, sportRepo, testHub())

	result, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	require.NoError(t, err)
	assert.True(t, result.Finished)
	assert.Equal(t, models.MatchStatusCompleted, result.Match.Status)
	require.NotNil(t, result.Match.WinnerID)
	assert.Equal(t, 10, *result.Match.WinnerID)

	// Следующее очко в завершённый матч не проходит.
	_, err = svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer2})
	assert.ErrorIs(t, err, ErrMatchAlreadyFinished)
}

func TestSubmitPointOpenIRTTransfersServe(t *testing.T) {
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Open IRT", Rules: scoring.SportOpenIRT})
	serverID := 10
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:       1,
		SportID:  1,
		P1ID:     10,
		P2ID:     20,
		Score:    marshalState(t, scoring.NewOpenIRTScoreState(10, 20, 10)),
		ServerID: &serverID,
		Status:   models.StatusInProgress,
	})
	svc := NewScoreService(nil, matchRepo, sportRepo, testHub())

	result, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer2})
	require.NoError(t, err)

	var state scoring.OpenIRTScoreState
	require.NoError(t, json.Unmarshal(result.Score, &state))
	assert.Equal(t, 0, state.Player2Score)
	assert.Equal(t, 20, state.ServerID)
	assert.True(t, state.ServerChanged)
	require.NotNil(t, result.Match.ServerID)
	assert.Equal(t, 20, *result.Match.ServerID)
}

func TestSubmitPointRejectsInvalidWinner(t *testing.T) {
	_, _, svc := padelFixture(t)

	_, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: "player3"})
	assert.ErrorIs(t, err, ErrInvalidPointWinner)
}

func TestSubmitPointUnknownMatch(t *testing.T) {
	_, _, svc := padelFixture(t)

	_, err := svc.SubmitPoint(context.Background(), 42, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitPointCorruptSnapshot(t *testing.T) {
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Padel", Rules: scoring.SportPadel})
	broken := `{"player1_score": "45"`
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:      1,
		SportID: 1,
		P1ID:    10,
		P2ID:    20,
		Score:   &broken,
		Status:  models.StatusInProgress,
	})
	svc := NewScoreService(nil, matchRepo, sportRepo, testHub())

	_, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	assert.ErrorIs(t, err, ErrScoreStateCorrupt)
}

func TestSubmitPointCorruptMarkerMapped(t *testing.T) {
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Padel", Rules: scoring.SportPadel})
	state := scoring.NewScoreState()
	state.Player1Score = "45" // вне лесенки
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:      1,
		SportID: 1,
		P1ID:    10,
		P2ID:    20,
		Score:   marshalState(t, state),
		Status:  models.StatusInProgress,
	})
	svc := NewScoreService(nil, matchRepo, sportRepo, testHub())

	_, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	require.ErrorIs(t, err, ErrScoreStateCorrupt)
	var corrupt *scoring.CorruptStateError
	assert.True(t, errors.As(err, &corrupt))
}

func TestSubmitPointCanceledMatch(t *testing.T) {
	sportRepo := newFakeSportRepo(&models.Sport{ID: 1, Name: "Padel", Rules: scoring.SportPadel})
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:      1,
		SportID: 1,
		P1ID:    10,
		P2ID:    20,
		Score:   marshalState(t, scoring.NewScoreState()),
		Status:  models.MatchStatusCanceled,
	})
	svc := NewScoreService(nil, matchRepo, sportRepo, testHub())

	_, err := svc.SubmitPoint(context.Background(), 1, SubmitPointInput{PointWinner: scoring.SidePlayer1})
	assert.ErrorIs(t, err, ErrMatchNotInProgress)
}
