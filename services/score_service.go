package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Dosada05/racket-tournament-system/live"
	"github.com/Dosada05/racket-tournament-system/metrics"
	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/repositories"
	"github.com/Dosada05/racket-tournament-system/scoring"
)

// ScoreService проводит событие "очко выиграно" через движок подсчёта:
// загрузка матча, валидация, переход, запись нового снимка, рассылка.
type ScoreService interface {
	SubmitPoint(ctx context.Context, matchID int, input SubmitPointInput) (*PointResult, error)
}

type SubmitPointInput struct {
	PointWinner scoring.Side `json:"point_winner"`
}

// PointResult содержит итог применения очка: обновлённый матч и сырой снимок счёта.
type PointResult struct {
	Match    *models.Match   `json:"match"`
	Score    json.RawMessage `json:"score"`
	Finished bool            `json:"finished"`
}

type scoreService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	sportRepo repositories.SportRepository
	hub       *live.Hub

	// Движки чистые, но применение очков одного матча не коммутативно,
	// поэтому подачи на матч сериализуются здесь.
	mu      sync.Mutex
	matchMu map[int]*sync.Mutex
}

func NewScoreService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	hub *live.Hub,
) ScoreService {
	return &scoreService{
		db:        db,
		matchRepo: matchRepo,
		sportRepo: sportRepo,
		hub:       hub,
		matchMu:   make(map[int]*sync.Mutex),
	}
}

func (s *scoreService) SubmitPoint(ctx context.Context, matchID int, input SubmitPointInput) (*PointResult, error) {
	if !input.PointWinner.Valid() {
		return nil, ErrInvalidPointWinner
	}

	lock := s.lockFor(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	sport, err := s.sportRepo.GetByID(ctx, match.SportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sport %d: %w", match.SportID, err)
	}

	switch match.Status {
	case models.MatchStatusCompleted:
		metrics.RecordPointRejected(string(sport.Rules), "match_finished")
		return nil, ErrMatchAlreadyFinished
	case models.MatchStatusCanceled:
		metrics.RecordPointRejected(string(sport.Rules), "match_canceled")
		return nil, ErrMatchNotInProgress
	}

	var result *PointResult
	if sport.Rules == scoring.SportOpenIRT {
		result, err = s.applyOpenIRTPoint(ctx, match, sport, input.PointWinner)
	} else {
		result, err = s.applyRoutedPoint(ctx, match, sport, input.PointWinner)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordPointApplied(string(sport.Rules))
	messageType := live.MessageScoreUpdated
	if result.Finished {
		metrics.RecordMatchCompleted(string(sport.Rules))
		messageType = live.MessageMatchCompleted
	}
	s.hub.BroadcastToRoom(live.MatchRoom(matchID), live.NewScoreMessage(messageType, matchID, result))

	return result, nil
}

// applyRoutedPoint обрабатывает падел и ракетбол через диспетчер движков.
func (s *scoreService) applyRoutedPoint(ctx context.Context, match *models.Match, sport *models.Sport, pointWinner scoring.Side) (*PointResult, error) {
	var state scoring.ScoreState
	if err := unmarshalScore(match.Score, &state); err != nil {
		return nil, err
	}

	next, err := scoring.CalculateScore(sport.Rules, state, pointWinner)
	if err != nil {
		return nil, mapScoringError(err, sport.Rules)
	}

	winnerID := resolveWinnerID(match, next.MatchWinner)
	return s.persistPoint(ctx, match, next, winnerID, next.MatchWinner != "", match.ServerID)
}

// applyOpenIRTPoint вызывает серверный движок напрямую: у него другой
// снимок и ему нужны идентификаторы игроков.
func (s *scoreService) applyOpenIRTPoint(ctx context.Context, match *models.Match, sport *models.Sport, pointWinner scoring.Side) (*PointResult, error) {
	var state scoring.OpenIRTScoreState
	if err := unmarshalScore(match.Score, &state); err != nil {
		return nil, err
	}

	engine := scoring.OpenIRTEngine{}
	next, err := engine.ApplyPoint(state, pointWinner)
	if err != nil {
		return nil, mapScoringError(err, sport.Rules)
	}

	winnerID := resolveWinnerID(match, next.MatchWinner)
	serverID := next.ServerID
	return s.persistPoint(ctx, match, next, winnerID, next.MatchWinner != "", &serverID)
}

func (s *scoreService) persistPoint(ctx context.Context, match *models.Match, snapshot interface{}, winnerID *int, finished bool, serverID *int) (*PointResult, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score snapshot for match %d: %w", match.ID, err)
	}
	score := string(raw)

	status := models.StatusInProgress
	if finished {
		status = models.MatchStatusCompleted
	}

	if err := s.matchRepo.UpdateScore(ctx, s.db, match.ID, &score, serverID, status, winnerID); err != nil {
		return nil, fmt.Errorf("failed to persist score for match %d: %w", match.ID, err)
	}

	match.Score = &score
	match.ServerID = serverID
	match.Status = status
	match.WinnerID = winnerID

	return &PointResult{
		Match:    match,
		Score:    json.RawMessage(raw),
		Finished: finished,
	}, nil
}

func (s *scoreService) lockFor(matchID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.matchMu[matchID]
	if !ok {
		lock = &sync.Mutex{}
		s.matchMu[matchID] = lock
	}
	return lock
}

func unmarshalScore(score *string, dst interface{}) error {
	if score == nil || *score == "" {
		return fmt.Errorf("%w: match has no score snapshot", ErrScoreStateCorrupt)
	}
	if err := json.Unmarshal([]byte(*score), dst); err != nil {
		return fmt.Errorf("%w: %w", ErrScoreStateCorrupt, err)
	}
	return nil
}

func mapScoringError(err error, rules scoring.Sport) error {
	var invalidSport *scoring.InvalidSportError
	var corrupt *scoring.CorruptStateError
	switch {
	case errors.Is(err, scoring.ErrMatchFinished):
		return ErrMatchAlreadyFinished
	case errors.Is(err, scoring.ErrInvalidSide):
		return ErrInvalidPointWinner
	case errors.As(err, &invalidSport):
		return fmt.Errorf("%w: %q", ErrSportRulesInvalid, rules)
	case errors.As(err, &corrupt):
		return fmt.Errorf("%w: %w", ErrScoreStateCorrupt, err)
	default:
		return err
	}
}

// resolveWinnerID переводит сторону-победителя в идентификатор игрока.
func resolveWinnerID(match *models.Match, winner scoring.Side) *int {
	switch winner {
	case scoring.SidePlayer1:
		id := match.P1ID
		return &id
	case scoring.SidePlayer2:
		id := match.P2ID
		return &id
	}
	return nil
}
