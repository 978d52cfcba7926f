package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/repositories"
	"github.com/Dosada05/racket-tournament-system/scoring"
	"golang.org/x/sync/errgroup"
)

var ErrMatchCreationFailed = errors.New("failed to create match")

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	// GetMatchDetail возвращает матч вместе с видом спорта.
	GetMatchDetail(ctx context.Context, id int) (*models.Match, error)
	ListMatchesBySport(ctx context.Context, sportID int, status *models.MatchStatus) ([]*models.Match, error)
	GetSportDashboard(ctx context.Context, sportID int) (*SportDashboard, error)
}

// SportDashboard собирает сводку по виду спорта для табло организатора.
type SportDashboard struct {
	Sport     *models.Sport   `json:"sport"`
	Live      []*models.Match `json:"live"`
	Completed []*models.Match `json:"completed"`
}

type CreateMatchInput struct {
	SportID  int  `json:"sport_id"`
	P1ID     int  `json:"p1_id"`
	P2ID     int  `json:"p2_id"`
	ServerID *int `json:"server_id,omitempty"` // обязателен для open_irt
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	sportRepo repositories.SportRepository
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		sportRepo: sportRepo,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.P1ID <= 0 || input.P2ID <= 0 {
		return nil, ErrMatchPlayersRequired
	}
	if input.P1ID == input.P2ID {
		return nil, ErrMatchSamePlayer
	}

	sport, err := s.sportRepo.GetByID(ctx, input.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
	}

	score, serverID, err := initialScore(sport.Rules, input)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		SportID:  input.SportID,
		P1ID:     input.P1ID,
		P2ID:     input.P2ID,
		Score:    score,
		ServerID: serverID,
		Status:   models.StatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, s.db, match); err != nil {
		if errors.Is(err, repositories.ErrMatchSportInvalid) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) GetMatchDetail(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sport, err := s.sportRepo.GetByID(ctx, match.SportID)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to load match %d details: %w", id, err)
	}

	match.Sport = sport
	return match, nil
}

func (s *matchService) GetSportDashboard(ctx context.Context, sportID int) (*SportDashboard, error) {
	dashboard := &SportDashboard{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sport, err := s.sportRepo.GetByID(gCtx, sportID)
		if err != nil {
			return err
		}
		dashboard.Sport = sport
		return nil
	})
	g.Go(func() error {
		live := models.StatusInProgress
		matches, err := s.matchRepo.ListBySport(gCtx, sportID, &live)
		if err != nil {
			return err
		}
		dashboard.Live = matches
		return nil
	})
	g.Go(func() error {
		completed := models.MatchStatusCompleted
		matches, err := s.matchRepo.ListBySport(gCtx, sportID, &completed)
		if err != nil {
			return err
		}
		dashboard.Completed = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to build dashboard for sport %d: %w", sportID, err)
	}
	return dashboard, nil
}

func (s *matchService) ListMatchesBySport(ctx context.Context, sportID int, status *models.MatchStatus) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListBySport(ctx, sportID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for sport %d: %w", sportID, err)
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

// initialScore формирует стартовый снимок счёта по правилам вида спорта.
func initialScore(rules scoring.Sport, input CreateMatchInput) (*string, *int, error) {
	if rules == scoring.SportOpenIRT {
		if input.ServerID == nil {
			return nil, nil, ErrMatchServerRequired
		}
		if *input.ServerID != input.P1ID && *input.ServerID != input.P2ID {
			return nil, nil, ErrMatchServerNotPlaying
		}
		state := scoring.NewOpenIRTScoreState(input.P1ID, input.P2ID, *input.ServerID)
		raw, err := json.Marshal(state)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
		}
		score := string(raw)
		return &score, input.ServerID, nil
	}

	if _, err := scoring.SelectEngine(rules); err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrSportRulesInvalid, rules)
	}
	state := scoring.NewScoreState()
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
	}
	score := string(raw)
	return &score, nil, nil
}
