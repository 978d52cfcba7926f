package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/repositories"
	"github.com/Dosada05/racket-tournament-system/scoring"
	"github.com/Dosada05/racket-tournament-system/storage"
)

var (
	ErrSportNameRequired   = errors.New("sport name is required")
	ErrSportInUse          = errors.New("sport cannot be deleted as it is currently in use")
	ErrSportCreationFailed = errors.New("failed to create sport")
	ErrSportUpdateFailed   = errors.New("failed to update sport")
	ErrSportDeleteFailed   = errors.New("failed to delete sport")
	ErrSportLogoUpload     = errors.New("failed to upload sport logo")
)

type SportService interface {
	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
	UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error)
}

type CreateSportInput struct {
	Name  string        `json:"name"`
	Rules scoring.Sport `json:"rules"`
}

type UpdateSportInput struct {
	Name  string        `json:"name"`
	Rules scoring.Sport `json:"rules"`
}

type sportService struct {
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
}

func NewSportService(sportRepo repositories.SportRepository, uploader storage.FileUploader) SportService {
	return &sportService{
		sportRepo: sportRepo,
		uploader:  uploader,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}
	if err := validateSportRules(input.Rules); err != nil {
		return nil, err
	}

	sport := &models.Sport{
		Name:  name,
		Rules: input.Rules,
	}

	err := s.sportRepo.Create(ctx, sport)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNameConflict) {
			return nil, ErrSportNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}

	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}
	populateSportLogoURL(sport, s.uploader)
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	if sports == nil {
		return []models.Sport{}, nil
	}
	for i := range sports {
		populateSportLogoURL(&sports[i], s.uploader)
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}
	if err := validateSportRules(input.Rules); err != nil {
		return nil, err
	}

	sportToUpdate := &models.Sport{
		ID:    id,
		Name:  name,
		Rules: input.Rules,
	}

	err := s.sportRepo.Update(ctx, sportToUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
		}
	}

	return sportToUpdate, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := s.sportRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return ErrSportInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrSportDeleteFailed, id, err)
		}
	}
	return nil
}

func (s *sportService) UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrSportLogoUpload, err)
	}

	key := fmt.Sprintf("sports/%d/logo", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSportLogoUpload, err)
	}

	if err := s.sportRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSportLogoUpload, err)
	}

	sport.LogoKey = &result.Key
	populateSportLogoURL(sport, s.uploader)
	return sport, nil
}

// validateSportRules проверяет, что у ключа правил есть движок. open_irt
// допустим: его вызывает ScoreService напрямую, минуя диспетчер.
func validateSportRules(rules scoring.Sport) error {
	if rules == scoring.SportOpenIRT {
		return nil
	}
	if _, err := scoring.SelectEngine(rules); err != nil {
		return fmt.Errorf("%w: %q", ErrSportRulesInvalid, rules)
	}
	return nil
}
