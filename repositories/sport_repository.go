package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/lib/pq"
)

var (
	ErrSportNotFound     = errors.New("sport not found")
	ErrSportNameConflict = errors.New("sport name conflict")
	ErrSportInUse        = errors.New("sport cannot be deleted as it is in use") // FK при удалении
)

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `INSERT INTO sports (name, rules) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, sport.Name, sport.Rules).Scan(&sport.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "sports_name_key" {
				return ErrSportNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	query := `SELECT id, name, rules, logo_key FROM sports WHERE id = $1`

	var sport models.Sport
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name, &sport.Rules, &sport.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `SELECT id, name, rules, logo_key FROM sports ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(&sport.ID, &sport.Name, &sport.Rules, &sport.LogoKey); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *postgresSportRepository) Update(ctx context.Context, sport *models.Sport) error {
	query := `UPDATE sports SET name = $1, rules = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, sport.Name, sport.Rules, sport.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "sports_name_key" {
				return ErrSportNameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE sports SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}

func (r *postgresSportRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrSportInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
