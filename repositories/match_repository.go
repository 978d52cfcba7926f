package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchSportInvalid = errors.New("match references unknown sport")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListBySport(ctx context.Context, sportID int, status *models.MatchStatus) ([]*models.Match, error)
	// UpdateScore записывает новый снимок счёта вместе со статусом и
	// победителем одним оператором: частично применённое очко в БД не
	// должно быть наблюдаемо.
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, score *string, serverID *int, status models.MatchStatus, winnerID *int) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (sport_id, p1_id, p2_id, score, server_id, status, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.SportID,
		match.P1ID,
		match.P2ID,
		match.Score,
		match.ServerID,
		match.Status,
		match.WinnerID,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, sport_id, p1_id, p2_id, score, server_id, status, winner_id, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.SportID,
		&match.P1ID,
		&match.P2ID,
		&match.Score,
		&match.ServerID,
		&match.Status,
		&match.WinnerID,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListBySport(ctx context.Context, sportID int, status *models.MatchStatus) ([]*models.Match, error) {
	query := `
		SELECT id, sport_id, p1_id, p2_id, score, server_id, status, winner_id, created_at
		FROM matches
		WHERE sport_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sportID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match := &models.Match{}
		if scanErr := rows.Scan(
			&match.ID,
			&match.SportID,
			&match.P1ID,
			&match.P2ID,
			&match.Score,
			&match.ServerID,
			&match.Status,
			&match.WinnerID,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, score *string, serverID *int, status models.MatchStatus, winnerID *int) error {
	query := `
		UPDATE matches
		SET score = $1, server_id = $2, status = $3, winner_id = $4
		WHERE id = $5`

	result, err := exec.ExecContext(ctx, query, score, serverID, status, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
		if pqErr.Constraint == "matches_sport_id_fkey" {
			return ErrMatchSportInvalid
		}
	}
	return err
}
