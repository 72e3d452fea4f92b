package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

const positionColumns = `id, name, description, is_active, created_at, updated_at`

func scanPosition(row pgx.Row) (position.Position, error) {
	var p position.Position
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *positionRepositoryImpl) one(ctx context.Context, query string, args ...any) (position.Position, error) {
	p, err := scanPosition(GetQuerier(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return position.Position{}, position.ErrPositionNotFound
		case isUniqueViolation(err):
			return position.Position{}, position.ErrPositionNameExists
		}
		return position.Position{}, fmt.Errorf("failed to query position: %w", err)
	}
	return p, nil
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	query := `
		INSERT INTO positions (id, name, description, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING ` + positionColumns
	return r.one(ctx, query, p.Name, p.Description, p.IsActive)
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	return r.one(ctx, `SELECT `+positionColumns+` FROM positions WHERE id = $1`, id)
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, filter position.PositionFilter) ([]position.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		  AND (NOT $2 OR is_active)
		ORDER BY name ASC
	`
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, filter.Query, filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	positions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (position.Position, error) {
		return scanPosition(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan positions: %w", err)
	}
	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, p position.Position) (position.Position, error) {
	query := `
		UPDATE positions
		SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + positionColumns
	return r.one(ctx, query, p.Name, p.Description, p.IsActive, p.ID)
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	commandTag, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return position.ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}
	return nil
}

// CountEmployees implements position.PositionRepository.
func (r *positionRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	var count int64
	err := GetQuerier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE position_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count position employees: %w", err)
	}
	return count, nil
}
